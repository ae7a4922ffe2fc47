package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/tinkit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestCentroid_JSON(t *testing.T) {
	t.Run("undefined has no point", func(t *testing.T) {
		data, err := json.Marshal(domain.Centroid{Faces: 2, DegenerateFaces: 2})
		require.NoError(t, err)

		var raw map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.NotContains(t, raw, "point")
		assert.Equal(t, false, raw["defined"])
		assert.Equal(t, 2.0, raw["degenerate_faces"])
	})

	t.Run("defined at the origin keeps its point", func(t *testing.T) {
		data, err := json.Marshal(domain.Centroid{Defined: true, TotalArea: 1})
		require.NoError(t, err)
		assert.Contains(t, string(data), `"point":{"X":0,"Y":0,"Z":0}`)
	})

	t.Run("round trip", func(t *testing.T) {
		in := domain.Centroid{Point: r3.Vec{X: 1, Y: 2, Z: 3}, Defined: true, TotalArea: 4, Faces: 1}
		data, err := json.Marshal(in)
		require.NoError(t, err)

		var out domain.Centroid
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, in, out)
	})
}
