package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/tinkit/pkg/dsl"
	"github.com/stretchr/testify/require"
)

// WriteFile writes content to name inside a fresh temporary directory and
// returns the absolute path. It fails the test immediately on error.
func WriteFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join(t.TempDir(), name))
	require.NoError(t, err, "Failed to get absolute path for temp file")
	require.NoError(t, os.WriteFile(absPath, content, 0644), "Failed to write fixture")
	return absPath
}

// UnitSquare returns a surface of two right triangles covering the unit
// square in the XY plane. Its centroid is (0.5, 0.5, 0) and its area is 1.
func UnitSquare() []byte {
	return dsl.New().
		Surface("unit-square").
		Point(1, 0, 0, 0).
		Point(2, 1, 0, 0).
		Point(3, 1, 1, 0).
		Point(4, 0, 1, 0).
		Face(1, 2, 3).
		Face(1, 3, 4).
		End().
		MustBuild()
}
