package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/tinkit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestScaleSummary_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{Out: &buf}

	require.NoError(t, p.ScaleSummary(domain.ScaleSummary{Surfaces: 1, Breaklines: 2, Points: 30, Faces: 40, Factor: 0.5}))

	assert.Equal(t, "Number of surface: 1\nNumber of breaklines: 2\nNumber of points: 30\nScale factor: 0.5\n", buf.String())
}

func TestScaleSummary_Rich(t *testing.T) {
	var buf bytes.Buffer
	var got string
	p := &Printer{Out: &buf, Rich: true, render: func(md string) (string, error) {
		got = md
		return "rendered", nil
	}}

	require.NoError(t, p.ScaleSummary(domain.ScaleSummary{Points: 3, Factor: -2}))
	assert.Contains(t, got, "| Points | 3 |")
	assert.Contains(t, got, "`-2.0`")
	assert.Equal(t, "rendered", buf.String())
}

func TestFormatFactor(t *testing.T) {
	tests := map[float64]string{
		2:      "2.0",
		-2:     "-2.0",
		0:      "0.0",
		0.5:    "0.5",
		0.3048: "0.3048",
		1e-05:  "1e-05",
		1.5e20: "1.5e+20",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatFactor(in), "factor %v", in)
	}
}

func TestScaleSummary_WholeFactor(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{Out: &buf}

	require.NoError(t, p.ScaleSummary(domain.ScaleSummary{Surfaces: 1, Points: 3, Factor: 2}))
	assert.Contains(t, buf.String(), "Scale factor: 2.0\n")
}

func TestFormatCentroid(t *testing.T) {
	c := domain.Centroid{Point: r3.Vec{X: 0.5, Y: 1.0 / 3, Z: 2.123456}, Defined: true}
	assert.Equal(t, "0.500000000000 0.333333333333 2.1235", FormatCentroid(c))
	assert.Equal(t, "centroid: undefined", FormatCentroid(domain.Centroid{}))
}

func TestStats_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{Out: &buf}

	require.NoError(t, p.Stats(domain.Stats{
		Points:      3,
		Faces:       1,
		SurfaceArea: 0.5,
		Bounds:      &domain.Bounds{Max: r3.Vec{X: 1, Y: 1}},
	}))

	out := buf.String()
	assert.Contains(t, out, "Points: 3\n")
	assert.Contains(t, out, "Surface area: 0.5000\n")
	assert.Contains(t, out, "Max: 1.000000000000 1.000000000000 0.0000\n")
	assert.Equal(t, 8, strings.Count(out, "\n"))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3\n")
	assert.Contains(t, buf.String(), "v1.2.3")
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
