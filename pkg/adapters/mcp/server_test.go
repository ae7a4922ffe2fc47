package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/tinkit"
	"github.com/aretw0/tinkit/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const square = `<TIN><Surface>
<P id="1">0 0 0</P><P id="2">1 0 0</P><P id="3">1 1 0</P><P id="4">0 1 0</P>
<F>1 2 3</F><F>1 3 4</F>
</Surface></TIN>`

func newServer() *Server {
	return NewServer(tinkit.New(), nil)
}

func TestHandleScale_Inline(t *testing.T) {
	s := newServer()

	res, err := s.handleScale(context.Background(), mcp.CallToolRequest{}, ScaleArgs{
		DocumentArgs: DocumentArgs{XML: square},
		Factor:       -1,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Summary.Points)
	assert.Equal(t, 1, res.Summary.Surfaces)
	assert.Contains(t, res.Document, `<P id="2">-1.000000000000 -0.000000000000 0.0000</P>`)
	assert.Empty(t, res.Output)
}

func TestHandleScale_Files(t *testing.T) {
	s := newServer()
	dir := t.TempDir()
	in := filepath.Join(dir, "in.xml")
	out := filepath.Join(dir, "out.xml")
	require.NoError(t, os.WriteFile(in, []byte(square), 0644))

	res, err := s.handleScale(context.Background(), mcp.CallToolRequest{}, ScaleArgs{
		DocumentArgs: DocumentArgs{Path: in},
		Factor:       3,
		OutputPath:   out,
	})
	require.NoError(t, err)
	assert.Equal(t, out, res.Output)
	assert.Empty(t, res.Document)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<P id="3">3.000000000000 3.000000000000 0.0000</P>`)
}

func TestHandleScale_Errors(t *testing.T) {
	s := newServer()

	_, err := s.handleScale(context.Background(), mcp.CallToolRequest{}, ScaleArgs{Factor: 1})
	assert.ErrorIs(t, err, ErrNoInput)

	_, err = s.handleScale(context.Background(), mcp.CallToolRequest{}, ScaleArgs{
		DocumentArgs: DocumentArgs{XML: square, Path: "also.xml"},
		Factor:       1,
	})
	assert.ErrorIs(t, err, ErrNoInput)

	_, err = s.handleScale(context.Background(), mcp.CallToolRequest{}, ScaleArgs{
		DocumentArgs: DocumentArgs{XML: `<TIN><F>1 x</F></TIN>`},
		Factor:       1,
	})
	assert.ErrorIs(t, err, domain.ErrMalformedElement)
	assert.ErrorContains(t, err, "malformed_element:")
}

func TestHandleCentroid(t *testing.T) {
	s := newServer()

	c, err := s.handleCentroid(context.Background(), mcp.CallToolRequest{}, DocumentArgs{XML: square})
	require.NoError(t, err)
	require.True(t, c.Defined)
	assert.InDelta(t, 0.5, c.Point.X, 1e-12)
	assert.InDelta(t, 0.5, c.Point.Y, 1e-12)

	_, err = s.handleCentroid(context.Background(), mcp.CallToolRequest{}, DocumentArgs{Path: filepath.Join(t.TempDir(), "missing.xml")})
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestHandleInspect(t *testing.T) {
	s := newServer()

	st, err := s.handleInspect(context.Background(), mcp.CallToolRequest{}, DocumentArgs{XML: square})
	require.NoError(t, err)
	assert.Equal(t, 4, st.Points)
	assert.Equal(t, 2, st.Faces)
	assert.InDelta(t, 1.0, st.SurfaceArea, 1e-12)
}
