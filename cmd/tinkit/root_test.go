package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"scale", "centroid", "inspect", "serve", "mcp", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestScaleCommand_NegativeFactor(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.xml")
	out := filepath.Join(dir, "out.xml")
	require.NoError(t, os.WriteFile(in, []byte(`<TIN><P id="1">1 2 3</P></TIN>`), 0644))

	rootCmd.SetArgs([]string{"scale", "--quiet", in, "-2", out})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<P id="1">-2.000000000000 -4.000000000000 3.0000</P>`)
}

func TestScaleCommand_ArgCount(t *testing.T) {
	rootCmd.SetArgs([]string{"scale", "only-one.xml"})
	assert.Error(t, rootCmd.Execute())
}
