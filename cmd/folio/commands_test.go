package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/var1d/folio"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	assert.Equal(t, "folio version "+strings.TrimSpace(folio.Version)+"\n", out)
}

func TestThemeCommand(t *testing.T) {
	out := execute(t, "theme", "neon", "--css")
	assert.True(t, strings.HasPrefix(out, ":root {\n"))
	assert.Contains(t, out, "--neon: #ff2bd6;")

	out = execute(t, "theme", "--css=false")
	assert.Contains(t, out, "--neon")
	assert.Contains(t, out, "#00f5ff")
}

func TestThemeCommand_UnknownMode(t *testing.T) {
	rootCmd.SetArgs([]string{"theme", "sepia"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.Error(t, rootCmd.Execute())
}

func TestDiagramCommand(t *testing.T) {
	out := execute(t, "diagram", "--current", "error")
	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, "class error current;")
}
