package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// runCheck executes a fresh check command over the given path with
// results redirected to a throwaway output directory.
func runCheck(t *testing.T, path string) (string, error) {
	t.Helper()

	viper.Set(outputFlagName, filepath.Join(t.TempDir(), "out"))
	t.Cleanup(func() { viper.Set(outputFlagName, defaultResultsDir) })

	var buf bytes.Buffer

	rootCmd.SetOut(&buf)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	cmd := newCheckCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()

	return buf.String(), err
}

func TestCheckExitsWithChangesFound(t *testing.T) {
	dir := t.TempDir()
	src := `package demo

func bump(n int) int {
	n += 1
	return n
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte(src), 0o600))

	out, err := runCheck(t, dir)
	require.ErrorIs(t, err, ErrChangesFound)
	require.Contains(t, out, "rule incdec")
	require.Contains(t, out, "n++")
}

func TestCheckCleanTreeSucceeds(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package demo\n\nfunc clean() {}\n"), 0o600))

	_, err := runCheck(t, dir)
	require.NoError(t, err)
}

func TestCheckMissingPathFails(t *testing.T) {
	out, err := runCheck(t, filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrChangesFound)
	require.NotEmpty(t, out)
}
