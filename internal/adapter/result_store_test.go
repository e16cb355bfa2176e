package adapter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	m "refract.dev/pkg/refract/internal/model"
)

func TestResultStoreSaveAndLoad(t *testing.T) {
	dir := m.Path(filepath.Join(t.TempDir(), "results"))
	store := NewResultStore(NewLocalSourceFSAdapter())

	saved := []m.RuleResults{
		{
			Rule:    "boolcompare",
			Summary: "Remove redundant comparisons with boolean literals",
			Entries: []m.ResultEntry{
				{Kind: m.EntryChange, File: "/src/a.go", Diff: "--- a\n+++ b\n", Message: "demo"},
				{Kind: m.EntryError, File: "/src/b.go", Message: "parse b.go: broken"},
			},
		},
		{Rule: "incdec", Summary: "Replace `x += 1` and `x -= 1` with `x++` and `x--`"},
	}

	require.NoError(t, store.SaveResults(dir, saved))

	loaded, err := store.LoadResults(dir)
	require.NoError(t, err)
	require.Equal(t, saved, loaded)
}

func TestResultStoreLoadMissingDir(t *testing.T) {
	store := NewResultStore(NewLocalSourceFSAdapter())

	_, err := store.LoadResults(m.Path(filepath.Join(t.TempDir(), "absent")))
	require.Error(t, err)
}
