package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.ann")
	touch(t, dir, "a.ann")
	touch(t, dir, "a.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "c.ann"), 0o755))

	got, err := List(dir, ".ann")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.ann"), filepath.Join(dir, "b.ann")}, got)
}

func TestListMissingSource(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	_, err := List(missing, ".ann")
	require.ErrorIs(t, err, ErrSourceMissing)
	assert.Contains(t, err.Error(), missing)
}

func TestSplitFiles(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"no_bokmaal-ud-dev.conllu", "no_bokmaal-ud-test.conllu", "no_bokmaal-ud-train.conllu", "README.md"} {
		touch(t, dir, n)
	}

	got, err := SplitFiles(dir, ".conllu")
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, filepath.Join(dir, "no_bokmaal-ud-dev.conllu"), got["dev"])

	require.NoError(t, os.Remove(filepath.Join(dir, "no_bokmaal-ud-dev.conllu")))
	_, err = SplitFiles(dir, ".conllu")
	require.ErrorIs(t, err, ErrSplitMissing)
}

func TestReplace(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "doc.jsonl"), Replace("out", "/in/doc.ann", ".jsonl"))
}
