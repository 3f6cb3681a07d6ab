package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/entalign/align"
	"github.com/revelaction/entalign/conllu"
	"github.com/revelaction/entalign/storage/filesystem"
)

// treebankSentence renders a CoNLL-U sentence from "form/misc" items.
func treebankSentence(id, text string, items ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# sent_id = %s\n# text = %s\n", id, text)
	for i, it := range items {
		form, misc, ok := strings.Cut(it, "/")
		if !ok {
			misc = "_"
		}
		fmt.Fprintf(&b, "%d\t%s\t_\tX\t_\t_\t0\troot\t_\t%s\n", i+1, form, misc)
	}
	b.WriteString("\n")
	return b.String()
}

func writeTreebank(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	files := map[string]string{
		"no-ud-train.conllu": treebankSentence("001", "Ola kom hjem.", "Ola", "kom", "hjem/SpaceAfter=No", ".") +
			treebankSentence("002", "Han sov.", "Han", "sov/SpaceAfter=No", "."),
		"no-ud-test.conllu": treebankSentence("100", "Noe annet.", "Noe", "annet/SpaceAfter=No", "."),
		"no-ud-dev.conllu":  treebankSentence("200", "Helt annet.", "Helt", "annet/SpaceAfter=No", "."),
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestMapAndMerge(t *testing.T) {
	root := t.TempDir()
	tbDir := filepath.Join(root, "ud")
	annDir := filepath.Join(root, "ann")
	jsonDir := filepath.Join(root, "json")
	conllDir := filepath.Join(root, "conll")
	merged := filepath.Join(root, "merged")

	writeTreebank(t, tbDir)
	require.NoError(t, os.Mkdir(annDir, 0o755))
	writeDoc(t, annDir, "d1")

	_, err := Convert(annDir, jsonDir, NewAnn2JSON())
	require.NoError(t, err)
	_, err = Convert(jsonDir, conllDir, NewJSON2CoNLL())
	require.NoError(t, err)

	splits, err := LoadTreebank(tbDir)
	require.NoError(t, err)
	require.Len(t, splits, 3)
	assert.Equal(t, "train", splits[0].Name)

	sources, err := LoadSources(annDir)
	require.NoError(t, err)
	require.Len(t, sources, 1)

	res, err := align.NewMapper().Map(splits, sources)
	require.NoError(t, err)
	assert.Equal(t, []string{"001", "002"}, res.Manifests[0].SentIds["d1"])

	repo, err := filesystem.NewManifestStore(filepath.Join(root, "manifest"), "")
	require.NoError(t, err)
	for _, m := range res.Manifests {
		require.NoError(t, repo.Write(m))
	}

	mr, err := Merge(repo, splits, conllDir, annDir, merged)
	require.NoError(t, err)
	assert.Empty(t, mr.Failures)
	assert.Equal(t, 1, mr.Written["train"])

	b, err := os.ReadFile(filepath.Join(merged, "train", "d1"+conllu.Ext))
	require.NoError(t, err)
	out := string(b)

	assert.True(t, strings.HasPrefix(out, "# newdoc id = d1\n"+conllu.GlobalEntity+"\n# sent_id = 001\n# text = Ola kom hjem.\n"))
	assert.Contains(t, out, "1\tOla\t_\tX\t_\t_\t0\troot\t_\tEntity=(d1__24--1)\n")
	assert.Contains(t, out, "3\thjem\t_\tX\t_\t_\t0\troot\t_\tSpaceAfter=No|Entity=(d1__T2--1)\n")
	assert.Contains(t, out, "2\tsov\t_\tX\t_\t_\t0\troot\t_\tSpaceAfter=No|Entity=(d1__T4--1)\n")

	path, err := Combine(merged, filepath.Join(root, "out"), "narc", "bokmaal", "train", false)
	require.NoError(t, err)
	combined, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, out, string(combined))
}

func TestMergeSkipsStaleAndFailing(t *testing.T) {
	root := t.TempDir()
	tbDir := filepath.Join(root, "ud")
	annDir := filepath.Join(root, "ann")
	conllDir := filepath.Join(root, "conll")
	jsonDir := filepath.Join(root, "json")

	writeTreebank(t, tbDir)
	require.NoError(t, os.Mkdir(annDir, 0o755))
	writeDoc(t, annDir, "d1")
	_, err := Convert(annDir, jsonDir, NewAnn2JSON())
	require.NoError(t, err)
	_, err = Convert(jsonDir, conllDir, NewJSON2CoNLL())
	require.NoError(t, err)

	splits, err := LoadTreebank(tbDir)
	require.NoError(t, err)
	sources, err := LoadSources(annDir)
	require.NoError(t, err)
	res, err := align.NewMapper().Map(splits, sources)
	require.NoError(t, err)

	repo, err := filesystem.NewManifestStore(filepath.Join(root, "manifest"), "")
	require.NoError(t, err)
	train := res.Manifests[0]
	train.Docs = append(train.Docs, "ghost")
	train.SentIds["ghost"] = []string{"001"}
	require.NoError(t, repo.Write(train))

	// the text changes after mapping
	require.NoError(t, os.WriteFile(filepath.Join(annDir, "d1.txt"), []byte("Ola kom.\n"), 0o644))

	mr, err := Merge(repo, splits, conllDir, annDir, filepath.Join(root, "merged"))
	require.NoError(t, err)
	assert.Equal(t, 0, mr.Written["train"])
	require.Len(t, mr.Failures, 2)
	assert.Equal(t, "d1", mr.Failures[0].Doc)
	assert.Equal(t, "text changed since mapping", mr.Failures[0].Reason)
	assert.Equal(t, "ghost", mr.Failures[1].Doc)
}

func TestTransfer(t *testing.T) {
	root := t.TempDir()
	tbDir := filepath.Join(root, "ud")
	entDir := filepath.Join(root, "norne")
	writeTreebank(t, tbDir)

	require.NoError(t, os.MkdirAll(entDir, 0o755))
	ent := map[string]string{
		"no-ne-train.conllu": treebankSentence("1", "Ola kom hjem.", "Ola/name=B-PER", "kom/name=O", "hjem/name=O", ".") +
			treebankSentence("2", "Han", "Han/name=O") +
			treebankSentence("3", "sov.", "sov/name=O", "."),
		"no-ne-test.conllu": treebankSentence("1", "Noe annet.", "Noe/name=O", "annet/name=O", "."),
		"no-ne-dev.conllu":  treebankSentence("1", "Noe helt annet.", "Noe", "helt", "annet", "."),
	}
	for name, content := range ent {
		require.NoError(t, os.WriteFile(filepath.Join(entDir, name), []byte(content), 0o644))
	}

	out := filepath.Join(root, "aligned")
	mm, err := Transfer(tbDir, entDir, out)
	require.NoError(t, err)
	assert.Empty(t, mm["train"])
	assert.Empty(t, mm["test"])
	require.Len(t, mm["dev"], 1)
	assert.Equal(t, "200", mm["dev"][0].SentId)

	got, err := conllu.ReadFile(filepath.Join(out, TransferName("train")))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "name=B-PER", got[0].Tokens[0].Misc.String())
	assert.Equal(t, "SpaceAfter=No|name=O", got[1].Tokens[1].Misc.String())
	assert.Equal(t, "001", got[0].Id)
}
