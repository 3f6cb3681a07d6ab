package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/entalign/align"
	"github.com/revelaction/entalign/pipeline"
	"github.com/revelaction/entalign/span"
)

func read(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestMap(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, "bokmaal")
	require.NoError(t, err)

	rep := align.Report{
		NoMatch:    []align.Unmatched{{Doc: "c", Ord: 1, Text: "fremmed setning"}},
		MultiMatch: []align.Unmatched{{Doc: "a", Ord: 3, Text: "ja"}, {Doc: "b", Ord: 2, Text: "ja"}},
		NonEqual:   []align.NonEqual{{Doc: "a", Ord: 3, SentId: "003", AnnotationText: "Ja.", TreebankText: "Ja ."}},
		MultiSplit: []align.MultiSplit{{Doc: "d", Splits: []string{"dev", "train"}, SentSplits: []string{"train", "dev"}}},
	}
	require.NoError(t, w.Map(rep))

	assert.Equal(t, "c,1,fremmed setning\n", read(t, filepath.Join(dir, "ERROR_NO_SENT_MATCH_bokmaal.txt")))
	assert.Equal(t, "a,3,ja\nb,2,ja\n", read(t, w.Path(MultiMatch)))
	assert.Equal(t, "a,3,003,Ja.,Ja .\n", read(t, w.Path(NonEqual)))
	assert.Equal(t, "d,dev train,train dev\n", read(t, w.Path(MultiSplit)))
	assert.Equal(t, "", read(t, w.Path(Unassigned)))
}

func TestCorrectionsAndMerge(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, "nynorsk")
	require.NoError(t, err)

	require.NoError(t, w.Corrections([]pipeline.Correction{
		{Doc: "d1", Correction: span.Correction{Markable: "T4", Span: span.Span{Start: 4, End: 5}}},
	}))
	assert.Equal(t, "d1,T4,[4, 5]\n", read(t, filepath.Join(dir, "ERROR_CORRECTED_SPANS.txt")))

	require.NoError(t, w.Merge([]pipeline.MergeFailure{{Split: "train", Doc: "d1", Reason: "text changed since mapping"}}))
	assert.Equal(t, "train,d1,text changed since mapping\n", read(t, filepath.Join(dir, "ERROR_MERGE_nynorsk.txt")))

	require.NoError(t, w.Mismatches("dev", []align.Mismatch{{SentId: "200", Reason: "text mismatch", TreebankText: "Helt annet.", AnnotationText: "Noe helt annet."}}))
	assert.Equal(t, "dev,200,text mismatch,Helt annet.,Noe helt annet.\n", read(t, filepath.Join(dir, "ERROR_MISMATCHED_SENTS_dev_nynorsk.txt")))
}
