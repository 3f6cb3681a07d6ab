package pipeline

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/entalign/conllu"
	"github.com/revelaction/entalign/file"
	"github.com/revelaction/entalign/span"
	"github.com/revelaction/entalign/standoff"
)

const (
	docTxt = "Ola kom hjem.\nHan sov .\n"
	docAnn = "T1\tPerson 0 3\tOla\n" +
		"T2\tPlace 8 13\thjem.\n" +
		"T3\tPerson 14 17\tHan\n" +
		"T4\tThing 18 23\tsov .\n" +
		"T5\tThing 4 7\tkom\n" +
		"R1\tCoref Arg1:T3 Arg2:T1\t\n"
)

func writeDoc(t *testing.T, dir, doc string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, doc+standoff.AnnExt), []byte(docAnn), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, doc+standoff.TxtExt), []byte(docTxt), 0o644))
}

func TestNew(t *testing.T) {
	st, err := New(Ann2JSONName)
	require.NoError(t, err)
	assert.Equal(t, Ann, st.Input())
	assert.Equal(t, JSON, st.Output())

	st, err = New(JSON2CoNLLName)
	require.NoError(t, err)
	assert.Equal(t, ".jsonl", st.Input().Ext())
	assert.Equal(t, conllu.Ext, st.Output().Ext())

	_, err = New("pdf2txt")
	require.ErrorIs(t, err, ErrUnknownStage)
	assert.Equal(t, []string{Ann2JSONName, JSON2CoNLLName}, Names())
}

func TestAnn2JSONRecord(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "d1")

	inv := standoff.Invalid{}
	inv.Add("d1", "T5")
	st := NewAnn2JSON(WithInvalid(inv))

	rec, err := st.Record(filepath.Join(dir, "d1"+standoff.AnnExt))
	require.NoError(t, err)

	assert.Equal(t, "d1", rec.DocKey)
	assert.Equal(t, [][]string{{"Ola", "kom", "hjem."}, {"Han", "sov", "."}}, rec.Sentences)
	require.Len(t, rec.Markables, 4)
	assert.Equal(t, []span.Span{{Start: 4, End: 4}}, rec.Markables[3].Spans)
	assert.Equal(t, "T1_T3", rec.ClusterMap["T1"])
	assert.Equal(t, [][]span.Span{{{Start: 0, End: 0}, {Start: 3, End: 3}}}, rec.Clusters)

	require.Len(t, st.Corrections(), 1)
	c := st.Corrections()[0]
	assert.Equal(t, "d1", c.Doc)
	assert.Equal(t, "T4", c.Markable)
	assert.Equal(t, span.Span{Start: 4, End: 5}, c.Span)
}

func TestConvertStages(t *testing.T) {
	root := t.TempDir()
	annDir := filepath.Join(root, "ann")
	jsonDir := filepath.Join(root, "json")
	conllDir := filepath.Join(root, "conll")
	require.NoError(t, os.Mkdir(annDir, 0o755))
	writeDoc(t, annDir, "d1")
	writeDoc(t, annDir, "d0")

	var seen []string
	n, err := Convert(annDir, jsonDir, NewAnn2JSON(), WithProgress(func(p string) { seen = append(seen, filepath.Base(p)) }))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"d0.ann", "d1.ann"}, seen)

	n, err = Convert(jsonDir, conllDir, NewJSON2CoNLL())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	b, err := os.ReadFile(filepath.Join(conllDir, "d1"+conllu.Ext))
	require.NoError(t, err)

	want := "# newdoc id = d1\n" +
		conllu.GlobalEntity + "\n" +
		"# sent_id = 0\n" +
		"# text = Ola kom hjem.\n" +
		"1\tOla\t_\t_\t_\t_\t_\t_\t_\tEntity=(d1__24--1)\n" +
		"2\tkom\t_\t_\t_\t_\t_\t_\t_\tEntity=(d1__T5--1)\n" +
		"3\thjem.\t_\t_\t_\t_\t_\t_\t_\tEntity=(d1__T2--1)\n" +
		"\n" +
		"# sent_id = 1\n" +
		"# text = Han sov .\n" +
		"1\tHan\t_\t_\t_\t_\t_\t_\t_\tEntity=(d1__24--1)\n" +
		"2\tsov\t_\t_\t_\t_\t_\t_\t_\tEntity=(d1__T4--1)\n" +
		"3\t.\t_\t_\t_\t_\t_\t_\t_\t_\n" +
		"\n"
	assert.Equal(t, want, string(b))
}

func TestConvertCRLF(t *testing.T) {
	root := t.TempDir()
	annDir := filepath.Join(root, "ann")
	jsonDir := filepath.Join(root, "json")
	conllDir := filepath.Join(root, "conll")
	require.NoError(t, os.Mkdir(annDir, 0o755))

	txt := "Per kom .\r\nHan sov .\r\n\r\nDe sov .\r\n"
	require.NoError(t, os.WriteFile(filepath.Join(annDir, "d.txt"), []byte(txt), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(annDir, "d.ann"), []byte("T1\tMarkable 10 13\tHan\n"), 0o644))

	_, err := Convert(annDir, jsonDir, NewAnn2JSON())
	require.NoError(t, err)
	_, err = Convert(jsonDir, conllDir, NewJSON2CoNLL())
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(conllDir, "d"+conllu.Ext))
	require.NoError(t, err)
	out := string(b)

	assert.NotContains(t, out, "\r")
	assert.Contains(t, out, "1\tHan\t_\t_\t_\t_\t_\t_\t_\tEntity=(d__T1--1)\n")
	assert.Contains(t, out, "3\t.\t_\t_\t_\t_\t_\t_\t_\t_\n")
	assert.Equal(t, 3, strings.Count(out, "# text = "))

	sources, err := LoadSources(annDir)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, []string{"Per kom .", "Han sov .", "De sov ."}, sources[0].Lines)

	sents, err := conllu.ReadFile(filepath.Join(conllDir, "d"+conllu.Ext))
	require.NoError(t, err)
	assert.Len(t, sents, len(sources[0].Lines))
}

type brokenStage struct{}

func (brokenStage) Name() string { return "broken" }
func (brokenStage) Input() Kind  { return Ann }
func (brokenStage) Output() Kind { return JSON }
func (brokenStage) Run(path string, w io.Writer) error {
	if _, err := io.WriteString(w, "{\"doc_key\":"); err != nil {
		return err
	}
	return errors.New("broken record")
}

func TestConvertRemovesPartialOutput(t *testing.T) {
	annDir := t.TempDir()
	dst := t.TempDir()
	writeDoc(t, annDir, "d1")

	_, err := Convert(annDir, dst, brokenStage{})
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dst, "d1.jsonl"))
}

func TestConvertMissingSource(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "annotations_bokmaal")
	_, err := Convert(missing, t.TempDir(), NewAnn2JSON())
	require.ErrorIs(t, err, file.ErrSourceMissing)
	assert.Contains(t, err.Error(), missing)
}

func TestCombine(t *testing.T) {
	merged := t.TempDir()
	out := t.TempDir()
	split := filepath.Join(merged, "train")
	require.NoError(t, os.Mkdir(split, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(split, "b.conllu"), []byte("B\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(split, "a.conllu"), []byte("A\n"), 0o644))

	for _, compress := range []bool{false, true} {
		path, err := Combine(merged, out, "narc", "bokmaal", "train", compress)
		require.NoError(t, err)

		r, err := OpenCombined(path)
		require.NoError(t, err)
		b, err := io.ReadAll(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())

		assert.Equal(t, "A\nB\n", string(b))
	}

	assert.FileExists(t, filepath.Join(out, "narc_bokmaal_train.conllu"))
	assert.FileExists(t, filepath.Join(out, "narc_bokmaal_train.conllu.xz"))
}
