package pipeline

import (
	"os"
	"path/filepath"

	"github.com/revelaction/entalign/align"
	"github.com/revelaction/entalign/conllu"
	"github.com/revelaction/entalign/file"
	"github.com/revelaction/entalign/sentence"
)

// TransferName returns the file name of a split with transferred entities.
func TransferName(split string) string {
	return "aligned-ud-" + split + conllu.Ext
}

// Transfer copies the entity annotations of the split files of entityDir
// onto the split files of treebankDir, which share their text, and writes
// <out>/aligned-ud-<split>.conllu. It returns the mismatched sentences per
// split.
func Transfer(treebankDir, entityDir, out string, opts ...Option) (map[string][]align.Mismatch, error) {
	c := newConfig(opts)
	aligner := align.NewSentenceAligner(append([]align.Option{align.WithLogger(c.logger)}, c.align...)...)

	tbFiles, err := file.SplitFiles(treebankDir, conllu.Ext)
	if err != nil {
		return nil, err
	}
	entFiles, err := file.SplitFiles(entityDir, conllu.Ext)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		return nil, err
	}

	mismatches := map[string][]align.Mismatch{}
	for _, split := range file.Splits {
		c.logger.Info("transferring entities", "split", split, "treebank", filepath.Base(tbFiles[split]), "entities", filepath.Base(entFiles[split]))

		tb, err := conllu.ReadFile(tbFiles[split])
		if err != nil {
			return nil, err
		}
		ent, err := conllu.ReadFile(entFiles[split])
		if err != nil {
			return nil, err
		}

		aligned, mm := aligner.Align(tb, ent)
		mismatches[split] = mm

		if err := writeSentences(filepath.Join(out, TransferName(split)), aligned); err != nil {
			return nil, err
		}
		c.progress(split)
	}

	return mismatches, nil
}

func writeSentences(path string, sents []sentence.Sentence) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	for _, s := range sents {
		if err := conllu.WriteSentence(f, s); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
