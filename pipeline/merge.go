package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/revelaction/entalign/align"
	"github.com/revelaction/entalign/conllu"
	"github.com/revelaction/entalign/sentence"
	"github.com/revelaction/entalign/standoff"
	"github.com/revelaction/entalign/storage"
)

// MergeFailure is a document left out of the merge.
type MergeFailure struct {
	Split  string
	Doc    string
	Reason string
}

// MergeResult counts the merged documents per split.
type MergeResult struct {
	Written  map[string]int
	Failures []MergeFailure
}

// Merge writes, for every split manifest of repo, the merged document of
// each of its documents to <out>/<split>/<doc>.conllu. The annotation
// documents are read from conllDir. If annDir is set, a document whose text
// no longer matches the fingerprint of its manifest is skipped. A document
// that fails to merge is skipped and reported.
func Merge(repo storage.ManifestReader, treebank []sentence.Split, conllDir, annDir, out string, opts ...Option) (MergeResult, error) {
	c := newConfig(opts)
	merger := align.NewMerger(append([]align.Option{align.WithLogger(c.logger)}, c.align...)...)
	index := Index(treebank)

	names, err := repo.Splits()
	if err != nil {
		return MergeResult{}, err
	}

	res := MergeResult{Written: map[string]int{}}
	for _, split := range names {
		m, err := repo.Read(split)
		if err != nil {
			return res, err
		}

		dir := filepath.Join(out, split)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return res, err
		}

		for _, doc := range m.Docs {
			reason, err := mergeDoc(merger, m, doc, index, conllDir, annDir, dir)
			if err != nil {
				return res, err
			}
			c.progress(doc)

			if reason != "" {
				c.logger.Warn("document not merged", "split", split, "doc", doc, "reason", reason)
				res.Failures = append(res.Failures, MergeFailure{Split: split, Doc: doc, Reason: reason})
				continue
			}
			res.Written[split]++
		}

		c.logger.Info("split merged", "split", split, "docs", res.Written[split], "manifest", len(m.Docs))
	}

	return res, nil
}

// mergeDoc returns the reason a document was skipped, or an error that
// stops the merge.
func mergeDoc(merger *align.Merger, m storage.Manifest, doc string, index map[string]sentence.Sentence, conllDir, annDir, dir string) (string, error) {
	if sum, ok := m.Sums[doc]; ok && annDir != "" {
		b, err := os.ReadFile(filepath.Join(annDir, doc+standoff.TxtExt))
		if err != nil {
			return err.Error(), nil
		}
		if storage.Fingerprint(b) != sum {
			return "text changed since mapping", nil
		}
	}

	ann, err := conllu.ReadFile(filepath.Join(conllDir, doc+conllu.Ext))
	if err != nil {
		return err.Error(), nil
	}

	merged, err := merger.Document(doc, m.SentIds[doc], ann, index)
	if err != nil {
		return err.Error(), nil
	}

	if err := conllu.WriteFile(filepath.Join(dir, doc+conllu.Ext), merged); err != nil {
		return "", fmt.Errorf("write %s: %w", doc, err)
	}
	return "", nil
}
