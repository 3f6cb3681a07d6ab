// Package report writes the diagnostics of the alignment runs as one text
// file per category, one comma separated line per entry.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/revelaction/entalign/align"
	"github.com/revelaction/entalign/pipeline"
)

const (
	NoMatch        = "ERROR_NO_SENT_MATCH"
	MultiMatch     = "ERROR_MULTIPLE_SENT_MATCH"
	NonEqual       = "ERROR_NON_EQUAL_SENTS"
	MultiSplit     = "ERROR_MULTIPLE_UD_SPLIT"
	Unassigned     = "ERROR_UNASSIGNED"
	Merge          = "ERROR_MERGE"
	Mismatch       = "ERROR_MISMATCHED_SENTS"
	CorrectedSpans = "ERROR_CORRECTED_SPANS"
)

// Writer writes the report files of a language into a directory. Every
// write replaces the previous file of its category, even with no entries.
type Writer struct {
	dir  string
	lang string
}

// New creates dir if needed.
func New(dir, lang string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Writer{dir: dir, lang: lang}, nil
}

// Path returns the file of a category.
func (w *Writer) Path(category string) string {
	if category == CorrectedSpans {
		return filepath.Join(w.dir, category+".txt")
	}
	return filepath.Join(w.dir, fmt.Sprintf("%s_%s.txt", category, w.lang))
}

// Map writes the mapping diagnostics.
func (w *Writer) Map(rep align.Report) error {
	if err := w.write(NoMatch, unmatched(rep.NoMatch)); err != nil {
		return err
	}
	if err := w.write(MultiMatch, unmatched(rep.MultiMatch)); err != nil {
		return err
	}
	if err := w.write(Unassigned, unmatched(rep.Unassigned)); err != nil {
		return err
	}

	lines := make([]string, 0, len(rep.NonEqual))
	for _, ne := range rep.NonEqual {
		lines = append(lines, join(ne.Doc, fmt.Sprint(ne.Ord), ne.SentId, ne.AnnotationText, ne.TreebankText))
	}
	if err := w.write(NonEqual, lines); err != nil {
		return err
	}

	lines = make([]string, 0, len(rep.MultiSplit))
	for _, ms := range rep.MultiSplit {
		lines = append(lines, join(ms.Doc, strings.Join(ms.Splits, " "), strings.Join(ms.SentSplits, " ")))
	}
	return w.write(MultiSplit, lines)
}

// Corrections writes the spans moved off punctuation.
func (w *Writer) Corrections(cs []pipeline.Correction) error {
	lines := make([]string, 0, len(cs))
	for _, c := range cs {
		lines = append(lines, join(c.Doc, c.Markable, c.Span.String()))
	}
	return w.write(CorrectedSpans, lines)
}

// Merge writes the documents skipped by the merge.
func (w *Writer) Merge(fs []pipeline.MergeFailure) error {
	lines := make([]string, 0, len(fs))
	for _, f := range fs {
		lines = append(lines, join(f.Split, f.Doc, f.Reason))
	}
	return w.write(Merge, lines)
}

// Mismatches writes the treebank sentences a transfer left unchanged.
func (w *Writer) Mismatches(split string, ms []align.Mismatch) error {
	lines := make([]string, 0, len(ms))
	for _, m := range ms {
		lines = append(lines, join(split, m.SentId, m.Reason, m.TreebankText, m.AnnotationText))
	}
	return w.write(Mismatch+"_"+split, lines)
}

func (w *Writer) write(category string, lines []string) error {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return os.WriteFile(w.Path(category), []byte(b.String()), 0o644)
}

func unmatched(us []align.Unmatched) []string {
	lines := make([]string, 0, len(us))
	for _, u := range us {
		lines = append(lines, join(u.Doc, fmt.Sprint(u.Ord), u.Text))
	}
	return lines
}

func join(fields ...string) string {
	return strings.Join(fields, ",")
}
