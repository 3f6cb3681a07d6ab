package align

import (
	"github.com/revelaction/entalign/sentence"
)

// Mismatch describes a treebank sentence left without annotation.
type Mismatch struct {
	SentId         string
	TreebankText   string
	AnnotationText string
	Reason         string
}

// SentenceAligner transfers token annotations between two segmentations of
// the same text, walking both sentence lists in order.
type SentenceAligner struct {
	cfg config
}

func NewSentenceAligner(opts ...Option) *SentenceAligner {
	return &SentenceAligner{cfg: newConfig(opts)}
}

// Align returns a copy of treebank where every sentence matched by the
// annotation sentences carries their entity keys. A treebank sentence
// matches the current annotation sentence when the texts are equal, the
// current plus the next one when their concatenation is equal (both are
// consumed), or the current one minus its first character, whose first token
// is then dropped. Unmatched sentences are copied unchanged and reported.
func (a *SentenceAligner) Align(treebank, annotation []sentence.Sentence) ([]sentence.Sentence, []Mismatch) {
	out := make([]sentence.Sentence, len(treebank))
	var mismatches []Mismatch

	// carry-forward offset: annotation sentences consumed by 1:2 merges
	extra := 0

	for i, tb := range treebank {
		out[i] = tb.Clone()
		k := i + extra

		if k >= len(annotation) {
			mismatches = append(mismatches, a.mismatch(tb, "", "annotation exhausted"))
			continue
		}

		cur := annotation[k]
		tbText := tb.SurfaceText()
		curText := cur.SurfaceText()

		var tokens []sentence.Token
		switch {
		case tbText == curText:
			tokens = words(cur)

		case k+1 < len(annotation) && joins(tbText, curText, annotation[k+1].SurfaceText()):
			tokens = append(words(cur), words(annotation[k+1])...)
			extra++

		case curText != "" && tbText == dropFirstRune(curText):
			tokens = words(cur)
			if len(tokens) > 0 {
				tokens = tokens[1:]
			}

		default:
			mismatches = append(mismatches, a.mismatch(tb, curText, "text mismatch"))
			continue
		}

		idx := out[i].Words()
		if len(idx) != len(tokens) {
			mismatches = append(mismatches, a.mismatch(tb, curText, "token count mismatch"))
			continue
		}

		for j, ti := range idx {
			out[i].Tokens[ti].Misc.Union(tokens[j].Misc, a.cfg.keys...)
		}
	}

	return out, mismatches
}

func (a *SentenceAligner) mismatch(tb sentence.Sentence, annText, reason string) Mismatch {
	m := Mismatch{SentId: tb.Id, TreebankText: tb.SurfaceText(), AnnotationText: annText, Reason: reason}
	a.cfg.logger.Warn("mismatched sentences", "sent_id", m.SentId, "treebank", m.TreebankText, "annotation", m.AnnotationText, "reason", reason)
	return m
}

// joins reports whether text is a followed by b, with or without a space.
func joins(text, a, b string) bool {
	return text == a+" "+b || text == a+b
}

func dropFirstRune(s string) string {
	for i := range s {
		if i > 0 {
			return s[i:]
		}
	}
	return ""
}

func words(s sentence.Sentence) []sentence.Token {
	idx := s.Words()
	out := make([]sentence.Token, len(idx))
	for i, ti := range idx {
		out[i] = s.Tokens[ti]
	}
	return out
}
