package align

import (
	"errors"
	"fmt"
	"strings"

	"github.com/revelaction/entalign/normalize"
	"github.com/revelaction/entalign/sentence"
)

// ErrUnalignable indicates token sequences the greedy walk cannot align.
var ErrUnalignable = errors.New("align: unalignable tokens")

// AlignTokens maps every annotation token to the index of the treebank
// token it merges into. Both sequences hold normalized forms of the same
// text. The walk advances both sides on equal tokens, skips empty treebank
// tokens, consumes a treebank token that prefixes the annotation token, and
// aliases an empty annotation token to the previous treebank token.
// Annotation tokens left when the treebank side is exhausted alias to the
// last treebank token.
func AlignTokens(n *normalize.Normalizer, annotation, treebank []string) ([]int, error) {
	ann := append([]string(nil), annotation...)
	idx := make([]int, len(ann))

	i, j := 0, 0
	for i < len(ann) && j < len(treebank) {
		switch {
		case ann[i] == treebank[j]:
			idx[i] = j
			i++
			j++
		case treebank[j] == "":
			j++
		case ann[i] == "":
			idx[i] = max(j-1, 0)
			i++
		case strings.HasPrefix(ann[i], treebank[j]):
			ann[i] = n.Text(ann[i][len(treebank[j]):])
			j++
		default:
			return nil, fmt.Errorf("%w: %q against %q", ErrUnalignable, annotation, treebank)
		}
	}

	if i < len(ann) && len(treebank) == 0 {
		return nil, fmt.Errorf("%w: %d annotation tokens, no treebank tokens", ErrUnalignable, len(ann))
	}
	for ; i < len(ann); i++ {
		idx[i] = max(j-1, 0)
	}

	return idx, nil
}

// TokenAligner merges an annotation sentence onto a treebank sentence whose
// tokenization may differ.
type TokenAligner struct {
	cfg config
}

func NewTokenAligner(opts ...Option) *TokenAligner {
	return &TokenAligner{cfg: newConfig(opts)}
}

// Merge returns a copy of treebank whose words carry the side-table entries
// of the annotation words aligned to them. Annotation entries win on key
// collision; entries of several annotation words landing on one treebank
// word are accumulated. A sentence final punctuation word loses SpaceAfter.
func (t *TokenAligner) Merge(annotation, treebank sentence.Sentence) (sentence.Sentence, error) {
	n := t.cfg.normalizer

	out := treebank.Clone()
	tbIdx := out.Words()
	annWords := words(annotation)

	annForms := make([]string, len(annWords))
	for i, w := range annWords {
		annForms[i] = n.Text(w.Form)
	}

	idx, err := AlignTokens(n, annForms, n.Forms(treebank.Forms()))
	if err != nil {
		return sentence.Sentence{}, err
	}

	acc := make(map[int]*sentence.Misc)
	for i, w := range annWords {
		m, ok := acc[idx[i]]
		if !ok {
			m = &sentence.Misc{}
			acc[idx[i]] = m
		}
		m.Merge(w.Misc)
	}

	for j, m := range acc {
		out.Tokens[tbIdx[j]].Misc.Union(*m)
	}

	if len(tbIdx) > 0 {
		last := &out.Tokens[tbIdx[len(tbIdx)-1]]
		if t.cfg.final[last.Form] {
			last.Misc.Delete("SpaceAfter")
		}
	}

	return out, nil
}
