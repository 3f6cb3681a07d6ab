package align

import (
	"errors"
	"fmt"
	"strings"

	"github.com/revelaction/entalign/sentence"
)

var (
	// ErrSentenceCount indicates an annotation document whose sentence count
	// differs from its manifest.
	ErrSentenceCount = errors.New("align: sentence count differs from manifest")

	// ErrUnknownSentId indicates a manifest sentence id missing from the
	// treebank split.
	ErrUnknownSentId = errors.New("align: sentence id not in treebank")
)

// documentComments are treebank metadata lines owned by the document, not
// the sentence. They are replaced by the merged document header.
var documentComments = []string{"# newdoc", "# newpar", "# global."}

// Merger builds a merged document from its annotation sentences and the
// treebank sentences its manifest assigns them to.
type Merger struct {
	cfg    config
	tokens *TokenAligner
}

func NewMerger(opts ...Option) *Merger {
	return &Merger{cfg: newConfig(opts), tokens: NewTokenAligner(opts...)}
}

// Document merges annotation sentence i onto treebank sentence sentIds[i].
// treebank is indexed by sentence id. The treebank sentences are not
// modified.
func (m *Merger) Document(doc string, sentIds []string, annotation []sentence.Sentence, treebank map[string]sentence.Sentence) (sentence.Doc, error) {
	if len(annotation) != len(sentIds) {
		return sentence.Doc{}, fmt.Errorf("%w: doc %s has %d sentences, manifest %d", ErrSentenceCount, doc, len(annotation), len(sentIds))
	}

	out := sentence.Doc{Id: doc, Sentences: make([]sentence.Sentence, 0, len(sentIds))}
	for i, id := range sentIds {
		tb, ok := treebank[id]
		if !ok {
			return sentence.Doc{}, fmt.Errorf("%w: doc %s sentence %d: %s", ErrUnknownSentId, doc, i+1, id)
		}

		merged, err := m.tokens.Merge(annotation[i], tb)
		if err != nil {
			return sentence.Doc{}, fmt.Errorf("doc %s sentence %d (%s): %w", doc, i+1, id, err)
		}
		merged.Comments = sentenceComments(merged.Comments)
		out.Sentences = append(out.Sentences, merged)
	}

	m.cfg.logger.Debug("document merged", "doc", doc, "sentences", len(out.Sentences))
	return out, nil
}

func sentenceComments(comments []string) []string {
	out := comments[:0:0]
	for _, c := range comments {
		if hasAnyPrefix(c, documentComments) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
