// Package stat summarizes merged documents and checks that their entity
// brackets nest.
package stat

import (
	"fmt"
	"strings"

	"github.com/revelaction/entalign/entity"
	"github.com/revelaction/entalign/sentence"
)

const newDoc = "# newdoc id ="

type Handler struct {
	stats    Stats
	entities map[string]bool
}

type Stats struct {
	NumDocs               int
	NumSentences          int
	NumTokens             int
	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int

	NumMentions  int
	NumEntities  int
	NumBridges   int
	NumSplitAnte int

	// Unbalanced lists the documents whose brackets do not nest, with the
	// first offending sentence.
	Unbalanced []string
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{TokensPerSentenceDis: map[int]int{}}
	return &Handler{
		stats:    stats,
		entities: map[string]bool{},
	}
}

// Aggregate adds the counts of doc.
func (h *Handler) Aggregate(doc sentence.Doc) {
	h.stats.NumDocs++
	h.stats.NumSentences += len(doc.Sentences)

	var open []string
	balanced := true
	for _, s := range doc.Sentences {
		words := s.Words()
		h.stats.NumTokens += len(words)
		h.stats.TokensPerSentenceDis[len(words)]++

		for _, i := range words {
			misc := s.Tokens[i].Misc
			if v, ok := misc.Get(entity.KeyBridge); ok {
				h.stats.NumBridges += len(v)
			}
			if v, ok := misc.Get(entity.KeySplitAnte); ok {
				h.stats.NumSplitAnte += len(v)
			}

			for _, b := range Brackets(misc.Value(sentence.KeyEntity)) {
				if b.Open {
					h.stats.NumMentions++
					h.entities[b.Id] = true
				}
				switch {
				case b.Open && !b.Close:
					open = append(open, b.Id)
				case b.Close && !b.Open:
					if len(open) == 0 || open[len(open)-1] != b.Id {
						if balanced {
							h.stats.Unbalanced = append(h.stats.Unbalanced, fmt.Sprintf("%s:%s", doc.Id, s.Id))
						}
						balanced = false
						continue
					}
					open = open[:len(open)-1]
				}
			}
		}
	}

	if balanced && len(open) > 0 {
		h.stats.Unbalanced = append(h.stats.Unbalanced, doc.Id+":end")
	}

	h.stats.NumEntities = len(h.entities)
	if h.stats.NumSentences > 0 {
		h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences
	}
}

// Bracket is one opening, closing or single entity bracket.
type Bracket struct {
	Id    string
	Open  bool
	Close bool
}

// Brackets parses an Entity value such as "(e1--1(e2--1)e3)". Ids are the
// entity ids without the type, head and other fields.
func Brackets(v string) []Bracket {
	var out []Bracket
	for len(v) > 0 {
		var b Bracket
		if v[0] == '(' {
			b.Open = true
			v = v[1:]
		}

		end := strings.IndexAny(v, "()")
		if end < 0 {
			end = len(v)
		}
		name := v[:end]
		v = v[end:]
		if len(v) > 0 && v[0] == ')' {
			b.Close = true
			v = v[1:]
		}

		b.Id, _, _ = strings.Cut(name, "-")
		if b.Id == "" && !b.Open && !b.Close {
			break
		}
		out = append(out, b)
	}
	return out
}

// Docs splits the sentences of a combined file into documents at every
// "# newdoc id" comment.
func Docs(sents []sentence.Sentence) []sentence.Doc {
	var docs []sentence.Doc
	for _, s := range sents {
		if id, ok := docId(s.Comments); ok || len(docs) == 0 {
			docs = append(docs, sentence.Doc{Id: id})
		}
		d := &docs[len(docs)-1]
		d.Sentences = append(d.Sentences, s)
	}
	return docs
}

func docId(comments []string) (string, bool) {
	for _, c := range comments {
		if strings.HasPrefix(c, newDoc) {
			return strings.TrimSpace(strings.TrimPrefix(c, newDoc)), true
		}
	}
	return "", false
}
