// Package render writes converted annotation documents: CoNLL-U documents
// carrying the entity annotations and JSON records of the intermediate
// stage.
package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/revelaction/entalign/conllu"
	"github.com/revelaction/entalign/entity"
	"github.com/revelaction/entalign/sentence"
)

// Document builds the CoNLL-U document of the tokenized sentences of doc.
// Tokens are numbered across the whole document; ann is indexed by that
// number. Sentences whose text is empty are left out but still consume their
// token indexes. Sentence ids count the written sentences from 0.
func Document(doc string, sentences [][]string, ann *entity.Annotations) sentence.Doc {
	d := sentence.Doc{Id: doc}

	tok := 0
	for _, words := range sentences {
		text := strings.Join(words, " ")
		if text == "" {
			tok += len(words)
			continue
		}

		s := sentence.Sentence{
			Id:     strconv.Itoa(len(d.Sentences)),
			Text:   text,
			Tokens: make([]sentence.Token, 0, len(words)),
		}
		for i, w := range words {
			t := sentence.Token{Id: strconv.Itoa(i + 1), Form: w}
			if ann != nil {
				t.Misc = ann.Misc(tok)
			}
			s.Tokens = append(s.Tokens, t)
			tok++
		}
		d.Sentences = append(d.Sentences, s)
	}

	return d
}

// CoNLL writes annotation documents in CoNLL-U format.
type CoNLL struct {
	W io.Writer
}

func NewCoNLL(w io.Writer) *CoNLL {
	return &CoNLL{W: w}
}

// Render writes the document header and the sentences of doc.
func (r *CoNLL) Render(doc string, sentences [][]string, ann *entity.Annotations) error {
	return conllu.WriteDoc(r.W, Document(doc, sentences, ann))
}
