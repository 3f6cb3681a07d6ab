package sentence

import (
	"strings"
)

// Token represents a CoNLL-U line of a sentence: a word, a multiword range
// (3-4) or an empty node (5.1).
type Token struct {
	Id     string `json:"id"`
	Form   string `json:"form"`
	Lemma  string `json:"lemma"`
	Upos   string `json:"upos"`
	Xpos   string `json:"xpos"`
	Feats  string `json:"feats"`
	Head   string `json:"head"`
	Deprel string `json:"deprel"`
	Deps   string `json:"deps"`

	// The side-table of the token (MISC column)
	Misc Misc `json:"misc"`
}

// IsWord reports whether the token is a syntactic word. Multiword ranges and
// empty nodes are not.
func (t Token) IsWord() bool {
	return !strings.ContainsAny(t.Id, "-.")
}

// Clone returns a copy of the token with its own side-table.
func (t Token) Clone() Token {
	t.Misc = t.Misc.Clone()
	return t
}

type Sentence struct {
	Id   string `json:"sent_id"`
	Text string `json:"text"`

	// Comments holds the metadata lines verbatim, including the leading "#".
	Comments []string `json:"comments,omitempty"`
	Tokens   []Token  `json:"tokens"`
}

// Words returns the indexes in Tokens of the syntactic words.
func (s Sentence) Words() []int {
	idx := make([]int, 0, len(s.Tokens))
	for i, t := range s.Tokens {
		if t.IsWord() {
			idx = append(idx, i)
		}
	}
	return idx
}

// Forms returns the forms of the syntactic words.
func (s Sentence) Forms() []string {
	forms := make([]string, 0, len(s.Tokens))
	for _, t := range s.Tokens {
		if t.IsWord() {
			forms = append(forms, t.Form)
		}
	}
	return forms
}

// FormText joins the word forms with a single space.
func (s Sentence) FormText() string {
	return strings.Join(s.Forms(), " ")
}

// SurfaceText returns the "# text" metadata, or the joined forms if the
// sentence has none.
func (s Sentence) SurfaceText() string {
	if s.Text != "" {
		return s.Text
	}
	return s.FormText()
}

func (s Sentence) Clone() Sentence {
	c := s
	c.Comments = append([]string(nil), s.Comments...)
	c.Tokens = make([]Token, len(s.Tokens))
	for i, t := range s.Tokens {
		c.Tokens[i] = t.Clone()
	}
	return c
}

// Doc is an ordered list of sentences.
type Doc struct {
	Id        string     `json:"id"`
	Sentences []Sentence `json:"sentences"`
}

// Split is a treebank partition (train, test or dev).
type Split struct {
	Name      string
	Sentences []Sentence
}
