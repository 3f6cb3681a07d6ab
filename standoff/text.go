package standoff

import (
	"os"
	"path/filepath"
	"strings"
)

// Text is a .txt document split on spaces and newlines. Every newline ends a
// sentence; a blank line yields a sentence with one empty token.
type Text struct {
	Sentences [][]string
	Tokens    []string

	// CharToWord holds the word index of every rune offset of the text, plus
	// one entry for the offset just past the end.
	CharToWord []int
}

// Tokenize splits text into tokens and sentences over rune offsets.
func Tokenize(text string) Text {
	var (
		t       Text
		current strings.Builder
		sent    []string
		word    int
	)

	for _, r := range text {
		t.CharToWord = append(t.CharToWord, word)

		if r != ' ' && r != '\n' {
			current.WriteRune(r)
			continue
		}

		t.Tokens = append(t.Tokens, current.String())
		sent = append(sent, current.String())
		current.Reset()
		word++

		if r == '\n' {
			t.Sentences = append(t.Sentences, sent)
			sent = nil
		}
	}

	t.CharToWord = append(t.CharToWord, word)

	// flush a last line without newline
	if current.Len() > 0 || len(sent) > 0 {
		t.Tokens = append(t.Tokens, current.String())
		t.Sentences = append(t.Sentences, append(sent, current.String()))
	}

	return t
}

// Newlines converts CRLF and CR line ends to LF. Annotation offsets count a
// line end as one character.
func Newlines(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	return strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\r", "\n")
}

// Lines returns the non-empty lines of text, the sentences of a document.
func Lines(text string) []string {
	var lines []string
	for _, l := range strings.Split(Newlines(text), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// DocId returns the document id of a .ann or .txt path.
func DocId(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TxtPath returns the .txt file paired with a .ann path.
func TxtPath(annPath string) string {
	return strings.TrimSuffix(annPath, AnnExt) + TxtExt
}

// ReadText reads and tokenizes the .txt file at path, with LF line ends.
func ReadText(path string) (Text, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Text{}, "", err
	}
	s := Newlines(string(b))
	return Tokenize(s), s, nil
}
