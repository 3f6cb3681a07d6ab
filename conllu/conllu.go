// Package conllu reads and writes CoNLL-U sentences.
package conllu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/revelaction/entalign/sentence"
)

const (
	Ext = ".conllu"

	numColumns = 10

	// GlobalEntity declares the format of the Entity MISC attribute.
	GlobalEntity = "# global.Entity = eid-etype-head-other"
)

// ErrBadLine indicates a token line without ten tab separated columns.
var ErrBadLine = errors.New("conllu: bad token line")

// Parse reads the sentences of r. Metadata lines are kept verbatim; sent_id
// and text are also parsed into the sentence.
func Parse(r io.Reader) ([]sentence.Sentence, error) {
	var (
		sentences []sentence.Sentence
		cur       sentence.Sentence
		open      bool
	)

	flush := func() {
		if open {
			sentences = append(sentences, cur)
		}
		cur = sentence.Sentence{}
		open = false
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		open = true

		if strings.HasPrefix(line, "#") {
			cur.Comments = append(cur.Comments, line)
			if k, v, ok := metadata(line); ok {
				switch k {
				case "sent_id":
					cur.Id = v
				case "text":
					cur.Text = v
				}
			}
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) != numColumns {
			return nil, fmt.Errorf("%w: line %d has %d columns", ErrBadLine, lineNo, len(cols))
		}
		cur.Tokens = append(cur.Tokens, sentence.Token{
			Id:     cols[0],
			Form:   cols[1],
			Lemma:  cols[2],
			Upos:   cols[3],
			Xpos:   cols[4],
			Feats:  cols[5],
			Head:   cols[6],
			Deprel: cols[7],
			Deps:   cols[8],
			Misc:   sentence.ParseMisc(cols[9]),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	return sentences, nil
}

// ReadFile parses the CoNLL-U file at path.
func ReadFile(path string) ([]sentence.Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// metadata splits "# key = value".
func metadata(line string) (string, string, bool) {
	body := strings.TrimSpace(strings.TrimPrefix(line, "#"))
	k, v, ok := strings.Cut(body, "=")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(k), strings.TrimSpace(v), true
}

// WriteSentence writes the metadata, the token lines and the closing blank
// line of s. Sentences without comments get sent_id and text lines.
func WriteSentence(w io.Writer, s sentence.Sentence) error {
	bw := bufio.NewWriter(w)

	if len(s.Comments) > 0 {
		for _, c := range s.Comments {
			fmt.Fprintln(bw, c)
		}
	} else {
		fmt.Fprintf(bw, "# sent_id = %s\n", s.Id)
		fmt.Fprintf(bw, "# text = %s\n", s.Text)
	}

	for _, t := range s.Tokens {
		fmt.Fprintln(bw, strings.Join([]string{
			col(t.Id), col(t.Form), col(t.Lemma), col(t.Upos), col(t.Xpos),
			col(t.Feats), col(t.Head), col(t.Deprel), col(t.Deps), t.Misc.String(),
		}, "\t"))
	}
	fmt.Fprintln(bw)

	return bw.Flush()
}

// WriteDoc writes the document header followed by every sentence.
func WriteDoc(w io.Writer, d sentence.Doc) error {
	if _, err := fmt.Fprintf(w, "# newdoc id = %s\n%s\n", d.Id, GlobalEntity); err != nil {
		return err
	}
	for _, s := range d.Sentences {
		if err := WriteSentence(w, s); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes d to path.
func WriteFile(path string, d sentence.Doc) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteDoc(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func col(s string) string {
	if s == "" {
		return sentence.Empty
	}
	return s
}
