// Package standoff reads brat standoff annotations: a .ann file of markables
// and links over the characters of a paired .txt file.
package standoff

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/revelaction/entalign/span"
)

const (
	AnnExt = ".ann"
	TxtExt = ".txt"

	// MarkablePrefix starts the id of a text-bound annotation.
	MarkablePrefix = "T"
	// EquivPrefix starts an equivalence line listing members of a cluster.
	EquivPrefix = "*"
	// NotePrefix starts an annotator note, ignored.
	NotePrefix = "#"

	// Link types
	Coref           = "Coref"
	Bridging        = "Bridging"
	SplitAntecedent = "Split_antecedent"
)

// ErrMalformedLine indicates an annotation line that cannot be parsed.
var ErrMalformedLine = errors.New("standoff: malformed annotation line")

// Link is a directed pair of markable ids.
type Link [2]string

// Annotation holds the markables in file order and the links per type.
type Annotation struct {
	Markables  []span.Markable
	References map[string][]Link
}

// Links returns the links of a type.
func (a Annotation) Links(typ string) []Link {
	return a.References[typ]
}

// Parser reads .ann data. Annotations whose id is in the invalid set are
// skipped.
type Parser struct {
	invalid map[string]bool
	logger  *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithInvalid sets the annotation ids to skip.
func WithInvalid(ids map[string]bool) Option {
	return func(p *Parser) {
		p.invalid = ids
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{logger: slog.Default()}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Parse reads annotation lines: "T1\tType start end[;start end...]\ttext"
// for markables and "R1\tType Arg1:T1 Arg2:T2" for links.
func (p *Parser) Parse(r io.Reader) (Annotation, error) {
	ann := Annotation{References: map[string][]Link{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			p.logger.Warn("annotation line ignored", "line", lineNo, "text", line)
			continue
		}

		id, def := fields[0], fields[1]
		if p.invalid[id] || strings.HasPrefix(id, NotePrefix) {
			continue
		}

		parts := strings.Fields(def)
		if len(parts) == 0 {
			return Annotation{}, fmt.Errorf("%w: line %d: empty definition", ErrMalformedLine, lineNo)
		}

		switch {
		case strings.HasPrefix(id, MarkablePrefix):
			spans, err := span.Continuous(parts[1:])
			if err != nil {
				return Annotation{}, fmt.Errorf("%w: line %d: %w", ErrMalformedLine, lineNo, err)
			}
			ann.Markables = append(ann.Markables, span.Markable{Id: id, Type: parts[0], Spans: spans})

		case strings.HasPrefix(id, EquivPrefix):
			// chain the members: the clusters are the same
			for i := 2; i < len(parts); i++ {
				ann.References[parts[0]] = append(ann.References[parts[0]], Link{parts[i-1], parts[i]})
			}

		default:
			if len(parts) != 3 {
				return Annotation{}, fmt.Errorf("%w: line %d: want type and two arguments, got %q", ErrMalformedLine, lineNo, def)
			}
			ann.References[parts[0]] = append(ann.References[parts[0]], Link{argId(parts[1]), argId(parts[2])})
		}
	}

	if err := scanner.Err(); err != nil {
		return Annotation{}, err
	}

	return ann, nil
}

// ParseFile parses the .ann file at path.
func (p *Parser) ParseFile(path string) (Annotation, error) {
	f, err := os.Open(path)
	if err != nil {
		return Annotation{}, err
	}
	defer f.Close()

	ann, err := p.Parse(f)
	if err != nil {
		return Annotation{}, fmt.Errorf("%s: %w", path, err)
	}
	return ann, nil
}

// argId strips the role of a link argument (Arg1:T3 -> T3).
func argId(arg string) string {
	if i := strings.LastIndex(arg, ":"); i >= 0 {
		return arg[i+1:]
	}
	return arg
}
