package pipeline

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/revelaction/entalign/cluster"
	"github.com/revelaction/entalign/render"
	"github.com/revelaction/entalign/span"
	"github.com/revelaction/entalign/standoff"
)

// Correction is a span correction of a document.
type Correction struct {
	Doc string
	span.Correction
}

// Ann2JSON reads a .ann file and its paired .txt file and writes the
// document Record.
type Ann2JSON struct {
	invalid  standoff.Invalid
	resolver *span.Resolver
	logger   *slog.Logger

	corrections []Correction
}

func NewAnn2JSON(opts ...Option) *Ann2JSON {
	c := newConfig(opts)
	return &Ann2JSON{
		invalid:  c.invalid,
		resolver: span.NewResolver(span.WithPunctuation(c.punctuation), span.WithLogger(c.logger)),
		logger:   c.logger,
	}
}

func (s *Ann2JSON) Name() string { return Ann2JSONName }
func (s *Ann2JSON) Input() Kind  { return Ann }
func (s *Ann2JSON) Output() Kind { return JSON }

// Record builds the Record of the .ann file at path.
func (s *Ann2JSON) Record(path string) (Record, error) {
	doc := standoff.DocId(path)

	text, _, err := standoff.ReadText(standoff.TxtPath(path))
	if err != nil {
		return Record{}, err
	}

	parser := standoff.NewParser(standoff.WithInvalid(s.invalid.For(doc)), standoff.WithLogger(s.logger))
	ann, err := parser.ParseFile(path)
	if err != nil {
		return Record{}, err
	}

	words, err := s.resolver.Markables(ann.Markables, text.CharToWord)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", path, err)
	}

	markables, corrections := s.resolver.Clean(text.Tokens, words)
	for _, c := range corrections {
		s.corrections = append(s.corrections, Correction{Doc: doc, Correction: c})
	}

	rec := Record{
		DocKey:     doc,
		Sentences:  text.Sentences,
		Tokens:     text.Tokens,
		Markables:  markables,
		References: ann.References,
	}

	clusters := cluster.Build(rec.Coref())
	rec.ClusterMap = clusters.Map()
	rec.Clusters = clusters.Spans(markables)

	s.logger.Debug("document converted", "doc", doc, "markables", len(markables), "clusters", len(rec.Clusters))
	return rec, nil
}

func (s *Ann2JSON) Run(path string, w io.Writer) error {
	rec, err := s.Record(path)
	if err != nil {
		return err
	}
	return render.NewJSONRenderer(w).Render(rec)
}

// Corrections returns the span corrections of the documents converted so far.
func (s *Ann2JSON) Corrections() []Correction {
	return s.corrections
}
