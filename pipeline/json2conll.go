package pipeline

import (
	"io"
	"log/slog"

	"github.com/revelaction/entalign/cluster"
	"github.com/revelaction/entalign/entity"
	"github.com/revelaction/entalign/file"
	"github.com/revelaction/entalign/render"
)

// JSON2CoNLL reads a Record and writes the CoNLL-U document with the entity
// annotations in the MISC column.
type JSON2CoNLL struct {
	headOther string
	logger    *slog.Logger
}

func NewJSON2CoNLL(opts ...Option) *JSON2CoNLL {
	c := newConfig(opts)
	return &JSON2CoNLL{headOther: c.headOther, logger: c.logger}
}

func (s *JSON2CoNLL) Name() string { return JSON2CoNLLName }
func (s *JSON2CoNLL) Input() Kind  { return JSON }
func (s *JSON2CoNLL) Output() Kind { return CoNLL }

func (s *JSON2CoNLL) Run(path string, w io.Writer) error {
	var rec Record
	if err := file.ReadJSON(path, &rec); err != nil {
		return err
	}
	return s.Write(rec, w)
}

// Write renders rec as a CoNLL-U document.
func (s *JSON2CoNLL) Write(rec Record, w io.Writer) error {
	opts := []entity.Option{entity.WithLogger(s.logger)}
	if s.headOther != "" {
		opts = append(opts, entity.WithHeadOther(s.headOther))
	}

	b := entity.NewBuilder(rec.DocKey, cluster.Build(rec.Coref()), opts...)
	ann := b.Build(rec.Markables, rec.References)

	begins, ends, singles := ann.Counts()
	s.logger.Debug("entities built", "doc", rec.DocKey, "begins", begins, "ends", ends, "singles", singles)

	return render.NewCoNLL(w).Render(rec.DocKey, rec.Sentences, ann)
}
