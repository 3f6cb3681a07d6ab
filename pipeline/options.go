package pipeline

import (
	"log/slog"

	"github.com/revelaction/entalign/align"
	"github.com/revelaction/entalign/span"
	"github.com/revelaction/entalign/standoff"
)

// Option configures the stages and the conversion driver.
type Option func(*config)

type config struct {
	logger      *slog.Logger
	invalid     standoff.Invalid
	punctuation []string
	headOther   string
	progress    func(path string)
	align       []align.Option
}

func newConfig(opts []Option) config {
	c := config{
		logger:      slog.Default(),
		invalid:     standoff.Invalid{},
		punctuation: span.DefaultPunctuation,
		progress:    func(string) {},
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithInvalid sets the annotation ids skipped per document.
func WithInvalid(inv standoff.Invalid) Option {
	return func(c *config) {
		if inv != nil {
			c.invalid = inv
		}
	}
}

// WithPunctuation sets the tokens removed from the end of markables.
func WithPunctuation(p []string) Option {
	return func(c *config) {
		if len(p) > 0 {
			c.punctuation = p
		}
	}
}

// WithHeadOther sets the suffix of opening entity brackets.
func WithHeadOther(s string) Option {
	return func(c *config) {
		c.headOther = s
	}
}

// WithProgress sets a function called after every converted file.
func WithProgress(f func(path string)) Option {
	return func(c *config) {
		if f != nil {
			c.progress = f
		}
	}
}

// WithAlignOptions sets the options of the aligners used by the merge and
// the treebank transfer.
func WithAlignOptions(opts ...align.Option) Option {
	return func(c *config) {
		c.align = append(c.align, opts...)
	}
}
