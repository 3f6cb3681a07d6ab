package align

import (
	"log/slog"

	"github.com/revelaction/entalign/normalize"
)

// DefaultEntityKeys are the annotation side-table keys copied onto treebank
// tokens by the SentenceAligner.
var DefaultEntityKeys = []string{"name"}

// FinalPunctuation are the sentence final forms that lose SpaceAfter on merge.
var FinalPunctuation = []string{".", "...", ":", ";", "?", "!"}

// Option configures the aligners, the Mapper and the Merger.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	normalizer *normalize.Normalizer
	keys       []string
	final      map[string]bool
}

func defaultConfig() config {
	final := map[string]bool{}
	for _, p := range FinalPunctuation {
		final[p] = true
	}
	return config{
		logger:     slog.Default(),
		normalizer: normalize.New(normalize.Norwegian),
		keys:       DefaultEntityKeys,
		final:      final,
	}
}

func newConfig(opts []Option) config {
	c := defaultConfig()
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

// WithNormalizer sets the text normalizer (default: Norwegian letters).
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(c *config) {
		if n != nil {
			c.normalizer = n
		}
	}
}

// WithEntityKeys sets the side-table keys copied by the SentenceAligner
// (default: name).
func WithEntityKeys(keys ...string) Option {
	return func(c *config) {
		if len(keys) > 0 {
			c.keys = keys
		}
	}
}
