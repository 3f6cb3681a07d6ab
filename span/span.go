// Package span converts standoff character spans into word spans and cleans
// them of trailing punctuation.
package span

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrBadBoundary indicates a boundary token that is not an offset.
	ErrBadBoundary = errors.New("span: bad boundary")

	// ErrOutOfRange indicates a character offset outside the text.
	ErrOutOfRange = errors.New("span: offset out of range")
)

// Span is an inclusive [Start, End] pair of character or word offsets.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d]", s.Start, s.End)
}

// Markable is an annotated mention, possibly discontinuous.
type Markable struct {
	Id    string `json:"id"`
	Type  string `json:"type,omitempty"`
	Spans []Span `json:"spans"`
}

// Key identifies the set of sub-span coordinates of the markable.
func (m Markable) Key() string {
	var b strings.Builder
	for _, s := range m.Spans {
		b.WriteString(s.String())
	}
	return b.String()
}

// Continuous converts the boundary tokens of a brat span definition
// ("0", "5;7", "10") into sub-spans sorted by start. A token "e;s" closes the
// current sub-span at e and opens the next one at s+1.
func Continuous(bounds []string) ([]Span, error) {
	if len(bounds) < 2 {
		return nil, fmt.Errorf("%w: need start and end, got %q", ErrBadBoundary, bounds)
	}

	start, err := strconv.Atoi(bounds[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadBoundary, bounds[0])
	}

	var spans []Span
	for _, b := range bounds[1:] {
		left, right, disc := strings.Cut(b, ";")

		end, err := strconv.Atoi(left)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadBoundary, b)
		}
		spans = append(spans, Span{Start: start, End: end})

		if !disc {
			start = end
			continue
		}

		next, err := strconv.Atoi(right)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadBoundary, b)
		}
		// skip the separator of the discontinuity
		start = next + 1
	}

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans, nil
}

// DefaultPunctuation are the tokens stripped from the end of a span.
var DefaultPunctuation = []string{"|", ".", "...", ":", ";", "!", "?"}

// Correction records a sub-span whose end was moved off a punctuation token.
type Correction struct {
	Markable string
	Span     Span
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPunctuation replaces the set of trailing tokens to strip.
func WithPunctuation(p []string) Option {
	return func(r *Resolver) {
		r.punct = toSet(p)
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// Resolver translates character spans into word spans and cleans them.
type Resolver struct {
	punct  map[string]bool
	logger *slog.Logger
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		punct:  toSet(DefaultPunctuation),
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// ToWords maps character sub-spans to word sub-spans through charToWord,
// which holds the word index of every character offset.
func (r *Resolver) ToWords(spans []Span, charToWord []int) ([]Span, error) {
	words := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Start < 0 || s.Start >= len(charToWord) || s.End < 0 || s.End >= len(charToWord) {
			return nil, fmt.Errorf("%w: %s, text has %d offsets", ErrOutOfRange, s, len(charToWord))
		}
		words = append(words, Span{Start: charToWord[s.Start], End: charToWord[s.End]})
	}
	return words, nil
}

// Markables maps every markable to word spans.
func (r *Resolver) Markables(ms []Markable, charToWord []int) ([]Markable, error) {
	out := make([]Markable, 0, len(ms))
	for _, m := range ms {
		words, err := r.ToWords(m.Spans, charToWord)
		if err != nil {
			return nil, fmt.Errorf("markable %s: %w", m.Id, err)
		}
		out = append(out, Markable{Id: m.Id, Type: m.Type, Spans: words})
	}
	return out, nil
}

// Clean moves the end of every sub-span ending on a punctuation token one
// word back. Sub-spans whose end falls before their start are dropped, and
// so are the markables left without sub-spans.
func (r *Resolver) Clean(tokens []string, ms []Markable) ([]Markable, []Correction) {
	var corrections []Correction
	out := make([]Markable, 0, len(ms))

	for _, m := range ms {
		kept := make([]Span, 0, len(m.Spans))
		for _, s := range m.Spans {
			if s.End >= 0 && s.End < len(tokens) && r.punct[tokens[s.End]] {
				corrections = append(corrections, Correction{Markable: m.Id, Span: s})
				s.End--
			}
			if s.End < s.Start {
				continue
			}
			kept = append(kept, s)
		}

		if len(kept) == 0 {
			r.logger.Debug("markable dropped after span cleanup", "markable", m.Id, "spans", m.Spans)
			continue
		}
		out = append(out, Markable{Id: m.Id, Type: m.Type, Spans: kept})
	}

	return out, corrections
}

func toSet(list []string) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, l := range list {
		set[l] = true
	}
	return set
}
