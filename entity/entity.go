// Package entity builds the per-token Entity, Bridge and SplitAnte
// annotations of a document from its cleaned markables and links.
package entity

import (
	"fmt"
	"log/slog"

	"github.com/revelaction/entalign/cluster"
	"github.com/revelaction/entalign/sentence"
	"github.com/revelaction/entalign/span"
	"github.com/revelaction/entalign/standoff"
)

const (
	KeyBridge    = "Bridge"
	KeySplitAnte = "SplitAnte"

	// DefaultHeadOther completes the eid-etype-head-other entity format.
	DefaultHeadOther = "--1"

	bridgeType = "default"
)

// feature maps a link type to the MISC key it is rendered under.
type feature struct {
	link string
	key  string
	typ  string
}

var features = []feature{
	{link: standoff.Bridging, key: KeyBridge, typ: bridgeType},
	{link: standoff.SplitAntecedent, key: KeySplitAnte},
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithHeadOther sets the suffix of opening brackets (default "--1").
func WithHeadOther(s string) Option {
	return func(b *Builder) {
		b.headOther = s
	}
}

// Builder computes the annotations of one document.
type Builder struct {
	doc       string
	clusters  *cluster.Set
	headOther string
	logger    *slog.Logger
}

func NewBuilder(doc string, clusters *cluster.Set, opts ...Option) *Builder {
	b := &Builder{
		doc:       doc,
		clusters:  clusters,
		headOther: DefaultHeadOther,
		logger:    slog.Default(),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Annotations are the markers and link values of a document, per token
// index.
type Annotations struct {
	markers map[int][]Marker
	links   map[int]*sentence.Misc
}

// Build places the markers of every markable and the link values of the
// bridging and split antecedent references. Markables sharing the exact sub-
// spans of an earlier one are skipped.
func (b *Builder) Build(markables []span.Markable, references map[string][]standoff.Link) *Annotations {
	a := &Annotations{markers: map[int][]Marker{}, links: map[int]*sentence.Misc{}}

	// anchor of the links: first token of the referring markable
	first := map[string]int{}
	for _, m := range markables {
		if len(m.Spans) > 0 {
			first[m.Id] = m.Spans[0].Start
		}
	}

	seen := map[string]bool{}
	for _, m := range markables {
		if len(m.Spans) == 0 {
			continue
		}
		id := b.clusters.DerivedId(b.doc, m.Id)

		key := m.Key()
		if seen[key] {
			b.logger.Warn("skipping duplicate mention", "doc", b.doc, "markable", m.Id, "entity", id, "spans", key)
			continue
		}
		seen[key] = true

		for i, s := range m.Spans {
			mid := id
			if len(m.Spans) > 1 {
				mid = fmt.Sprintf("%s[%d/%d]", id, i+1, len(m.Spans))
			}

			if s.Start == s.End {
				a.add(s.Start, Marker{Kind: Single, Id: mid, Start: s.Start, End: s.End, HeadOther: b.headOther})
				continue
			}
			a.add(s.Start, Marker{Kind: Begin, Id: mid, Start: s.Start, End: s.End, HeadOther: b.headOther})
			a.add(s.End, Marker{Kind: End, Id: mid, Start: s.Start, End: s.End, HeadOther: b.headOther})
		}
	}

	for _, f := range features {
		for _, l := range references[f.link] {
			from, to := l[0], l[1]
			pos, ok := first[from]
			if !ok {
				b.logger.Warn("link skipped, referring markable dropped", "doc", b.doc, "type", f.link, "from", from, "to", to)
				continue
			}

			src := b.clusters.DerivedId(b.doc, from)
			dst := b.clusters.DerivedId(b.doc, to)
			if src == dst {
				continue
			}

			val := dst + "<" + src
			if f.typ != "" {
				val += ":" + f.typ
			}
			a.link(pos).Append(f.key, val)
		}
	}

	return a
}

func (a *Annotations) add(tok int, m Marker) {
	a.markers[tok] = append(a.markers[tok], m)
}

func (a *Annotations) link(tok int) *sentence.Misc {
	m, ok := a.links[tok]
	if !ok {
		m = &sentence.Misc{}
		a.links[tok] = m
	}
	return m
}

// Markers returns the ordered markers of token tok.
func (a *Annotations) Markers(tok int) []Marker {
	return Order(a.markers[tok])
}

// Entity returns the concatenated brackets of token tok.
func (a *Annotations) Entity(tok int) string {
	var s string
	for _, m := range a.Markers(tok) {
		s += m.Bracket()
	}
	return s
}

// Misc returns the side-table of token tok: the link values, with split
// antecedents of fewer than two values suppressed, then the Entity brackets.
func (a *Annotations) Misc(tok int) sentence.Misc {
	var out sentence.Misc
	if l, ok := a.links[tok]; ok {
		for _, k := range l.Keys() {
			vals, _ := l.Get(k)
			if k == KeySplitAnte && len(vals) < 2 {
				continue
			}
			out.Set(k, vals...)
		}
	}

	if e := a.Entity(tok); e != "" {
		out.Set(sentence.KeyEntity, e)
	}
	return out
}

// Counts returns the number of B, E and S markers.
func (a *Annotations) Counts() (begins, ends, singles int) {
	for _, ms := range a.markers {
		for _, m := range ms {
			switch m.Kind {
			case Begin:
				begins++
			case End:
				ends++
			case Single:
				singles++
			}
		}
	}
	return begins, ends, singles
}
