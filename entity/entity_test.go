package entity

import (
	"strings"
	"testing"

	"github.com/revelaction/entalign/cluster"
	"github.com/revelaction/entalign/span"
	"github.com/revelaction/entalign/standoff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sp(start, end int) span.Span {
	return span.Span{Start: start, End: end}
}

func TestBrackets(t *testing.T) {
	assert.Equal(t, "(d__T1--1", Marker{Kind: Begin, Id: "d__T1", HeadOther: "--1"}.Bracket())
	assert.Equal(t, "d__T1)", Marker{Kind: End, Id: "d__T1", HeadOther: "--1"}.Bracket())
	assert.Equal(t, "(d__T1--1)", Marker{Kind: Single, Id: "d__T1", HeadOther: "--1"}.Bracket())
	assert.Equal(t, "(7)", Marker{Kind: Single, Id: "7"}.Bracket())
}

func kinds(ms []Marker) string {
	var b strings.Builder
	for _, m := range ms {
		b.WriteString(m.Kind.String() + m.Id + " ")
	}
	return strings.TrimSpace(b.String())
}

func TestOrder(t *testing.T) {
	tests := []struct {
		name    string
		markers []Marker
		want    string
	}{
		{
			name: "begins longest first then singles",
			markers: []Marker{
				{Kind: Single, Id: "s", Start: 3, End: 3},
				{Kind: Begin, Id: "short", Start: 3, End: 4},
				{Kind: Begin, Id: "long", Start: 3, End: 9},
			},
			want: "Blong Bshort Ss",
		},
		{
			name: "singles then ends",
			markers: []Marker{
				{Kind: End, Id: "outer", Start: 0, End: 5},
				{Kind: End, Id: "inner", Start: 2, End: 5},
				{Kind: Single, Id: "s", Start: 5, End: 5},
			},
			want: "Ss Einner Eouter",
		},
		{
			name: "ends then begins",
			markers: []Marker{
				{Kind: Begin, Id: "next", Start: 5, End: 8},
				{Kind: End, Id: "prev", Start: 1, End: 5},
			},
			want: "Eprev Bnext",
		},
		{
			name: "all kinds",
			markers: []Marker{
				{Kind: Begin, Id: "b", Start: 5, End: 8},
				{Kind: End, Id: "e", Start: 1, End: 5},
				{Kind: Single, Id: "s", Start: 5, End: 5},
			},
			want: "Ss Ee Bb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kinds(Order(tt.markers)))
		})
	}
}

func TestBuildNested(t *testing.T) {
	// "Ola Nordmann sin bil"
	markables := []span.Markable{
		{Id: "T1", Spans: []span.Span{sp(0, 3)}},
		{Id: "T2", Spans: []span.Span{sp(0, 1)}},
		{Id: "T3", Spans: []span.Span{sp(3, 3)}},
	}
	a := NewBuilder("Doc-1", cluster.Build(nil)).Build(markables, nil)

	assert.Equal(t, "(doc_1__T1--1(doc_1__T2--1", a.Entity(0))
	assert.Equal(t, "doc_1__T2)", a.Entity(1))
	assert.Equal(t, "", a.Entity(2))
	assert.Equal(t, "(doc_1__T3--1)doc_1__T1)", a.Entity(3))
}

func TestBuildClusterAndParts(t *testing.T) {
	markables := []span.Markable{
		{Id: "T1", Spans: []span.Span{sp(0, 0)}},
		{Id: "T2", Spans: []span.Span{sp(4, 5), sp(8, 8)}},
	}
	refs := map[string][]standoff.Link{standoff.Coref: {{"T2", "T1"}}}
	clusters := cluster.Build([][2]string{{"T2", "T1"}})

	a := NewBuilder("d", clusters).Build(markables, refs)

	assert.Equal(t, "(d__23--1)", a.Entity(0))
	assert.Equal(t, "(d__23[1/2]--1", a.Entity(4))
	assert.Equal(t, "d__23[1/2])", a.Entity(5))
	assert.Equal(t, "(d__23[2/2]--1)", a.Entity(8))
	assert.Empty(t, a.Entity(6))
}

func TestBuildDuplicateSpans(t *testing.T) {
	markables := []span.Markable{
		{Id: "T1", Spans: []span.Span{sp(2, 3)}},
		{Id: "T5", Spans: []span.Span{sp(2, 3)}},
	}
	a := NewBuilder("d", cluster.Build(nil)).Build(markables, nil)

	assert.Equal(t, "(d__T1--1", a.Entity(2))
	b, e, s := a.Counts()
	assert.Equal(t, 1, b)
	assert.Equal(t, 1, e)
	assert.Equal(t, 0, s)
}

func TestBuildLinks(t *testing.T) {
	markables := []span.Markable{
		{Id: "T1", Spans: []span.Span{sp(0, 1)}},
		{Id: "T2", Spans: []span.Span{sp(3, 3)}},
		{Id: "T3", Spans: []span.Span{sp(5, 6), sp(8, 8)}},
		{Id: "T4", Spans: []span.Span{sp(9, 9)}},
	}
	refs := map[string][]standoff.Link{
		standoff.Coref:           {{"T4", "T2"}},
		standoff.Bridging:        {{"T3", "T1"}, {"T4", "T2"}, {"T9", "T1"}},
		standoff.SplitAntecedent: {{"T3", "T1"}, {"T3", "T2"}, {"T2", "T1"}},
	}
	clusters := cluster.Build([][2]string{{"T4", "T2"}})

	a := NewBuilder("d", clusters).Build(markables, refs)

	// anchored at the first sub-span of the referring markable
	m := a.Misc(5)
	assert.Equal(t, "Bridge=d__T1<d__T3:default|SplitAnte=d__T1<d__T3,d__26<d__T3|Entity=(d__T3[1/2]--1", m.String())

	// single split antecedent suppressed, bridging within one entity skipped
	assert.Equal(t, "Entity=(d__26--1)", a.Misc(3).String())
	assert.Equal(t, "_", a.Misc(7).String())
}

func TestBracketBalance(t *testing.T) {
	markables := []span.Markable{
		{Id: "T1", Spans: []span.Span{sp(0, 10)}},
		{Id: "T2", Spans: []span.Span{sp(0, 2), sp(4, 6)}},
		{Id: "T3", Spans: []span.Span{sp(2, 2)}},
		{Id: "T4", Spans: []span.Span{sp(6, 10)}},
		{Id: "T5", Spans: []span.Span{sp(6, 10)}},
		{Id: "T6", Spans: []span.Span{sp(10, 10)}},
	}
	a := NewBuilder("d", cluster.Build(nil)).Build(markables, nil)

	b, e, _ := a.Counts()
	assert.Equal(t, b, e)

	// brackets nest when read left to right
	var stack []string
	for tok := 0; tok <= 10; tok++ {
		for _, m := range a.Markers(tok) {
			switch m.Kind {
			case Begin:
				stack = append(stack, m.Id)
			case End:
				require.NotEmpty(t, stack)
				assert.Equal(t, stack[len(stack)-1], m.Id, "token %d", tok)
				stack = stack[:len(stack)-1]
			}
		}
	}
	assert.Empty(t, stack)
}
