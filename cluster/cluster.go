// Package cluster groups coreferent markables with a union-find and derives
// stable entity ids from the members.
package cluster

import (
	"sort"
	"strconv"
	"strings"

	"github.com/revelaction/entalign/span"
)

// Set is the partition of linked markables into clusters.
type Set struct {
	parent map[string]string
	size   map[string]int

	// root -> sorted member ids, built lazily
	members map[string][]string
}

// Build unions the two ends of every link. The result does not depend on the
// order of the links.
func Build(links [][2]string) *Set {
	s := &Set{parent: map[string]string{}, size: map[string]int{}}
	for _, l := range links {
		s.union(l[0], l[1])
	}
	return s
}

func (s *Set) find(x string) string {
	if _, ok := s.parent[x]; !ok {
		s.parent[x] = x
		s.size[x] = 1
		return x
	}
	root := x
	for s.parent[root] != root {
		root = s.parent[root]
	}
	// path compression
	for s.parent[x] != root {
		next := s.parent[x]
		s.parent[x] = root
		x = next
	}
	return root
}

func (s *Set) union(a, b string) {
	ra, rb := s.find(a), s.find(b)
	if ra == rb {
		return
	}
	if s.size[ra] < s.size[rb] {
		ra, rb = rb, ra
	}
	s.parent[rb] = ra
	s.size[ra] += s.size[rb]
	s.members = nil
}

func (s *Set) build() {
	if s.members != nil {
		return
	}
	s.members = map[string][]string{}
	for x := range s.parent {
		r := s.find(x)
		s.members[r] = append(s.members[r], x)
	}
	for _, m := range s.members {
		sortIds(m)
	}
}

// Members returns the sorted ids of the cluster of markable, or nil if the
// markable is not linked.
func (s *Set) Members(markable string) []string {
	if _, ok := s.parent[markable]; !ok {
		return nil
	}
	s.build()
	return s.members[s.find(markable)]
}

// Key returns the sorted member ids of the cluster of markable joined by "_".
func (s *Set) Key(markable string) (string, bool) {
	m := s.Members(markable)
	if m == nil {
		return "", false
	}
	return strings.Join(m, "_"), true
}

// Map returns the markable -> cluster key map.
func (s *Set) Map() map[string]string {
	out := make(map[string]string, len(s.parent))
	for x := range s.parent {
		out[x], _ = s.Key(x)
	}
	return out
}

// Clusters returns the member lists, ordered by their first member.
func (s *Set) Clusters() [][]string {
	s.build()
	out := make([][]string, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i][0], out[j][0]) })
	return out
}

// Spans returns, per cluster, the sub-spans of its members found in
// markables, sorted by start. Members missing from markables are skipped.
func (s *Set) Spans(markables []span.Markable) [][]span.Span {
	byId := make(map[string][]span.Span, len(markables))
	for _, m := range markables {
		byId[m.Id] = m.Spans
	}

	var out [][]span.Span
	for _, c := range s.Clusters() {
		spans := []span.Span{}
		for _, id := range c {
			spans = append(spans, byId[id]...)
		}
		sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
		out = append(out, spans)
	}
	return out
}

// DocKey is the lower cased document id with dashes replaced, the prefix of
// every entity id.
func DocKey(doc string) string {
	return strings.ToLower(strings.ReplaceAll(doc, "-", "_"))
}

// DerivedId returns the entity id of markable in doc:
// <doc>__<member count><sum of member numbers> for clustered markables,
// <doc>__<markable> otherwise.
func (s *Set) DerivedId(doc, markable string) string {
	members := s.Members(markable)
	if members == nil {
		return DocKey(doc) + "__" + markable
	}

	sum := 0
	for _, m := range members {
		sum += Number(m)
	}
	return DocKey(doc) + "__" + strconv.Itoa(len(members)) + strconv.Itoa(sum)
}

// Number returns the numeric suffix of an annotation id (T12 -> 12), or 0.
func Number(id string) int {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	n, err := strconv.Atoi(id[i:])
	if err != nil {
		return 0
	}
	return n
}

func sortIds(ids []string) {
	sort.Slice(ids, func(i, j int) bool { return less(ids[i], ids[j]) })
}

// less orders ids by numeric suffix, then lexically.
func less(a, b string) bool {
	na, nb := Number(a), Number(b)
	if na != nb {
		return na < nb
	}
	return a < b
}
