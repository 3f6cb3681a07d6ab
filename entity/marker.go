package entity

import (
	"sort"
)

// Kind is the position of a marker in its sub-span.
type Kind int

const (
	Begin Kind = iota
	End
	Single
)

func (k Kind) String() string {
	switch k {
	case Begin:
		return "B"
	case End:
		return "E"
	case Single:
		return "S"
	}
	return "?"
}

// Marker is an opening, closing or single-token bracket of a sub-span.
type Marker struct {
	Kind  Kind
	Id    string
	Start int
	End   int

	// HeadOther is the etype-head-other suffix of opening brackets.
	HeadOther string
}

// Bracket renders the marker: (id--1 for B, id) for E, (id--1) for S.
func (m Marker) Bracket() string {
	switch m.Kind {
	case Begin:
		return "(" + m.Id + m.HeadOther
	case End:
		return m.Id + ")"
	}
	return "(" + m.Id + m.HeadOther + ")"
}

func (m Marker) length() int {
	return m.End - m.Start
}

// Order sorts the markers of one token so that the concatenated brackets
// nest: by start descending, then
//
//	no E:      B (longest first), S
//	no B:      S, E
//	no S:      E, B
//	otherwise: S, E, B
func Order(markers []Marker) []Marker {
	sorted := append([]Marker(nil), markers...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })

	var begins, ends, singles []Marker
	for _, m := range sorted {
		switch m.Kind {
		case Begin:
			begins = append(begins, m)
		case End:
			ends = append(ends, m)
		case Single:
			singles = append(singles, m)
		}
	}
	sort.SliceStable(begins, func(i, j int) bool { return begins[i].length() > begins[j].length() })

	out := make([]Marker, 0, len(sorted))
	switch {
	case len(ends) == 0:
		out = append(append(out, begins...), singles...)
	case len(begins) == 0:
		out = append(append(out, singles...), ends...)
	case len(singles) == 0:
		out = append(append(out, ends...), begins...)
	default:
		out = append(append(append(out, singles...), ends...), begins...)
	}
	return out
}
