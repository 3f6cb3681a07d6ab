package pipeline

import (
	"github.com/revelaction/entalign/span"
	"github.com/revelaction/entalign/standoff"
)

// Record is the intermediate JSON form of an annotated document: its
// tokenized text with the cleaned word spans of the markables.
type Record struct {
	DocKey    string          `json:"doc_key"`
	Sentences [][]string      `json:"sentences"`
	Tokens    []string        `json:"tokens"`
	Markables []span.Markable `json:"markables"`

	// link type -> [referring, referred] pairs
	References map[string][]standoff.Link `json:"references"`

	// markable -> cluster key
	ClusterMap map[string]string `json:"cluster_map"`

	// word spans of the members of every cluster
	Clusters [][]span.Span `json:"clusters"`
}

// Coref returns the coreference links as pairs.
func (r Record) Coref() [][2]string {
	links := r.References[standoff.Coref]
	pairs := make([][2]string, len(links))
	for i, l := range links {
		pairs[i] = l
	}
	return pairs
}
