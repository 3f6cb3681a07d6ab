package align

import (
	"errors"
	"fmt"
	"sort"

	"github.com/revelaction/entalign/assign"
	"github.com/revelaction/entalign/sentence"
	"github.com/revelaction/entalign/storage"
)

// ErrMissingSentId indicates a treebank sentence without sent_id.
var ErrMissingSentId = errors.New("align: treebank sentence without sent_id")

// Source is an annotation document: its id, the non-empty lines of its text,
// one per sentence, and the fingerprint of the text.
type Source struct {
	Id    string
	Lines []string
	Sum   string
}

// Occurrence is the position of a sentence in an annotation document.
type Occurrence struct {
	Doc string
	Ord int
}

// Unmatched is a document sentence that excluded (or delayed) its document.
// Ord is 1-based.
type Unmatched struct {
	Doc  string
	Ord  int
	Text string
}

// NonEqual is an assignment whose original texts differ.
type NonEqual struct {
	Doc            string
	Ord            int
	SentId         string
	AnnotationText string
	TreebankText   string
}

// MultiSplit is a document whose sentences belong to several splits.
type MultiSplit struct {
	Doc        string
	Splits     []string
	SentSplits []string
}

// Report collects the diagnostics of a mapping.
type Report struct {
	NoMatch    []Unmatched
	MultiMatch []Unmatched
	NonEqual   []NonEqual
	MultiSplit []MultiSplit
	Unassigned []Unmatched
}

// Result is the manifest of every split plus the diagnostics.
type Result struct {
	Manifests []storage.Manifest
	Report    Report
}

// Mapper assigns every sentence of the annotation documents to a treebank
// sentence id and every document to one split.
type Mapper struct {
	cfg config
}

func NewMapper(opts ...Option) *Mapper {
	return &Mapper{cfg: newConfig(opts)}
}

// Map matches the normalized text of the document sentences against the
// normalized treebank sentences. Sentences with one candidate are assigned
// first; a sentence without candidate excludes its document. The remaining
// occurrences are assigned per normalized text by a minimum cost assignment
// over their context in the document. Documents whose sentences fall into
// several splits are excluded.
func (m *Mapper) Map(splits []sentence.Split, sources []Source) (Result, error) {
	n := m.cfg.normalizer
	log := m.cfg.logger
	var rep Report

	// treebank index
	candidates := map[string][]string{}
	splitOf := map[string]string{}
	treebankText := map[string]string{}
	for _, sp := range splits {
		for _, s := range sp.Sentences {
			if s.Id == "" {
				return Result{}, fmt.Errorf("%w: split %s", ErrMissingSentId, sp.Name)
			}
			text := s.FormText()
			key := n.Text(text)
			candidates[key] = append(candidates[key], s.Id)
			splitOf[s.Id] = sp.Name
			treebankText[s.Id] = text
		}
	}

	// annotation index
	sorted := append([]Source(nil), sources...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Id < sorted[j].Id })

	lines := map[string][]string{}
	sums := map[string]string{}
	norms := map[string][]string{}
	occurrences := map[string][]Occurrence{}
	for _, src := range sorted {
		lines[src.Id] = src.Lines
		sums[src.Id] = src.Sum
		keys := n.Forms(src.Lines)
		norms[src.Id] = keys
		for i, k := range keys {
			occurrences[k] = append(occurrences[k], Occurrence{Doc: src.Id, Ord: i})
		}
	}

	// single candidates
	slots := map[string][]string{}
	ambiguous := map[string]bool{}
	for _, src := range sorted {
		docSlots := make([]string, len(norms[src.Id]))
		excluded := false

		for i, key := range norms[src.Id] {
			c := candidates[key]
			if len(c) == 0 {
				log.Warn("document excluded, sentence without treebank match", "doc", src.Id, "sentence", i+1, "text", key)
				rep.NoMatch = append(rep.NoMatch, Unmatched{Doc: src.Id, Ord: i + 1, Text: key})
				excluded = true
				break
			}
			if len(c) == 1 {
				docSlots[i] = c[0]
				continue
			}
			log.Info("multiple treebank matches", "doc", src.Id, "sentence", i+1)
			rep.MultiMatch = append(rep.MultiMatch, Unmatched{Doc: src.Id, Ord: i + 1, Text: key})
			ambiguous[key] = true
		}

		if !excluded {
			slots[src.Id] = docSlots
		}
	}

	// ambiguous groups, costs against one snapshot
	snapshot := make(map[string][]string, len(slots))
	for doc, s := range slots {
		snapshot[doc] = append([]string(nil), s...)
	}

	excluded := map[string]bool{}
	for _, key := range sortedKeys(ambiguous) {
		var occ []Occurrence
		for _, o := range occurrences[key] {
			if _, ok := slots[o.Doc]; ok {
				occ = append(occ, o)
			}
		}
		if len(occ) == 0 {
			continue
		}
		cands := candidates[key]

		cost, err := costMatrix(snapshot, occ, cands)
		if err != nil {
			log.Warn("ambiguous sentence left unresolved", "text", key, "err", err)
			for _, o := range occ {
				rep.Unassigned = append(rep.Unassigned, Unmatched{Doc: o.Doc, Ord: o.Ord + 1, Text: key})
				excluded[o.Doc] = true
			}
			continue
		}

		for r, c := range assign.Solve(cost) {
			o := occ[r]
			if c < 0 {
				log.Warn("document excluded, no treebank sentence left", "doc", o.Doc, "sentence", o.Ord+1)
				rep.Unassigned = append(rep.Unassigned, Unmatched{Doc: o.Doc, Ord: o.Ord + 1, Text: key})
				excluded[o.Doc] = true
				continue
			}

			id := cands[c]
			slots[o.Doc][o.Ord] = id
			log.Debug("disambiguated", "doc", o.Doc, "sentence", o.Ord+1, "sent_id", id, "cost", cost[r][c])

			annText := lines[o.Doc][o.Ord]
			if annText != treebankText[id] {
				log.Warn("aligned texts are not equal", "doc", o.Doc, "sentence", o.Ord+1, "annotation", annText, "treebank", treebankText[id])
				rep.NonEqual = append(rep.NonEqual, NonEqual{
					Doc: o.Doc, Ord: o.Ord + 1, SentId: id,
					AnnotationText: annText, TreebankText: treebankText[id],
				})
			}
		}
	}

	for doc := range excluded {
		delete(slots, doc)
	}

	// split consistency
	docSplit := map[string]string{}
	for _, doc := range sortedKeys(slots) {
		ids := slots[doc]
		if len(ids) == 0 {
			log.Warn("document excluded, no sentences", "doc", doc)
			delete(slots, doc)
			continue
		}

		seen := map[string]bool{}
		sentSplits := make([]string, len(ids))
		for i, id := range ids {
			sentSplits[i] = splitOf[id]
			seen[splitOf[id]] = true
		}

		if len(seen) > 1 {
			uniq := sortedKeys(seen)
			log.Warn("document excluded, belongs to multiple splits", "doc", doc, "splits", uniq)
			rep.MultiSplit = append(rep.MultiSplit, MultiSplit{Doc: doc, Splits: uniq, SentSplits: sentSplits})
			delete(slots, doc)
			continue
		}
		docSplit[doc] = sentSplits[0]
	}

	// manifests, written only after every document is resolved
	res := Result{Report: rep}
	for _, sp := range splits {
		man := storage.Manifest{Split: sp.Name, SentIds: map[string][]string{}, Sums: map[string]string{}}
		for _, doc := range sortedKeys(slots) {
			if docSplit[doc] != sp.Name {
				continue
			}
			man.Docs = append(man.Docs, doc)
			man.SentIds[doc] = slots[doc]
			if sums[doc] != "" {
				man.Sums[doc] = sums[doc]
			}
		}
		res.Manifests = append(res.Manifests, man)
	}

	return res, nil
}

func costMatrix(slots map[string][]string, occ []Occurrence, cands []string) ([][]int, error) {
	cost := make([][]int, len(occ))
	for i, o := range occ {
		cost[i] = make([]int, len(cands))
		for j, c := range cands {
			v, err := assign.ContextCost(slots[o.Doc], o.Ord, c)
			if err != nil {
				return nil, err
			}
			cost[i][j] = v
		}
	}
	return cost, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
