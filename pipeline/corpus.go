package pipeline

import (
	"os"

	"github.com/revelaction/entalign/align"
	"github.com/revelaction/entalign/conllu"
	"github.com/revelaction/entalign/file"
	"github.com/revelaction/entalign/sentence"
	"github.com/revelaction/entalign/standoff"
	"github.com/revelaction/entalign/storage"
)

// LoadTreebank reads the train, test and dev files of dir, in that order.
func LoadTreebank(dir string) ([]sentence.Split, error) {
	files, err := file.SplitFiles(dir, conllu.Ext)
	if err != nil {
		return nil, err
	}

	splits := make([]sentence.Split, 0, len(file.Splits))
	for _, name := range file.Splits {
		sents, err := conllu.ReadFile(files[name])
		if err != nil {
			return nil, err
		}
		splits = append(splits, sentence.Split{Name: name, Sentences: sents})
	}
	return splits, nil
}

// LoadSources reads the .txt files of the annotated documents of dir.
func LoadSources(dir string) ([]align.Source, error) {
	paths, err := file.List(dir, standoff.TxtExt)
	if err != nil {
		return nil, err
	}

	sources := make([]align.Source, 0, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		sources = append(sources, align.Source{
			Id:    standoff.DocId(p),
			Lines: standoff.Lines(string(b)),
			Sum:   storage.Fingerprint(b),
		})
	}
	return sources, nil
}

// Index maps the sentence ids of every split to their sentence.
func Index(splits []sentence.Split) map[string]sentence.Sentence {
	idx := map[string]sentence.Sentence{}
	for _, sp := range splits {
		for _, s := range sp.Sentences {
			idx[s.Id] = s
		}
	}
	return idx
}
