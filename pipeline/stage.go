// Package pipeline converts the annotated corpus through its stages:
// standoff annotations to JSON records, JSON records to CoNLL-U documents.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/revelaction/entalign/conllu"
	"github.com/revelaction/entalign/standoff"
)

// Kind is the file format a stage reads or writes.
type Kind int

const (
	Ann Kind = iota
	JSON
	CoNLL
)

// Ext returns the file extension of the kind.
func (k Kind) Ext() string {
	switch k {
	case Ann:
		return standoff.AnnExt
	case JSON:
		return ".jsonl"
	case CoNLL:
		return conllu.Ext
	}
	return ""
}

func (k Kind) String() string {
	switch k {
	case Ann:
		return "ann"
	case JSON:
		return "json"
	case CoNLL:
		return "conll"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Stage converts one input file into its output representation.
type Stage interface {
	Name() string
	Input() Kind
	Output() Kind
	Run(path string, w io.Writer) error
}

const (
	Ann2JSONName   = "ann2json"
	JSON2CoNLLName = "json2conll"
)

// ErrUnknownStage indicates a stage name missing from the registry.
var ErrUnknownStage = errors.New("unknown stage")

var registry = map[string]func(opts ...Option) Stage{
	Ann2JSONName:   func(opts ...Option) Stage { return NewAnn2JSON(opts...) },
	JSON2CoNLLName: func(opts ...Option) Stage { return NewJSON2CoNLL(opts...) },
}

// New returns the stage registered under name.
func New(name string, opts ...Option) (Stage, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q, want one of %v", ErrUnknownStage, name, Names())
	}
	return f(opts...), nil
}

// Names returns the sorted names of the registered stages.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
