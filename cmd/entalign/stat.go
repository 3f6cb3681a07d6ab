package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/revelaction/entalign/conllu"
	"github.com/revelaction/entalign/file"
	"github.com/revelaction/entalign/pipeline"
	"github.com/revelaction/entalign/stat"
)

func statCommand(opts Options, ui UI) error {
	if len(opts.Paths) == 0 {
		return errors.New("stat: no file or directory given")
	}

	var paths []string
	for _, p := range opts.Paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("%w: %s", file.ErrSourceMissing, p)
		}
		if !info.IsDir() {
			paths = append(paths, p)
			continue
		}
		list, err := file.List(p, conllu.Ext)
		if err != nil {
			return err
		}
		paths = append(paths, list...)
	}

	hdl := stat.NewHandler()
	for _, p := range paths {
		if err := aggregate(hdl, p); err != nil {
			return err
		}
	}

	stats := hdl.Get()
	fmt.Fprintf(ui.Out, "Num docs %d, num sentences %d, num tokens %d, num tokens per sentence %d\n",
		stats.NumDocs, stats.NumSentences, stats.NumTokens, stats.TokensPerSentenceMean)
	fmt.Fprintf(ui.Out, "Num mentions %d, num entities %d, num bridges %d, num split antecedents %d\n",
		stats.NumMentions, stats.NumEntities, stats.NumBridges, stats.NumSplitAnte)
	for _, u := range stats.Unbalanced {
		fmt.Fprintf(ui.Out, "unbalanced brackets: %s\n", u)
	}

	return nil
}

func aggregate(hdl *stat.Handler, path string) error {
	r, err := pipeline.OpenCombined(path)
	if err != nil {
		return err
	}
	defer r.Close()

	sents, err := conllu.Parse(r)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	for _, d := range stat.Docs(sents) {
		hdl.Aggregate(d)
	}
	return nil
}
