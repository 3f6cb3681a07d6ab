package main

import (
	"fmt"

	"github.com/revelaction/entalign/file"
	"github.com/revelaction/entalign/pipeline"
)

func combineCommand(opts Options, ui UI) error {
	if err := file.Require(opts.MergedDir); err != nil {
		return err
	}

	for _, split := range file.Splits {
		path, err := pipeline.Combine(opts.MergedDir, opts.OutputDir, opts.Prefix, opts.Lang, split, opts.XZ)
		if err != nil {
			return err
		}
		fmt.Fprintf(ui.Out, "%s: %s\n", split, path)
	}
	return nil
}
