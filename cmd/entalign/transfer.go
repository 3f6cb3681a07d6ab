package main

import (
	"fmt"
	"log/slog"

	"github.com/revelaction/entalign/file"
	"github.com/revelaction/entalign/pipeline"
	"github.com/revelaction/entalign/report"
)

func transferCommand(opts Options, ui UI) error {
	bar := startProgress(opts.Quiet, len(file.Splits), "align-treebank")
	mismatches, err := pipeline.Transfer(opts.TreebankDir, opts.EntityDir, opts.OutputDir,
		pipeline.WithLogger(slog.Default()),
		pipeline.WithProgress(bar.incr),
		pipeline.WithAlignOptions(alignOptions(opts)...),
	)
	bar.stop()
	if err != nil {
		return err
	}

	rw, err := report.New(opts.ReportDir, opts.Lang)
	if err != nil {
		return err
	}

	for _, split := range file.Splits {
		if err := rw.Mismatches(split, mismatches[split]); err != nil {
			return err
		}
		fmt.Fprintf(ui.Out, "%s: %s, %d mismatched sentences\n", split, pipeline.TransferName(split), len(mismatches[split]))
	}
	return nil
}
