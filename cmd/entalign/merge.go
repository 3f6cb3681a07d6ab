package main

import (
	"fmt"
	"log/slog"

	"github.com/revelaction/entalign/pipeline"
	"github.com/revelaction/entalign/report"
)

func mergeCommand(opts Options, ui UI) error {
	splits, err := pipeline.LoadTreebank(opts.TreebankDir)
	if err != nil {
		return err
	}

	var pool Pool
	defer pool.Close()

	repo, err := NewManifestRepository(&pool, opts.Manifest, opts.SplitsDir)
	if err != nil {
		return err
	}

	total := 0
	names, err := repo.Splits()
	if err != nil {
		return err
	}
	for _, name := range names {
		m, err := repo.Read(name)
		if err != nil {
			return err
		}
		total += len(m.Docs)
	}

	annDir := opts.AnnDir
	if opts.NoCheck {
		annDir = ""
	}

	bar := startProgress(opts.Quiet, total, "merge")
	res, err := pipeline.Merge(repo, splits, opts.CoNLLDir, annDir, opts.MergedDir,
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
	if err := rw.Merge(res.Failures); err != nil {
		return err
	}

	for _, name := range names {
		fmt.Fprintf(ui.Out, "%s: merged %d docs\n", name, res.Written[name])
	}
	if len(res.Failures) > 0 {
		fmt.Fprintf(ui.Out, "%d docs not merged, see %s\n", len(res.Failures), rw.Path(report.Merge))
	}
	return nil
}
