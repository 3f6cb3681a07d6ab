package main

import (
	"fmt"

	"github.com/revelaction/entalign/align"
	"github.com/revelaction/entalign/pipeline"
	"github.com/revelaction/entalign/report"
)

func mapCommand(opts Options, ui UI) error {
	splits, err := pipeline.LoadTreebank(opts.TreebankDir)
	if err != nil {
		return err
	}

	sources, err := pipeline.LoadSources(opts.AnnDir)
	if err != nil {
		return err
	}

	res, err := align.NewMapper(alignOptions(opts)...).Map(splits, sources)
	if err != nil {
		return err
	}

	rw, err := report.New(opts.ReportDir, opts.Lang)
	if err != nil {
		return err
	}
	if err := rw.Map(res.Report); err != nil {
		return err
	}

	var pool Pool
	defer pool.Close()

	repo, err := NewManifestRepository(&pool, opts.Manifest, opts.SplitsDir)
	if err != nil {
		return err
	}

	mapped := 0
	for _, m := range res.Manifests {
		if err := repo.Write(m); err != nil {
			return fmt.Errorf("write manifest %s: %w", m.Split, err)
		}
		fmt.Fprintf(ui.Out, "%s: %d docs\n", m.Split, len(m.Docs))
		mapped += len(m.Docs)
	}

	rep := res.Report
	fmt.Fprintf(ui.Out, "mapped %d of %d docs (no match %d, multiple splits %d, unassigned %d, non equal sentences %d)\n",
		mapped, len(sources), len(rep.NoMatch), len(rep.MultiSplit), len(rep.Unassigned), len(rep.NonEqual))
	return nil
}
