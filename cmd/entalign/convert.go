package main

import (
	"fmt"
	"log/slog"

	"github.com/revelaction/entalign/pipeline"
	"github.com/revelaction/entalign/report"
	"github.com/revelaction/entalign/standoff"
)

func convertCommand(opts Options, ui UI) error {
	inv, err := standoff.LoadInvalid(opts.InvalidFile)
	if err != nil {
		return err
	}

	common := []pipeline.Option{
		pipeline.WithLogger(slog.Default()),
		pipeline.WithInvalid(inv),
		pipeline.WithHeadOther(opts.HeadOther),
	}

	var stages []pipeline.Stage
	switch opts.Stage {
	case stageAll, "":
		stages = []pipeline.Stage{pipeline.NewAnn2JSON(common...), pipeline.NewJSON2CoNLL(common...)}
	default:
		st, err := pipeline.New(opts.Stage, common...)
		if err != nil {
			return err
		}
		stages = []pipeline.Stage{st}
	}

	dirs := map[pipeline.Kind]string{
		pipeline.Ann:   opts.AnnDir,
		pipeline.JSON:  opts.JSONDir,
		pipeline.CoNLL: opts.CoNLLDir,
	}

	for _, st := range stages {
		src, dst := dirs[st.Input()], dirs[st.Output()]

		total, err := pipeline.Count(src, st)
		if err != nil {
			return err
		}

		bar := startProgress(opts.Quiet, total, st.Name())
		n, err := pipeline.Convert(src, dst, st, append(common, pipeline.WithProgress(bar.incr))...)
		bar.stop()
		if err != nil {
			return err
		}
		fmt.Fprintf(ui.Out, "%s: converted %d files from %s to %s\n", st.Name(), n, src, dst)

		if a, ok := st.(*pipeline.Ann2JSON); ok {
			rw, err := report.New(opts.ReportDir, opts.Lang)
			if err != nil {
				return err
			}
			if err := rw.Corrections(a.Corrections()); err != nil {
				return err
			}
		}
	}

	return nil
}
