package pipeline

import (
	"fmt"
	"os"

	"github.com/revelaction/entalign/file"
)

// Convert runs stage over every input file of src, in name order, writing one
// output file per input into dst. A missing src is an error naming it.
func Convert(src, dst string, stage Stage, opts ...Option) (int, error) {
	c := newConfig(opts)

	paths, err := file.List(src, stage.Input().Ext())
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return 0, err
	}

	n := 0
	for _, p := range paths {
		out := file.Replace(dst, p, stage.Output().Ext())
		if err := convertFile(stage, p, out); err != nil {
			return n, fmt.Errorf("%s %s: %w", stage.Name(), p, err)
		}
		n++
		c.progress(p)
	}

	c.logger.Info("stage done", "stage", stage.Name(), "src", src, "dst", dst, "files", n)
	return n, nil
}

// Count returns the number of input files of stage in src.
func Count(src string, stage Stage) (int, error) {
	paths, err := file.List(src, stage.Input().Ext())
	return len(paths), err
}

func convertFile(stage Stage, in, out string) error {
	f, err := os.Create(out)
	if err != nil {
		return err
	}

	if err := stage.Run(in, f); err != nil {
		f.Close()
		os.Remove(out)
		return err
	}
	return f.Close()
}
