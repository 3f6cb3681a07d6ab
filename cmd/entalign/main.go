package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/entalign/config"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}
	cfg, err := config.Load(".env")
	if err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}

	if err := newApp(cfg, ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "entalign: %v\n", err)
}

func newApp(cfg config.Config, ui UI) *cli.App {
	return &cli.App{
		Name:      "entalign",
		Usage:     "align an entity annotated corpus with a dependency treebank",
		Writer:    ui.Out,
		ErrWriter: ui.Err,

		EnableBashCompletion: true,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Value:   cfg.LogLevel,
				EnvVars: []string{config.Env("LOG_LEVEL")},
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "no progress bars",
				Value:   cfg.Quiet,
				EnvVars: []string{config.Env("QUIET")},
			},
		},
		Before: func(c *cli.Context) error {
			cfg.LogLevel = c.String("log-level")
			slog.SetDefault(newLogger(ui.Err, cfg.Level()))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "convert",
				Usage: "convert the standoff annotations to CoNLL-U documents",
				Flags: []cli.Flag{stageFlag(), annFlag(cfg), jsonFlag(cfg), conllFlag(cfg), invalidFlag(cfg), reportFlag(cfg), langFlag(cfg), headOtherFlag(cfg)},
				Action: func(c *cli.Context) error {
					return convertCommand(parseOptions(c), ui)
				},
			},
			{
				Name:  "map",
				Usage: "assign the annotated documents to treebank sentences and splits",
				Flags: []cli.Flag{treebankFlag(cfg), annFlag(cfg), manifestFlag(cfg), splitsFlag(cfg), reportFlag(cfg), langFlag(cfg), lettersFlag(cfg)},
				Action: func(c *cli.Context) error {
					return mapCommand(parseOptions(c), ui)
				},
			},
			{
				Name:  "merge",
				Usage: "merge the annotated documents into their treebank sentences",
				Flags: []cli.Flag{treebankFlag(cfg), conllFlag(cfg), annFlag(cfg), manifestFlag(cfg), splitsFlag(cfg), mergedFlag(cfg), reportFlag(cfg), langFlag(cfg), lettersFlag(cfg), noCheckFlag()},
				Action: func(c *cli.Context) error {
					return mergeCommand(parseOptions(c), ui)
				},
			},
			{
				Name:  "combine",
				Usage: "concatenate the merged documents into one file per split",
				Flags: []cli.Flag{mergedFlag(cfg), outputFlag(cfg), prefixFlag(cfg), langFlag(cfg), xzFlag(cfg)},
				Action: func(c *cli.Context) error {
					return combineCommand(parseOptions(c), ui)
				},
			},
			{
				Name:  "align-treebank",
				Usage: "transfer named entities between two treebanks of the same text",
				Flags: []cli.Flag{treebankFlag(cfg), entityFlag(cfg), outputFlag(cfg), reportFlag(cfg), langFlag(cfg), keysFlag(cfg), lettersFlag(cfg)},
				Action: func(c *cli.Context) error {
					return transferCommand(parseOptions(c), ui)
				},
			},
			{
				Name:  "run",
				Usage: "convert, map, merge and combine",
				Flags: []cli.Flag{
					annFlag(cfg), jsonFlag(cfg), conllFlag(cfg), invalidFlag(cfg), treebankFlag(cfg), manifestFlag(cfg), splitsFlag(cfg),
					mergedFlag(cfg), outputFlag(cfg), reportFlag(cfg), prefixFlag(cfg), langFlag(cfg), lettersFlag(cfg), xzFlag(cfg), headOtherFlag(cfg),
				},
				Action: func(c *cli.Context) error {
					return runCommand(parseOptions(c), ui)
				},
			},
			{
				Name:      "stat",
				Usage:     "count documents, mentions and entities and check bracket nesting",
				ArgsUsage: "<file.conllu[.xz]|dir>...",
				Action: func(c *cli.Context) error {
					return statCommand(parseOptions(c), ui)
				},
			},
			{
				Name:  "bash",
				Usage: "print the bash completion script",
				Action: func(c *cli.Context) error {
					return bashCommand(ui)
				},
			},
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(c *cli.Context) error {
					return versionCommand(ui)
				},
			},
		},
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
