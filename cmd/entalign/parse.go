package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/entalign/config"
	"github.com/revelaction/entalign/pipeline"
)

// stageAll runs every conversion stage in order.
const stageAll = "all"

// Options holds the flag values of all commands. A command reads the fields
// of its own flags.
type Options struct {
	Stage         string
	AnnDir        string
	JSONDir       string
	CoNLLDir      string
	InvalidFile   string
	TreebankDir   string
	EntityDir     string
	Manifest      string
	SplitsDir     string
	MergedDir     string
	OutputDir     string
	ReportDir     string
	Prefix        string
	Lang          string
	NativeLetters string
	EntityKeys    []string
	HeadOther     string
	XZ            bool
	NoCheck       bool
	Quiet         bool
	Paths         []string
}

func parseOptions(c *cli.Context) Options {
	return Options{
		Stage:         c.String("stage"),
		AnnDir:        c.String("ann"),
		JSONDir:       c.String("json"),
		CoNLLDir:      c.String("conll"),
		InvalidFile:   c.String("invalid"),
		TreebankDir:   c.String("treebank"),
		EntityDir:     c.String("entities"),
		Manifest:      c.String("manifest"),
		SplitsDir:     c.String("splits"),
		MergedDir:     c.String("merged"),
		OutputDir:     c.String("output"),
		ReportDir:     c.String("reports"),
		Prefix:        c.String("prefix"),
		Lang:          c.String("lang"),
		NativeLetters: c.String("native-letters"),
		EntityKeys:    c.StringSlice("entity-keys"),
		HeadOther:     c.String("head-other"),
		XZ:            c.Bool("xz"),
		NoCheck:       c.Bool("no-check"),
		Quiet:         c.Bool("quiet"),
		Paths:         c.Args().Slice(),
	}
}

func stageFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "stage",
		Usage: "conversion stage: " + stageAll + ", " + pipeline.Ann2JSONName + " or " + pipeline.JSON2CoNLLName,
		Value: stageAll,
	}
}

func dirFlag(name, usage, key, value string) cli.Flag {
	return &cli.StringFlag{
		Name:    name,
		Usage:   usage,
		Value:   value,
		EnvVars: []string{config.Env(key)},
	}
}

func annFlag(cfg config.Config) cli.Flag {
	return dirFlag("ann", "directory of the .ann and .txt documents", "ANN_DIR", cfg.AnnDir)
}

func jsonFlag(cfg config.Config) cli.Flag {
	return dirFlag("json", "directory of the JSON records", "JSON_DIR", cfg.JSONDir)
}

func conllFlag(cfg config.Config) cli.Flag {
	return dirFlag("conll", "directory of the annotation CoNLL-U documents", "CONLL_DIR", cfg.CoNLLDir)
}

func invalidFlag(cfg config.Config) cli.Flag {
	return dirFlag("invalid", "file of \"doc_id annotation_id\" lines to skip", "INVALID_FILE", cfg.InvalidFile)
}

func treebankFlag(cfg config.Config) cli.Flag {
	return dirFlag("treebank", "directory of the train, test and dev treebank files", "TREEBANK_DIR", cfg.TreebankDir)
}

func entityFlag(cfg config.Config) cli.Flag {
	return dirFlag("entities", "directory of the train, test and dev named entity files", "ENTITY_DIR", cfg.EntityDir)
}

func manifestFlag(cfg config.Config) cli.Flag {
	return dirFlag("manifest", "split manifest directory, or a .db file", "MANIFEST", cfg.Manifest)
}

func splitsFlag(cfg config.Config) cli.Flag {
	return dirFlag("splits", "directory of the split document lists", "SPLITS_DIR", cfg.SplitsDir)
}

func mergedFlag(cfg config.Config) cli.Flag {
	return dirFlag("merged", "directory of the merged documents", "MERGED_DIR", cfg.MergedDir)
}

func outputFlag(cfg config.Config) cli.Flag {
	return dirFlag("output", "output directory", "OUTPUT_DIR", cfg.OutputDir)
}

func reportFlag(cfg config.Config) cli.Flag {
	return dirFlag("reports", "directory of the error reports", "REPORT_DIR", cfg.ReportDir)
}

func prefixFlag(cfg config.Config) cli.Flag {
	return dirFlag("prefix", "prefix of the combined files", "PREFIX", cfg.Prefix)
}

func langFlag(cfg config.Config) cli.Flag {
	return dirFlag("lang", "language of the corpus, used in file names", "LANG", cfg.Lang)
}

func lettersFlag(cfg config.Config) cli.Flag {
	return dirFlag("native-letters", "letters kept by the text normalization besides a-z", "NATIVE_LETTERS", cfg.NativeLetters)
}

func keysFlag(cfg config.Config) cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "entity-keys",
		Usage:   "MISC keys copied onto the treebank",
		Value:   cli.NewStringSlice(cfg.EntityKeys...),
		EnvVars: []string{config.Env("ENTITY_KEYS")},
	}
}

func xzFlag(cfg config.Config) cli.Flag {
	return &cli.BoolFlag{
		Name:    "xz",
		Usage:   "xz compress the combined files",
		Value:   cfg.XZ,
		EnvVars: []string{config.Env("XZ")},
	}
}

func noCheckFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "no-check",
		Usage: "merge documents whose text changed since mapping",
	}
}

func headOtherFlag(cfg config.Config) cli.Flag {
	return dirFlag("head-other", "suffix of opening entity brackets", "HEAD_OTHER", cfg.HeadOther)
}
