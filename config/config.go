// Package config reads the settings of entalign from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/revelaction/entalign/entity"
	"github.com/revelaction/entalign/normalize"
)

const prefix = "ENTALIGN_"

type Config struct {
	Lang          string
	TreebankDir   string
	EntityDir     string
	AnnDir        string
	JSONDir       string
	CoNLLDir      string
	Manifest      string
	SplitsDir     string
	MergedDir     string
	OutputDir     string
	ReportDir     string
	InvalidFile   string
	Prefix        string
	NativeLetters string
	EntityKeys    []string
	HeadOther     string
	LogLevel      string
	Quiet         bool
	XZ            bool
}

// Load reads the .env files, if present, and then the environment.
// Variables already set in the environment win over the files. A missing
// file is skipped, a malformed one is an error.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("env file %s: %w", f, err)
		}
	}

	lang := getenv("LANG", "bokmaal")
	cfg := Config{
		Lang:          lang,
		TreebankDir:   getenv("TREEBANK_DIR", "ud"),
		EntityDir:     getenv("ENTITY_DIR", "norne"),
		AnnDir:        getenv("ANN_DIR", "annotations_"+lang),
		JSONDir:       getenv("JSON_DIR", "output/json_"+lang),
		CoNLLDir:      getenv("CONLL_DIR", "output/conll_"+lang),
		Manifest:      getenv("MANIFEST", "UD_SPLITS_DOC2SENT"),
		SplitsDir:     getenv("SPLITS_DIR", "UD_SPLITS"),
		MergedDir:     getenv("MERGED_DIR", "output/merged_"+lang),
		OutputDir:     getenv("OUTPUT_DIR", "output"),
		ReportDir:     getenv("REPORT_DIR", "output"),
		InvalidFile:   getenv("INVALID_FILE", ""),
		Prefix:        getenv("PREFIX", "narc"),
		NativeLetters: getenv("NATIVE_LETTERS", normalize.Norwegian),
		EntityKeys:    getenvList("ENTITY_KEYS", []string{"name"}),
		HeadOther:     getenv("HEAD_OTHER", entity.DefaultHeadOther),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		Quiet:         getenvBool("QUIET", false),
		XZ:            getenvBool("XZ", false),
	}
	return cfg, nil
}

// Level returns the slog level of LogLevel, info if unknown.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Env returns the environment variable name of key.
func Env(key string) string {
	return prefix + key
}

func getenv(k, fallback string) string {
	v := os.Getenv(Env(k))
	if v == "" {
		return fallback
	}
	return v
}

func getenvBool(k string, fallback bool) bool {
	v := os.Getenv(Env(k))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvList(k string, fallback []string) []string {
	v := os.Getenv(Env(k))
	if v == "" {
		return fallback
	}

	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
