package main

import (
	"log/slog"

	"github.com/gosuri/uiprogress"

	"github.com/revelaction/entalign/align"
	"github.com/revelaction/entalign/normalize"
	"github.com/revelaction/entalign/storage"
	"github.com/revelaction/entalign/storage/filesystem"
	"github.com/revelaction/entalign/storage/sqlite/zombiezen"
)

// NewManifestRepository returns the SQLite store if path names a database
// file, the directory store otherwise. Both write the document list of every
// split into splitsDir, if given.
func NewManifestRepository(p *Pool, path, splitsDir string) (storage.ManifestRepository, error) {
	if zombiezen.IsDB(path) {
		pool, err := p.Open(path)
		if err != nil {
			return nil, err
		}
		store := zombiezen.NewManifestStore(pool)
		if splitsDir == "" {
			return store, nil
		}
		return storage.DocLists{ManifestRepository: store, Dir: splitsDir}, nil
	}

	store, err := filesystem.NewManifestStore(path, splitsDir)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func alignOptions(opts Options) []align.Option {
	o := []align.Option{align.WithLogger(slog.Default())}
	if opts.NativeLetters != "" {
		o = append(o, align.WithNormalizer(normalize.New(opts.NativeLetters)))
	}
	if len(opts.EntityKeys) > 0 {
		o = append(o, align.WithEntityKeys(opts.EntityKeys...))
	}
	return o
}

// progress is a progress bar, a no-op when quiet.
type progress struct {
	p   *uiprogress.Progress
	bar *uiprogress.Bar
}

func startProgress(quiet bool, total int, title string) *progress {
	if quiet || total <= 0 {
		return &progress{}
	}

	p := uiprogress.New()
	p.Start()
	bar := p.AddBar(total)
	bar.AppendCompleted()
	bar.PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return title
	})
	return &progress{p: p, bar: bar}
}

func (pr *progress) incr(string) {
	if pr.bar != nil {
		pr.bar.Incr()
	}
}

func (pr *progress) stop() {
	if pr.p != nil {
		pr.p.Stop()
	}
}
