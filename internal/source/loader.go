package source

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/nikbrunner/bmg/internal/importer"
	"github.com/nikbrunner/bmg/internal/model"
	"go.uber.org/zap"
)

const (
	DefaultProbeTimeout = 3 * time.Second
	DefaultFetchTimeout = 15 * time.Second

	// SampleOrigin names the embedded sample in a Result.
	SampleOrigin = "sample"
)

// Result is the outcome of a load. Records is never nil.
type Result struct {
	Records  []model.Bookmark
	Origin   string // "<source>/<name>" or SampleOrigin
	Format   importer.Format
	Fallback bool  // Records came from the embedded sample
	Err      error // why the fallback was used
}

// Params configures a Loader.
type Params struct {
	Source       Source
	Candidates   []string
	ProbeTimeout time.Duration
	FetchTimeout time.Duration
	Logger       *zap.Logger
}

// Loader discovers, fetches and flattens a bookmark export.
type Loader struct {
	src          Source
	candidates   []string
	probeTimeout time.Duration
	fetchTimeout time.Duration
	logger       *zap.Logger
}

// NewLoader creates a Loader, filling unset params with defaults.
func NewLoader(p Params) *Loader {
	if len(p.Candidates) == 0 {
		p.Candidates = DefaultCandidates
	}
	if p.ProbeTimeout <= 0 {
		p.ProbeTimeout = DefaultProbeTimeout
	}
	if p.FetchTimeout <= 0 {
		p.FetchTimeout = DefaultFetchTimeout
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if fs, ok := p.Source.(*FileSource); ok {
		p.Candidates = []string{fs.Name()}
	}

	return &Loader{
		src:          p.Source,
		candidates:   p.Candidates,
		probeTimeout: p.ProbeTimeout,
		fetchTimeout: p.FetchTimeout,
		logger:       p.Logger,
	}
}

// Load never fails: any problem yields the sample records with Err set.
func (l *Loader) Load(ctx context.Context) Result {
	res, err := l.load(ctx)
	if err != nil {
		l.logger.Warn("using sample bookmarks", zap.Error(err))
		return Result{
			Records:  importer.SampleBookmarks(),
			Origin:   SampleOrigin,
			Format:   importer.FormatPlaces,
			Fallback: true,
			Err:      err,
		}
	}

	l.logger.Info("bookmarks loaded",
		zap.String("origin", res.Origin),
		zap.Stringer("format", res.Format),
		zap.Int("count", len(res.Records)),
	)
	return res
}

func (l *Loader) load(ctx context.Context) (Result, error) {
	if l.src == nil {
		return Result{}, ErrNoBookmarkFile
	}

	name, err := Discover(ctx, l.src, l.candidates, l.probeTimeout, l.logger)
	if err != nil {
		return Result{}, err
	}

	data, err := l.fetch(ctx, name)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load %s: %w", name, err)
	}

	root, format, err := importer.Parse(name, data)
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	records := importer.Flatten(root)
	if records == nil {
		records = []model.Bookmark{}
	}

	return Result{
		Records: records,
		Origin:  l.src.String() + "/" + name,
		Format:  format,
	}, nil
}

func (l *Loader) fetch(ctx context.Context, name string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, l.fetchTimeout)
	defer cancel()

	rc, err := l.src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}
