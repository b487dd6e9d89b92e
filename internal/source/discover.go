package source

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// DefaultCandidates are probed in order when no file is given.
var DefaultCandidates = []string{
	"bookmarks.json",
	"bookmarks-export.json",
	"firefox-bookmarks.json",
	"chrome-bookmarks.json",
	"bookmarks-2025-07-27.json",
	"bookmarks.html",
}

// ErrNoBookmarkFile is returned when no candidate exists.
var ErrNoBookmarkFile = errors.New("no bookmark file found")

// Discover probes candidates in order and returns the first that exists. Each
// probe is bounded by perCheck; a probe that errors or times out counts as
// absent.
func Discover(ctx context.Context, src Source, candidates []string, perCheck time.Duration, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, name := range candidates {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		ok, err := probe(ctx, src, name, perCheck)
		switch {
		case err != nil:
			logger.Debug("probe failed",
				zap.Stringer("source", src),
				zap.String("name", name),
				zap.Error(err),
			)
		case ok:
			logger.Info("bookmark file found",
				zap.Stringer("source", src),
				zap.String("name", name),
			)
			return name, nil
		default:
			logger.Debug("probe missed",
				zap.Stringer("source", src),
				zap.String("name", name),
			)
		}
	}

	return "", ErrNoBookmarkFile
}

func probe(ctx context.Context, src Source, name string, perCheck time.Duration) (bool, error) {
	if perCheck > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, perCheck)
		defer cancel()
	}
	return src.Exists(ctx, name)
}
