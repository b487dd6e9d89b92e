package favicon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FallbackGlyph is the inline SVG shown when no icon can be loaded.
const FallbackGlyph = "data:image/svg+xml;base64,PHN2ZyB3aWR0aD0iNjQiIGhlaWdodD0iNjQiIHZpZXdCb3g9IjAgMCA2NCA2NCIgZmlsbD0ibm9uZSIgeG1sbnM9Imh0dHA6Ly93d3cudzMub3JnLzIwMDAvc3ZnIj4KPHJlY3Qgd2lkdGg9IjY0IiBoZWlnaHQ9IjY0IiByeD0iOCIgZmlsbD0iI2Y1ZjVmNSIgc3Ryb2tlPSIjZTBlMGUwIiBzdHJva2Utd2lkdGg9IjEiLz4KPHBhdGggZD0iTTMyIDIwTDM2IDI4TDMyIDM2TDI4IDI4TDMyIDIwWiIgZmlsbD0iIzk5OTk5OSIvPgo8L3N2Zz4K"

const (
	// DefaultTimeout bounds a single icon fetch.
	DefaultTimeout = 8 * time.Second

	// DefaultConcurrency is how many icons of a page load at once.
	DefaultConcurrency = 6

	// maxIconBytes caps how much of a response is read for validation.
	maxIconBytes = 1 << 20
)

var (
	// ErrInvalidCandidate is returned without any network access for
	// candidates that are known not to point at a real icon.
	ErrInvalidCandidate = errors.New("invalid favicon candidate")

	// ErrLoadFailed is returned when the candidate could not be fetched or
	// did not decode as an image.
	ErrLoadFailed = errors.New("favicon failed to load")
)

// rejectMarkers are substrings of candidates that never resolve.
var rejectMarkers = []string{"fake-favicon-uri", "placeholder.com"}

// Params configures a Resolver.
type Params struct {
	Client      *http.Client // defaults to a client that follows up to 10 redirects
	Timeout     time.Duration
	Concurrency int
	Logger      *zap.Logger
}

// Resolver decides which image a card displays.
type Resolver struct {
	client      *http.Client
	timeout     time.Duration
	concurrency int
	logger      *zap.Logger
}

// New creates a Resolver, filling unset params with defaults.
func New(p Params) *Resolver {
	if p.Client == nil {
		p.Client = &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}
	if p.Timeout <= 0 {
		p.Timeout = DefaultTimeout
	}
	if p.Concurrency <= 0 {
		p.Concurrency = DefaultConcurrency
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}

	return &Resolver{
		client:      p.Client,
		timeout:     p.Timeout,
		concurrency: p.Concurrency,
		logger:      p.Logger,
	}
}

// Rejected reports whether candidate fails without a load attempt.
func Rejected(candidate string) bool {
	if strings.TrimSpace(candidate) == "" {
		return true
	}
	for _, marker := range rejectMarkers {
		if strings.Contains(candidate, marker) {
			return true
		}
	}
	return false
}

// Resolve returns candidate if it loads as an image. It returns
// ErrInvalidCandidate for rejected candidates and ErrLoadFailed for anything
// that did not load in time. There are no retries.
func (r *Resolver) Resolve(ctx context.Context, candidate string) (string, error) {
	if Rejected(candidate) {
		return "", ErrInvalidCandidate
	}

	if strings.HasPrefix(candidate, "data:") {
		body, mediaType, err := decodeDataURI(candidate)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrLoadFailed, err)
		}
		if err := validateImage(body, mediaType); err != nil {
			return "", fmt.Errorf("%w: %w", ErrLoadFailed, err)
		}
		return candidate, nil
	}

	if err := r.fetch(ctx, candidate); err != nil {
		return "", fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return candidate, nil
}

// fetch GETs candidate within the resolver timeout and validates the body.
func (r *Resolver) fetch(ctx context.Context, candidate string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, candidate, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "image/*")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", normalizeError(err.Error()), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIconBytes))
	if err != nil {
		return fmt.Errorf("%s: %w", normalizeError(err.Error()), err)
	}
	return validateImage(body, resp.Header.Get("Content-Type"))
}

// OrFallback resolves candidate and substitutes FallbackGlyph on any failure.
func (r *Resolver) OrFallback(ctx context.Context, candidate string) string {
	resolved, err := r.Resolve(ctx, candidate)
	if err != nil {
		r.logger.Debug("favicon fallback",
			zap.String("candidate", candidate),
			zap.Error(err),
		)
		return FallbackGlyph
	}
	return resolved
}

// ResolveAll resolves candidates concurrently. The result has one entry per
// candidate, in order, holding either the candidate or FallbackGlyph.
func (r *Resolver) ResolveAll(ctx context.Context, candidates []string) []string {
	results := make([]string, len(candidates))
	if len(candidates) == 0 {
		return results
	}

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, candidate := range candidates {
		g.Go(func() error {
			results[i] = r.OrFallback(ctx, candidate)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// normalizeError simplifies verbose transport errors into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "timeout"
	case strings.Contains(lower, "context canceled"):
		return "canceled"
	case strings.Contains(lower, "connection refused"):
		return "connection refused"
	case strings.Contains(lower, "certificate"), strings.Contains(lower, "tls:"):
		return "TLS error"
	case strings.Contains(lower, "network is unreachable"):
		return "network unreachable"
	default:
		return errStr
	}
}
