package source

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Source is a place bookmark files can be discovered and read from.
type Source interface {
	// Exists reports whether name can be read. Transport errors are returned
	// separately from a plain "not there".
	Exists(ctx context.Context, name string) (bool, error)
	// Open returns the contents of name. The caller closes the reader.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	String() string
}

// DirSource reads candidates from a local directory.
type DirSource struct {
	Dir string
}

// NewDirSource creates a source rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

func (s *DirSource) path(name string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(name))
}

// Exists checks that name is a regular file.
func (s *DirSource) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	info, err := os.Stat(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// Open opens name for reading.
func (s *DirSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(s.path(name))
}

func (s *DirSource) String() string {
	return s.Dir
}

// HTTPSource reads candidates relative to a base URL.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource creates a source for base. A nil client uses http.DefaultClient.
func NewHTTPSource(base string, client *http.Client) (*HTTPSource, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", base)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{base: u, client: client}, nil
}

func (s *HTTPSource) resolve(name string) string {
	return s.base.ResolveReference(&url.URL{Path: name}).String()
}

// Exists issues a HEAD request and treats any 2xx status as present.
func (s *HTTPSource) Exists(ctx context.Context, name string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.resolve(name), nil)
	if err != nil {
		return false, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}

// Open GETs name. Non-2xx responses are errors.
func (s *HTTPSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.resolve(name), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %s", s.resolve(name), resp.Status)
	}
	return resp.Body, nil
}

func (s *HTTPSource) String() string {
	return s.base.String()
}

// FileSource serves exactly one file, bypassing discovery.
type FileSource struct {
	Path string
}

// Name is the only name FileSource knows.
func (s *FileSource) Name() string {
	return filepath.Base(s.Path)
}

func (s *FileSource) Exists(ctx context.Context, name string) (bool, error) {
	if name != s.Name() {
		return false, nil
	}
	_, err := os.Stat(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *FileSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if name != s.Name() {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return os.Open(s.Path)
}

func (s *FileSource) String() string {
	return s.Path
}
