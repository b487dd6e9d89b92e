package favicon_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nikbrunner/bmg/internal/favicon"
	"go.uber.org/goleak"
	"gotest.tools/v3/assert"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	assert.NilError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

var icoBytes = []byte{0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x10, 0x10, 0x00, 0x00}

// iconServer serves a few fixed routes and counts requests.
func iconServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	icon := pngBytes(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/icon.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(icon)
	})
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/x-icon")
		_, _ = w.Write(icoBytes)
	})
	mux.HandleFunc("/icon.svg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`))
	})
	mux.HandleFunc("/page.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>not an icon</body></html>"))
	})
	mux.HandleFunc("/missing.png", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/slow.png", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newResolver(srv *httptest.Server) *favicon.Resolver {
	return favicon.New(favicon.Params{
		Client:  srv.Client(),
		Timeout: 200 * time.Millisecond,
	})
}

func TestResolve_RejectsWithoutNetwork(t *testing.T) {
	srv, hits := iconServer(t)
	r := newResolver(srv)

	tests := []string{
		"",
		"   ",
		"fake-favicon-uri:https://support.mozilla.org/products/firefox",
		srv.URL + "/fake-favicon-uri/icon.png",
		"https://via.placeholder.com/64x64?text=?",
	}

	for _, candidate := range tests {
		t.Run(candidate, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), candidate)
			assert.ErrorIs(t, err, favicon.ErrInvalidCandidate)
			assert.Equal(t, got, "")
		})
	}
	assert.Equal(t, hits.Load(), int32(0))
}

func TestResolve_Remote(t *testing.T) {
	srv, _ := iconServer(t)
	r := newResolver(srv)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"png", "/icon.png", false},
		{"ico", "/favicon.ico", false},
		{"svg", "/icon.svg", false},
		{"html is not an image", "/page.html", true},
		{"not found", "/missing.png", true},
		{"timeout", "/slow.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := srv.URL + tt.path
			got, err := r.Resolve(context.Background(), candidate)
			if tt.wantErr {
				assert.ErrorIs(t, err, favicon.ErrLoadFailed)
				assert.Equal(t, got, "")
				return
			}
			assert.NilError(t, err)
			assert.Equal(t, got, candidate)
		})
	}
}

func TestResolve_DataURIs(t *testing.T) {
	r := favicon.New(favicon.Params{})

	pngURI := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t))
	svgURI := "data:image/svg+xml," + url.PathEscape(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`)

	tests := []struct {
		name    string
		uri     string
		wantErr bool
	}{
		{"fallback glyph", favicon.FallbackGlyph, false},
		{"base64 png", pngURI, false},
		{"percent-encoded svg", svgURI, false},
		{"text payload", "data:text/plain,hello", true},
		{"bad base64", "data:image/png;base64,@@@", true},
		{"missing comma", "data:image/png;base64", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), tt.uri)
			if tt.wantErr {
				assert.ErrorIs(t, err, favicon.ErrLoadFailed)
				return
			}
			assert.NilError(t, err)
			assert.Equal(t, got, tt.uri)
		})
	}
}

func TestResolve_CanceledContext(t *testing.T) {
	srv, _ := iconServer(t)
	r := newResolver(srv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, srv.URL+"/icon.png")
	assert.Assert(t, errors.Is(err, favicon.ErrLoadFailed))
}

func TestResolve_TimeoutKeepsCause(t *testing.T) {
	srv, _ := iconServer(t)
	r := newResolver(srv)

	_, err := r.Resolve(context.Background(), srv.URL+"/slow.png")
	assert.ErrorIs(t, err, favicon.ErrLoadFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorContains(t, err, "timeout")
}

func TestResolveAll(t *testing.T) {
	srv, _ := iconServer(t)
	r := newResolver(srv)

	candidates := []string{
		srv.URL + "/icon.png",
		"fake-favicon-uri:x",
		srv.URL + "/missing.png",
		favicon.FallbackGlyph,
		srv.URL + "/favicon.ico",
		srv.URL + "/slow.png",
	}

	got := r.ResolveAll(context.Background(), candidates)

	assert.DeepEqual(t, got, []string{
		srv.URL + "/icon.png",
		favicon.FallbackGlyph,
		favicon.FallbackGlyph,
		favicon.FallbackGlyph,
		srv.URL + "/favicon.ico",
		favicon.FallbackGlyph,
	})
}

func TestResolveAll_Empty(t *testing.T) {
	r := favicon.New(favicon.Params{})
	assert.Equal(t, len(r.ResolveAll(context.Background(), nil)), 0)
}

func TestRejected(t *testing.T) {
	assert.Assert(t, favicon.Rejected(""))
	assert.Assert(t, favicon.Rejected("https://via.placeholder.com/64x64?text=?"))
	assert.Assert(t, favicon.Rejected("fake-favicon-uri:abc"))
	assert.Assert(t, !favicon.Rejected("https://www.google.com/s2/favicons?domain=go.dev&sz=64"))
}
