package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"
)

// Option configures a Loader.
type Option func(*Loader)

// WithFS sets the filesystem FromFS sources read from.
func WithFS(files fs.FS) Option {
	return func(l *Loader) {
		l.fs = files
	}
}

// WithHTTPClient sets the client for URL sources. The client is copied.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		if client != nil {
			clone := *client
			l.http = &clone
		}
	}
}

// WithTimeout bounds each HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithoutHTTP rejects URL sources.
func WithoutHTTP() Option {
	return func(l *Loader) {
		l.http = nil
	}
}

// Loader reads the bytes a Source points at.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// NewLoader returns a Loader with HTTP enabled through a default client.
func NewLoader(options ...Option) *Loader {
	l := &Loader{http: &http.Client{}}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load fetches the page src points at.
func (l *Loader) Load(ctx context.Context, src Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("source: source is nil")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	switch src.Kind() {
	case KindFile:
		return l.loadFile(src.Location())
	case KindFS:
		return l.loadFS(src.Location())
	case KindURL:
		return l.loadHTTP(ctx, src.Location())
	default:
		return nil, fmt.Errorf("source: unsupported kind %q", src.Kind())
	}
}

func (l *Loader) loadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("source: file path is required")
	}
	return os.ReadFile(path)
}

func (l *Loader) loadFS(name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("source: fs path is required")
	}
	if l.fs == nil {
		return nil, errors.New("source: fs is nil")
	}
	return fs.ReadFile(l.fs, name)
}

func (l *Loader) loadHTTP(ctx context.Context, url string) ([]byte, error) {
	if l.http == nil {
		return nil, errors.New("source: http support disabled")
	}
	reqCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html")

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("source: unexpected status " + resp.Status)
	}
	return io.ReadAll(resp.Body)
}
