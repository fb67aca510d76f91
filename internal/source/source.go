// Package source locates form pages on disk, inside an fs.FS or behind an
// HTTP URL and reads their bytes.
package source

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Kind identifies where a page lives.
type Kind string

const (
	KindFile Kind = "file"
	KindFS   Kind = "fs"
	KindURL  Kind = "url"
)

// Source points at one form page.
type Source interface {
	Kind() Kind
	Location() string
}

type location struct {
	kind Kind
	loc  string
}

func (l location) Kind() Kind       { return l.kind }
func (l location) Location() string { return l.loc }
func (l location) String() string   { return string(l.kind) + ":" + l.loc }

// FromFile returns a Source for a path on disk.
func FromFile(path string) Source {
	return location{kind: KindFile, loc: filepath.Clean(path)}
}

// FromFS returns a Source naming a file inside the loader's fs.FS.
func FromFS(name string) Source {
	return location{kind: KindFS, loc: name}
}

// FromURL validates raw and returns a Source for it. Only http and https are
// accepted.
func FromURL(raw string) (Source, error) {
	if raw == "" {
		return nil, errors.New("source: empty URL")
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, fmt.Errorf("source: invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("source: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("source: URL %q has no host", raw)
	}
	return location{kind: KindURL, loc: raw}, nil
}

// Parse turns a command line argument into a Source: http and https URLs
// become URL sources, anything else a file path.
func Parse(raw string) (Source, error) {
	arg := strings.TrimSpace(raw)
	if arg == "" {
		return nil, errors.New("source: location is required")
	}
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return FromURL(arg)
	}
	return FromFile(arg), nil
}
