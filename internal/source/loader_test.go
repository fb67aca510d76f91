package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"
)

func TestParse(t *testing.T) {
	cases := []struct {
		raw     string
		kind    Kind
		loc     string
		wantErr bool
	}{
		{raw: "forms/NewForm.html", kind: KindFile, loc: filepath.Clean("forms/NewForm.html")},
		{raw: "  https://intranet/Lists/Tasks/NewForm.aspx ", kind: KindURL, loc: "https://intranet/Lists/Tasks/NewForm.aspx"},
		{raw: "http://", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			src, err := Parse(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %v", src)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if src.Kind() != tc.kind || src.Location() != tc.loc {
				t.Fatalf("unexpected source %s %q", src.Kind(), src.Location())
			}
		})
	}
}

func TestFromURLRejectsOtherSchemes(t *testing.T) {
	if _, err := FromURL("ftp://example.com/form.html"); err == nil {
		t.Fatalf("expected an unsupported scheme error")
	}
}

func TestLoaderFileAndFS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.html")
	if err := os.WriteFile(path, []byte("<p>disk</p>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	files := fstest.MapFS{"forms/new.html": {Data: []byte("<p>fs</p>")}}
	l := NewLoader(WithFS(files))

	data, err := l.Load(context.Background(), FromFile(path))
	if err != nil || string(data) != "<p>disk</p>" {
		t.Fatalf("file: %q %v", data, err)
	}
	data, err = l.Load(context.Background(), FromFS("forms/new.html"))
	if err != nil || string(data) != "<p>fs</p>" {
		t.Fatalf("fs: %q %v", data, err)
	}
	if _, err := NewLoader().Load(context.Background(), FromFS("forms/new.html")); err == nil {
		t.Fatalf("expected an error without a filesystem")
	}
}

func TestLoaderHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("<p>remote</p>"))
	}))
	defer srv.Close()

	l := NewLoader(WithHTTPClient(srv.Client()), WithTimeout(5*time.Second))
	src, err := FromURL(srv.URL + "/NewForm.aspx")
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	data, err := l.Load(context.Background(), src)
	if err != nil || string(data) != "<p>remote</p>" {
		t.Fatalf("http: %q %v", data, err)
	}

	missing, _ := FromURL(srv.URL + "/missing")
	if _, err := l.Load(context.Background(), missing); err == nil {
		t.Fatalf("expected a status error")
	}
	if _, err := NewLoader(WithoutHTTP()).Load(context.Background(), src); err == nil {
		t.Fatalf("expected http to be disabled")
	}
}

func TestLoaderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLoader().Load(ctx, FromFile("x.html")); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
