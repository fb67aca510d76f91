package plan

import (
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestLoadFormats(t *testing.T) {
	cases := []struct {
		file string
		want []Entry
	}{
		{
			file: "task.yaml",
			want: []Entry{
				{Name: "Title", Value: "Quarterly report"},
				{Name: "Project", Value: 2},
				{
					Name:     "Website",
					Value:    map[string]any{"url": "https://example.com", "description": "Example"},
					ReadOnly: Bool(true),
					TextOnly: true,
				},
				{Name: "Notes", Hidden: Bool(true)},
			},
		},
		{
			file: "task.toml",
			want: []Entry{
				{Name: "Title", Value: "Quarterly report"},
				{Name: "Tags", Value: []any{"Alpha", "Bravo"}},
				{Name: "Notes", Hidden: Bool(false), ReadOnly: Bool(false)},
			},
		},
		{
			file: "task.json",
			want: []Entry{
				{Name: "Budget", Value: 1234.5},
				{Name: "Project", Value: 2},
				{Name: "Complete", Value: true},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.file, func(t *testing.T) {
			path := filepath.Join("testdata", tc.file)
			p, err := Load(path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			for i := range tc.want {
				tc.want[i].Source = path
			}
			if diff := cmp.Diff(tc.want, p.Entries); diff != "" {
				t.Fatalf("entries mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadDirectoryMergesInOrder(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "dir"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"Title", "Notes"}, p.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	notes, ok := p.Entry("Notes")
	if !ok || notes.Hidden == nil || !*notes.Hidden {
		t.Fatalf("expected notes to be hidden, got %+v", notes)
	}
	if notes.Source != "02-visibility.toml" {
		t.Fatalf("unexpected source %q", notes.Source)
	}
}

func TestLoadDuplicateAcrossFiles(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "dup"))
	if err == nil || !strings.Contains(err.Error(), `duplicate field "Title"`) {
		t.Fatalf("expected duplicate field error, got %v", err)
	}
}

func TestLoadFSErrors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"empty file":    {"a.yaml": {Data: []byte("  \n")}},
		"empty name":    {"a.yaml": {Data: []byte("fields:\n  - value: x\n")}},
		"invalid toml":  {"a.toml": {Data: []byte("[[fields]\nname=")}},
		"invalid json":  {"a.json": {Data: []byte(`{"fields": [`)}},
		"duplicate one": {"a.yaml": {Data: []byte("fields:\n  - name: A\n  - name: A\n")}},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFS(fsys); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestLoadFSNil(t *testing.T) {
	p, err := LoadFS(nil)
	if err != nil || !p.Empty() {
		t.Fatalf("expected an empty plan, got %+v err=%v", p, err)
	}
}

func TestLoadMissingPath(t *testing.T) {
	if _, err := Load(filepath.Join("testdata", "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestEntryHasValue(t *testing.T) {
	if !(Entry{Name: "A", Value: ""}).HasValue() {
		t.Fatalf("an empty string is still a value")
	}
	if (Entry{Name: "B"}).HasValue() {
		t.Fatalf("a missing value must not count")
	}
}
