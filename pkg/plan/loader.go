package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads a plan from a file or from every plan file under a directory.
func Load(path string) (Plan, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Plan{}, fmt.Errorf("plan: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadFS(os.DirFS(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("plan: read %s: %w", path, err)
	}
	var p Plan
	entries, err := parseDocument(data, path)
	if err != nil {
		return Plan{}, err
	}
	if err := p.merge(entries, path); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// LoadFS walks fsys and merges every JSON, YAML and TOML file in lexical path
// order. A field named in more than one file is an error.
func LoadFS(fsys fs.FS) (Plan, error) {
	var p Plan
	if fsys == nil {
		return p, nil
	}

	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isPlanFile(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return Plan{}, err
	}
	sort.Strings(paths)

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return Plan{}, fmt.Errorf("plan: read %s: %w", path, err)
		}
		entries, err := parseDocument(data, path)
		if err != nil {
			return Plan{}, err
		}
		if err := p.merge(entries, path); err != nil {
			return Plan{}, err
		}
	}
	return p, nil
}

type documentFile struct {
	Fields []Entry `json:"fields" yaml:"fields" toml:"fields"`
}

func parseDocument(data []byte, source string) ([]Entry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("plan: file %s is empty", source)
	}

	var doc documentFile
	switch strings.ToLower(filepath.Ext(source)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("plan: parse %s: %w", source, err)
		}
		for i := range doc.Fields {
			doc.Fields[i].Value = normaliseJSON(doc.Fields[i].Value)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("plan: parse %s: %w", source, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("plan: parse %s: %w", source, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err == nil {
			break
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("plan: parse %s: invalid JSON or YAML", source)
		}
	}
	return doc.Fields, nil
}

// normaliseJSON turns json.Number into int when integral so lookup ids stay
// ids, and float64 otherwise.
func normaliseJSON(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normaliseJSON(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = normaliseJSON(item)
		}
		return out
	default:
		return v
	}
}

func isPlanFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".toml":
		return true
	default:
		return false
	}
}
