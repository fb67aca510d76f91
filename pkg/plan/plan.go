package plan

import (
	"fmt"
	"strings"
)

// Plan is an ordered list of changes to make to a form.
type Plan struct {
	Entries []Entry
}

// Entry describes what to do with one field. Nil pointers and a nil Value
// leave that aspect of the field untouched.
type Entry struct {
	// Name is the field's display name as it appears on the form.
	Name string `json:"name" yaml:"name" toml:"name"`
	// Value is handed to SetValue. Lists set multi-value fields; a map with
	// url and description keys sets a hyperlink.
	Value any `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	// Hidden hides (true) or shows (false) the field's rows.
	Hidden *bool `json:"hidden,omitempty" yaml:"hidden,omitempty" toml:"hidden,omitempty"`
	// ReadOnly swaps the control for its read-only overlay (true) or back
	// (false). It is applied after Value.
	ReadOnly *bool `json:"readonly,omitempty" yaml:"readonly,omitempty" toml:"readonly,omitempty"`
	// TextOnly renders hyperlinks as plain text in the overlay.
	TextOnly bool `json:"text_only,omitempty" yaml:"text_only,omitempty" toml:"text_only,omitempty"`

	// Source is the file the entry came from.
	Source string `json:"-" yaml:"-" toml:"-"`
}

// HasValue reports whether the entry sets a value.
func (e Entry) HasValue() bool {
	return e.Value != nil
}

// Names lists the entry names in plan order.
func (p Plan) Names() []string {
	out := make([]string, 0, len(p.Entries))
	for _, entry := range p.Entries {
		out = append(out, entry.Name)
	}
	return out
}

// Entry returns the entry for name.
func (p Plan) Entry(name string) (Entry, bool) {
	for _, entry := range p.Entries {
		if entry.Name == name {
			return entry, true
		}
	}
	return Entry{}, false
}

// Empty reports whether the plan holds no entries.
func (p Plan) Empty() bool {
	return len(p.Entries) == 0
}

// merge appends entries, rejecting a name seen earlier in the plan.
func (p *Plan) merge(entries []Entry, source string) error {
	for idx, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return fmt.Errorf("plan: file %s entry %d has an empty name", source, idx)
		}
		if _, exists := p.Entry(name); exists {
			return fmt.Errorf("plan: duplicate field %q (file %s)", name, source)
		}
		entry.Name = name
		entry.Source = source
		p.Entries = append(p.Entries, entry)
	}
	return nil
}

// Bool is a convenience for building entries in code.
func Bool(v bool) *bool {
	return &v
}
