package field

import (
	"sort"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-spform/pkg/kind"
)

// Built-in variant identifiers exposed by the registry.
const (
	VariantText               = "text"
	VariantNumber             = "number"
	VariantCurrency           = "currency"
	VariantChoiceDropdown     = "choice-dropdown"
	VariantChoiceRadio        = "choice-radio"
	VariantChoiceCheckbox     = "choice-checkbox"
	VariantDateTime           = "datetime"
	VariantBoolean            = "boolean"
	VariantURL                = "url"
	VariantLookupDropdown     = "lookup-dropdown"
	VariantLookupAutocomplete = "lookup-autocomplete"
	VariantLookupMulti        = "lookup-multi"
	VariantNotePlain          = "note-plain"
	VariantNoteRich           = "note-rich"
	VariantNoteEnhanced       = "note-enhanced"
	VariantFile               = "file"
	VariantUserClassic        = "user-classic"
	VariantUserModern         = "user-modern"
	VariantUnsupported        = "unsupported"
)

// Probe is what matchers and constructors see of a catalogued row.
type Probe struct {
	Desc     *Descriptor
	Env      Env
	Controls *goquery.Selection
}

// Has reports whether the control subtree contains selector.
func (p Probe) Has(selector string) bool {
	return p.Controls != nil && p.Controls.Find(selector).Length() > 0
}

// Matcher decides whether a variant should handle the probed control.
type Matcher func(p Probe) bool

// Constructor builds the variant for a probed control.
type Constructor func(p Probe) (Field, error)

type rule struct {
	name     string
	priority int
	match    Matcher
	build    Constructor
	order    int
}

// Registry selects the concrete variant for a descriptor. Per kind, higher
// priority wins and ties fall back to registration order. A nil matcher always
// matches.
type Registry struct {
	mu    sync.RWMutex
	rules map[kind.Kind][]rule
	order int
}

// NewRegistry constructs a registry with the built-in variants registered.
func NewRegistry() *Registry {
	reg := NewEmptyRegistry()
	reg.registerBuiltins()
	return reg
}

// NewEmptyRegistry constructs a registry without any variants.
func NewEmptyRegistry() *Registry {
	return &Registry{rules: make(map[kind.Kind][]rule)}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the registry used by New and Descriptor.Resolve.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// New builds the field for desc using the default registry.
func New(desc *Descriptor, env Env) (Field, error) {
	return defaultRegistry.New(desc, env)
}

// Register adds a variant for k. Callers should avoid duplicate names; the
// latest registration with the same priority loses to earlier ones.
func (r *Registry) Register(k kind.Kind, name string, priority int, match Matcher, build Constructor) {
	if r == nil || build == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules[k] = append(r.rules[k], rule{
		name:     trimmed,
		priority: priority,
		match:    match,
		build:    build,
		order:    r.order,
	})
	r.order++
}

// Variants lists the variant names registered for k in resolution order.
func (r *Registry) Variants(k kind.Kind) []string {
	rules := r.sorted(k)
	out := make([]string, 0, len(rules))
	for _, entry := range rules {
		out = append(out, entry.name)
	}
	return out
}

// Resolve returns the name of the variant that would handle desc.
func (r *Registry) Resolve(desc *Descriptor, env Env) (string, bool) {
	if desc == nil || desc.Kind == kind.Unknown {
		return VariantUnsupported, desc != nil
	}
	probe := Probe{Desc: desc, Env: env, Controls: desc.Controls()}
	if entry, ok := r.match(probe); ok {
		return entry.name, true
	}
	return "", false
}

// New builds the field for desc. Unknown kinds yield the unsupported field;
// a missing control element or an unmatched shape is a structural error.
func (r *Registry) New(desc *Descriptor, env Env) (Field, error) {
	if desc == nil {
		return nil, structuralError("", "create", "descriptor", "nil")
	}
	if desc.Kind == kind.Unknown {
		return newUnsupported(desc, env), nil
	}
	controls := desc.Controls()
	if controls == nil || controls.Length() == 0 {
		return nil, structuralError(desc.Name, "create", "control element", "empty cell")
	}
	probe := Probe{Desc: desc, Env: env, Controls: controls}
	entry, ok := r.match(probe)
	if !ok {
		return nil, &Error{
			Kind:    KindNotImplemented,
			Field:   desc.Name,
			Op:      "create",
			Actual:  desc.Marker,
			Message: "no variant registered for this control",
		}
	}
	return entry.build(probe)
}

func (r *Registry) match(p Probe) (rule, bool) {
	for _, entry := range r.sorted(p.Desc.Kind) {
		if entry.match == nil || entry.match(p) {
			return entry, true
		}
	}
	return rule{}, false
}

func (r *Registry) sorted(k kind.Kind) []rule {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules[k]...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	return rules
}

func (r *Registry) registerBuiltins() {
	r.Register(kind.Text, VariantText, 0, nil, newTextField)
	r.Register(kind.Number, VariantNumber, 0, nil, newNumberField)
	r.Register(kind.Currency, VariantCurrency, 0, nil, newCurrencyField)
	r.Register(kind.Boolean, VariantBoolean, 0, nil, newBooleanField)
	r.Register(kind.File, VariantFile, 0, nil, newFileField)
	r.Register(kind.DateTime, VariantDateTime, 0, nil, newDateTimeField)
	r.Register(kind.URL, VariantURL, 0, nil, newURLField)

	r.Register(kind.Choice, VariantChoiceDropdown, 10, func(p Probe) bool {
		return p.Has("select")
	}, newDropdownChoiceField)
	r.Register(kind.Choice, VariantChoiceRadio, 0, nil, newRadioChoiceField)
	r.Register(kind.MultiChoice, VariantChoiceCheckbox, 0, nil, newCheckboxChoiceField)

	r.Register(kind.Lookup, VariantLookupDropdown, 10, func(p Probe) bool {
		return p.Has("select")
	}, newDropdownLookupField)
	r.Register(kind.Lookup, VariantLookupAutocomplete, 0, nil, newAutocompleteLookupField)
	r.Register(kind.LookupMulti, VariantLookupMulti, 0, nil, newMultiLookupField)

	r.Register(kind.Note, VariantNoteRich, 20, func(p Probe) bool {
		textarea := p.Controls.Find("textarea").First()
		if textarea.Length() == 0 || !p.Env.Host.HasRichText() {
			return false
		}
		id, _ := textarea.Attr("id")
		return id != "" && p.Env.Host.RichText.HasEditor(id)
	}, newRichNoteField)
	r.Register(kind.Note, VariantNoteEnhanced, 10, func(p Probe) bool {
		return !p.Has("textarea") && p.Has(`input[type="hidden"]`)
	}, newEnhancedNoteField)
	r.Register(kind.Note, VariantNotePlain, 0, nil, newPlainNoteField)

	for _, k := range []kind.Kind{kind.User, kind.UserMulti} {
		r.Register(k, VariantUserClassic, 20, func(p Probe) bool {
			return p.Has("span.ms-usereditor")
		}, newClassicUserField)
		r.Register(k, VariantUserModern, 10, func(p Probe) bool {
			return p.Env.Host.HasPeoplePickers()
		}, newModernUserField)
		r.Register(k, "user-missing", 0, nil, func(p Probe) (Field, error) {
			return nil, structuralError(p.Desc.Name, "create", "span.ms-usereditor or a people picker", "neither")
		})
	}
}
