package spform

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goliatone/go-spform/pkg/catalog"
	"github.com/goliatone/go-spform/pkg/dom"
	"github.com/goliatone/go-spform/pkg/field"
	"github.com/goliatone/go-spform/pkg/host"
	"github.com/goliatone/go-spform/pkg/hostsim"
)

// Field aliases field.Field so callers can stay on the root package for the
// common paths.
type Field = field.Field

// DateTimeValue aliases the date and time value object.
type DateTimeValue = field.DateTimeValue

// URLValue aliases the hyperlink value object.
type URLValue = field.URLValue

// Error aliases the structured failure type.
type Error = field.Error

// Sentinels re-exported for errors.Is checks.
var (
	ErrUnknownFieldName    = field.ErrUnknownFieldName
	ErrUndetectedFieldType = field.ErrUndetectedFieldType
	ErrStructural          = field.ErrStructural
	ErrValueNotFound       = field.ErrValueNotFound
	ErrValidation          = field.ErrValidation
	ErrNotImplemented      = field.ErrNotImplemented
	ErrDuplicateFieldName  = field.ErrDuplicateFieldName
	ErrUnsupportedValue    = field.ErrUnsupportedValue
)

// Option customises a Form.
type Option func(*config)

type config struct {
	host     host.Host
	emulate  bool
	strict   bool
	registry *field.Registry
	label    string
	survey   string
}

// WithHost supplies the page's rich-text editor and people picker
// collaborators.
func WithHost(h host.Host) Option {
	return func(c *config) {
		c.host = h
	}
}

// WithEmulatedHost installs the in-process emulation of the host page
// scripts (multi lookup buttons, check names, rich-text editors and people
// pickers). Capabilities passed through WithHost take precedence.
func WithEmulatedHost() Option {
	return func(c *config) {
		c.emulate = true
	}
}

// WithStrictNames fails the catalog build when two rows share a name.
func WithStrictNames() Option {
	return func(c *config) {
		c.strict = true
	}
}

// WithRegistry swaps the field registry.
func WithRegistry(reg *field.Registry) Option {
	return func(c *config) {
		c.registry = reg
	}
}

// WithSelectors overrides the label and survey cell selectors.
func WithSelectors(label, survey string) Option {
	return func(c *config) {
		c.label = label
		c.survey = survey
	}
}

// Form is a parsed list form and its catalog.
type Form struct {
	doc     *dom.Document
	catalog *catalog.Catalog
	sim     *hostsim.Sim
}

// Parse reads an HTML form page from r.
func Parse(r io.Reader, options ...Option) (*Form, error) {
	doc, err := dom.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("spform: parse: %w", err)
	}
	return New(doc, options...), nil
}

// Open reads an HTML form page from path.
func Open(path string, options ...Option) (*Form, error) {
	doc, err := dom.Open(path)
	if err != nil {
		return nil, fmt.Errorf("spform: open %s: %w", path, err)
	}
	return New(doc, options...), nil
}

// New wraps an already parsed document.
func New(doc *dom.Document, options ...Option) *Form {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	form := &Form{doc: doc}
	h := cfg.host
	if cfg.emulate && doc != nil {
		form.sim = hostsim.Install(doc)
		emulated := form.sim.Host()
		if h.RichText == nil {
			h.RichText = emulated.RichText
		}
		if h.People == nil {
			h.People = emulated.People
		}
	}

	catOpts := []catalog.Option{
		catalog.WithHost(h),
		catalog.WithRegistry(cfg.registry),
		catalog.WithSelectors(cfg.label, cfg.survey),
	}
	if cfg.strict {
		catOpts = append(catOpts, catalog.WithStrictNames())
	}
	form.catalog = catalog.New(doc, catOpts...)
	return form
}

// Document returns the underlying page.
func (f *Form) Document() *dom.Document {
	return f.doc
}

// Catalog returns the form's catalog.
func (f *Form) Catalog() *catalog.Catalog {
	return f.catalog
}

// Names lists the field names in document order.
func (f *Form) Names() ([]string, error) {
	return f.catalog.Names()
}

// Field returns the field called name.
func (f *Form) Field(name string) (Field, error) {
	return f.catalog.Field(name)
}

// Fields builds every field; the error joins the rows that failed.
func (f *Form) Fields() (map[string]Field, error) {
	return f.catalog.Fields()
}

// Value reads the value of the field called name.
func (f *Form) Value(name string) (any, error) {
	fld, err := f.catalog.Field(name)
	if err != nil {
		return nil, err
	}
	return fld.Value()
}

// SetValue writes the value of the field called name.
func (f *Form) SetValue(name string, v any) error {
	fld, err := f.catalog.Field(name)
	if err != nil {
		return err
	}
	return fld.SetValue(v)
}

// ShowField shows the rows of the field called name.
func (f *Form) ShowField(name string) error {
	return f.catalog.Show(name)
}

// HideField hides the rows of the field called name.
func (f *Form) HideField(name string) error {
	return f.catalog.Hide(name)
}

// HTML serialises the page with every change applied so far.
func (f *Form) HTML() (string, error) {
	return f.doc.HTML()
}

// WriteTo writes the serialised page to w.
func (f *Form) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := f.doc.Render(&buf); err != nil {
		return 0, fmt.Errorf("spform: render: %w", err)
	}
	return buf.WriteTo(w)
}

// Close removes the emulated host handlers, if any were installed.
func (f *Form) Close() error {
	if f.sim != nil {
		f.sim.Uninstall()
		f.sim = nil
	}
	return nil
}
