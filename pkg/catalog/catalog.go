package catalog

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-spform/pkg/dom"
	"github.com/goliatone/go-spform/pkg/field"
	"github.com/goliatone/go-spform/pkg/host"
	"github.com/goliatone/go-spform/pkg/kind"
	"github.com/goliatone/go-spform/pkg/visibility"
)

const (
	// DefaultLabelSelector finds the label cell of every form row.
	DefaultLabelSelector = "table.ms-formtable td.ms-formlabel"
	// DefaultSurveySelector finds the control cells of a survey layout.
	DefaultSurveySelector = "table.ms-formtable td.ms-formbodysurvey"

	requiredSuffix = " *"
)

// Option customises a Catalog.
type Option func(*Catalog)

// WithHost supplies the editor and people picker collaborators handed to
// every field.
func WithHost(h host.Host) Option {
	return func(c *Catalog) {
		c.host = h
	}
}

// WithRegistry swaps the field registry used to construct fields.
func WithRegistry(reg *field.Registry) Option {
	return func(c *Catalog) {
		if reg != nil {
			c.registry = reg
		}
	}
}

// WithStrictNames makes a duplicate row name fail the build with
// DuplicateFieldName instead of replacing the earlier row.
func WithStrictNames() Option {
	return func(c *Catalog) {
		c.strict = true
	}
}

// WithSelectors overrides the label and survey cell selectors. Empty values
// keep the defaults.
func WithSelectors(label, survey string) Option {
	return func(c *Catalog) {
		if strings.TrimSpace(label) != "" {
			c.labelSelector = label
		}
		if strings.TrimSpace(survey) != "" {
			c.surveySelector = survey
		}
	}
}

// Catalog indexes the rows of one rendered form by field name. It scans the
// page once, on first use, and builds each field the first time it is asked
// for. A Catalog is not safe for concurrent use.
type Catalog struct {
	doc      *dom.Document
	host     host.Host
	registry *field.Registry
	strict   bool

	labelSelector  string
	surveySelector string

	built       bool
	survey      bool
	names       []string
	descriptors map[string]*field.Descriptor
}

// New prepares a catalog over doc. Nothing is scanned until the first lookup
// or an explicit Build.
func New(doc *dom.Document, options ...Option) *Catalog {
	c := &Catalog{
		doc:            doc,
		registry:       field.DefaultRegistry(),
		labelSelector:  DefaultLabelSelector,
		surveySelector: DefaultSurveySelector,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Document returns the page the catalog scans.
func (c *Catalog) Document() *dom.Document {
	return c.doc
}

// Env is the collaborator bundle fields are built with.
func (c *Catalog) Env() field.Env {
	return field.Env{Doc: c.doc, Host: c.host}
}

// Build scans the page. It is a no-op while the catalog is built.
func (c *Catalog) Build() error {
	if c.built {
		return nil
	}
	if c.doc == nil {
		return errors.New("catalog: document is required")
	}

	labels := c.doc.Find(c.labelSelector)
	surveys := c.doc.Find(c.surveySelector)
	survey := surveys.Length() > 0

	names := make([]string, 0, labels.Length())
	descriptors := make(map[string]*field.Descriptor, labels.Length())
	var err error
	labels.EachWithBreak(func(i int, cell *goquery.Selection) bool {
		var controls *goquery.Selection
		if survey && i < surveys.Length() {
			controls = surveys.Eq(i)
		}
		desc, ok := describe(cell, controls, survey)
		if !ok {
			return true
		}
		if _, dup := descriptors[desc.Name]; dup {
			if c.strict {
				err = field.DuplicateFieldName(desc.Name)
				return false
			}
		} else {
			names = append(names, desc.Name)
		}
		descriptors[desc.Name] = desc
		return true
	})
	if err != nil {
		return err
	}

	c.survey = survey
	c.names = names
	c.descriptors = descriptors
	c.built = true
	return nil
}

// Rebuild drops every descriptor and cached field and scans again.
func (c *Catalog) Rebuild() error {
	c.Invalidate()
	return c.Build()
}

// Invalidate drops every descriptor and cached field. The next lookup scans
// the page again.
func (c *Catalog) Invalidate() {
	c.built = false
	c.survey = false
	c.names = nil
	c.descriptors = nil
}

// IsSurvey reports whether the page uses the survey layout, where labels and
// controls sit on separate rows.
func (c *Catalog) IsSurvey() (bool, error) {
	if err := c.Build(); err != nil {
		return false, err
	}
	return c.survey, nil
}

// Descriptor returns the row named name. Names are case sensitive.
func (c *Catalog) Descriptor(name string) (*field.Descriptor, error) {
	if err := c.Build(); err != nil {
		return nil, err
	}
	desc, ok := c.descriptors[name]
	if !ok {
		return nil, field.UnknownFieldName(name)
	}
	return desc, nil
}

// Descriptors returns every row keyed by name.
func (c *Catalog) Descriptors() (map[string]*field.Descriptor, error) {
	if err := c.Build(); err != nil {
		return nil, err
	}
	out := make(map[string]*field.Descriptor, len(c.descriptors))
	for name, desc := range c.descriptors {
		out[name] = desc
	}
	return out, nil
}

// Names lists the row names in document order.
func (c *Catalog) Names() ([]string, error) {
	if err := c.Build(); err != nil {
		return nil, err
	}
	return append([]string(nil), c.names...), nil
}

// Field returns the field for name, constructing it on first use.
func (c *Catalog) Field(name string) (field.Field, error) {
	desc, err := c.Descriptor(name)
	if err != nil {
		return nil, err
	}
	return desc.ResolveWith(c.registry, c.Env())
}

// Fields constructs every field. Rows that fail to construct are left out
// of the map and reported together in the returned error.
func (c *Catalog) Fields() (map[string]field.Field, error) {
	if err := c.Build(); err != nil {
		return nil, err
	}
	out := make(map[string]field.Field, len(c.names))
	var errs []error
	for _, name := range c.names {
		f, err := c.descriptors[name].ResolveWith(c.registry, c.Env())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[name] = f
	}
	return out, errors.Join(errs...)
}

// Show makes the rows of name visible without constructing its field.
func (c *Catalog) Show(name string) error {
	return c.toggle(name, true)
}

// Hide hides the rows of name without constructing its field.
func (c *Catalog) Hide(name string) error {
	return c.toggle(name, false)
}

// Visible reports whether the rows of name are shown.
func (c *Catalog) Visible(name string) (bool, error) {
	desc, err := c.Descriptor(name)
	if err != nil {
		return false, err
	}
	return visibility.Visible(rowsOf(desc)), nil
}

func (c *Catalog) toggle(name string, show bool) error {
	desc, err := c.Descriptor(name)
	if err != nil {
		return err
	}
	visibility.Toggle(rowsOf(desc), show)
	return nil
}

func rowsOf(desc *field.Descriptor) visibility.Rows {
	return visibility.Rows{Label: desc.LabelRow, Controls: desc.ControlsRow}
}

// describe reads one label cell. Rows whose label cell has no element child,
// or whose first child is a nobr (the attachments row), are skipped outside
// the survey layout. On survey pages the label cell is the label itself.
func describe(cell, surveyCell *goquery.Selection, survey bool) (*field.Descriptor, bool) {
	label := cell
	if !survey {
		label = cell.Children().First()
		if label.Length() == 0 || dom.NodeName(label) == "NOBR" {
			return nil, false
		}
	}

	name := strings.TrimSpace(label.Text())
	required := strings.HasSuffix(name, requiredSuffix)
	if required {
		name = strings.TrimSuffix(name, requiredSuffix)
	}

	desc := &field.Descriptor{
		Name:      name,
		Required:  required,
		Label:     label,
		LabelCell: cell,
		LabelRow:  cell.Parent(),
	}
	if surveyCell != nil && surveyCell.Length() > 0 {
		desc.ControlsCell = surveyCell
		desc.ControlsRow = surveyCell.Parent()
	} else {
		desc.ControlsCell = cell.Next()
	}
	if desc.ControlsCell.Length() > 0 {
		desc.Kind, desc.Marker = kind.DetectNode(desc.ControlsCell.Get(0))
	} else {
		desc.Kind = kind.Unknown
	}
	return desc, true
}
