package field

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-spform/pkg/dom"
	"github.com/goliatone/go-spform/pkg/host"
	"github.com/goliatone/go-spform/pkg/kind"
)

// Descriptor is the catalog entry for one form row: where its label and
// control live and what kind of widget the control is. The Field wrapper is
// built on first use and cached here.
type Descriptor struct {
	Name     string
	Required bool

	Label     *goquery.Selection
	LabelCell *goquery.Selection
	LabelRow  *goquery.Selection

	// ControlsRow is only set on survey layouts, where the control sits on
	// its own row under the label.
	ControlsRow  *goquery.Selection
	ControlsCell *goquery.Selection

	Kind   kind.Kind
	Marker string

	field Field
}

// Env carries the page collaborators a field needs.
type Env struct {
	Doc  *dom.Document
	Host host.Host
}

// Survey reports whether the descriptor came from a survey layout.
func (d *Descriptor) Survey() bool {
	return d != nil && d.ControlsRow != nil
}

// Controls returns the control element: the first element child of the
// controls cell. The selection is empty when the cell holds no element.
func (d *Descriptor) Controls() *goquery.Selection {
	if d == nil || d.ControlsCell == nil {
		return nil
	}
	return d.ControlsCell.Children().First()
}

// Cached returns the field built for this descriptor, if any.
func (d *Descriptor) Cached() (Field, bool) {
	if d == nil || d.field == nil {
		return nil, false
	}
	return d.field, true
}

// Resolve returns the cached field or builds it with the default registry.
// Failed constructions are not cached.
func (d *Descriptor) Resolve(env Env) (Field, error) {
	return d.ResolveWith(defaultRegistry, env)
}

// ResolveWith is Resolve using a caller supplied registry.
func (d *Descriptor) ResolveWith(reg *Registry, env Env) (Field, error) {
	if d.field != nil {
		return d.field, nil
	}
	f, err := reg.New(d, env)
	if err != nil {
		return nil, err
	}
	d.field = f
	return f, nil
}

// Reset drops the cached field.
func (d *Descriptor) Reset() {
	if d != nil {
		d.field = nil
	}
}
