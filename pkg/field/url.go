package field

import (
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-spform/pkg/dom"
)

// URLValue is the value of a hyperlink field.
type URLValue struct {
	URL         string `json:"url" yaml:"url" toml:"url"`
	Description string `json:"description" yaml:"description" toml:"description"`
}

// URLField wraps the address and description boxes of a hyperlink field.
type URLField struct {
	base
	URLTextbox         *goquery.Selection
	DescriptionTextbox *goquery.Selection
	textOnly           bool
}

func newURLField(p Probe) (Field, error) {
	inputs := p.Controls.Find("input")
	if inputs.Length() != 2 {
		return nil, structuralError(p.Desc.Name, "create", "2 inputs", strconv.Itoa(inputs.Length())+" inputs")
	}
	f := &URLField{
		base:               newBase(p.Desc, p.Env, VariantURL, p.Controls),
		URLTextbox:         inputs.Eq(0),
		DescriptionTextbox: inputs.Eq(1),
	}
	f.self = f
	return f, nil
}

func (f *URLField) current() URLValue {
	return URLValue{URL: dom.Val(f.URLTextbox), Description: dom.Val(f.DescriptionTextbox)}
}

// Value returns a URLValue.
func (f *URLField) Value() (any, error) {
	return f.current(), nil
}

// SetValue accepts a URLValue, a two element list, or a bare address which
// is used as its own description.
func (f *URLField) SetValue(v any) error {
	value, err := toURLValue(f.Name(), v)
	if err != nil {
		return err
	}
	dom.SetVal(f.URLTextbox, value.URL)
	dom.SetVal(f.DescriptionTextbox, value.Description)
	return f.sync()
}

// Hyperlink renders the current value the way the overlay shows it.
func (f *URLField) Hyperlink() (string, error) {
	return renderHyperlink(f.current(), f.textOnly)
}

func (f *URLField) configureReadOnly(cfg readOnlyConfig) {
	if cfg.textOnly {
		f.textOnly = true
	}
}

func (f *URLField) overlayMarkup() (string, error) {
	return f.Hyperlink()
}
