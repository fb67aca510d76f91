package field

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-spform/pkg/dom"
)

// singleInput returns the only input of a text-like control.
func singleInput(p Probe) (*goquery.Selection, error) {
	inputs := p.Controls.Find("input")
	if inputs.Length() != 1 {
		return nil, structuralError(p.Desc.Name, "create", "1 input", strconv.Itoa(inputs.Length())+" inputs")
	}
	return inputs, nil
}

// TextField wraps a single line of text.
type TextField struct {
	base
	Textbox *goquery.Selection
}

func newTextField(p Probe) (Field, error) {
	input, err := singleInput(p)
	if err != nil {
		return nil, err
	}
	f := &TextField{base: newBase(p.Desc, p.Env, VariantText, p.Controls), Textbox: input}
	f.self = f
	return f, nil
}

func (f *TextField) text() string {
	return dom.Val(f.Textbox)
}

func (f *TextField) Value() (any, error) {
	return f.text(), nil
}

func (f *TextField) SetValue(v any) error {
	s, err := toString(f.Name(), v)
	if err != nil {
		return err
	}
	dom.SetVal(f.Textbox, s)
	return f.sync()
}

func (f *TextField) overlayMarkup() (string, error) {
	return renderText(f.text()), nil
}

// NumberField reads locale formatted numbers such as "1,234.5".
type NumberField struct {
	TextField
}

func newNumberField(p Probe) (Field, error) {
	input, err := singleInput(p)
	if err != nil {
		return nil, err
	}
	f := &NumberField{TextField{base: newBase(p.Desc, p.Env, VariantNumber, p.Controls), Textbox: input}}
	f.self = f
	return f, nil
}

// Value returns a float64 when the box holds a number and the raw text
// otherwise.
func (f *NumberField) Value() (any, error) {
	raw := f.text()
	if n, ok := ParseNumber(raw); ok {
		return n, nil
	}
	return raw, nil
}

func (f *NumberField) overlayMarkup() (string, error) {
	raw := f.text()
	if n, ok := ParseNumber(raw); ok {
		return renderText(formatNumber(n)), nil
	}
	return renderText(raw), nil
}

// CurrencyField is a number field rendered as money.
type CurrencyField struct {
	NumberField
	format  FormatOptions
	handler dom.HandlerID
}

func newCurrencyField(p Probe) (Field, error) {
	input, err := singleInput(p)
	if err != nil {
		return nil, err
	}
	f := &CurrencyField{
		NumberField: NumberField{TextField{base: newBase(p.Desc, p.Env, VariantCurrency, p.Controls), Textbox: input}},
		format:      DefaultFormatOptions(),
	}
	f.self = f
	return f, nil
}

// FormatOptions returns the active formatting options.
func (f *CurrencyField) FormatOptions() FormatOptions {
	return f.format
}

// SetFormat replaces the formatting options. With AutoCorrect the text box is
// rewritten to the formatted value now and on every change; without it any
// earlier binding is removed.
func (f *CurrencyField) SetFormat(opts FormatOptions) error {
	f.format = opts
	if !opts.AutoCorrect {
		if f.handler != 0 {
			f.env.Doc.Off(f.handler)
			f.handler = 0
		}
		return f.sync()
	}
	if f.handler == 0 && f.env.Doc != nil {
		f.handler = f.env.Doc.On(f.Textbox, dom.EventChange, func(dom.Event) {
			_ = f.autoCorrect()
		})
	}
	return f.autoCorrect()
}

func (f *CurrencyField) autoCorrect() error {
	return f.SetValue(f.FormattedValue())
}

// FormattedValue renders the value with the currency symbol, e.g.
// "$1,234.50". Text that is not a number is returned unchanged.
func (f *CurrencyField) FormattedValue() string {
	raw := f.text()
	n, ok := ParseNumber(raw)
	if !ok {
		return raw
	}
	return FormatCurrency(n, f.format)
}

func (f *CurrencyField) overlayMarkup() (string, error) {
	return renderText(f.FormattedValue()), nil
}

// BooleanField wraps a yes/no checkbox.
type BooleanField struct {
	base
	Checkbox *goquery.Selection
}

func newBooleanField(p Probe) (Field, error) {
	input, err := singleInput(p)
	if err != nil {
		return nil, err
	}
	f := &BooleanField{base: newBase(p.Desc, p.Env, VariantBoolean, p.Controls), Checkbox: input}
	f.self = f
	return f, nil
}

func (f *BooleanField) Value() (any, error) {
	return dom.IsChecked(f.Checkbox), nil
}

func (f *BooleanField) SetValue(v any) error {
	checked, err := toBool(f.Name(), v)
	if err != nil {
		return err
	}
	dom.SetChecked(f.Checkbox, checked)
	return f.sync()
}

func (f *BooleanField) overlayMarkup() (string, error) {
	if dom.IsChecked(f.Checkbox) {
		return "Yes", nil
	}
	return "No", nil
}

// FileField is the name box of a document library item. The extension is
// rendered next to the box and cannot be edited.
type FileField struct {
	TextField
	Extension string
}

func newFileField(p Probe) (Field, error) {
	input, err := singleInput(p)
	if err != nil {
		return nil, err
	}
	f := &FileField{
		TextField: TextField{base: newBase(p.Desc, p.Env, VariantFile, p.Controls), Textbox: input},
		Extension: strings.TrimSpace(input.Parent().Text()),
	}
	f.self = f
	return f, nil
}

// Value returns the name with its extension.
func (f *FileField) Value() (any, error) {
	return f.text() + f.Extension, nil
}

// SetValue writes the base name. A trailing copy of the extension is dropped.
func (f *FileField) SetValue(v any) error {
	s, err := toString(f.Name(), v)
	if err != nil {
		return err
	}
	if f.Extension != "" {
		s = strings.TrimSuffix(s, f.Extension)
	}
	dom.SetVal(f.Textbox, s)
	return f.sync()
}

func (f *FileField) overlayMarkup() (string, error) {
	return renderText(f.text() + f.Extension), nil
}
