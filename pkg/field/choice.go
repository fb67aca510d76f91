package field

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-spform/pkg/dom"
)

// FillIn is the free-text escape of a choice field: a toggle (radio or
// checkbox) and the text box it enables.
type FillIn struct {
	Toggle  *goquery.Selection
	Textbox *goquery.Selection
}

// detectFillIn finds the fill-in pair. It is present when the control has more
// than one input and the last one is a text box; the toggle sits right before
// it.
func detectFillIn(controls *goquery.Selection) *FillIn {
	inputs := controls.Find("input")
	n := inputs.Length()
	if n < 2 || dom.InputType(inputs.Eq(n-1)) != "text" {
		return nil
	}
	return &FillIn{Toggle: inputs.Eq(n - 2), Textbox: inputs.Eq(n - 1)}
}

func (c *FillIn) active() bool {
	return c != nil && dom.IsChecked(c.Toggle)
}

func (c *FillIn) text() string {
	return dom.Val(c.Textbox)
}

func (c *FillIn) set(value string) {
	dom.SetChecked(c.Toggle, true)
	dom.SetVal(c.Textbox, value)
}

// option pairs a label text with the input it describes.
type option struct {
	key   string
	input *goquery.Selection
}

// pairLabels matches the inputs selected by selector with the control's labels
// in document order.
func pairLabels(p Probe, selector string) ([]option, error) {
	inputs := p.Controls.Find(selector)
	labels := p.Controls.Find("label")
	if labels.Length() < inputs.Length() {
		return nil, structuralError(p.Desc.Name, "create",
			strconv.Itoa(inputs.Length())+" labels", strconv.Itoa(labels.Length())+" labels")
	}
	out := make([]option, 0, inputs.Length())
	inputs.Each(func(i int, input *goquery.Selection) {
		out = append(out, option{key: labels.Eq(i).Text(), input: input})
	})
	return out, nil
}

func findOption(options []option, key string) (option, bool) {
	for _, opt := range options {
		if opt.key == key {
			return opt, true
		}
	}
	return option{}, false
}

func optionKeys(options []option) []string {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		out = append(out, opt.key)
	}
	return out
}

// DropdownChoiceField is a single choice rendered as a select, optionally
// with a fill-in value.
type DropdownChoiceField struct {
	base
	Dropdown *goquery.Selection
	FillIn   *FillIn
}

func newDropdownChoiceField(p Probe) (Field, error) {
	selects := p.Controls.Find("select")
	if selects.Length() != 1 {
		return nil, structuralError(p.Desc.Name, "create", "1 select", strconv.Itoa(selects.Length())+" selects")
	}
	f := &DropdownChoiceField{
		base:     newBase(p.Desc, p.Env, VariantChoiceDropdown, p.Controls),
		Dropdown: selects,
		FillIn:   detectFillIn(p.Controls),
	}
	f.self = f
	return f, nil
}

func (f *DropdownChoiceField) current() string {
	if f.FillIn.active() {
		return f.FillIn.text()
	}
	return dom.Val(f.Dropdown)
}

func (f *DropdownChoiceField) Value() (any, error) {
	return f.current(), nil
}

func (f *DropdownChoiceField) SetValue(v any) error {
	s, err := toString(f.Name(), v)
	if err != nil {
		return err
	}
	if f.hasOption(s) {
		dom.SetVal(f.Dropdown, s)
		f.deactivateFillIn()
		return f.sync()
	}
	if f.FillIn == nil {
		return valueNotFound(f.Name(), s)
	}
	f.FillIn.set(s)
	return f.sync()
}

// deactivateFillIn checks the dropdown's own radio so the fill-in toggle is
// released; without one the toggle is simply cleared.
func (f *DropdownChoiceField) deactivateFillIn() {
	if f.FillIn == nil {
		return
	}
	toggle := f.FillIn.Toggle.Get(0)
	var other *goquery.Selection
	f.Controls().Find(`input[type="radio"]`).EachWithBreak(func(_ int, radio *goquery.Selection) bool {
		if radio.Get(0) != toggle {
			other = radio
			return false
		}
		return true
	})
	if other != nil {
		dom.SetChecked(other, true)
	}
	dom.SetChecked(f.FillIn.Toggle, false)
}

func (f *DropdownChoiceField) hasOption(value string) bool {
	found := false
	f.Dropdown.Find("option").EachWithBreak(func(_ int, opt *goquery.Selection) bool {
		found = dom.OptionValue(opt) == value
		return !found
	})
	return found
}

// Options lists the option values of the dropdown.
func (f *DropdownChoiceField) Options() []string {
	var out []string
	f.Dropdown.Find("option").Each(func(_ int, opt *goquery.Selection) {
		out = append(out, dom.OptionValue(opt))
	})
	return out
}

// FillInAllowed reports whether free text is accepted.
func (f *DropdownChoiceField) FillInAllowed() bool {
	return f.FillIn != nil
}

func (f *DropdownChoiceField) overlayMarkup() (string, error) {
	return renderText(f.current()), nil
}

// RadioChoiceField is a single choice rendered as radio buttons.
type RadioChoiceField struct {
	base
	buttons []option
	FillIn  *FillIn
}

func newRadioChoiceField(p Probe) (Field, error) {
	buttons, err := pairLabels(p, `input[type="radio"]`)
	if err != nil {
		return nil, err
	}
	fill := detectFillIn(p.Controls)
	if fill != nil && len(buttons) > 0 {
		buttons = buttons[:len(buttons)-1]
	}
	f := &RadioChoiceField{
		base:    newBase(p.Desc, p.Env, VariantChoiceRadio, p.Controls),
		buttons: buttons,
		FillIn:  fill,
	}
	f.self = f
	return f, nil
}

func (f *RadioChoiceField) current() string {
	for _, opt := range f.buttons {
		if dom.IsChecked(opt.input) {
			return opt.key
		}
	}
	if f.FillIn.active() {
		return f.FillIn.text()
	}
	return ""
}

// Value returns the checked label, the fill-in text, or "" when nothing is
// checked.
func (f *RadioChoiceField) Value() (any, error) {
	return f.current(), nil
}

func (f *RadioChoiceField) SetValue(v any) error {
	s, err := toString(f.Name(), v)
	if err != nil {
		return err
	}
	if opt, ok := findOption(f.buttons, s); ok {
		dom.SetChecked(opt.input, true)
		if f.FillIn != nil {
			dom.SetChecked(f.FillIn.Toggle, false)
		}
		return f.sync()
	}
	if f.FillIn == nil {
		return valueNotFound(f.Name(), s)
	}
	for _, opt := range f.buttons {
		dom.SetChecked(opt.input, false)
	}
	f.FillIn.set(s)
	return f.sync()
}

// Options lists the radio labels, without the fill-in.
func (f *RadioChoiceField) Options() []string {
	return optionKeys(f.buttons)
}

// FillInAllowed reports whether free text is accepted.
func (f *RadioChoiceField) FillInAllowed() bool {
	return f.FillIn != nil
}

func (f *RadioChoiceField) overlayMarkup() (string, error) {
	return renderText(f.current()), nil
}

// CheckboxChoiceField is a multi choice rendered as checkboxes.
type CheckboxChoiceField struct {
	base
	boxes  []option
	FillIn *FillIn
}

func newCheckboxChoiceField(p Probe) (Field, error) {
	boxes, err := pairLabels(p, `input[type="checkbox"]`)
	if err != nil {
		return nil, err
	}
	fill := detectFillIn(p.Controls)
	if fill != nil && len(boxes) > 0 {
		fill.Toggle = boxes[len(boxes)-1].input
		boxes = boxes[:len(boxes)-1]
	}
	f := &CheckboxChoiceField{
		base:   newBase(p.Desc, p.Env, VariantChoiceCheckbox, p.Controls),
		boxes:  boxes,
		FillIn: fill,
	}
	f.self = f
	return f, nil
}

func (f *CheckboxChoiceField) checked() []string {
	out := []string{}
	for _, opt := range f.boxes {
		if dom.IsChecked(opt.input) {
			out = append(out, opt.key)
		}
	}
	if f.FillIn.active() {
		out = append(out, f.FillIn.text())
	}
	return out
}

// Value returns the checked labels in declaration order, followed by the
// fill-in text when it is active.
func (f *CheckboxChoiceField) Value() (any, error) {
	return f.checked(), nil
}

// SetValue checks each given value; a string or []string is accepted. Values
// outside the option set go to the fill-in, at most one of them.
func (f *CheckboxChoiceField) SetValue(v any) error {
	values, err := toStrings(f.Name(), v)
	if err != nil {
		return err
	}
	var boxes []option
	var extra []string
	for _, value := range values {
		if opt, ok := findOption(f.boxes, value); ok {
			boxes = append(boxes, opt)
			continue
		}
		if f.FillIn == nil {
			return valueNotFound(f.Name(), value)
		}
		extra = append(extra, value)
	}
	if len(extra) > 1 {
		return validationError(f.Name(), "only one fill-in value can be set", strings.Join(extra, "; "))
	}
	for _, opt := range boxes {
		dom.SetChecked(opt.input, true)
	}
	if len(extra) == 1 {
		f.FillIn.set(extra[0])
	}
	return f.sync()
}

// SetChecked checks or unchecks a single value. Unchecking a value that is
// only present as fill-in text releases the fill-in.
func (f *CheckboxChoiceField) SetChecked(value string, checked bool) error {
	if opt, ok := findOption(f.boxes, value); ok {
		dom.SetChecked(opt.input, checked)
		return f.sync()
	}
	if f.FillIn == nil {
		return valueNotFound(f.Name(), value)
	}
	if checked {
		f.FillIn.set(value)
		return f.sync()
	}
	if f.FillIn.active() && f.FillIn.text() == value {
		dom.SetChecked(f.FillIn.Toggle, false)
		dom.SetVal(f.FillIn.Textbox, "")
		return f.sync()
	}
	return valueNotFound(f.Name(), value)
}

// Options lists the checkbox labels, without the fill-in.
func (f *CheckboxChoiceField) Options() []string {
	return optionKeys(f.boxes)
}

// FillInAllowed reports whether free text is accepted.
func (f *CheckboxChoiceField) FillInAllowed() bool {
	return f.FillIn != nil
}

func (f *CheckboxChoiceField) overlayMarkup() (string, error) {
	return renderList(f.checked()), nil
}
