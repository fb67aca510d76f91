package field

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-spform/pkg/dom"
)

// DropdownLookupField is a single lookup rendered as a select whose option
// values are list item ids.
type DropdownLookupField struct {
	base
	Dropdown *goquery.Selection
}

func newDropdownLookupField(p Probe) (Field, error) {
	selects := p.Controls.Find("select")
	if selects.Length() != 1 {
		return nil, structuralError(p.Desc.Name, "create", "1 select", strconv.Itoa(selects.Length())+" selects")
	}
	f := &DropdownLookupField{base: newBase(p.Desc, p.Env, VariantLookupDropdown, p.Controls), Dropdown: selects}
	f.self = f
	return f, nil
}

func (f *DropdownLookupField) current() string {
	opt := dom.SelectedOption(f.Dropdown)
	if opt == nil || opt.Length() == 0 {
		return ""
	}
	return dom.OptionText(opt)
}

// Value returns the text of the selected option.
func (f *DropdownLookupField) Value() (any, error) {
	return f.current(), nil
}

// SetValue selects by item id when given an int and by option text when given
// a string.
func (f *DropdownLookupField) SetValue(v any) error {
	id, text, byID, err := lookupKey(f.Name(), v)
	if err != nil {
		return err
	}
	want := text
	if byID {
		want = strconv.Itoa(id)
	}
	var match *goquery.Selection
	options := f.Dropdown.Find("option")
	options.EachWithBreak(func(_ int, opt *goquery.Selection) bool {
		got := dom.OptionText(opt)
		if byID {
			got = dom.OptionValue(opt)
		}
		if got == want {
			match = opt
			return false
		}
		return true
	})
	if match == nil {
		return valueNotFound(f.Name(), v)
	}
	options.Each(func(_ int, opt *goquery.Selection) {
		dom.SetSelected(opt, opt.Get(0) == match.Get(0))
	})
	return f.sync()
}

// Options lists the option texts.
func (f *DropdownLookupField) Options() []string {
	var out []string
	f.Dropdown.Find("option").Each(func(_ int, opt *goquery.Selection) {
		out = append(out, dom.OptionText(opt))
	})
	return out
}

func (f *DropdownLookupField) overlayMarkup() (string, error) {
	return renderText(f.current()), nil
}

// LookupChoice is one entry of an autocomplete lookup.
type LookupChoice struct {
	ID   int
	Text string
}

// ParseLookupChoices reads the choices attribute of an autocomplete lookup,
// "(None)|0|Alpha|1|Bravo|2". Pipes inside a text are doubled; ids never
// contain one. Entries whose id is not a number are dropped.
func ParseLookupChoices(raw string) []LookupChoice {
	if raw == "" {
		return nil
	}
	var out []LookupChoice
	for rest := raw; rest != ""; {
		var text string
		text, rest = cutChoiceText(rest)
		idText, next, _ := strings.Cut(rest, "|")
		rest = next
		id, err := strconv.Atoi(idText)
		if err != nil {
			continue
		}
		out = append(out, LookupChoice{ID: id, Text: text})
	}
	return out
}

// cutChoiceText reads one text up to the first single pipe, turning doubled
// pipes back into one.
func cutChoiceText(s string) (string, string) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '|' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 < len(s) && s[i+1] == '|' {
			b.WriteByte('|')
			i++
			continue
		}
		return b.String(), s[i+1:]
	}
	return b.String(), ""
}

// AutocompleteLookupField is a lookup rendered as a text box with suggestions.
// The selected item id is kept in a hidden input named by the box's optHid
// attribute.
type AutocompleteLookupField struct {
	base
	Textbox       *goquery.Selection
	HiddenTextbox *goquery.Selection
}

func newAutocompleteLookupField(p Probe) (Field, error) {
	inputs := p.Controls.Find(`input:not([type="hidden"])`)
	if inputs.Length() != 1 {
		return nil, structuralError(p.Desc.Name, "create", "1 text input", strconv.Itoa(inputs.Length())+" inputs")
	}
	f := &AutocompleteLookupField{base: newBase(p.Desc, p.Env, VariantLookupAutocomplete, p.Controls), Textbox: inputs}
	if hid, ok := inputs.Attr("opthid"); ok && hid != "" && p.Env.Doc != nil {
		f.HiddenTextbox = p.Env.Doc.ByID(hid)
	}
	f.self = f
	return f, nil
}

// Choices parses the available entries.
func (f *AutocompleteLookupField) Choices() []LookupChoice {
	raw, _ := f.Textbox.Attr("choices")
	return ParseLookupChoices(raw)
}

// Options lists the entry texts.
func (f *AutocompleteLookupField) Options() []string {
	choices := f.Choices()
	out := make([]string, 0, len(choices))
	for _, c := range choices {
		out = append(out, c.Text)
	}
	return out
}

// Value returns the text in the box.
func (f *AutocompleteLookupField) Value() (any, error) {
	return dom.Val(f.Textbox), nil
}

// SetValue picks an entry by item id (int) or text (string) and writes both
// the visible text and the hidden id. Nothing changes when no entry matches.
func (f *AutocompleteLookupField) SetValue(v any) error {
	id, text, byID, err := lookupKey(f.Name(), v)
	if err != nil {
		return err
	}
	for _, c := range f.Choices() {
		if (byID && c.ID == id) || (!byID && c.Text == text) {
			dom.SetVal(f.Textbox, c.Text)
			if f.HiddenTextbox != nil {
				dom.SetVal(f.HiddenTextbox, strconv.Itoa(c.ID))
			}
			return f.sync()
		}
	}
	if byID {
		return valueNotFound(f.Name(), id)
	}
	return valueNotFound(f.Name(), text)
}

func (f *AutocompleteLookupField) overlayMarkup() (string, error) {
	return renderText(dom.Val(f.Textbox)), nil
}

// MultiLookupField is a multi lookup rendered as a candidate list, a result
// list and add/remove buttons. Values move between the lists by clicking the
// buttons, which the host page handles.
type MultiLookupField struct {
	base
	Candidates   *goquery.Selection
	Selections   *goquery.Selection
	AddButton    *goquery.Selection
	RemoveButton *goquery.Selection
}

func newMultiLookupField(p Probe) (Field, error) {
	selects := p.Controls.Find("select")
	if selects.Length() != 2 {
		return nil, structuralError(p.Desc.Name, "create", "2 selects", strconv.Itoa(selects.Length())+" selects")
	}
	buttons := p.Controls.Find("button")
	if buttons.Length() == 0 {
		buttons = p.Controls.Find(`input[type="button"]`)
	}
	if buttons.Length() < 2 {
		return nil, structuralError(p.Desc.Name, "create", "2 buttons", strconv.Itoa(buttons.Length())+" buttons")
	}
	if p.Env.Doc == nil {
		return nil, structuralError(p.Desc.Name, "create", "document", "nil")
	}
	f := &MultiLookupField{
		base:         newBase(p.Desc, p.Env, VariantLookupMulti, p.Controls),
		Candidates:   selects.Eq(0),
		Selections:   selects.Eq(1),
		AddButton:    buttons.Eq(0),
		RemoveButton: buttons.Eq(1),
	}
	f.self = f
	return f, nil
}

func (f *MultiLookupField) selected() []string {
	out := []string{}
	f.Selections.Find("option").Each(func(_ int, opt *goquery.Selection) {
		out = append(out, dom.OptionText(opt))
	})
	return out
}

// Value returns the texts of the result list in list order.
func (f *MultiLookupField) Value() (any, error) {
	return f.selected(), nil
}

// SetValue adds one value, or each value of a list, to the result list.
func (f *MultiLookupField) SetValue(v any) error {
	return f.each(v, true)
}

// Remove moves one value, or each value of a list, back to the candidates.
func (f *MultiLookupField) Remove(v any) error {
	return f.each(v, false)
}

// Options lists the texts of both lists, candidates first.
func (f *MultiLookupField) Options() []string {
	var out []string
	for _, list := range []*goquery.Selection{f.Candidates, f.Selections} {
		list.Find("option").Each(func(_ int, opt *goquery.Selection) {
			out = append(out, dom.OptionText(opt))
		})
	}
	return out
}

func (f *MultiLookupField) each(v any, add bool) error {
	switch t := v.(type) {
	case []string:
		for _, item := range t {
			if err := f.move(item, add); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for _, item := range t {
			if err := f.move(item, add); err != nil {
				return err
			}
		}
		return nil
	case []int:
		for _, item := range t {
			if err := f.move(item, add); err != nil {
				return err
			}
		}
		return nil
	}
	return f.move(v, add)
}

// move selects the matching option in the source list and clicks the button.
// The click happens even without a match, leaving the source list
// deselected, before ValueNotFound is returned.
func (f *MultiLookupField) move(v any, add bool) error {
	id, text, byID, err := lookupKey(f.Name(), v)
	if err != nil {
		return err
	}
	source, button := f.Candidates, f.AddButton
	if !add {
		source, button = f.Selections, f.RemoveButton
	}
	want := text
	if byID {
		want = strconv.Itoa(id)
	}
	matched := false
	source.Find("option").Each(func(_ int, opt *goquery.Selection) {
		got := dom.OptionText(opt)
		if byID {
			got = dom.OptionValue(opt)
		}
		hit := got == want
		dom.SetSelected(opt, hit)
		matched = matched || hit
	})
	dom.SetDisabled(button, false)
	f.env.Doc.Click(button)
	if err := f.sync(); err != nil {
		return err
	}
	if !matched {
		return valueNotFound(f.Name(), v)
	}
	return nil
}

func (f *MultiLookupField) overlayMarkup() (string, error) {
	return renderList(f.selected()), nil
}
