package field

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-spform/pkg/dom"
	"github.com/goliatone/go-spform/pkg/host"
)

// ClassicUserField is the people editor of older pages: an editable div, a
// down-level text box, a hidden data field and a "check names" link, all
// keyed off the id of the span.ms-usereditor element.
type ClassicUserField struct {
	base
	Editor     *goquery.Selection
	UpLevel    *goquery.Selection
	DownLevel  *goquery.Selection
	CheckNames *goquery.Selection
	SpanData   *goquery.Selection
}

func newClassicUserField(p Probe) (Field, error) {
	spans := p.Controls.Find("span.ms-usereditor")
	if spans.Length() != 1 {
		return nil, structuralError(p.Desc.Name, "create", "1 span.ms-usereditor", "several")
	}
	id, _ := spans.Attr("id")
	if id == "" || p.Env.Doc == nil {
		return nil, structuralError(p.Desc.Name, "create", "people editor with id", "no id")
	}
	doc := p.Env.Doc
	f := &ClassicUserField{
		base:       newBase(p.Desc, p.Env, VariantUserClassic, p.Controls),
		Editor:     spans,
		UpLevel:    doc.ByID(id + "_upLevelDiv"),
		DownLevel:  doc.ByID(id + "_downlevelTextBox"),
		CheckNames: doc.ByID(id + "_checkNames"),
		SpanData:   doc.ByID(id + "_hiddenSpanData"),
	}
	if f.UpLevel.Length() == 0 {
		return nil, structuralError(p.Desc.Name, "create", id+"_upLevelDiv", "none")
	}
	f.self = f
	return f, nil
}

func (f *ClassicUserField) current() string {
	return strings.TrimSpace(f.UpLevel.Text())
}

// Value returns the text of the editable div.
func (f *ClassicUserField) Value() (any, error) {
	return f.current(), nil
}

// SetValue writes the keys into every editor surface and clicks
// "check names" so the page resolves them.
func (f *ClassicUserField) SetValue(v any) error {
	keys, err := userKeys(f.Name(), v)
	if err != nil {
		return err
	}
	f.UpLevel.SetText(keys)
	dom.SetVal(f.DownLevel, keys)
	dom.SetVal(f.SpanData, keys)
	f.env.Doc.Click(f.CheckNames)
	return f.sync()
}

func (f *ClassicUserField) overlayMarkup() (string, error) {
	return renderText(f.current()), nil
}

// ModernUserField delegates to the host's client people picker, found by the
// id of the control's top element.
type ModernUserField struct {
	base
	Picker       host.PeoplePicker
	PickerID     string
	ResolvedList *goquery.Selection
}

func newModernUserField(p Probe) (Field, error) {
	top := p.Controls.Children().First()
	id, _ := top.Attr("id")
	if id == "" {
		id, _ = p.Controls.Attr("id")
	}
	picker, ok := p.Env.Host.People.PeoplePicker(id)
	if !ok {
		return nil, structuralError(p.Desc.Name, "create", "people picker "+id, "none")
	}
	f := &ModernUserField{
		base:         newBase(p.Desc, p.Env, VariantUserModern, p.Controls),
		Picker:       picker,
		PickerID:     id,
		ResolvedList: p.Controls.Find(`[id$="_ResolvedList"]`).First(),
	}
	f.self = f
	return f, nil
}

func (f *ModernUserField) resolved() []string {
	var out []string
	f.ResolvedList.Find("span.ms-entity-resolved").Each(func(_ int, span *goquery.Selection) {
		out = append(out, span.Text())
	})
	return out
}

// Value joins the resolved entries with "; ", "" when none are resolved.
func (f *ModernUserField) Value() (any, error) {
	return strings.Join(f.resolved(), "; "), nil
}

// SetValue hands the keys to the picker for resolution.
func (f *ModernUserField) SetValue(v any) error {
	keys, err := userKeys(f.Name(), v)
	if err != nil {
		return err
	}
	if err := f.Picker.AddUserKeys(keys, false); err != nil {
		return err
	}
	return f.sync()
}

func (f *ModernUserField) overlayMarkup() (string, error) {
	return renderList(f.resolved()), nil
}

// userKeys accepts one key or a list of keys and joins them with ";".
func userKeys(name string, v any) (string, error) {
	keys, err := toStrings(name, v)
	if err != nil {
		return "", err
	}
	return strings.Join(keys, ";"), nil
}
