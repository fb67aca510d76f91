package field

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-spform/pkg/dom"
	"github.com/goliatone/go-spform/pkg/host"
)

// PlainNoteField is a multi-line plain text field.
type PlainNoteField struct {
	base
	Textarea *goquery.Selection
}

func newPlainNoteField(p Probe) (Field, error) {
	textarea := p.Controls.Find("textarea").First()
	if textarea.Length() == 0 {
		return nil, structuralError(p.Desc.Name, "create", "textarea", "none")
	}
	f := &PlainNoteField{base: newBase(p.Desc, p.Env, VariantNotePlain, p.Controls), Textarea: textarea}
	f.self = f
	return f, nil
}

func (f *PlainNoteField) Value() (any, error) {
	return dom.Val(f.Textarea), nil
}

func (f *PlainNoteField) SetValue(v any) error {
	s, err := toString(f.Name(), v)
	if err != nil {
		return err
	}
	dom.SetVal(f.Textarea, s)
	return f.sync()
}

func (f *PlainNoteField) overlayMarkup() (string, error) {
	return renderText(dom.Val(f.Textarea)), nil
}

// RichNoteField is a textarea driven by the host's rich-text editor. The
// editor surface holds the value; the textarea only feeds it.
type RichNoteField struct {
	base
	Textarea *goquery.Selection
	editor   host.RichTextEditor
	id       string
}

func newRichNoteField(p Probe) (Field, error) {
	textarea := p.Controls.Find("textarea").First()
	id, _ := textarea.Attr("id")
	if textarea.Length() == 0 || id == "" {
		return nil, structuralError(p.Desc.Name, "create", "textarea with id", "none")
	}
	if !p.Env.Host.HasRichText() {
		return nil, structuralError(p.Desc.Name, "create", "rich-text editor", "none")
	}
	f := &RichNoteField{
		base:     newBase(p.Desc, p.Env, VariantNoteRich, p.Controls),
		Textarea: textarea,
		editor:   p.Env.Host.RichText,
		id:       id,
	}
	f.self = f
	return f, nil
}

// Value returns the editor markup.
func (f *RichNoteField) Value() (any, error) {
	contents, err := f.editor.Contents(f.id)
	if err != nil {
		return nil, err
	}
	return contents, nil
}

// SetValue writes the textarea and asks the editor to pick it up.
func (f *RichNoteField) SetValue(v any) error {
	s, err := toString(f.Name(), v)
	if err != nil {
		return err
	}
	dom.SetVal(f.Textarea, s)
	if err := f.editor.TransferTextArea(f.id); err != nil {
		return err
	}
	return f.sync()
}

func (f *RichNoteField) overlayMarkup() (string, error) {
	contents, err := f.editor.Contents(f.id)
	if err != nil {
		return "", err
	}
	return sanitizeRichText(contents), nil
}

// EnhancedNoteField is the content-editable note editor. The markup lives in
// the editable div and is mirrored into a hidden input for postback.
type EnhancedNoteField struct {
	base
	Content *goquery.Selection
	Hidden  *goquery.Selection
}

func newEnhancedNoteField(p Probe) (Field, error) {
	hidden := p.Controls.Find(`input[type="hidden"]`).First()
	content := p.Controls.Find(`div[contenteditable="true"]`).First()
	if hidden.Length() == 0 || content.Length() == 0 {
		return nil, structuralError(p.Desc.Name, "create", "editable div and hidden input", "missing")
	}
	f := &EnhancedNoteField{
		base:    newBase(p.Desc, p.Env, VariantNoteEnhanced, p.Controls),
		Content: content,
		Hidden:  hidden,
	}
	f.self = f
	return f, nil
}

func (f *EnhancedNoteField) markup() (string, error) {
	return f.Content.Html()
}

// Value returns the inner markup of the editable div.
func (f *EnhancedNoteField) Value() (any, error) {
	markup, err := f.markup()
	if err != nil {
		return nil, err
	}
	return markup, nil
}

func (f *EnhancedNoteField) SetValue(v any) error {
	s, err := toString(f.Name(), v)
	if err != nil {
		return err
	}
	f.Content.SetHtml(s)
	dom.SetVal(f.Hidden, s)
	return f.sync()
}

func (f *EnhancedNoteField) overlayMarkup() (string, error) {
	markup, err := f.markup()
	if err != nil {
		return "", err
	}
	return sanitizeRichText(markup), nil
}
