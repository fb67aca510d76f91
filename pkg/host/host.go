// Package host declares the narrow surfaces a host platform exposes to the
// field engine: the classic rich-text iframe editor and the modern client
// people picker. Both are optional; a nil capability means the page does not
// provide it and the engine picks a variant that does not need it.
package host

// RichTextEditor is the classic iframe editor attached to a note textarea.
type RichTextEditor interface {
	// HasEditor reports whether an editor surface is attached to the
	// textarea with the given id.
	HasEditor(textareaID string) bool
	// Contents returns the editor surface markup for the textarea.
	Contents(textareaID string) (string, error)
	// TransferTextArea copies the textarea value into the editor surface.
	TransferTextArea(textareaID string) error
}

// PeoplePicker is a single modern people picker instance.
type PeoplePicker interface {
	// AddUserKeys resolves and adds the semicolon separated user keys. When
	// search is true the picker runs its suggestion search instead of
	// resolving directly.
	AddUserKeys(keys string, search bool) error
}

// PeoplePickers looks pickers up by the id of their top level element.
type PeoplePickers interface {
	PeoplePicker(id string) (PeoplePicker, bool)
}

// Host bundles the optional capabilities of the page.
type Host struct {
	RichText RichTextEditor
	People   PeoplePickers
}

// HasRichText reports whether a rich-text editor capability is present.
func (h Host) HasRichText() bool {
	return h.RichText != nil
}

// HasPeoplePickers reports whether the modern people picker capability is
// present.
func (h Host) HasPeoplePickers() bool {
	return h.People != nil
}
