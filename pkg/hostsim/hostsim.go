// Package hostsim emulates the client scripts a SharePoint page runs next to
// its list form, so fields that rely on them can be driven outside a browser:
// the add/remove buttons of multi lookups, the classic "check names" link,
// the rich-text iframe editor and the client people picker.
package hostsim

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-spform/pkg/dom"
	"github.com/goliatone/go-spform/pkg/host"
)

const (
	addButtonSuffix    = "_AddButton"
	removeButtonSuffix = "_RemoveButton"
	candidateSuffix    = "_SelectCandidate"
	resultSuffix       = "_SelectResult"
	checkNamesSuffix   = "_checkNames"
	iframeSuffix       = "_iframe"
)

// Sim is an installed emulation. It binds click handlers on the document and
// serves as the rich-text and people picker capabilities.
type Sim struct {
	doc      *dom.Document
	bindings []dom.HandlerID
	editors  map[string]string
}

// Install binds the emulated page scripts on doc.
func Install(doc *dom.Document) *Sim {
	s := &Sim{doc: doc, editors: make(map[string]string)}
	if doc == nil {
		return s
	}
	s.bindMultiLookups()
	s.bindCheckNames()
	return s
}

// Host returns the capabilities to hand to the catalog.
func (s *Sim) Host() host.Host {
	return host.Host{RichText: s, People: s}
}

// Uninstall removes every handler Install bound.
func (s *Sim) Uninstall() {
	for _, id := range s.bindings {
		s.doc.Off(id)
	}
	s.bindings = nil
}

func (s *Sim) on(sel *goquery.Selection, event string, fn dom.Handler) {
	if id := s.doc.On(sel, event, fn); id != 0 {
		s.bindings = append(s.bindings, id)
	}
}

// bindMultiLookups wires the add/remove buttons of every multi lookup. A click
// moves the selected options across and disables the button, as the page
// does once there is nothing left selected.
func (s *Sim) bindMultiLookups() {
	s.doc.Find(`[id$="` + addButtonSuffix + `"]`).Each(func(_ int, button *goquery.Selection) {
		prefix := strings.TrimSuffix(button.AttrOr("id", ""), addButtonSuffix)
		s.on(button, dom.EventClick, func(ev dom.Event) {
			s.moveSelected(s.doc.ByID(prefix+candidateSuffix), s.doc.ByID(prefix+resultSuffix))
			dom.SetDisabled(ev.Target, true)
		})
	})
	s.doc.Find(`[id$="` + removeButtonSuffix + `"]`).Each(func(_ int, button *goquery.Selection) {
		prefix := strings.TrimSuffix(button.AttrOr("id", ""), removeButtonSuffix)
		s.on(button, dom.EventClick, func(ev dom.Event) {
			s.moveSelected(s.doc.ByID(prefix+resultSuffix), s.doc.ByID(prefix+candidateSuffix))
			dom.SetDisabled(ev.Target, true)
		})
	})
}

func (s *Sim) moveSelected(from, to *goquery.Selection) {
	if from.Length() == 0 || to.Length() == 0 {
		return
	}
	from.Find("option").Each(func(_ int, opt *goquery.Selection) {
		if !dom.IsSelected(opt) {
			return
		}
		dom.SetSelected(opt, false)
		to.AppendSelection(opt)
	})
}

// bindCheckNames wires the classic people editor. A click resolves the keys
// typed in the hidden data, the down-level box or the editable div and writes
// them back as resolved entity spans.
func (s *Sim) bindCheckNames() {
	s.doc.Find(`[id$="` + checkNamesSuffix + `"]`).Each(func(_ int, link *goquery.Selection) {
		prefix := strings.TrimSuffix(link.AttrOr("id", ""), checkNamesSuffix)
		s.on(link, dom.EventClick, func(dom.Event) {
			s.checkNames(prefix)
		})
	})
}

func (s *Sim) checkNames(prefix string) {
	upLevel := s.doc.ByID(prefix + "_upLevelDiv")
	if upLevel.Length() == 0 {
		return
	}
	raw := dom.Val(s.doc.ByID(prefix + "_hiddenSpanData"))
	if raw == "" {
		raw = dom.Val(s.doc.ByID(prefix + "_downlevelTextBox"))
	}
	if raw == "" {
		raw = upLevel.Text()
	}
	keys := splitKeys(raw)
	upLevel.Empty()
	for i, key := range keys {
		if i > 0 {
			upLevel.AppendHtml("; ")
		}
		upLevel.AppendSelection(entitySpan(key))
	}
	dom.SetVal(s.doc.ByID(prefix+"_hiddenSpanData"), strings.Join(keys, "; "))
}

// HasEditor reports whether the textarea has an editor iframe next to it.
func (s *Sim) HasEditor(textareaID string) bool {
	return textareaID != "" && s.doc.ByID(textareaID+iframeSuffix).Length() > 0
}

// Contents returns the editor markup, the textarea value until something was
// transferred.
func (s *Sim) Contents(textareaID string) (string, error) {
	if contents, ok := s.editors[textareaID]; ok {
		return contents, nil
	}
	return dom.Val(s.doc.ByID(textareaID)), nil
}

// TransferTextArea copies the textarea value into the editor.
func (s *Sim) TransferTextArea(textareaID string) error {
	s.editors[textareaID] = dom.Val(s.doc.ByID(textareaID))
	return nil
}

// PeoplePicker finds the client picker whose top level element has id.
func (s *Sim) PeoplePicker(id string) (host.PeoplePicker, bool) {
	top := s.doc.ByID(id)
	if top.Length() == 0 {
		return nil, false
	}
	if !top.Is("div.sp-peoplepicker-topLevel") && !strings.HasSuffix(id, "_TopSpan") {
		return nil, false
	}
	return &picker{doc: s.doc, top: top}, true
}

type picker struct {
	doc *dom.Document
	top *goquery.Selection
}

type pickerEntity struct {
	Key         string `json:"Key"`
	DisplayText string `json:"DisplayText"`
	IsResolved  bool   `json:"IsResolved"`
}

// AddUserKeys resolves each key into the resolved list and records the
// entities in the hidden input. With search the keys are only typed into
// the editor input.
func (p *picker) AddUserKeys(keys string, search bool) error {
	if search {
		dom.SetVal(p.top.Find(`[id$="_EditorInput"]`).First(), keys)
		return nil
	}
	list := p.top.Find(`[id$="_ResolvedList"]`).First()
	var entities []pickerEntity
	list.Find("span.ms-entity-resolved").Each(func(_ int, span *goquery.Selection) {
		key := span.AttrOr("title", span.Text())
		entities = append(entities, pickerEntity{Key: key, DisplayText: span.Text(), IsResolved: true})
	})
	for _, key := range splitKeys(keys) {
		if containsKey(entities, key) {
			continue
		}
		wrapper := dom.NewElement("span", map[string]string{"class": "sp-peoplepicker-userSpan"}, "")
		wrapper.AppendSelection(entitySpan(key))
		list.AppendSelection(wrapper)
		entities = append(entities, pickerEntity{Key: key, DisplayText: key, IsResolved: true})
	}
	encoded, err := json.Marshal(entities)
	if err != nil {
		return err
	}
	dom.SetVal(p.top.Find(`[id$="_HiddenInput"]`).First(), string(encoded))
	return nil
}

func containsKey(entities []pickerEntity, key string) bool {
	for _, e := range entities {
		if e.Key == key {
			return true
		}
	}
	return false
}

func splitKeys(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ";") {
		if key := strings.TrimSpace(part); key != "" {
			out = append(out, key)
		}
	}
	return out
}

// entitySpan creates a detached resolved entity element for key.
func entitySpan(key string) *goquery.Selection {
	return dom.NewElement("span", map[string]string{"class": "ms-entity-resolved", "title": key}, key)
}
