package dom

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Common event names.
const (
	EventChange = "change"
	EventClick  = "click"
)

// Event is passed to handlers when Trigger fires.
type Event struct {
	Type   string
	Target *goquery.Selection
}

// Handler reacts to an event on a bound element.
type Handler func(Event)

// HandlerID identifies a binding so it can be removed with Off.
type HandlerID int

type binding struct {
	id      HandlerID
	event   string
	handler Handler
}

// On binds fn to event on every element of sel. The returned id unbinds all of
// them at once.
func (d *Document) On(sel *goquery.Selection, event string, fn Handler) HandlerID {
	if sel == nil || fn == nil || event == "" {
		return 0
	}
	d.nextID++
	id := d.nextID
	for _, node := range sel.Nodes {
		d.handlers[node] = append(d.handlers[node], binding{id: id, event: event, handler: fn})
	}
	return id
}

// Off removes every binding created by the On call that returned id.
func (d *Document) Off(id HandlerID) {
	if id == 0 {
		return
	}
	for node, bindings := range d.handlers {
		kept := bindings[:0]
		for _, b := range bindings {
			if b.id != id {
				kept = append(kept, b)
			}
		}
		if len(kept) == 0 {
			delete(d.handlers, node)
			continue
		}
		d.handlers[node] = kept
	}
}

// Trigger runs the handlers bound to event on the first element of sel, in
// binding order, and reports how many ran. Click events are not delivered to
// disabled elements.
func (d *Document) Trigger(sel *goquery.Selection, event string) int {
	if sel == nil || sel.Length() == 0 {
		return 0
	}
	target := sel.First()
	if event == EventClick && IsDisabled(target) {
		return 0
	}
	node := target.Get(0)
	bindings := append([]binding(nil), d.handlers[node]...)
	ran := 0
	for _, b := range bindings {
		if b.event != event {
			continue
		}
		b.handler(Event{Type: event, Target: target})
		ran++
	}
	return ran
}

// Click triggers a click on the first element of sel.
func (d *Document) Click(sel *goquery.Selection) int {
	return d.Trigger(sel, EventClick)
}

// Bound reports whether any handler for event is bound to node.
func (d *Document) Bound(node *html.Node, event string) bool {
	for _, b := range d.handlers[node] {
		if b.event == event {
			return true
		}
	}
	return false
}
