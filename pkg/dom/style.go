package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// displayStashAttr keeps the inline display value an element had before it
// was hidden so Show can put it back.
const displayStashAttr = "data-spform-display"

// Hide sets display:none on every element of sel. The inline display value
// the element had before, "none" and "" included, is stashed so Show
// restores it. Hiding an element already hidden through Hide keeps the first
// stash.
func Hide(sel *goquery.Selection) {
	if sel == nil {
		return
	}
	sel.Each(func(_ int, el *goquery.Selection) {
		if _, stashed := el.Attr(displayStashAttr); stashed {
			return
		}
		decls := parseStyle(el.AttrOr("style", ""))
		current, _ := decls.get("display")
		el.SetAttr(displayStashAttr, current)
		if current == "none" {
			return
		}
		decls.set("display", "none")
		el.SetAttr("style", decls.String())
	})
}

// Show undoes Hide on every element of sel, putting back the stashed display
// value. Elements Hide never touched lose any inline display value.
func Show(sel *goquery.Selection) {
	if sel == nil {
		return
	}
	sel.Each(func(_ int, el *goquery.Selection) {
		decls := parseStyle(el.AttrOr("style", ""))
		if stashed, ok := el.Attr(displayStashAttr); ok {
			el.RemoveAttr(displayStashAttr)
			if stashed == "" {
				decls.remove("display")
			} else {
				decls.set("display", stashed)
			}
		} else {
			decls.remove("display")
		}
		if len(decls) == 0 {
			el.RemoveAttr("style")
			return
		}
		el.SetAttr("style", decls.String())
	})
}

// IsHidden reports whether the first element of sel is hidden through its
// inline style.
func IsHidden(sel *goquery.Selection) bool {
	if sel == nil || sel.Length() == 0 {
		return false
	}
	value, _ := parseStyle(sel.First().AttrOr("style", "")).get("display")
	return value == "none"
}

type declaration struct {
	property string
	value    string
}

type declarations []declaration

func parseStyle(raw string) declarations {
	var out declarations
	for _, part := range strings.Split(raw, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		out = append(out, declaration{property: prop, value: strings.TrimSpace(value)})
	}
	return out
}

func (d declarations) get(property string) (string, bool) {
	for _, decl := range d {
		if decl.property == property {
			return strings.ToLower(decl.value), true
		}
	}
	return "", false
}

func (d *declarations) set(property, value string) {
	for i := range *d {
		if (*d)[i].property == property {
			(*d)[i].value = value
			return
		}
	}
	*d = append(*d, declaration{property: property, value: value})
}

func (d *declarations) remove(property string) {
	out := (*d)[:0]
	for _, decl := range *d {
		if decl.property != property {
			out = append(out, decl)
		}
	}
	*d = out
}

func (d declarations) String() string {
	parts := make([]string, 0, len(d))
	for _, decl := range d {
		parts = append(parts, decl.property+": "+decl.value)
	}
	return strings.Join(parts, "; ")
}
