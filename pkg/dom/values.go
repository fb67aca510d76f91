package dom

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// InputType reports the lower-cased type of an <input>, defaulting to "text"
// the way browsers do.
func InputType(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	t := strings.ToLower(strings.TrimSpace(sel.First().AttrOr("type", "")))
	if t == "" {
		return "text"
	}
	return t
}

// Val reads the current value of a form control: the value attribute of an
// input, the text of a textarea, or the selected option of a select.
func Val(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	el := sel.First()
	switch goquery.NodeName(el) {
	case "textarea":
		return el.Text()
	case "select":
		opt := SelectedOption(el)
		if opt.Length() == 0 {
			return ""
		}
		return OptionValue(opt)
	case "input":
		value, ok := el.Attr("value")
		if !ok {
			switch InputType(el) {
			case "checkbox", "radio":
				return "on"
			}
		}
		return value
	default:
		return el.AttrOr("value", "")
	}
}

// SetVal writes value into a form control. For selects the option whose value
// matches becomes the only selected one; false is reported when no option
// matched, leaving the select with nothing selected.
func SetVal(sel *goquery.Selection, value string) bool {
	if sel == nil || sel.Length() == 0 {
		return false
	}
	el := sel.First()
	switch goquery.NodeName(el) {
	case "textarea":
		el.SetText(value)
		return true
	case "select":
		matched := false
		el.Find("option").Each(func(_ int, opt *goquery.Selection) {
			if !matched && OptionValue(opt) == value {
				opt.SetAttr("selected", "selected")
				matched = true
				return
			}
			opt.RemoveAttr("selected")
		})
		return matched
	default:
		el.SetAttr("value", value)
		return true
	}
}

// HasOption reports whether the first select of sel has an option with the
// given value.
func HasOption(sel *goquery.Selection, value string) bool {
	if sel == nil || sel.Length() == 0 {
		return false
	}
	found := false
	sel.First().Find("option").EachWithBreak(func(_ int, opt *goquery.Selection) bool {
		found = OptionValue(opt) == value
		return !found
	})
	return found
}

// SelectedOption returns the selected <option> of a single-select element,
// falling back to the first option as a browser would.
func SelectedOption(sel *goquery.Selection) *goquery.Selection {
	opts := sel.First().Find("option")
	selected := opts.FilterFunction(func(_ int, opt *goquery.Selection) bool {
		return IsSelected(opt)
	})
	if selected.Length() > 0 {
		return selected.First()
	}
	if _, multiple := sel.First().Attr("multiple"); multiple {
		return selected
	}
	return opts.First()
}

// OptionValue returns the value attribute of an option or its text when the
// attribute is missing.
func OptionValue(opt *goquery.Selection) string {
	if value, ok := opt.First().Attr("value"); ok {
		return value
	}
	return OptionText(opt)
}

// OptionText returns the display text of an option.
func OptionText(opt *goquery.Selection) string {
	return strings.TrimSpace(opt.First().Text())
}

// IsSelected reports whether an option carries the selected attribute.
func IsSelected(opt *goquery.Selection) bool {
	_, ok := opt.First().Attr("selected")
	return ok
}

// SetSelected toggles the selected attribute on an option.
func SetSelected(opt *goquery.Selection, selected bool) {
	if selected {
		opt.SetAttr("selected", "selected")
		return
	}
	opt.RemoveAttr("selected")
}

// IsChecked reports whether a checkbox or radio is checked.
func IsChecked(sel *goquery.Selection) bool {
	if sel == nil || sel.Length() == 0 {
		return false
	}
	_, ok := sel.First().Attr("checked")
	return ok
}

// SetChecked checks or unchecks a checkbox or radio. Checking a radio
// unchecks the other radios sharing its name in the same tree.
func SetChecked(sel *goquery.Selection, checked bool) {
	if sel == nil || sel.Length() == 0 {
		return
	}
	el := sel.First()
	if !checked {
		el.RemoveAttr("checked")
		return
	}
	if InputType(el) == "radio" {
		if name, ok := el.Attr("name"); ok && name != "" {
			self := el.Get(0)
			Wrap(treeRoot(self)).Find(`input[type="radio"]`).Each(func(_ int, other *goquery.Selection) {
				if other.Get(0) != self && other.AttrOr("name", "") == name {
					other.RemoveAttr("checked")
				}
			})
		}
	}
	el.SetAttr("checked", "checked")
}

// IsDisabled reports whether the element carries the disabled attribute.
func IsDisabled(sel *goquery.Selection) bool {
	if sel == nil || sel.Length() == 0 {
		return false
	}
	_, ok := sel.First().Attr("disabled")
	return ok
}

// SetDisabled toggles the disabled attribute.
func SetDisabled(sel *goquery.Selection, disabled bool) {
	if sel == nil {
		return
	}
	if disabled {
		sel.SetAttr("disabled", "disabled")
		return
	}
	sel.RemoveAttr("disabled")
}

func treeRoot(node *html.Node) *html.Node {
	for node.Parent != nil {
		node = node.Parent
	}
	return node
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
