package field

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/flosch/pongo2/v6"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-spform/pkg/dom"
)

// OverlayClass marks the read-only element placed after a control.
const OverlayClass = "spform-readonly"

const overlayIDPrefix = "spform-readonly-"

var (
	templatesOnce sync.Once
	hyperlinkTpl  *pongo2.Template
	linkTextTpl   *pongo2.Template
	templatesErr  error

	richTextPolicyOnce sync.Once
	richTextPolicy     *bluemonday.Policy
)

func newOverlay(controls *goquery.Selection) *goquery.Selection {
	return dom.InsertAfter(controls, "div", map[string]string{
		"class": OverlayClass,
		"id":    overlayIDPrefix + uuid.NewString(),
	})
}

func loadTemplates() error {
	templatesOnce.Do(func() {
		hyperlinkTpl, templatesErr = pongo2.FromString(`<a href="{{ url }}">{{ description }}</a>`)
		if templatesErr != nil {
			return
		}
		linkTextTpl, templatesErr = pongo2.FromString(`{{ url }}, {{ description }}`)
	})
	return templatesErr
}

// renderHyperlink renders a URL value for the overlay, escaping both parts.
func renderHyperlink(value URLValue, textOnly bool) (string, error) {
	if err := loadTemplates(); err != nil {
		return "", fmt.Errorf("spform: overlay templates: %w", err)
	}
	tpl := hyperlinkTpl
	if textOnly {
		tpl = linkTextTpl
	}
	out, err := tpl.Execute(pongo2.Context{
		"url":         value.URL,
		"description": value.Description,
	})
	if err != nil {
		return "", fmt.Errorf("spform: render hyperlink: %w", err)
	}
	return out, nil
}

// renderText escapes a plain value for the overlay.
func renderText(value string) string {
	return html.EscapeString(value)
}

// renderList joins values with "; " for multi-value overlays.
func renderList(values []string) string {
	return html.EscapeString(strings.Join(values, "; "))
}

// sanitizeRichText strips scripts and unsafe attributes from editor markup
// before it is shown in an overlay.
func sanitizeRichText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(richTextSanitizer().Sanitize(trimmed))
}

func richTextSanitizer() *bluemonday.Policy {
	richTextPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("color", "face", "size").OnElements("font")
		policy.AllowElements("font")
		policy.AllowStyles("color", "background-color", "font-weight", "font-style", "text-decoration", "text-align").Globally()
		richTextPolicy = policy
	})
	return richTextPolicy
}
