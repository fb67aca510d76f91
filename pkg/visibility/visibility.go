// Package visibility toggles the rows that make up a form field. A field owns
// its label row and, on survey layouts, a separate controls row; both are
// always shown or hidden together.
package visibility

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-spform/pkg/dom"
)

// Rows are the row elements of one field. Controls is nil outside survey
// layouts.
type Rows struct {
	Label    *goquery.Selection
	Controls *goquery.Selection
}

// Show undoes Hide, restoring the display value each row had before it. A row
// that was already hidden when Hide ran stays hidden.
func Show(rows Rows) {
	Toggle(rows, true)
}

// Hide hides every row.
func Hide(rows Rows) {
	Toggle(rows, false)
}

// Toggle shows or hides the rows as one unit.
func Toggle(rows Rows, show bool) {
	apply := dom.Hide
	if show {
		apply = dom.Show
	}
	apply(rows.Label)
	if rows.Controls != nil {
		apply(rows.Controls)
	}
}

// Visible reports whether the label row is visible. On survey layouts the
// controls row must be visible too.
func Visible(rows Rows) bool {
	if rows.Label == nil || dom.IsHidden(rows.Label) {
		return false
	}
	if rows.Controls != nil && dom.IsHidden(rows.Controls) {
		return false
	}
	return true
}
