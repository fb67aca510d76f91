package catalog

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-spform/pkg/dom"
	"github.com/goliatone/go-spform/pkg/field"
	"github.com/goliatone/go-spform/pkg/kind"
	"github.com/goliatone/go-spform/pkg/testsupport"
)

func fixture(t *testing.T, name string) *dom.Document {
	t.Helper()
	return testsupport.LoadDocument(t, filepath.Join("..", "..", "testdata", name))
}

func TestCatalogScansStandardForm(t *testing.T) {
	cat := New(fixture(t, "newform.html"))

	names, err := cat.Names()
	if err != nil {
		t.Fatalf("names: %v", err)
	}
	want := []string{"Title", "Priority", "Budget", "Due Date", "Complete", "Website", "Project", "Notes", "Rating"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	survey, err := cat.IsSurvey()
	if err != nil || survey {
		t.Fatalf("expected standard layout, got survey=%v err=%v", survey, err)
	}

	kinds := map[string]kind.Kind{}
	descs, err := cat.Descriptors()
	if err != nil {
		t.Fatalf("descriptors: %v", err)
	}
	for name, desc := range descs {
		kinds[name] = desc.Kind
	}
	wantKinds := map[string]kind.Kind{
		"Title":    kind.Text,
		"Priority": kind.Choice,
		"Budget":   kind.Currency,
		"Due Date": kind.DateTime,
		"Complete": kind.Boolean,
		"Website":  kind.URL,
		"Project":  kind.Lookup,
		"Notes":    kind.Note,
		"Rating":   kind.Unknown,
	}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}

	title, err := cat.Descriptor("Title")
	if err != nil {
		t.Fatalf("descriptor: %v", err)
	}
	if !title.Required || title.Survey() {
		t.Fatalf("unexpected title descriptor: required=%v survey=%v", title.Required, title.Survey())
	}
	rating, _ := cat.Descriptor("Rating")
	if rating.Marker != "SPFieldRatingScale" {
		t.Fatalf("expected raw marker to be kept, got %q", rating.Marker)
	}
}

func TestCatalogLookupIsCaseSensitive(t *testing.T) {
	cat := New(fixture(t, "newform.html"))

	_, err := cat.Descriptor("title")
	if !errors.Is(err, field.ErrUnknownFieldName) {
		t.Fatalf("expected unknown field name, got %v", err)
	}
	_, err = cat.Field("Attachments")
	if !errors.Is(err, field.ErrUnknownFieldName) {
		t.Fatalf("attachments row must not be catalogued, got %v", err)
	}
}

func TestCatalogFieldIsCached(t *testing.T) {
	cat := New(fixture(t, "newform.html"))

	first, err := cat.Field("Priority")
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	second, err := cat.Field("Priority")
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	if first != second {
		t.Fatalf("expected the same field instance")
	}
	if first.Variant() != field.VariantChoiceDropdown {
		t.Fatalf("unexpected variant %s", first.Variant())
	}

	if err := cat.Rebuild(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	third, err := cat.Field("Priority")
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	if third == first {
		t.Fatalf("expected rebuild to drop cached fields")
	}
}

func TestCatalogFieldsReportsEveryRow(t *testing.T) {
	cat := New(fixture(t, "newform.html"))

	fields, err := cat.Fields()
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if len(fields) != 9 {
		t.Fatalf("expected 9 fields, got %d", len(fields))
	}
	_, err = fields["Rating"].Value()
	if !errors.Is(err, field.ErrNotImplemented) {
		t.Fatalf("expected the unknown row to be unsupported, got %v", err)
	}
	if _, err := fields["Due Date"].Value(); err != nil {
		t.Fatalf("due date: %v", err)
	}
}

func TestCatalogShowHideWithoutField(t *testing.T) {
	cat := New(fixture(t, "newform.html"))

	if err := cat.Hide("Notes"); err != nil {
		t.Fatalf("hide: %v", err)
	}
	visible, err := cat.Visible("Notes")
	if err != nil || visible {
		t.Fatalf("expected notes hidden, got visible=%v err=%v", visible, err)
	}
	desc, _ := cat.Descriptor("Notes")
	if _, ok := desc.Cached(); ok {
		t.Fatalf("hide must not construct the field")
	}
	if err := cat.Show("Notes"); err != nil {
		t.Fatalf("show: %v", err)
	}
	if visible, _ := cat.Visible("Notes"); !visible {
		t.Fatalf("expected notes visible again")
	}
	if err := cat.Hide("Missing"); !errors.Is(err, field.ErrUnknownFieldName) {
		t.Fatalf("expected unknown field name, got %v", err)
	}
}

func TestCatalogSurveyLayout(t *testing.T) {
	doc := fixture(t, "survey.html")
	cat := New(doc)

	survey, err := cat.IsSurvey()
	if err != nil || !survey {
		t.Fatalf("expected survey layout, got survey=%v err=%v", survey, err)
	}
	desc, err := cat.Descriptor("How satisfied are you?")
	if err != nil {
		t.Fatalf("descriptor: %v", err)
	}
	if !desc.Required || !desc.Survey() || desc.Kind != kind.Choice {
		t.Fatalf("unexpected descriptor: %+v", desc)
	}

	f, err := cat.Field("How satisfied are you?")
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	if err := f.SetValue("Somewhat"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := f.Value(); got != "Somewhat" {
		t.Fatalf("unexpected value %v", got)
	}

	if err := cat.Hide("Comments"); err != nil {
		t.Fatalf("hide: %v", err)
	}
	if !dom.IsHidden(doc.ByID("q2-label")) || !dom.IsHidden(doc.ByID("q2-controls")) {
		t.Fatalf("expected both survey rows hidden")
	}
	if dom.IsHidden(doc.ByID("q1-controls")) {
		t.Fatalf("other rows must stay visible")
	}
}

func TestCatalogDuplicateNames(t *testing.T) {
	markup := `<table class="ms-formtable">
<tr><td class="ms-formlabel"><h3>Title</h3></td><td class="ms-formbody"><!-- FieldType="SPFieldText" --><span><input id="first" type="text"/></span></td></tr>
<tr><td class="ms-formlabel"><h3>Title</h3></td><td class="ms-formbody"><!-- FieldType="SPFieldNote" --><span><textarea id="second"></textarea></span></td></tr>
</table>`
	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	desc, err := New(doc).Descriptor("Title")
	if err != nil {
		t.Fatalf("descriptor: %v", err)
	}
	if desc.Kind != kind.Note {
		t.Fatalf("expected the last row to win, got %s", desc.Kind)
	}

	strict := New(doc, WithStrictNames())
	if err := strict.Build(); !errors.Is(err, field.ErrDuplicateFieldName) {
		t.Fatalf("expected duplicate field name, got %v", err)
	}
	if _, err := strict.Names(); err == nil {
		t.Fatalf("a failed build must not leave the catalog built")
	}
}

func TestCatalogCustomSelectors(t *testing.T) {
	markup := `<table class="custom-form">
<tr><td class="label"><h3>Code</h3></td><td><!-- FieldType="SPFieldText" --><span><input type="text" value="X1"/></span></td></tr>
</table>`
	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cat := New(doc, WithSelectors("table.custom-form td.label", ""))

	f, err := cat.Field("Code")
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	if got, _ := f.Value(); got != "X1" {
		t.Fatalf("unexpected value %v", got)
	}
}

func TestCatalogInvalidate(t *testing.T) {
	doc := fixture(t, "newform.html")
	cat := New(doc)
	if err := cat.Build(); err != nil {
		t.Fatalf("build: %v", err)
	}
	doc.ByID("Title_field").Closest("tr").Remove()

	names, _ := cat.Names()
	if names[0] != "Title" {
		t.Fatalf("expected the built catalog to be kept until invalidated")
	}
	cat.Invalidate()
	names, _ = cat.Names()
	if names[0] != "Priority" {
		t.Fatalf("expected a rescan after invalidate, got %v", names)
	}
}

func TestCatalogRequiresDocument(t *testing.T) {
	if err := New(nil).Build(); err == nil {
		t.Fatalf("expected an error without a document")
	}
}
