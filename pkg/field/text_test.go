package field

import (
	"testing"

	"github.com/goliatone/go-spform/pkg/dom"
	"github.com/goliatone/go-spform/pkg/host"
)

func TestTextFieldRoundTrip(t *testing.T) {
	fx := build(t, row("Title", "SPFieldText", `<span dir="none"><input type="text" value="hello" class="ms-long"/><br/></span>`), host.Host{})

	if fx.field.Variant() != VariantText {
		t.Fatalf("expected text variant, got %s", fx.field.Variant())
	}
	if got := mustValue(t, fx.field); got != "hello" {
		t.Fatalf("unexpected initial value %v", got)
	}
	mustSet(t, fx.field, "world")
	if got := mustValue(t, fx.field); got != "world" {
		t.Fatalf("round trip failed, got %v", got)
	}
	mustSet(t, fx.field, 42)
	if got := mustValue(t, fx.field); got != "42" {
		t.Fatalf("expected ints to be written as text, got %v", got)
	}
	expectKind(t, fx.field.SetValue(struct{}{}), ErrUnsupportedValue)
}

func TestTextFieldRequiresOneInput(t *testing.T) {
	doc, desc := describe(t, row("Title", "SPFieldText", `<span><input/><input/></span>`))
	_, err := desc.Resolve(Env{Doc: doc})
	expectKind(t, err, ErrStructural)
	if _, cached := desc.Cached(); cached {
		t.Fatalf("failed construction must not be cached")
	}
}

func TestNumberField(t *testing.T) {
	fx := build(t, row("Count", "SPFieldNumber", `<span><input type="text" value="1,234.5"/></span>`), host.Host{})

	if got := mustValue(t, fx.field); got != 1234.5 {
		t.Fatalf("expected parsed number, got %v", got)
	}
	mustSet(t, fx.field, 17.25)
	if got := mustValue(t, fx.field); got != 17.25 {
		t.Fatalf("round trip failed, got %v", got)
	}
	mustSet(t, fx.field, "n/a")
	if got := mustValue(t, fx.field); got != "n/a" {
		t.Fatalf("expected raw text for non numbers, got %v", got)
	}
}

func TestCurrencyFieldFormatting(t *testing.T) {
	fx := build(t, row("Price", "SPFieldCurrency", `<span><input type="text" value="1234.5"/></span>`), host.Host{})
	cur := fx.field.(*CurrencyField)

	if got := cur.FormattedValue(); got != "$1,234.50" {
		t.Fatalf("FormattedValue() = %q", got)
	}
	if err := cur.MakeReadOnly(); err != nil {
		t.Fatalf("read-only: %v", err)
	}
	if got := overlayHTML(t, cur); got != "$1,234.50" {
		t.Fatalf("overlay = %q", got)
	}

	mustSet(t, cur, 99)
	if got := overlayHTML(t, cur); got != "$99.00" {
		t.Fatalf("overlay not refreshed after SetValue, got %q", got)
	}
}

func TestCurrencyFieldAutoCorrect(t *testing.T) {
	fx := build(t, row("Price", "SPFieldCurrency", `<span><input type="text" value="1234.5"/></span>`), host.Host{})
	cur := fx.field.(*CurrencyField)

	opts := DefaultFormatOptions()
	opts.AutoCorrect = true
	if err := cur.SetFormat(opts); err != nil {
		t.Fatalf("set format: %v", err)
	}
	if got := dom.Val(cur.Textbox); got != "$1,234.50" {
		t.Fatalf("expected auto-correct to run once on bind, got %q", got)
	}

	dom.SetVal(cur.Textbox, "5000")
	fx.doc.Trigger(cur.Textbox, dom.EventChange)
	if got := dom.Val(cur.Textbox); got != "$5,000.00" {
		t.Fatalf("expected change to re-format, got %q", got)
	}
	if got := mustValue(t, cur); got != 5000.0 {
		t.Fatalf("formatted text should still parse, got %v", got)
	}

	opts.AutoCorrect = false
	if err := cur.SetFormat(opts); err != nil {
		t.Fatalf("set format: %v", err)
	}
	dom.SetVal(cur.Textbox, "7")
	if ran := fx.doc.Trigger(cur.Textbox, dom.EventChange); ran != 0 {
		t.Fatalf("expected handler to be unbound, %d ran", ran)
	}
}

func TestBooleanFieldUsesCheckedState(t *testing.T) {
	fx := build(t, row("Active", "SPFieldBoolean", `<span><input type="checkbox"/></span>`), host.Host{})

	if got := mustValue(t, fx.field); got != false {
		t.Fatalf("expected unchecked box to read false, got %v", got)
	}
	mustSet(t, fx.field, true)
	if got := mustValue(t, fx.field); got != true {
		t.Fatalf("round trip failed, got %v", got)
	}
	mustSet(t, fx.field, "no")
	if got := mustValue(t, fx.field); got != false {
		t.Fatalf("expected \"no\" to uncheck, got %v", got)
	}
	expectKind(t, fx.field.SetValue("maybe"), ErrValidation)
}

func TestFileFieldExtension(t *testing.T) {
	fx := build(t, row("Name", "SPFieldFile", `<span><input type="text" value="report"/>.docx</span>`), host.Host{})
	file := fx.field.(*FileField)

	if file.Extension != ".docx" {
		t.Fatalf("unexpected extension %q", file.Extension)
	}
	if got := mustValue(t, file); got != "report.docx" {
		t.Fatalf("unexpected value %v", got)
	}
	mustSet(t, file, "summary.docx")
	if got := dom.Val(file.Textbox); got != "summary" {
		t.Fatalf("expected extension to be stripped from the box, got %q", got)
	}
	if got := mustValue(t, file); got != "summary.docx" {
		t.Fatalf("unexpected value %v", got)
	}
}
