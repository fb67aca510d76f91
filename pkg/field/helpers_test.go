package field

import (
	"errors"
	"fmt"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-spform/pkg/dom"
	"github.com/goliatone/go-spform/pkg/host"
	"github.com/goliatone/go-spform/pkg/kind"
)

// row renders one standard form row whose control cell carries marker.
func row(name, marker, controls string) string {
	return fmt.Sprintf(`<html><body><table class="ms-formtable"><tr id="label-row">
<td class="ms-formlabel"><h3 class="ms-standardheader"><nobr>%s</nobr></h3></td>
<td class="ms-formbody"><!-- FieldName="%s" FieldType="%s" -->%s</td>
</tr></table></body></html>`, name, name, marker, controls)
}

type fixture struct {
	doc   *dom.Document
	desc  *Descriptor
	field Field
}

func describe(t *testing.T, markup string) (*dom.Document, *Descriptor) {
	t.Helper()
	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	labelCell := doc.Find("td.ms-formlabel").First()
	controlsCell := doc.Find("td.ms-formbody").First()
	k, marker := kind.DetectNode(controlsCell.Get(0))
	desc := &Descriptor{
		Name:         labelCell.Children().First().Text(),
		Label:        labelCell.Children().First(),
		LabelCell:    labelCell,
		LabelRow:     labelCell.Parent(),
		ControlsCell: controlsCell,
		Kind:         k,
		Marker:       marker,
	}
	return doc, desc
}

func build(t *testing.T, markup string, h host.Host) fixture {
	t.Helper()
	doc, desc := describe(t, markup)
	f, err := desc.Resolve(Env{Doc: doc, Host: h})
	if err != nil {
		t.Fatalf("resolve %s: %v", desc.Name, err)
	}
	return fixture{doc: doc, desc: desc, field: f}
}

func mustValue(t *testing.T, f Field) any {
	t.Helper()
	v, err := f.Value()
	if err != nil {
		t.Fatalf("value %s: %v", f.Name(), err)
	}
	return v
}

func mustSet(t *testing.T, f Field, v any) {
	t.Helper()
	if err := f.SetValue(v); err != nil {
		t.Fatalf("set %s=%v: %v", f.Name(), v, err)
	}
}

func expectKind(t *testing.T, err error, target *Error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", target.Kind)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected %s error, got %v", target.Kind, err)
	}
}

func overlayHTML(t *testing.T, f Field) string {
	t.Helper()
	ro, ok := f.(interface{ Overlay() *goquery.Selection })
	if !ok || ro.Overlay() == nil {
		t.Fatalf("%s has no overlay", f.Name())
	}
	out, err := ro.Overlay().Html()
	if err != nil {
		t.Fatalf("overlay html: %v", err)
	}
	return out
}
