package hostsim

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-spform/pkg/dom"
)

const page = `<html><body>
<div id="lk">
<select id="lk_SelectCandidate" multiple="multiple"><option value="1" selected="selected">Alpha</option><option value="2">Bravo</option></select>
<button id="lk_AddButton">Add</button>
<button id="lk_RemoveButton">Remove</button>
<select id="lk_SelectResult" multiple="multiple"></select>
</div>
<span id="pe" class="ms-usereditor">
<div id="pe_upLevelDiv"></div>
<textarea id="pe_downlevelTextBox"></textarea>
<a id="pe_checkNames">check</a>
<input id="pe_hiddenSpanData" type="hidden"/>
</span>
<textarea id="body">plain</textarea><iframe id="body_iframe"></iframe>
<textarea id="other">no editor</textarea>
<div id="pp_TopSpan" class="sp-peoplepicker-topLevel">
<div id="pp_TopSpan_ResolvedList"></div>
<input id="pp_TopSpan_EditorInput" type="text"/>
<input id="pp_TopSpan_HiddenInput" type="hidden"/>
</div>
</body></html>`

func setup(t *testing.T) (*dom.Document, *Sim) {
	t.Helper()
	doc, err := dom.ParseString(page)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc, Install(doc)
}

func optionTexts(sel *goquery.Selection) []string {
	out := []string{}
	sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
		out = append(out, dom.OptionText(opt))
	})
	return out
}

func TestMultiLookupButtonsMoveOptions(t *testing.T) {
	doc, _ := setup(t)

	if ran := doc.Click(doc.ByID("lk_AddButton")); ran != 1 {
		t.Fatalf("expected one add handler, ran %d", ran)
	}
	if diff := cmp.Diff([]string{"Alpha"}, optionTexts(doc.ByID("lk_SelectResult"))); diff != "" {
		t.Fatalf("result list mismatch (-want +got):\n%s", diff)
	}
	if !dom.IsDisabled(doc.ByID("lk_AddButton")) {
		t.Fatalf("expected add button to be disabled after a click")
	}
	if ran := doc.Click(doc.ByID("lk_AddButton")); ran != 0 {
		t.Fatalf("disabled button should not run handlers")
	}

	dom.SetSelected(doc.ByID("lk_SelectResult").Find("option").First(), true)
	doc.Click(doc.ByID("lk_RemoveButton"))
	if diff := cmp.Diff([]string{"Bravo", "Alpha"}, optionTexts(doc.ByID("lk_SelectCandidate"))); diff != "" {
		t.Fatalf("candidate list mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckNamesResolvesKeys(t *testing.T) {
	doc, _ := setup(t)
	dom.SetVal(doc.ByID("pe_hiddenSpanData"), `DOMAIN\ann;DOMAIN\bob`)

	doc.Click(doc.ByID("pe_checkNames"))

	up := doc.ByID("pe_upLevelDiv")
	if got := up.Find("span.ms-entity-resolved").Length(); got != 2 {
		t.Fatalf("expected 2 resolved spans, got %d", got)
	}
	if got := up.Text(); got != `DOMAIN\ann; DOMAIN\bob` {
		t.Fatalf("unexpected editor text %q", got)
	}
}

func TestRichTextEditor(t *testing.T) {
	doc, sim := setup(t)
	rte := sim.Host().RichText

	if !rte.HasEditor("body") {
		t.Fatalf("expected editor for textarea with iframe")
	}
	if rte.HasEditor("other") {
		t.Fatalf("did not expect editor without iframe")
	}
	if got, _ := rte.Contents("body"); got != "plain" {
		t.Fatalf("expected textarea contents before transfer, got %q", got)
	}
	dom.SetVal(doc.ByID("body"), "<b>bold</b>")
	if err := rte.TransferTextArea("body"); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if got, _ := rte.Contents("body"); got != "<b>bold</b>" {
		t.Fatalf("expected transferred contents, got %q", got)
	}
}

func TestPeoplePicker(t *testing.T) {
	doc, sim := setup(t)
	people := sim.Host().People

	if _, ok := people.PeoplePicker("lk"); ok {
		t.Fatalf("did not expect a picker for a plain element")
	}
	picker, ok := people.PeoplePicker("pp_TopSpan")
	if !ok {
		t.Fatalf("expected picker")
	}
	if err := picker.AddUserKeys("ann; bob", false); err != nil {
		t.Fatalf("add keys: %v", err)
	}
	if err := picker.AddUserKeys("bob", false); err != nil {
		t.Fatalf("add keys: %v", err)
	}
	resolved := doc.ByID("pp_TopSpan_ResolvedList").Find("span.ms-entity-resolved")
	if resolved.Length() != 2 {
		t.Fatalf("expected duplicate keys to be skipped, got %d entries", resolved.Length())
	}
	hidden := dom.Val(doc.ByID("pp_TopSpan_HiddenInput"))
	want := `[{"Key":"ann","DisplayText":"ann","IsResolved":true},{"Key":"bob","DisplayText":"bob","IsResolved":true}]`
	if hidden != want {
		t.Fatalf("hidden input = %s", hidden)
	}

	if err := picker.AddUserKeys("carol", true); err != nil {
		t.Fatalf("search: %v", err)
	}
	if got := dom.Val(doc.ByID("pp_TopSpan_EditorInput")); got != "carol" {
		t.Fatalf("expected search text in editor input, got %q", got)
	}
}

func TestUninstallRemovesHandlers(t *testing.T) {
	doc, sim := setup(t)
	sim.Uninstall()
	if ran := doc.Click(doc.ByID("lk_AddButton")); ran != 0 {
		t.Fatalf("expected no handlers after uninstall, ran %d", ran)
	}
}
