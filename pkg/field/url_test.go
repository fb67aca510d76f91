package field

import (
	"testing"

	"github.com/goliatone/go-spform/pkg/host"
)

const urlControls = `<span dir="none">
<span class="ms-formdescription">Type the Web address:</span><br/>
<input id="u_UrlFieldUrl" type="text" value="http://"/><br/>
<span class="ms-formdescription">Type the description:</span><br/>
<input id="u_UrlFieldDescription" type="text" value=""/>
</span>`

func TestURLFieldRoundTripAndOverlay(t *testing.T) {
	fx := build(t, row("Link", "SPFieldURL", urlControls), host.Host{})
	link := fx.field.(*URLField)

	want := URLValue{URL: "https://example.com/?a=1&b=2", Description: "Example <site>"}
	mustSet(t, link, want)
	if got := mustValue(t, link); got != want {
		t.Fatalf("round trip failed: %+v", got)
	}

	if err := link.MakeReadOnly(); err != nil {
		t.Fatalf("read-only: %v", err)
	}
	wantHTML := `<a href="https://example.com/?a=1&amp;b=2">Example &lt;site&gt;</a>`
	if got := overlayHTML(t, link); got != wantHTML {
		t.Fatalf("overlay = %q, want %q", got, wantHTML)
	}

	if err := link.MakeReadOnly(WithTextOnly()); err != nil {
		t.Fatalf("read-only text: %v", err)
	}
	if got := overlayHTML(t, link); got != "https://example.com/?a=1&amp;b=2, Example &lt;site&gt;" {
		t.Fatalf("text overlay = %q", got)
	}

	mustSet(t, link, []string{"https://go.dev", "Go"})
	if got := overlayHTML(t, link); got != "https://go.dev, Go" {
		t.Fatalf("text only must stick across refreshes, got %q", got)
	}
}

func TestURLFieldNeedsTwoInputs(t *testing.T) {
	doc, desc := describe(t, row("Link", "SPFieldURL", `<span><input type="text"/></span>`))
	_, err := desc.Resolve(Env{Doc: doc})
	expectKind(t, err, ErrStructural)
}
