package prompt

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSelectionHelpers(t *testing.T) {
	options := []string{"Alpha", "Bravo", "Charlie"}

	if got := indexOf(options, "Bravo"); got != 1 {
		t.Fatalf("indexOf = %d", got)
	}
	if got := indexOf(options, "Zulu"); got != -1 {
		t.Fatalf("expected -1 for a miss, got %d", got)
	}
	if diff := cmp.Diff([]int{0, 2}, indicesOf(options, []string{"Charlie", "Alpha"})); diff != "" {
		t.Fatalf("indicesOf mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Charlie", "Alpha"}, defaultsFromIndices(options, []int{2, 7, 0})); diff != "" {
		t.Fatalf("defaultsFromIndices mismatch (-want +got):\n%s", diff)
	}
}

func TestInfoWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	d := NewSurveyDriver(WithOutput(&buf), WithPageSize(5))
	if d.pageSize != 5 {
		t.Fatalf("page size not applied")
	}
	if err := d.Info(context.Background(), "skipping Rating"); err != nil {
		t.Fatalf("info: %v", err)
	}
	if buf.String() != "skipping Rating\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestDriverHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := NewSurveyDriver()
	if _, err := d.Input(ctx, InputConfig{Message: "x"}); err == nil {
		t.Fatalf("expected the cancelled context to stop the prompt")
	}
	if err := d.Info(ctx, "x"); err == nil {
		t.Fatalf("expected the cancelled context to stop info")
	}
}
