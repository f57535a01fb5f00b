package snapshot

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"pagelens/internal/entity"
)

func TestCandidateScore(t *testing.T) {
	tests := []struct {
		name string
		cand entity.Candidate
		want int
	}{
		{"bare", entity.Candidate{}, 0},
		{"title only", entity.Candidate{HasTitle: true}, 16},
		{"aria only", entity.Candidate{HasAriaLabel: true}, 8},
		{"title shadows aria", entity.Candidate{HasTitle: true, HasAriaLabel: true}, 16},
		{"direct cursor", entity.Candidate{HasDirectCursorPointer: true}, 4},
		{"onclick", entity.Candidate{HasOnClick: true}, 2},
		{"tabindex", entity.Candidate{HasTabIndex: true}, 1},
		{
			"everything",
			entity.Candidate{
				HasTitle:               true,
				HasAriaLabel:           true,
				HasDirectCursorPointer: true,
				HasOnClick:             true,
				HasTabIndex:            true,
			},
			23,
		},
	}

	for _, tt := range tests {
		if got := candidateScore(tt.cand); got != tt.want {
			t.Errorf("%s: candidateScore = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestPathContains(t *testing.T) {
	tests := []struct {
		ancestor   string
		descendant string
		want       bool
	}{
		{"0.1", "0.1", true},
		{"0.1", "0.1.2", true},
		{"0.1", "0.1.2.3", true},
		{"0.1", "0.10", false},
		{"0.1", "0.2", false},
		{"0.1.2", "0.1", false},
	}

	for _, tt := range tests {
		if got := pathContains(tt.ancestor, tt.descendant); got != tt.want {
			t.Errorf("pathContains(%q, %q) = %v, want %v", tt.ancestor, tt.descendant, got, tt.want)
		}
	}
}

func TestDedupeWrapperAbsorbsInnerIcon(t *testing.T) {
	wrapper := entity.Candidate{
		Selector:         "div.menu-btn",
		Label:            "Open menu",
		Path:             "0.1",
		Depth:            2,
		Order:            0,
		HasTitle:         true,
		HasCursorPointer: true,
	}
	icon := entity.Candidate{
		Selector:         "div.menu-btn > span",
		Label:            "",
		Path:             "0.1.0",
		Depth:            3,
		Order:            1,
		HasCursorPointer: true,
	}

	got := dedupeCandidates([]entity.Candidate{wrapper, icon})

	if len(got) != 1 {
		t.Fatalf("accepted %d candidates, want 1", len(got))
	}

	if got[0].Selector != wrapper.Selector {
		t.Fatalf("accepted %q, want wrapper %q", got[0].Selector, wrapper.Selector)
	}
}

func TestDedupeTieBreaks(t *testing.T) {
	tests := []struct {
		name string
		a    entity.Candidate
		b    entity.Candidate
		want string
	}{
		{
			name: "both labeled keeps shallower",
			a:    entity.Candidate{Selector: "outer", Path: "0", Depth: 1, Order: 0, HasTitle: true},
			b:    entity.Candidate{Selector: "inner", Path: "0.0", Depth: 2, Order: 1, HasTitle: true},
			want: "outer",
		},
		{
			name: "unlabeled keeps deeper",
			a:    entity.Candidate{Selector: "outer", Path: "0", Depth: 1, Order: 0, HasCursorPointer: true},
			b:    entity.Candidate{Selector: "inner", Path: "0.0", Depth: 2, Order: 1, HasCursorPointer: true},
			want: "inner",
		},
		{
			name: "higher score wins regardless of depth",
			a:    entity.Candidate{Selector: "outer", Path: "0", Depth: 1, Order: 0, HasAriaLabel: true},
			b:    entity.Candidate{Selector: "inner", Path: "0.0", Depth: 2, Order: 1, HasTabIndex: true},
			want: "outer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dedupeCandidates([]entity.Candidate{tt.a, tt.b})

			if len(got) != 1 {
				t.Fatalf("accepted %d candidates, want 1", len(got))
			}

			if got[0].Selector != tt.want {
				t.Fatalf("accepted %q, want %q", got[0].Selector, tt.want)
			}
		})
	}
}

func TestDedupeEmitsInDiscoveryOrder(t *testing.T) {
	// Disjoint subtrees: all survive, and emission follows page order even
	// though scores would sort them differently.
	candidates := []entity.Candidate{
		{Selector: "a", Path: "0.0", Depth: 2, Order: 0, HasTabIndex: true},
		{Selector: "b", Path: "0.1", Depth: 2, Order: 1, HasTitle: true},
		{Selector: "c", Path: "0.2", Depth: 2, Order: 2, HasAriaLabel: true},
	}

	got := dedupeCandidates(candidates)

	if len(got) != 3 {
		t.Fatalf("accepted %d candidates, want 3", len(got))
	}

	for i, want := range []string{"a", "b", "c"} {
		if got[i].Selector != want {
			t.Fatalf("got[%d] = %q, want %q", i, got[i].Selector, want)
		}
	}
}

func TestCursorSectionAppendedToTree(t *testing.T) {
	tree := fixedTree(`- button "Save"` + "\n")
	eval := func(ctx context.Context, script string, arg any) (any, error) {
		return []entity.Candidate{
			{
				Selector:         "div.menu-btn",
				Label:            "Open menu",
				Path:             "0.1",
				Depth:            2,
				Order:            0,
				HasTitle:         true,
				HasCursorPointer: true,
				HasOnClick:       true,
			},
		}, nil
	}

	c := newCapture(entity.SnapshotOptions{Interactive: true, Cursor: true}, tree, eval, 100, zap.NewNop())
	doc := c.captureScope(context.Background(), "")
	got := c.renderDocument(doc)

	want := `- button "Save" [ref=e1]

# Cursor-interactive elements:
- clickable "Open menu" [ref=e2] [cursor:pointer] [onclick]`

	if got != want {
		t.Fatalf("rendered tree mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}

	e2, ok := c.refs.Get("e2")
	if !ok {
		t.Fatal("ref e2 missing from map")
	}

	if e2.Selector.Kind != entity.LocatorByCSS || e2.Selector.CSS != "div.menu-btn" {
		t.Fatalf("e2 selector = %+v, want css div.menu-btn", e2.Selector)
	}
}

func TestCursorStandaloneWhenTreeEmpty(t *testing.T) {
	eval := func(ctx context.Context, script string, arg any) (any, error) {
		return []entity.Candidate{
			{Selector: "span.x", Label: "x", Path: "0", Depth: 1, Order: 0, HasTabIndex: true},
		}, nil
	}

	c := newCapture(entity.SnapshotOptions{Interactive: true, Cursor: true}, fixedTree(""), eval, 100, zap.NewNop())
	doc := c.captureScope(context.Background(), "")
	got := c.renderDocument(doc)

	want := `- focusable "x" [ref=e1] [tabindex]`

	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestCursorQueryFailureDegrades(t *testing.T) {
	eval := func(ctx context.Context, script string, arg any) (any, error) {
		return nil, context.DeadlineExceeded
	}

	c := newCapture(entity.SnapshotOptions{Interactive: true, Cursor: true}, fixedTree(`- button "Save"`+"\n"), eval, 100, zap.NewNop())
	doc := c.captureScope(context.Background(), "")
	got := c.renderDocument(doc)

	want := `- button "Save" [ref=e1]`

	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}
