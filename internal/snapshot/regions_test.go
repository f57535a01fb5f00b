package snapshot

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"pagelens/internal/entity"
)

func regionEval(result map[string]any, err error) EvalFunc {
	return func(ctx context.Context, script string, arg any) (any, error) {
		return result, err
	}
}

func TestDetectRegionsRequiresContentsAndSidePane(t *testing.T) {
	tests := []struct {
		name   string
		result map[string]any
		want   []entity.RegionKey
	}{
		{
			name: "sidebar plus contents",
			result: map[string]any{
				"sidebar":  []string{"#sidebar"},
				"contents": []string{"#contents"},
			},
			want: []entity.RegionKey{entity.RegionSidebar, entity.RegionContents},
		},
		{
			name: "drawer plus contents",
			result: map[string]any{
				"contents": []string{"#contents"},
				"drawer":   []string{"#drawer"},
			},
			want: []entity.RegionKey{entity.RegionContents, entity.RegionDrawer},
		},
		{
			name: "all four panes in fixed order",
			result: map[string]any{
				"sidebar":  []string{"#sidebar"},
				"contents": []string{"#contents"},
				"drawer":   []string{"#drawer"},
				"fab":      []string{"button.fab"},
			},
			want: []entity.RegionKey{
				entity.RegionSidebar,
				entity.RegionContents,
				entity.RegionDrawer,
				entity.RegionFAB,
			},
		},
		{
			name: "contents alone is not a shell",
			result: map[string]any{
				"contents": []string{"#contents"},
			},
			want: nil,
		},
		{
			name: "sidebar without contents is not a shell",
			result: map[string]any{
				"sidebar": []string{"#sidebar"},
			},
			want: nil,
		},
		{
			name: "fab alone is not a shell",
			result: map[string]any{
				"fab": []string{"button.fab"},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCapture(entity.SnapshotOptions{}, fixedTree(""), regionEval(tt.result, nil), 100, zap.NewNop())

			regions := c.detectRegions(context.Background(), DefaultShell())

			if len(regions) != len(tt.want) {
				t.Fatalf("got %d regions, want %d", len(regions), len(tt.want))
			}

			for i, key := range tt.want {
				if regions[i].Key != key {
					t.Fatalf("regions[%d].Key = %q, want %q", i, regions[i].Key, key)
				}
			}
		})
	}
}

func TestDetectRegionsFailureDegrades(t *testing.T) {
	c := newCapture(entity.SnapshotOptions{}, fixedTree(""), regionEval(nil, errors.New("boom")), 100, zap.NewNop())

	if regions := c.detectRegions(context.Background(), DefaultShell()); regions != nil {
		t.Fatalf("got %v, want nil on query failure", regions)
	}
}

func TestCaptureRegionsSharedRefSpace(t *testing.T) {
	trees := map[string]string{
		"#sidebar":  `- button "Home"` + "\n",
		"#contents": `- button "Save"` + "\n" + `- button "Home"` + "\n",
	}
	tree := func(ctx context.Context, selector string) (string, error) {
		return trees[selector], nil
	}

	c := newCapture(entity.SnapshotOptions{}, tree, noEval, 100, zap.NewNop())

	regions := []entity.Region{
		{Key: entity.RegionSidebar, Title: "Sidebar", Selectors: []string{"#sidebar"}},
		{Key: entity.RegionContents, Title: "Contents", Selectors: []string{"#contents"}},
	}

	doc := c.captureRegions(context.Background(), regions)
	got := c.renderDocument(doc)

	want := `# Sidebar:
- button "Home" [ref=e1]

# Contents:
- button "Save" [ref=e2]
- button "Home" [ref=e3] [nth=1]`

	if got != want {
		t.Fatalf("rendered regions mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}

	if c.refs.Len() != 3 {
		t.Fatalf("refs.Len() = %d, want 3", c.refs.Len())
	}
}

func TestCaptureRegionsOmitsEmptyRegion(t *testing.T) {
	trees := map[string]string{
		"#sidebar":  "",
		"#contents": `- button "Save"` + "\n",
	}
	tree := func(ctx context.Context, selector string) (string, error) {
		return trees[selector], nil
	}

	c := newCapture(entity.SnapshotOptions{}, tree, noEval, 100, zap.NewNop())

	regions := []entity.Region{
		{Key: entity.RegionSidebar, Title: "Sidebar", Selectors: []string{"#sidebar"}},
		{Key: entity.RegionContents, Title: "Contents", Selectors: []string{"#contents"}},
	}

	doc := c.captureRegions(context.Background(), regions)
	got := c.renderDocument(doc)

	want := `# Contents:
- button "Save" [ref=e1]`

	if got != want {
		t.Fatalf("rendered regions mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}
