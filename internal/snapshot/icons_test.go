package snapshot

import (
	"testing"

	"pagelens/internal/entity"
)

func TestIsPUA(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{0xDFFF, false},
		{0xE000, true},
		{0xE5CD, true},
		{0xF8FF, true},
		{0xF900, false},
		{0xEFFFF, false},
		{0xF0000, true},
		{0xFFFFD, true},
		{0x100000, true},
		{0x10FFFD, true},
		{'a', false},
		{'木', false},
	}

	for _, tt := range tests {
		if got := isPUA(tt.r); got != tt.want {
			t.Errorf("isPUA(%#x) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestResolveIconLabel(t *testing.T) {
	tests := []struct {
		name      string
		label     string
		wantLabel string
		wantDescs []string
	}{
		{
			name:      "no icons",
			label:     "Save",
			wantLabel: "Save",
		},
		{
			name:      "single mapped glyph",
			label:     "",
			wantLabel: "<close>",
		},
		{
			name:      "two mapped glyphs",
			label:     " ",
			wantLabel: "<search> <menu>",
		},
		{
			name:      "unmapped glyph falls back to codepoint",
			label:     string(rune(0xF0156)),
			wantLabel: "<icon-u+f0156>",
		},
		{
			name:      "mapped plus unmapped falls back to first unmapped",
			label:     "" + string(rune(0xF0156)),
			wantLabel: "<icon-u+f0156>",
		},
		{
			name:      "mixed text keeps raw label",
			label:     "Send ",
			wantLabel: "Send ",
			wantDescs: []string{"send"},
		},
		{
			name:      "mixed text with unmapped glyph",
			label:     "Go " + string(rune(0xE999)),
			wantLabel: "Go " + string(rune(0xE999)),
			wantDescs: []string{"icon-u+e999"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotLabel, gotDescs := resolveIconLabel(tt.label)

			if gotLabel != tt.wantLabel {
				t.Errorf("label = %q, want %q", gotLabel, tt.wantLabel)
			}

			if len(gotDescs) != len(tt.wantDescs) {
				t.Fatalf("descs = %v, want %v", gotDescs, tt.wantDescs)
			}

			for i := range tt.wantDescs {
				if gotDescs[i] != tt.wantDescs[i] {
					t.Errorf("descs[%d] = %q, want %q", i, gotDescs[i], tt.wantDescs[i])
				}
			}
		})
	}
}

func TestIconDescTags(t *testing.T) {
	if got := iconDescTag([]string{"send"}); got != "[icon-desc=<send>]" {
		t.Errorf("iconDescTag = %q", got)
	}

	if got := iconDescsTag([]string{"home", "search"}); got != "[icon-descs=<home>, <search>]" {
		t.Errorf("iconDescsTag = %q", got)
	}
}

func TestAnnotatePlainLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "no glyphs unchanged",
			line: "plain text",
			want: "plain text",
		},
		{
			name: "mapped glyph annotated",
			line: " Home",
			want: " Home [icon-descs=<home>]",
		},
		{
			name: "several glyphs aggregated",
			line: " x ",
			want: " x  [icon-descs=<home>, <settings>]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := annotatePlainLine(tt.line); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIconLabelInRenderedEntry(t *testing.T) {
	input := `- button "` + "" + `"
- button "Send ` + "" + `"
`

	want := `- button "<close>" [ref=e1]
- button "Send ` + "" + `" [ref=e2] [icon-desc=<send>]`

	c, got := captureText(t, entity.SnapshotOptions{}, fixedTree(input))

	if got != want {
		t.Fatalf("rendered tree mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}

	// Addressability is preserved: the map keeps the raw glyph name.
	e1, ok := c.refs.Get("e1")
	if !ok {
		t.Fatal("ref e1 missing")
	}

	if e1.Name != "" {
		t.Fatalf("e1.Name = %q, want raw glyph", e1.Name)
	}
}
