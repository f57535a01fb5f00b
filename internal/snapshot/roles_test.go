package snapshot

import "testing"

func TestClassifyRole(t *testing.T) {
	tests := []struct {
		role string
		want roleClass
	}{
		{"button", classInteractive},
		{"Button", classInteractive},
		{"textbox", classInteractive},
		{"treeitem", classInteractive},
		{"heading", classContent},
		{"listitem", classContent},
		{"navigation", classContent},
		{"generic", classStructural},
		{"list", classStructural},
		{"presentation", classStructural},
		{"text", classOther},
		{"img", classOther},
		{"", classOther},
	}

	for _, tt := range tests {
		if got := classifyRole(tt.role); got != tt.want {
			t.Errorf("classifyRole(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestParseTreeLine(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want treeLine
	}{
		{
			name: "named interactive entry",
			raw:  `- button "Save"`,
			want: treeLine{kind: lineEntry, depth: 0, role: "button", class: classInteractive, name: "Save", hasName: true},
		},
		{
			name: "nested entry with suffix",
			raw:  `    - heading "Stats" [level=2]`,
			want: treeLine{kind: lineEntry, depth: 2, role: "heading", class: classContent, name: "Stats", hasName: true, suffix: " [level=2]"},
		},
		{
			name: "unnamed structural with inline content",
			raw:  `  - generic: hello`,
			want: treeLine{kind: lineEntry, depth: 1, role: "generic", class: classStructural, suffix: ": hello"},
		},
		{
			name: "escaped quote in name",
			raw:  `- link "say \"hi\""`,
			want: treeLine{kind: lineEntry, depth: 0, role: "link", class: classInteractive, name: `say "hi"`, hasName: true},
		},
		{
			name: "empty quoted name",
			raw:  `- textbox ""`,
			want: treeLine{kind: lineEntry, depth: 0, role: "textbox", class: classInteractive, name: "", hasName: true},
		},
		{
			name: "unicode name",
			raw:  `- button "Сохранить"`,
			want: treeLine{kind: lineEntry, depth: 0, role: "button", class: classInteractive, name: "Сохранить", hasName: true},
		},
		{
			name: "metadata url line",
			raw:  `  - /url: https://example.com`,
			want: treeLine{kind: lineMeta},
		},
		{
			name: "metadata without dash",
			raw:  `  /placeholder: Search`,
			want: treeLine{kind: lineMeta},
		},
		{
			name: "unknown role passes through",
			raw:  `- text "hello"`,
			want: treeLine{kind: linePlain},
		},
		{
			name: "malformed line passes through",
			raw:  `this is not an entry`,
			want: treeLine{kind: linePlain},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTreeLine(tt.raw)

			if got.kind != tt.want.kind {
				t.Fatalf("kind = %v, want %v", got.kind, tt.want.kind)
			}

			if got.kind != lineEntry {
				return
			}

			if got.depth != tt.want.depth {
				t.Errorf("depth = %d, want %d", got.depth, tt.want.depth)
			}

			if got.role != tt.want.role {
				t.Errorf("role = %q, want %q", got.role, tt.want.role)
			}

			if got.class != tt.want.class {
				t.Errorf("class = %v, want %v", got.class, tt.want.class)
			}

			if got.name != tt.want.name {
				t.Errorf("name = %q, want %q", got.name, tt.want.name)
			}

			if got.hasName != tt.want.hasName {
				t.Errorf("hasName = %v, want %v", got.hasName, tt.want.hasName)
			}

			if got.suffix != tt.want.suffix {
				t.Errorf("suffix = %q, want %q", got.suffix, tt.want.suffix)
			}
		})
	}
}

func TestRefWorthy(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`- button "Save"`, true},
		{`- button`, true},
		{`- textbox ""`, true},
		{`- heading "Title"`, true},
		{`- heading`, false},
		{`- listitem ""`, false},
		{`- generic "Named"`, false},
		{`- list`, false},
	}

	for _, tt := range tests {
		if got := parseTreeLine(tt.raw).refWorthy(); got != tt.want {
			t.Errorf("refWorthy(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestHasInlineContent(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`- generic: hello`, true},
		{`- generic:`, false},
		{`- generic`, false},
		{`- table "Stats": data`, true},
	}

	for _, tt := range tests {
		if got := parseTreeLine(tt.raw).hasInlineContent(); got != tt.want {
			t.Errorf("hasInlineContent(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
