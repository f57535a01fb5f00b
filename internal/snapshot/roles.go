package snapshot

import (
	"regexp"
	"strings"
)

// Role taxonomy. The sets are closed: anything outside them is passed
// through as plain text with no ref.
var interactiveRoles = map[string]struct{}{
	"button":           {},
	"link":             {},
	"textbox":          {},
	"checkbox":         {},
	"radio":            {},
	"combobox":         {},
	"listbox":          {},
	"menuitem":         {},
	"menuitemcheckbox": {},
	"menuitemradio":    {},
	"option":           {},
	"searchbox":        {},
	"slider":           {},
	"spinbutton":       {},
	"switch":           {},
	"tab":              {},
	"treeitem":         {},
}

// Content roles are ref-worthy only when they carry a name.
var contentRoles = map[string]struct{}{
	"heading":      {},
	"cell":         {},
	"gridcell":     {},
	"columnheader": {},
	"rowheader":    {},
	"listitem":     {},
	"article":      {},
	"region":       {},
	"main":         {},
	"navigation":   {},
}

// Structural roles never get refs and are collapsible in compact mode.
var structuralRoles = map[string]struct{}{
	"generic":      {},
	"group":        {},
	"list":         {},
	"table":        {},
	"row":          {},
	"rowgroup":     {},
	"grid":         {},
	"treegrid":     {},
	"menu":         {},
	"menubar":      {},
	"toolbar":      {},
	"tablist":      {},
	"tree":         {},
	"directory":    {},
	"document":     {},
	"application":  {},
	"presentation": {},
	"none":         {},
}

type roleClass int

const (
	classOther roleClass = iota
	classInteractive
	classContent
	classStructural
)

func classifyRole(role string) roleClass {
	role = strings.ToLower(role)

	if _, ok := interactiveRoles[role]; ok {
		return classInteractive
	}

	if _, ok := contentRoles[role]; ok {
		return classContent
	}

	if _, ok := structuralRoles[role]; ok {
		return classStructural
	}

	return classOther
}

type lineKind int

const (
	linePlain lineKind = iota
	lineMeta
	lineEntry
)

// treeLine is one parsed line of the engine's accessibility-tree text.
// Grammar: <indent>- <role>[ "<name>"][suffix]. Indentation is two spaces
// per nesting level. Lines whose token begins with "/" are metadata
// (e.g. a URL annotation under a link).
type treeLine struct {
	kind    lineKind
	raw     string
	indent  string
	depth   int
	role    string
	class   roleClass
	name    string
	hasName bool
	// suffix is everything after the role/name, e.g. ` [level=1]` or
	// `: inline text`.
	suffix string
}

// The grammar is a fixed contract with the upstream engine's textual
// format; treat it as a small parser, not ad hoc string matching.
var entryPattern = regexp.MustCompile(`^([ \t]*)- ([A-Za-z]+)( "((?:[^"\\]|\\.)*)")?(.*)$`)

var metaPattern = regexp.MustCompile(`^[ \t]*(- )?/`)

func parseTreeLine(raw string) treeLine {
	if metaPattern.MatchString(raw) {
		return treeLine{kind: lineMeta, raw: raw}
	}

	m := entryPattern.FindStringSubmatch(raw)
	if m == nil {
		return treeLine{kind: linePlain, raw: raw}
	}

	indent := m[1]
	role := m[2]
	class := classifyRole(role)

	if class == classOther {
		return treeLine{kind: linePlain, raw: raw}
	}

	return treeLine{
		kind:    lineEntry,
		raw:     raw,
		indent:  indent,
		depth:   len(indent) / 2,
		role:    role,
		class:   class,
		name:    unescapeName(m[4]),
		hasName: m[3] != "",
		suffix:  m[5],
	}
}

func unescapeName(name string) string {
	if !strings.Contains(name, `\`) {
		return name
	}

	name = strings.ReplaceAll(name, `\"`, `"`)

	return strings.ReplaceAll(name, `\\`, `\`)
}

// refWorthy implements the per-line decision rule: interactive roles always
// get a ref, content roles only when named.
func (l treeLine) refWorthy() bool {
	if l.kind != lineEntry {
		return false
	}

	switch l.class {
	case classInteractive:
		return true
	case classContent:
		return l.hasName && l.name != ""
	default:
		return false
	}
}

// hasInlineContent reports a `:` suffix, i.e. an entry with inline text.
func (l treeLine) hasInlineContent() bool {
	return strings.HasPrefix(l.suffix, ":") && strings.TrimSpace(l.suffix[1:]) != ""
}
