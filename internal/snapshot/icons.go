package snapshot

import (
	"fmt"
	"strings"
	"unicode"
)

// Private-use-area ranges, commonly used to embed icon-font glyphs.
func isPUA(r rune) bool {
	switch {
	case r >= 0xE000 && r <= 0xF8FF:
		return true
	case r >= 0xF0000 && r <= 0xFFFFD:
		return true
	case r >= 0x100000 && r <= 0x10FFFD:
		return true
	default:
		return false
	}
}

// iconNames maps icon-font codepoints to semantic names. The table covers
// the common Material Icons glyphs; anything outside it falls back to the
// <icon-u+XXXX> form.
var iconNames = map[rune]string{
	0xE145: "add",
	0xE5C4: "arrow_back",
	0xE5C8: "arrow_forward",
	0xE226: "attach_file",
	0xE0B7: "chat",
	0xE5CA: "check",
	0xE5CB: "chevron_left",
	0xE5CC: "chevron_right",
	0xE5CD: "close",
	0xE872: "delete",
	0xE2C4: "download",
	0xE3C9: "edit",
	0xE158: "email",
	0xE5CE: "expand_less",
	0xE5CF: "expand_more",
	0xE87D: "favorite",
	0xE887: "help",
	0xE88A: "home",
	0xE88E: "info",
	0xE9BA: "logout",
	0xE5D2: "menu",
	0xE029: "mic",
	0xE5D3: "more_horiz",
	0xE5D4: "more_vert",
	0xE7F4: "notifications",
	0xE034: "pause",
	0xE7FD: "person",
	0xE037: "play_arrow",
	0xE5D5: "refresh",
	0xE8B6: "search",
	0xE163: "send",
	0xE8B8: "settings",
	0xE80D: "share",
	0xE838: "star",
	0xE2C6: "upload",
	0xE002: "warning",
	0xE8F4: "visibility",
	0xE8F5: "visibility_off",
}

func iconName(r rune) (string, bool) {
	name, ok := iconNames[r]

	return name, ok
}

func iconFallback(r rune) string {
	return fmt.Sprintf("icon-u+%x", r)
}

// labelIcons describes the PUA content of one label.
type labelIcons struct {
	// names are the resolved semantic names of every PUA glyph, in
	// left-to-right order; unmapped glyphs use the icon-u+XXXX form.
	names []string
	// iconOnly means the label contains nothing but PUA glyphs and
	// whitespace.
	iconOnly bool
	// allMapped means every glyph resolved through the table.
	allMapped bool
	// firstUnmapped is the first codepoint without a table entry.
	firstUnmapped rune
}

func scanLabel(label string) labelIcons {
	info := labelIcons{iconOnly: true, allMapped: true}
	sawGlyph := false

	for _, r := range label {
		if isPUA(r) {
			sawGlyph = true

			if name, ok := iconName(r); ok {
				info.names = append(info.names, name)
			} else {
				info.names = append(info.names, iconFallback(r))

				if info.allMapped {
					info.allMapped = false
					info.firstUnmapped = r
				}
			}

			continue
		}

		if !unicode.IsSpace(r) {
			info.iconOnly = false
		}
	}

	if !sawGlyph {
		info.iconOnly = false
	}

	return info
}

// resolveIconLabel applies the icon-only treatment: a fully mapped
// glyph-only label becomes its semantic form, an unmapped one falls back
// to the first unmapped codepoint. Mixed labels keep their raw glyphs so
// exact-text locators continue to match; the caller attaches the
// [icon-desc=...] annotation instead.
//
// Returns the display label and the annotation names (nil when the label
// has no PUA content or was fully replaced).
func resolveIconLabel(label string) (string, []string) {
	info := scanLabel(label)

	if len(info.names) == 0 {
		return label, nil
	}

	if info.iconOnly {
		if info.allMapped {
			parts := make([]string, len(info.names))
			for i, name := range info.names {
				parts[i] = "<" + name + ">"
			}

			return strings.Join(parts, " "), nil
		}

		return "<" + iconFallback(info.firstUnmapped) + ">", nil
	}

	return label, info.names
}

func iconDescTag(names []string) string {
	return "[icon-desc=" + joinIconNames(names) + "]"
}

func iconDescsTag(names []string) string {
	return "[icon-descs=" + joinIconNames(names) + "]"
}

func joinIconNames(names []string) string {
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = "<" + name + ">"
	}

	return strings.Join(parts, ", ")
}

// annotatePlainLine appends an aggregated [icon-descs=...] annotation to a
// plain text line containing PUA glyphs, leaving the visible text intact.
func annotatePlainLine(line string) string {
	var names []string

	for _, r := range line {
		if !isPUA(r) {
			continue
		}

		if name, ok := iconName(r); ok {
			names = append(names, name)
		} else {
			names = append(names, iconFallback(r))
		}
	}

	if len(names) == 0 {
		return line
	}

	return line + " " + iconDescsTag(names)
}
