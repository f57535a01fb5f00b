package snapshot

import (
	"fmt"
	"strings"
)

// renderDocument turns accumulated lines into final text. It runs once per
// invocation, after every scope has been processed: only then does the
// duplicate tracker know which (role, name) pairs recurred, so this is
// where [nth=] annotations are emitted and where singleton entries get
// their Nth stripped from the ref map.
func (c *capture) renderDocument(doc []docLine) string {
	c.stripSingletonNth()

	out := make([]string, 0, len(doc))
	for _, line := range doc {
		out = append(out, c.renderLine(line))
	}

	return strings.Join(out, "\n")
}

func (c *capture) stripSingletonNth() {
	for _, id := range c.refs.IDs() {
		entry, ok := c.refs.Get(id)
		if !ok {
			continue
		}

		if c.tracker.Count(entry.Role, entry.Name) <= 1 {
			entry.Nth = nil
			entry.Selector.Nth = nil
		}
	}
}

func (c *capture) renderLine(line docLine) string {
	if line.verbatim {
		if line.plainIcons {
			return annotatePlainLine(line.text)
		}

		return line.text
	}

	var b strings.Builder

	b.WriteString(line.indent)
	b.WriteString("- ")
	b.WriteString(line.role)

	name := line.name
	var iconDescs []string

	if line.quoted {
		name, iconDescs = resolveIconLabel(name)
		b.WriteString(` "`)
		b.WriteString(escapeName(name))
		b.WriteString(`"`)
	}

	if line.refID != "" {
		b.WriteString(" [ref=")
		b.WriteString(line.refID)
		b.WriteString("]")

		if line.nth > 0 && c.tracker.Count(line.role, line.name) > 1 {
			b.WriteString(fmt.Sprintf(" [nth=%d]", line.nth))
		}

		if len(iconDescs) > 0 {
			b.WriteString(" ")
			b.WriteString(iconDescTag(iconDescs))
		}
	} else if len(iconDescs) > 0 {
		// Named but unreferenced entries get the aggregated form, same
		// as plain text lines.
		b.WriteString(" ")
		b.WriteString(iconDescsTag(iconDescs))
	}

	for _, hint := range line.hints {
		b.WriteString(" [")
		b.WriteString(hint)
		b.WriteString("]")
	}

	// Original suffix (e.g. [level=1] or inline `:` text) is preserved
	// after the annotations.
	b.WriteString(line.suffix)

	return b.String()
}

func escapeName(name string) string {
	name = strings.ReplaceAll(name, `\`, `\\`)

	return strings.ReplaceAll(name, `"`, `\"`)
}
