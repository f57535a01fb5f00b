package snapshot

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"pagelens/internal/entity"
)

// TreeFunc returns the engine's accessibility-tree text for one scope
// ("" = whole page). EvalFunc runs a read-only query inside the page.
// The pipeline depends on these instead of the browser port so tests can
// inject fixed trees.
type TreeFunc func(ctx context.Context, selector string) (string, error)

type EvalFunc func(ctx context.Context, script string, arg any) (any, error)

const (
	emptyTreeMarker     = "(empty)"
	noInteractiveMarker = "(no interactive elements)"
	cursorHeading       = "# Cursor-interactive elements:"

	indentPerLevel = 2
)

// docLine is one output line, held unrendered until the end of the
// invocation: only then are duplicate counts known, so [nth=] annotations
// and RefEntry.Nth stripping happen at render time.
type docLine struct {
	verbatim   bool
	text       string
	plainIcons bool

	depth  int
	indent string
	role   string
	name   string
	quoted bool
	suffix string
	refID  string
	nth    int
	hints  []string
}

func verbatimLine(text string, depth int, icons bool) docLine {
	return docLine{
		verbatim:   true,
		text:       text,
		plainIcons: icons,
		depth:      depth,
	}
}

// capture carries the state of one snapshot invocation. All of it is
// created at the start of a Capture call and discarded at its end; the
// allocator and tracker are shared across every scope the invocation
// touches so refs stay globally unique and disambiguation spans the whole
// snapshot.
type capture struct {
	alloc       *Allocator
	tracker     *DuplicateTracker
	refs        *entity.RefMap
	opts        entity.SnapshotOptions
	tree        TreeFunc
	eval        EvalFunc
	logger      *zap.Logger
	cursorLimit int
}

func newCapture(opts entity.SnapshotOptions, tree TreeFunc, eval EvalFunc, cursorLimit int, logger *zap.Logger) *capture {
	alloc := NewAllocator()
	alloc.Reset()

	return &capture{
		alloc:       alloc,
		tracker:     NewDuplicateTracker(),
		refs:        entity.NewRefMap(),
		opts:        opts,
		tree:        tree,
		eval:        eval,
		logger:      logger,
		cursorLimit: cursorLimit,
	}
}

// processScope classifies and filters the tree text of one scope. An
// acquisition failure degrades the scope to empty output rather than
// propagating: a failed region selector must never abort the snapshot.
func (c *capture) processScope(ctx context.Context, selector string) []docLine {
	text, err := c.tree(ctx, selector)
	if err != nil {
		c.logger.Warn("accessibility tree unavailable, treating scope as empty",
			zap.String("selector", selector), zap.Error(err))

		return nil
	}

	lines := splitTreeText(text)
	if len(lines) == 0 {
		return nil
	}

	if c.opts.Interactive {
		return c.filterInteractive(lines)
	}

	return c.filterFull(lines)
}

func splitTreeText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// filterInteractive keeps only interactive-role entries; metadata and text
// lines are dropped entirely, including nested metadata under kept lines.
func (c *capture) filterInteractive(lines []string) []docLine {
	var out []docLine

	for _, raw := range lines {
		parsed := parseTreeLine(raw)
		if parsed.kind != lineEntry || parsed.class != classInteractive {
			continue
		}

		if c.exceedsDepth(parsed.depth) {
			continue
		}

		out = append(out, c.entryLine(parsed))
	}

	return out
}

// filterFull preserves structure, subject to the depth limit, then applies
// the compact reduction when requested.
func (c *capture) filterFull(lines []string) []docLine {
	var out []docLine

	for _, raw := range lines {
		parsed := parseTreeLine(raw)

		switch parsed.kind {
		case lineMeta:
			out = append(out, verbatimLine(raw, rawDepth(raw), false))
		case linePlain:
			if c.exceedsDepth(rawDepth(raw)) {
				continue
			}

			out = append(out, verbatimLine(raw, rawDepth(raw), true))
		case lineEntry:
			if c.exceedsDepth(parsed.depth) {
				continue
			}

			out = append(out, c.entryLine(parsed))
		}
	}

	if c.opts.Compact {
		out = compactLines(out)
	}

	return out
}

func (c *capture) exceedsDepth(depth int) bool {
	return c.opts.MaxDepth > 0 && depth > c.opts.MaxDepth
}

func rawDepth(raw string) int {
	return (len(raw) - len(strings.TrimLeft(raw, " "))) / indentPerLevel
}

// entryLine builds the output line for one classified entry, assigning a
// ref when the decision rule calls for one. NextIndex is called exactly
// once per assignment, before the map append.
func (c *capture) entryLine(parsed treeLine) docLine {
	line := docLine{
		depth:  parsed.depth,
		indent: parsed.indent,
		role:   parsed.role,
		name:   parsed.name,
		quoted: parsed.hasName,
		suffix: parsed.suffix,
	}

	if !parsed.refWorthy() {
		return line
	}

	id := c.alloc.Next()
	nth := c.tracker.NextIndex(parsed.role, parsed.name)
	line.refID = id
	line.nth = nth

	c.refs.Append(id, &entity.RefEntry{
		Selector: entity.LocatorDescriptor{
			Kind: entity.LocatorByRole,
			Role: parsed.role,
			Name: parsed.name,
			Nth:  intPtr(nth),
		},
		Role: parsed.role,
		Name: parsed.name,
		Nth:  intPtr(nth),
	})

	return line
}

func intPtr(v int) *int {
	return &v
}

// compactLines removes structural entries that are unnamed or have no
// ref-bearing descendant. Entries with `:` inline content are always
// retained; refs are never dropped because structural roles never carry
// one.
func compactLines(lines []docLine) []docLine {
	out := make([]docLine, 0, len(lines))

	for i, line := range lines {
		if line.verbatim || line.refID != "" {
			out = append(out, line)

			continue
		}

		if classifyRole(line.role) != classStructural {
			out = append(out, line)

			continue
		}

		if strings.HasPrefix(line.suffix, ":") && strings.TrimSpace(line.suffix[1:]) != "" {
			out = append(out, line)

			continue
		}

		if line.quoted && line.name != "" && hasRefDescendant(lines, i) {
			out = append(out, line)
		}
	}

	return out
}

func hasRefDescendant(lines []docLine, idx int) bool {
	depth := lines[idx].depth

	for i := idx + 1; i < len(lines); i++ {
		if lines[i].depth <= depth {
			return false
		}

		if lines[i].refID != "" {
			return true
		}
	}

	return false
}
