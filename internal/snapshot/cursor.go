package snapshot

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"go.uber.org/zap"

	"pagelens/internal/entity"
)

// Scoring weights for cursor-interactive candidates. Named so tests can
// pin exact tie-break behavior; the values are tuned against specific
// application shells, not a general solution.
const (
	scoreTitleLabel   = 16
	scoreAriaLabel    = 8
	scoreDirectCursor = 4
	scoreClickHandler = 2
	scoreTabIndex     = 1
)

const (
	roleClickable = "clickable"
	roleFocusable = "focusable"
)

// runCursor discovers non-ARIA clickable affordances in one scope and
// appends them to the invocation's ref space. A failed query degrades to
// zero candidates.
func (c *capture) runCursor(ctx context.Context, selector string) []docLine {
	raw, err := c.eval(ctx, cursorScript(), map[string]any{
		"root":  selector,
		"limit": c.cursorLimit,
	})
	if err != nil {
		c.logger.Warn("cursor-interactive query failed, skipping",
			zap.String("selector", selector), zap.Error(err))

		return nil
	}

	candidates, err := decodeCandidates(raw)
	if err != nil {
		c.logger.Warn("cursor-interactive result malformed, skipping", zap.Error(err))

		return nil
	}

	accepted := dedupeCandidates(candidates)

	lines := make([]docLine, 0, len(accepted))
	for _, cand := range accepted {
		lines = append(lines, c.cursorLine(cand))
	}

	return lines
}

func decodeCandidates(v any) ([]entity.Candidate, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var candidates []entity.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, err
	}

	return candidates, nil
}

func candidateScore(c entity.Candidate) int {
	score := 0

	if c.HasTitle {
		score += scoreTitleLabel
	} else if c.HasAriaLabel {
		score += scoreAriaLabel
	}

	if c.HasDirectCursorPointer {
		score += scoreDirectCursor
	}

	if c.HasOnClick {
		score += scoreClickHandler
	}

	if c.HasTabIndex {
		score += scoreTabIndex
	}

	return score
}

func explicitlyLabeled(c entity.Candidate) bool {
	return c.HasTitle || c.HasAriaLabel
}

// dedupeCandidates sorts by score and walks the list accepting a candidate
// unless it contains, or is contained by, an already-accepted one. A
// wrapping div and its inner icon span never both survive. The tie-break
// (shallower when both labeled, deeper otherwise) is an empirically tuned
// heuristic; preserve it exactly.
func dedupeCandidates(candidates []entity.Candidate) []entity.Candidate {
	sorted := make([]entity.Candidate, len(candidates))
	copy(sorted, candidates)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		if sa, sb := candidateScore(a), candidateScore(b); sa != sb {
			return sa > sb
		}

		if a.Depth != b.Depth {
			if explicitlyLabeled(a) && explicitlyLabeled(b) {
				return a.Depth < b.Depth
			}

			return a.Depth > b.Depth
		}

		return a.Order < b.Order
	})

	var accepted []entity.Candidate

	for _, cand := range sorted {
		contained := false

		for _, prev := range accepted {
			if pathContains(prev.Path, cand.Path) || pathContains(cand.Path, prev.Path) {
				contained = true

				break
			}
		}

		if !contained {
			accepted = append(accepted, cand)
		}
	}

	// Emission order must reflect page order, not score order.
	sort.Slice(accepted, func(i, j int) bool {
		return accepted[i].Order < accepted[j].Order
	})

	return accepted
}

// pathContains reports whether ancestor's dotted child-index path is a
// proper prefix of descendant's, or the same element.
func pathContains(ancestor, descendant string) bool {
	if ancestor == descendant {
		return true
	}

	return strings.HasPrefix(descendant, ancestor+".")
}

func (c *capture) cursorLine(cand entity.Candidate) docLine {
	role := roleFocusable
	if cand.HasCursorPointer || cand.HasOnClick {
		role = roleClickable
	}

	var hints []string
	if cand.HasCursorPointer {
		hints = append(hints, "cursor:pointer")
	}

	if cand.HasOnClick {
		hints = append(hints, "onclick")
	}

	if cand.HasTabIndex {
		hints = append(hints, "tabindex")
	}

	id := c.alloc.Next()
	nth := c.tracker.NextIndex(role, cand.Label)

	c.refs.Append(id, &entity.RefEntry{
		Selector: entity.LocatorDescriptor{
			Kind: entity.LocatorByCSS,
			CSS:  cand.Selector,
		},
		Role: role,
		Name: cand.Label,
		Nth:  intPtr(nth),
	})

	return docLine{
		role:   role,
		name:   cand.Label,
		quoted: true,
		refID:  id,
		nth:    nth,
		hints:  hints,
	}
}
