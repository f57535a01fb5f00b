package snapshot

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"pagelens/internal/entity"
)

var regionTitles = map[entity.RegionKey]string{
	entity.RegionSidebar:  "Sidebar",
	entity.RegionContents: "Contents",
	entity.RegionDrawer:   "Drawer",
	entity.RegionFAB:      "FAB",
}

// Detection order is also emission order.
var regionOrder = []entity.RegionKey{
	entity.RegionSidebar,
	entity.RegionContents,
	entity.RegionDrawer,
	entity.RegionFAB,
}

type regionQueryResult struct {
	Sidebar  []string `json:"sidebar"`
	Contents []string `json:"contents"`
	Drawer   []string `json:"drawer"`
	FAB      []string `json:"fab"`
}

// detectRegions asks the page whether it matches a known shell. The page
// matches only when a contents-like root and a sidebar/drawer-like root
// are both present; a lone contents pane is not a shell. Any failure
// degrades to "no shell", which sends the caller down the unscoped path.
func (c *capture) detectRegions(ctx context.Context, shell ShellDefinition) []entity.Region {
	raw, err := c.eval(ctx, regionScript(), map[string]any{
		"sidebar":  shell.Sidebar,
		"contents": shell.Contents,
		"drawer":   shell.Drawer,
		"fab": map[string]any{
			"minSide":     fabMinSidePx,
			"maxSide":     fabMaxSidePx,
			"cornerRange": fabCornerRangePx,
			"minZIndex":   fabMinZIndex,
			"radiusRatio": fabRadiusRatio,
		},
	})
	if err != nil {
		c.logger.Warn("region detection query failed, skipping partitioning", zap.Error(err))

		return nil
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}

	var result regionQueryResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Warn("region detection result malformed, skipping partitioning", zap.Error(err))

		return nil
	}

	if len(result.Contents) == 0 || (len(result.Sidebar) == 0 && len(result.Drawer) == 0) {
		return nil
	}

	selectors := map[entity.RegionKey][]string{
		entity.RegionSidebar:  result.Sidebar,
		entity.RegionContents: result.Contents,
		entity.RegionDrawer:   result.Drawer,
		entity.RegionFAB:      result.FAB,
	}

	var regions []entity.Region

	for _, key := range regionOrder {
		if len(selectors[key]) == 0 {
			continue
		}

		regions = append(regions, entity.Region{
			Key:       key,
			Title:     regionTitles[key],
			Selectors: selectors[key],
		})
	}

	return regions
}

// captureRegions runs the pipeline once per selector per region, all calls
// sharing this invocation's allocator and tracker so refs stay globally
// unique. Regions whose every selector produced nothing are omitted.
func (c *capture) captureRegions(ctx context.Context, regions []entity.Region) []docLine {
	var doc []docLine

	for _, region := range regions {
		var body []docLine

		for _, selector := range region.Selectors {
			body = append(body, c.scopeLines(ctx, selector)...)
		}

		if len(body) == 0 {
			continue
		}

		if len(doc) > 0 {
			doc = append(doc, verbatimLine("", 0, false))
		}

		doc = append(doc, verbatimLine("# "+region.Title+":", 0, false))
		doc = append(doc, body...)
	}

	return doc
}
