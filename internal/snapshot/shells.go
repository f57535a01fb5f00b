package snapshot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ShellDefinition is the per-application adapter behind region
// partitioning: named groups of literal CSS selectors that identify the
// panes of a multi-pane shell. The built-in table matches the shells this
// tool was tuned against; deployments can swap it via a YAML file without
// touching the partitioning algorithm.
type ShellDefinition struct {
	Sidebar  []string `yaml:"sidebar"`
	Contents []string `yaml:"contents"`
	Drawer   []string `yaml:"drawer"`
}

func DefaultShell() ShellDefinition {
	return ShellDefinition{
		Sidebar: []string{
			"#sidebar-center",
			"#sidebar",
			".app-sidebar",
			"aside.sidebar",
		},
		Contents: []string{
			"#contents-center",
			"#contents",
			".app-contents",
			"main.contents",
		},
		Drawer: []string{
			"#drawer-container",
			"#drawer",
			".app-drawer",
		},
	}
}

// LoadShell reads a shell definition from a YAML file. Groups missing
// from the file keep their built-in defaults.
func LoadShell(path string) (ShellDefinition, error) {
	shell := DefaultShell()

	data, err := os.ReadFile(path)
	if err != nil {
		return shell, fmt.Errorf("read shells file: %w", err)
	}

	var loaded ShellDefinition
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return shell, fmt.Errorf("parse shells file: %w", err)
	}

	if len(loaded.Sidebar) > 0 {
		shell.Sidebar = loaded.Sidebar
	}

	if len(loaded.Contents) > 0 {
		shell.Contents = loaded.Contents
	}

	if len(loaded.Drawer) > 0 {
		shell.Drawer = loaded.Drawer
	}

	return shell, nil
}

// Floating-action-button heuristic thresholds. Named so tests (and shell
// tuning) can pin exact boundaries.
const (
	fabMinSidePx     = 32
	fabMaxSidePx     = 120
	fabCornerRangePx = 200
	fabMinZIndex     = 20
	fabRadiusRatio   = 0.35
)
