package snapshot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadShellOverridesGroups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shells.yaml")

	content := `sidebar:
  - "#left-rail"
contents:
  - "#workspace"
  - "main.page"
`

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	shell, err := LoadShell(path)
	if err != nil {
		t.Fatalf("LoadShell: %v", err)
	}

	if len(shell.Sidebar) != 1 || shell.Sidebar[0] != "#left-rail" {
		t.Fatalf("Sidebar = %v, want [#left-rail]", shell.Sidebar)
	}

	if len(shell.Contents) != 2 || shell.Contents[1] != "main.page" {
		t.Fatalf("Contents = %v, want [#workspace main.page]", shell.Contents)
	}

	// Drawer is absent from the file and keeps the built-in defaults.
	if len(shell.Drawer) != len(DefaultShell().Drawer) {
		t.Fatalf("Drawer = %v, want defaults", shell.Drawer)
	}
}

func TestLoadShellMissingFile(t *testing.T) {
	shell, err := LoadShell(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}

	// Caller still gets a usable definition.
	if len(shell.Contents) == 0 {
		t.Fatal("fallback shell has no contents selectors")
	}
}

func TestLoadShellMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shells.yaml")

	if err := os.WriteFile(path, []byte("sidebar: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadShell(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
