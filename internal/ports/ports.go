package ports

import (
	"context"

	"pagelens/internal/entity"
)

type BrowserManager interface {
	Launch(ctx context.Context) error
	Close(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
	URL(ctx context.Context) (string, error)
	Title(ctx context.Context) (string, error)

	// AccessibilityTree returns the engine's hierarchical accessibility-tree
	// text for the subtree at selector ("" means the whole page).
	AccessibilityTree(ctx context.Context, selector string) (string, error)

	// Evaluate runs a read-only query inside the page and returns its
	// serializable result.
	Evaluate(ctx context.Context, script string, arg any) (any, error)

	Click(ctx context.Context, desc entity.LocatorDescriptor) error
	Fill(ctx context.Context, desc entity.LocatorDescriptor, value string) error
	Press(ctx context.Context, key string) error
	TextContent(ctx context.Context, desc entity.LocatorDescriptor) (string, error)

	IsReady() bool
}

type Snapshotter interface {
	Capture(ctx context.Context, opts entity.SnapshotOptions) (*entity.Snapshot, error)
}
