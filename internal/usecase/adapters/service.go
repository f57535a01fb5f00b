package adapters

import (
	"context"

	"pagelens/internal/entity"
)

type BrowserService interface {
	Launch(ctx context.Context) error
	Close(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
	URL(ctx context.Context) (string, error)
	Title(ctx context.Context) (string, error)
	IsReady() bool
}

type SessionService interface {
	Open(ctx context.Context, url string) error
	Snapshot(ctx context.Context, opts entity.SnapshotOptions) (*entity.Snapshot, error)
	Click(ctx context.Context, ref string) error
	Fill(ctx context.Context, ref, value string) error
	Press(ctx context.Context, key string) error
	Text(ctx context.Context, ref string) (string, error)
	Current() *entity.Snapshot
}
