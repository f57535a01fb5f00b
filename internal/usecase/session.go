package usecase

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"pagelens/internal/config"
	"pagelens/internal/entity"
	"pagelens/internal/ports"
	"pagelens/pkg/apperr"
	"pagelens/pkg/logg"
	"pagelens/pkg/tracing"
)

const (
	sessionServiceName = "SessionService"
	sessionTracer      = "usecase.session"
)

// SessionService drives one browsing session: it navigates, captures
// snapshots and routes ref-addressed actions back to the page. Refs are
// resolved strictly against the most recent snapshot.
type SessionService struct {
	config      *config.Config
	logger      *zap.Logger
	tracer      trace.Tracer
	browser     ports.BrowserManager
	snapshotter ports.Snapshotter

	mu      sync.Mutex
	current *entity.Snapshot
}

type SessionServiceParams struct {
	fx.In

	Config      *config.Config
	Logger      *zap.Logger
	Browser     ports.BrowserManager
	Snapshotter ports.Snapshotter
}

func NewSessionService(params SessionServiceParams) *SessionService {
	return &SessionService{
		config:      params.Config,
		logger:      params.Logger.With(zap.String(logg.Layer, sessionServiceName)),
		tracer:      otel.Tracer(sessionTracer),
		browser:     params.Browser,
		snapshotter: params.Snapshotter,
	}
}

func (s *SessionService) Open(ctx context.Context, url string) (err error) {
	const op = "Open"
	logger := s.logger.With(zap.String(logg.Operation, op), zap.String(logg.URL, url))

	ctx, step := tracing.StartSpan(ctx, s.tracer, logger, op, attribute.String("url", url))
	defer func() {
		step.End(err)
	}()

	if url == "" {
		return apperr.InvalidReqError(op, "url", errors.New("url cannot be empty"))
	}

	if err := s.browser.Navigate(ctx, url); err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "navigation_failed",
			apperr.MetaStage:  apperr.StageNavigation,
			apperr.MetaURL:    url,
		})
	}

	// Any previously issued refs point at the page we just left.
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	step.AddEvent("navigation completed")

	return nil
}

func (s *SessionService) Snapshot(ctx context.Context, opts entity.SnapshotOptions) (snap *entity.Snapshot, err error) {
	const op = "Snapshot"
	logger := s.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, s.tracer, logger, op,
		attribute.Bool("interactive", opts.Interactive),
		attribute.Bool("cursor", opts.Cursor),
		attribute.Bool("compact", opts.Compact),
		attribute.Int("max_depth", opts.MaxDepth))
	defer func() {
		step.End(err)
	}()

	if opts.MaxDepth == 0 {
		opts.MaxDepth = s.config.SnapshotConfig.MaxDepth
	}

	if s.config.SnapshotConfig.Compact {
		opts.Compact = true
	}

	snap, err = s.snapshotter.Capture(ctx, opts)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "capture_failed",
			apperr.MetaStage:  apperr.StageSnapshot,
		})
	}

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()

	logger.Info("Snapshot captured",
		zap.String(logg.SnapshotID, snap.ID.String()),
		zap.Int("refs", snap.Refs.Len()))

	return snap, nil
}

// Current returns the most recent snapshot, or nil before the first one.
func (s *SessionService) Current() *entity.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

// resolveRef maps a ref id like "e12" to its locator descriptor in the
// current snapshot. Refs from older snapshots no longer appear in the map
// and are reported as stale.
func (s *SessionService) resolveRef(op, ref string) (entity.LocatorDescriptor, error) {
	if ref == "" {
		return entity.LocatorDescriptor{}, apperr.InvalidReqError(op, "ref", errors.New("ref cannot be empty"))
	}

	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	if current == nil {
		return entity.LocatorDescriptor{}, apperr.Wrap(op, apperr.CodeStaleRef,
			errors.New("no snapshot has been taken yet"), map[string]any{
				apperr.MetaReason: "no_snapshot",
				apperr.MetaRef:    ref,
			})
	}

	entry, ok := current.Refs.Get(ref)
	if !ok {
		return entity.LocatorDescriptor{}, apperr.Wrap(op, apperr.CodeStaleRef,
			errors.New("ref is not part of the current snapshot"), map[string]any{
				apperr.MetaReason: "stale_ref",
				apperr.MetaRef:    ref,
			})
	}

	return entry.Selector, nil
}
