package snapshot

import (
	"context"
	"time"

	"github.com/google/uuid"
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
	snapshotServiceName = "SnapshotService"
	snapshotTracer      = "snapshot.service"
)

// Service turns the engine's raw accessibility output into an annotated,
// ref-addressable snapshot. One Capture call owns one allocator, tracker
// and ref map; nothing survives between calls.
type Service struct {
	config  *config.Config
	logger  *zap.Logger
	tracer  trace.Tracer
	browser ports.BrowserManager
	shell   ShellDefinition
}

type Params struct {
	fx.In

	Config  *config.Config
	Logger  *zap.Logger
	Browser ports.BrowserManager
}

func NewService(params Params) *Service {
	logger := params.Logger.With(zap.String(logg.Layer, snapshotServiceName))

	shell := DefaultShell()

	if path := params.Config.SnapshotConfig.ShellsFile; path != "" {
		loaded, err := LoadShell(path)
		if err != nil {
			logger.Warn("Failed to load shells file, using built-in shell table",
				zap.String("path", path), zap.Error(err))
		} else {
			shell = loaded
		}
	}

	return &Service{
		config:  params.Config,
		logger:  logger,
		tracer:  otel.Tracer(snapshotTracer),
		browser: params.Browser,
		shell:   shell,
	}
}

// Capture produces one snapshot of the current page. Partial failures
// (one region, one cursor pass, the tree itself) degrade to empty
// sections; the call errors only when the browser is unavailable.
func (s *Service) Capture(ctx context.Context, opts entity.SnapshotOptions) (snap *entity.Snapshot, err error) {
	const op = "Capture"
	logger := s.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, s.tracer, logger, op,
		attribute.Bool("interactive", opts.Interactive),
		attribute.Bool("cursor", opts.Cursor),
		attribute.Bool("compact", opts.Compact),
		attribute.Int("max_depth", opts.MaxDepth),
		attribute.String("selector", opts.Selector))
	defer func() {
		step.End(err)
	}()

	if !s.browser.IsReady() {
		return nil, apperr.WrapErrorWithReason(op, apperr.CodeBrowserNotReady, "browser_not_ready")
	}

	id := uuid.New()
	logger = logger.With(zap.String(logg.SnapshotID, id.String()))

	url, _ := s.browser.URL(ctx)
	title, _ := s.browser.Title(ctx)

	c := newCapture(opts, s.browser.AccessibilityTree, s.browser.Evaluate,
		s.config.SnapshotConfig.CursorLimit, logger)

	var doc []docLine

	if opts.Selector == "" {
		if regions := c.detectRegions(ctx, s.shell); len(regions) > 0 {
			step.AddEvent("shell detected", attribute.Int("regions", len(regions)))
			doc = c.captureRegions(ctx, regions)
		}
	}

	if doc == nil {
		doc = c.captureScope(ctx, opts.Selector)
	}

	tree := c.renderDocument(doc)
	step.AddEvent("snapshot rendered", attribute.Int("refs", c.refs.Len()))

	logger.Info("Snapshot captured",
		zap.Int("refs", c.refs.Len()),
		zap.Int("lines", len(doc)))

	return &entity.Snapshot{
		ID:      id,
		URL:     url,
		Title:   title,
		Tree:    tree,
		Refs:    c.refs,
		TakenAt: time.Now(),
	}, nil
}

// captureScope handles the non-partitioned path: one scope, with empty
// markers when nothing survives filtering.
func (c *capture) captureScope(ctx context.Context, selector string) []docLine {
	lines := c.scopeLines(ctx, selector)
	if len(lines) > 0 {
		return lines
	}

	marker := emptyTreeMarker
	if c.opts.Interactive {
		marker = noInteractiveMarker
	}

	return []docLine{verbatimLine(marker, 0, false)}
}

// scopeLines runs the filter pipeline and, when requested, the cursor
// detector over one scope. Cursor findings go under their heading when the
// base tree produced output, or stand alone when it did not.
func (c *capture) scopeLines(ctx context.Context, selector string) []docLine {
	base := c.processScope(ctx, selector)

	if !c.opts.Cursor {
		return base
	}

	cursor := c.runCursor(ctx, selector)
	if len(cursor) == 0 {
		return base
	}

	if len(base) == 0 {
		return cursor
	}

	out := append(base, verbatimLine("", 0, false), verbatimLine(cursorHeading, 0, false))

	return append(out, cursor...)
}
