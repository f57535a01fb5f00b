package browser

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"pagelens/internal/config"
	"pagelens/internal/entity"
	"pagelens/pkg/apperr"
	"pagelens/pkg/logg"
	"pagelens/pkg/tracing"
)

const (
	browserManagerName = "BrowserManager"
	browserTracer      = "browser.manager"
	actionTimeout      = 10000
	snapshotTimeout    = 15000
)

type Manager struct {
	config         *config.Config
	logger         *zap.Logger
	tracer         trace.Tracer
	playwright     *playwright.Playwright
	browser        playwright.Browser
	browserContext playwright.BrowserContext
	page           playwright.Page
	ready          bool
}

type Params struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
}

func NewManager(params Params) *Manager {
	return &Manager{
		config: params.Config,
		logger: params.Logger.With(zap.String(logg.Layer, browserManagerName)),
		tracer: otel.Tracer(browserTracer),
		ready:  false,
	}
}

func (m *Manager) Launch(ctx context.Context) (err error) {
	const op = "Launch"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	logger.Info("Launching browser...")
	step.AddEvent("installing playwright")

	err = playwright.Install()
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "playwright_install_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	step.AddEvent("starting playwright")

	pw, err := playwright.Run()
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "playwright_start_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}
	m.playwright = pw

	if m.config.BrowserConfig.UserDataDir != "" {
		return m.launchPersistent(ctx)
	}

	return m.launchNew(ctx)
}

func (m *Manager) launchPersistent(ctx context.Context) (err error) {
	const op = "launchPersistent"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	logger.Info("Launching persistent browser context")

	userDataDir := m.config.BrowserConfig.UserDataDir

	if err := os.MkdirAll(userDataDir, 0755); err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "mkdir_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	options := playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless:          playwright.Bool(m.config.BrowserConfig.Headless),
		SlowMo:            playwright.Float(float64(m.config.BrowserConfig.SlowMo)),
		Viewport:          &playwright.Size{Width: 1280, Height: 720},
		JavaScriptEnabled: playwright.Bool(true),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
		},
	}

	browserContext, err := m.playwright.Chromium.LaunchPersistentContext(userDataDir, options)
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "launch_persistent_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	m.browserContext = browserContext

	pages := browserContext.Pages()

	if len(pages) > 0 {
		m.page = pages[0]
		logger.Info("Using existing page")
	} else {
		page, err := browserContext.NewPage()
		if err != nil {
			return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
				apperr.MetaReason: "new_page_failed",
				apperr.MetaStage:  apperr.StageBrowser,
			})
		}
		m.page = page
		logger.Info("Created new page")
	}

	m.ready = true
	logger.Info("Browser launched successfully")

	return nil
}

func (m *Manager) launchNew(ctx context.Context) (err error) {
	const op = "launchNew"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	logger.Info("Launching new browser")

	browserOptions := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.config.BrowserConfig.Headless),
		SlowMo:   playwright.Float(float64(m.config.BrowserConfig.SlowMo)),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
		},
	}

	browser, err := m.playwright.Chromium.Launch(browserOptions)
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "browser_launch_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}
	m.browser = browser

	contextOptions := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
		JavaScriptEnabled: playwright.Bool(true),
	}

	browserContext, err := browser.NewContext(contextOptions)
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "context_create_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	m.browserContext = browserContext

	page, err := browserContext.NewPage()
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "page_create_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}
	m.page = page

	m.ready = true
	logger.Info("Browser launched successfully")

	return nil
}

func (m *Manager) Close(ctx context.Context) (err error) {
	const op = "Close"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	logger.Info("Closing connection to browser...")

	if m.config.BrowserConfig.UserDataDir != "" {
		logger.Info("Persistent browser - keeping it open")
		m.ready = false

		return nil
	}

	if m.browserContext != nil {
		if err := m.browserContext.Close(); err != nil {
			logger.Warn("Failed to close context", zap.Error(err))
		}
	}

	if m.browser != nil {
		if err := m.browser.Close(); err != nil {
			logger.Warn("Failed to close browser", zap.Error(err))
		}
	}

	if m.playwright != nil {
		if err := m.playwright.Stop(); err != nil {
			return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
				apperr.MetaReason: "playwright_stop_failed",
			})
		}
	}

	m.ready = false
	logger.Info("Browser closed")

	return nil
}

func (m *Manager) ensurePageActive(ctx context.Context) error {
	if m.browserContext == nil {
		return fmt.Errorf("browser context is nil")
	}

	if m.page != nil && !m.page.IsClosed() {
		return nil
	}

	m.logger.Info("Page closed, reconnecting to active page...")

	for _, p := range m.browserContext.Pages() {
		if !p.IsClosed() {
			m.page = p
			m.logger.Info("Reconnected to existing page")

			return nil
		}
	}

	m.logger.Info("No active pages found, creating new page...")

	page, err := m.browserContext.NewPage()
	if err != nil {
		return fmt.Errorf("failed to create new page: %w", err)
	}

	m.page = page

	return nil
}

func (m *Manager) guard(ctx context.Context, op string) error {
	if !m.ready {
		return apperr.WrapErrorWithReason(op, apperr.CodeBrowserNotReady, "browser_not_ready")
	}

	if err := m.ensurePageActive(ctx); err != nil {
		return apperr.Wrap(op, apperr.CodeBrowserNotReady, err, map[string]any{
			apperr.MetaReason: "page_not_active",
		})
	}

	return nil
}

func (m *Manager) Navigate(ctx context.Context, url string) (err error) {
	const op = "Navigate"
	logger := m.logger.With(zap.String(logg.Operation, op), zap.String(logg.URL, url))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.String("url", url))
	defer func() {
		step.End(err)
	}()

	if err := m.guard(ctx, op); err != nil {
		return err
	}

	step.AddEvent("navigating to URL")

	_, err = m.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(m.config.BrowserConfig.Timeout)),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})

	if err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "goto_failed",
			apperr.MetaStage:  apperr.StageNavigation,
			apperr.MetaURL:    url,
		})
	}

	time.Sleep(500 * time.Millisecond)
	step.AddEvent("navigation completed")

	return nil
}

func (m *Manager) URL(ctx context.Context) (string, error) {
	if err := m.guard(ctx, "URL"); err != nil {
		return "", err
	}

	return m.page.URL(), nil
}

func (m *Manager) Title(ctx context.Context) (string, error) {
	if err := m.guard(ctx, "Title"); err != nil {
		return "", err
	}

	return m.page.Title()
}

// AccessibilityTree returns the engine's hierarchical accessibility-tree
// text for the subtree at selector. An empty selector means the whole
// page body.
func (m *Manager) AccessibilityTree(ctx context.Context, selector string) (text string, err error) {
	const op = "AccessibilityTree"
	logger := m.logger.With(zap.String(logg.Operation, op), zap.String(logg.Selector, selector))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.String("selector", selector))
	defer func() {
		step.End(err)
	}()

	if err := m.guard(ctx, op); err != nil {
		return "", err
	}

	scope := selector
	if scope == "" {
		scope = "body"
	}

	text, err = m.page.Locator(scope).AriaSnapshot(playwright.LocatorAriaSnapshotOptions{
		Timeout: playwright.Float(snapshotTimeout),
	})
	if err != nil {
		return "", apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason:   "aria_snapshot_failed",
			apperr.MetaStage:    apperr.StageTree,
			apperr.MetaSelector: selector,
		})
	}

	return text, nil
}

// Evaluate runs a read-only query inside the page's execution context.
func (m *Manager) Evaluate(ctx context.Context, script string, arg any) (result any, err error) {
	const op = "Evaluate"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	if err := m.guard(ctx, op); err != nil {
		return nil, err
	}

	result, err = m.page.Evaluate(script, arg)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "evaluate_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	return result, nil
}

// resolve turns a locator descriptor back into a live locator. A
// descriptor matching nothing is stale; one matching several elements
// without an nth is ambiguous.
func (m *Manager) resolve(op string, desc entity.LocatorDescriptor) (playwright.Locator, error) {
	var locator playwright.Locator

	switch desc.Kind {
	case entity.LocatorByRole:
		options := playwright.PageGetByRoleOptions{Exact: playwright.Bool(true)}
		if desc.Name != "" {
			options.Name = desc.Name
		}

		locator = m.page.GetByRole(playwright.AriaRole(desc.Role), options)
	case entity.LocatorByCSS:
		locator = m.page.Locator(desc.CSS)
	default:
		return nil, apperr.InvalidReqError(op, "descriptor", fmt.Errorf("unknown locator kind %q", desc.Kind))
	}

	count, err := locator.Count()
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "locator_count_failed",
			apperr.MetaStage:  apperr.StageInteraction,
		})
	}

	switch {
	case count == 0:
		return nil, apperr.Wrap(op, apperr.CodeStaleRef, fmt.Errorf("descriptor matches no elements"), map[string]any{
			apperr.MetaReason: "stale_ref",
			apperr.MetaStage:  apperr.StageInteraction,
		})
	case count == 1:
		return locator.First(), nil
	case desc.Nth != nil:
		return locator.Nth(*desc.Nth), nil
	default:
		return nil, apperr.Wrap(op, apperr.CodeAmbiguousRef, fmt.Errorf("descriptor matches %d elements", count), map[string]any{
			apperr.MetaReason: "ambiguous_ref",
			apperr.MetaStage:  apperr.StageInteraction,
		})
	}
}

func (m *Manager) Click(ctx context.Context, desc entity.LocatorDescriptor) (err error) {
	const op = "Click"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	if err := m.guard(ctx, op); err != nil {
		return err
	}

	locator, err := m.resolve(op, desc)
	if err != nil {
		return err
	}

	err = locator.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(actionTimeout),
	})
	if err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "click_failed",
			apperr.MetaStage:  apperr.StageInteraction,
		})
	}

	time.Sleep(300 * time.Millisecond)
	step.AddEvent("click completed")

	return nil
}

func (m *Manager) Fill(ctx context.Context, desc entity.LocatorDescriptor, value string) (err error) {
	const op = "Fill"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	if err := m.guard(ctx, op); err != nil {
		return err
	}

	locator, err := m.resolve(op, desc)
	if err != nil {
		return err
	}

	err = locator.Fill(value, playwright.LocatorFillOptions{
		Timeout: playwright.Float(actionTimeout),
	})
	if err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "fill_failed",
			apperr.MetaStage:  apperr.StageInteraction,
		})
	}

	time.Sleep(300 * time.Millisecond)
	step.AddEvent("fill completed")

	return nil
}

func (m *Manager) Press(ctx context.Context, key string) (err error) {
	const op = "Press"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.String("key", key))
	defer func() {
		step.End(err)
	}()

	if err := m.guard(ctx, op); err != nil {
		return err
	}

	err = m.page.Keyboard().Press(key)
	if err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "press_failed",
			apperr.MetaStage:  apperr.StageInteraction,
		})
	}

	time.Sleep(300 * time.Millisecond)
	step.AddEvent("press completed")

	return nil
}

func (m *Manager) TextContent(ctx context.Context, desc entity.LocatorDescriptor) (text string, err error) {
	const op = "TextContent"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	if err := m.guard(ctx, op); err != nil {
		return "", err
	}

	locator, err := m.resolve(op, desc)
	if err != nil {
		return "", err
	}

	text, err = locator.TextContent(playwright.LocatorTextContentOptions{
		Timeout: playwright.Float(actionTimeout),
	})
	if err != nil {
		return "", apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "text_content_failed",
		})
	}

	return text, nil
}

func (m *Manager) IsReady() bool {
	return m.ready
}
