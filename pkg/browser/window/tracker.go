// pkg/browser/window/tracker.go
package window

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/wallet-e2e/pkg/config"
)

const defaultWaitTimeout = 5 * time.Second

// PageSource is the view of a browser context the tracker reads.
// playwright.BrowserContext satisfies it.
type PageSource interface {
	Pages() []playwright.Page
	WaitForEvent(event string, options ...playwright.BrowserContextWaitForEventOptions) (interface{}, error)
}

var _ PageSource = (playwright.BrowserContext)(nil)

// Tracker answers "which page is active" for one browser context.
//
// It never stores page references. Extension popups open and close while
// steps run, so every operation starts from a fresh read of the page list,
// and closed pages are skipped rather than reported.
type Tracker struct {
	id       string
	src      PageSource
	fallback playwright.Page
	wait     time.Duration
	resolve  ElementResolver
	logger   *zap.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithFallback sets the page Active returns when the context has no open page.
func WithFallback(page playwright.Page) Option {
	return func(t *Tracker) { t.fallback = page }
}

// WithElementResolver replaces the selector-based resolver used for element matches.
func WithElementResolver(r ElementResolver) Option {
	return func(t *Tracker) { t.resolve = r }
}

// NewTracker creates a tracker over src. cfg.WaitTimeout bounds every wait for
// a new page; zero means the 5s default.
func NewTracker(src PageSource, cfg config.WindowConfig, logger *zap.Logger, opts ...Option) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New().String()
	t := &Tracker{
		id:      id,
		src:     src,
		wait:    cfg.WaitTimeout,
		resolve: resolveWithSelector,
		logger:  logger.Named("window_tracker").With(zap.String("tracker_id", id)),
	}
	if t.wait <= 0 {
		t.wait = defaultWaitTimeout
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ID returns the tracker's identifier as it appears in log fields.
func (t *Tracker) ID() string { return t.id }

// OpenPages returns the pages of src that are not closed, in opening order.
func OpenPages(src PageSource) []playwright.Page {
	all := src.Pages()
	open := make([]playwright.Page, 0, len(all))
	for _, p := range all {
		if p != nil && !p.IsClosed() {
			open = append(open, p)
		}
	}
	return open
}

// Active returns the last open page. With no open page it returns the
// fallback (if set and still open), else waits for a new page. Focus is
// left unchanged.
func (t *Tracker) Active(ctx context.Context) (playwright.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if pages := OpenPages(t.src); len(pages) > 0 {
		return pages[len(pages)-1], nil
	}
	if t.fallback != nil && !t.fallback.IsClosed() {
		t.logger.Debug("No open pages; using fallback page.")
		return t.fallback, nil
	}
	if p := t.waitForPage(ctx); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("no pages in context and no new page was created: %w", ErrNoActivePage)
}

// FocusLast brings the active page to the front and returns it.
func (t *Tracker) FocusLast(ctx context.Context) (playwright.Page, error) {
	page, err := t.Active(ctx)
	if err != nil {
		return nil, err
	}
	if err := t.bringToFront(page); err != nil {
		return nil, err
	}
	return page, nil
}

// FocusByURL focuses the first page whose URL contains substr.
func (t *Tracker) FocusByURL(ctx context.Context, substr string) (playwright.Page, error) {
	page, err := t.find(ctx, "url", substr, urlContains(substr))
	if err != nil {
		return nil, err
	}
	if err := t.bringToFront(page); err != nil {
		return nil, err
	}
	return page, nil
}

// FocusByTitle focuses the first page whose title contains substr.
func (t *Tracker) FocusByTitle(ctx context.Context, substr string) (playwright.Page, error) {
	page, err := t.find(ctx, "title", substr, titleContains(substr))
	if err != nil {
		return nil, err
	}
	if err := t.bringToFront(page); err != nil {
		return nil, err
	}
	return page, nil
}

// FocusByElement waits for locator to become visible, then brings page to the front.
func (t *Tracker) FocusByElement(ctx context.Context, page playwright.Page, locator playwright.Locator) (playwright.Page, error) {
	if err := t.waitVisible(ctx, locator); err != nil {
		return nil, err
	}
	if err := t.bringToFront(page); err != nil {
		return nil, err
	}
	return page, nil
}

// Focus dispatches on mt. For MatchElement, value is a selector string
// resolved against the active page.
func (t *Tracker) Focus(ctx context.Context, mt MatchType, value string) (playwright.Page, error) {
	switch mt {
	case MatchURL:
		return t.FocusByURL(ctx, value)
	case MatchTitle:
		return t.FocusByTitle(ctx, value)
	case MatchElement:
		page, err := t.Active(ctx)
		if err != nil {
			return nil, err
		}
		return t.FocusByElement(ctx, page, t.resolve(page, value))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMatchType, mt)
	}
}

// CloseActive closes the last opened page. It never closes the only open page.
//
// If the first page is also the last one, the page before it regains focus;
// otherwise focus returns to the first page.
func (t *Tracker) CloseActive(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pages := OpenPages(t.src)
	if len(pages) <= 1 {
		t.logger.Debug("Not closing the only remaining page.", zap.Int("open_pages", len(pages)))
		return nil
	}

	current := pages[0]
	last := pages[len(pages)-1]

	if current == last {
		previous := pages[len(pages)-2]
		if err := t.closePage(last); err != nil {
			return err
		}
		if previous != nil && !previous.IsClosed() {
			return t.bringToFront(previous)
		}
		return nil
	}

	if err := t.closePage(last); err != nil {
		return err
	}
	return t.bringToFront(current)
}

// Close closes the window identified by mt and value, then brings the last
// remaining open page to the front. For MatchElement the active page is closed
// once the element becomes visible on it.
func (t *Tracker) Close(ctx context.Context, mt MatchType, value string) error {
	var (
		target playwright.Page
		err    error
	)
	switch mt {
	case MatchURL:
		target, err = t.FocusByURL(ctx, value)
	case MatchTitle:
		target, err = t.find(ctx, "title", value, titleContains(value))
	case MatchElement:
		target, err = t.Active(ctx)
		if err == nil {
			err = t.waitVisible(ctx, t.resolve(target, value))
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownMatchType, mt)
	}
	if err != nil {
		return err
	}

	if err := t.closePage(target); err != nil {
		return err
	}
	if open := OpenPages(t.src); len(open) > 0 {
		return t.bringToFront(open[len(open)-1])
	}
	return nil
}

// PageAt focuses and returns the page at index in the context's page list,
// or the first page when index is out of range.
func (t *Tracker) PageAt(ctx context.Context, index int) (playwright.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pages := t.src.Pages()
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	target := pages[0]
	if index >= 0 && index < len(pages) && pages[index] != nil {
		target = pages[index]
	}
	if err := t.bringToFront(target); err != nil {
		return nil, err
	}
	return target, nil
}

// -- internals --

type pageMatcher func(p playwright.Page) bool

func urlContains(substr string) pageMatcher {
	return func(p playwright.Page) bool {
		u := p.URL()
		return u != "" && strings.Contains(u, substr)
	}
}

func titleContains(substr string) pageMatcher {
	return func(p playwright.Page) bool {
		title, err := p.Title()
		// A page that closed mid-scan cannot report a title; skip it.
		return err == nil && strings.Contains(title, substr)
	}
}

// find scans the open pages, then waits once for a new page, then rescans.
func (t *Tracker) find(ctx context.Context, kind, value string, match pageMatcher) (playwright.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p := firstMatch(OpenPages(t.src), match); p != nil {
		return p, nil
	}

	t.logger.Debug("No matching window yet; waiting for a new page.",
		zap.String("match", kind), zap.String("value", value), zap.Duration("timeout", t.wait))

	if p := t.waitForPage(ctx); p != nil && !p.IsClosed() && match(p) {
		return p, nil
	}
	if p := firstMatch(OpenPages(t.src), match); p != nil {
		return p, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("window with %s including %q: %w", kind, value, ErrWindowNotFound)
}

func firstMatch(pages []playwright.Page, match pageMatcher) playwright.Page {
	for _, p := range pages {
		if match(p) {
			return p
		}
	}
	return nil
}

// waitForPage blocks until a new page opens or the bounded wait expires.
// Expiry is not an error: it returns nil and callers fall back.
func (t *Tracker) waitForPage(ctx context.Context) playwright.Page {
	timeout := t.boundedWait(ctx)
	if timeout <= 0 {
		return nil
	}
	event, err := t.src.WaitForEvent("page", playwright.BrowserContextWaitForEventOptions{
		Timeout: playwright.Float(toMillis(timeout)),
	})
	if err != nil {
		t.logger.Debug("No new page within the wait.", zap.Duration("timeout", timeout), zap.Error(err))
		return nil
	}
	page, ok := event.(playwright.Page)
	if !ok {
		return nil
	}
	return page
}

// boundedWait is the configured wait clamped to ctx's deadline.
func (t *Tracker) boundedWait(ctx context.Context) time.Duration {
	wait := t.wait
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < wait {
			wait = remaining
		}
	}
	return wait
}

func (t *Tracker) waitVisible(ctx context.Context, locator playwright.Locator) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	opts := playwright.LocatorWaitForOptions{State: playwright.WaitForSelectorStateVisible}
	if deadline, ok := ctx.Deadline(); ok {
		opts.Timeout = playwright.Float(toMillis(time.Until(deadline)))
	}
	if err := locator.WaitFor(opts); err != nil {
		return fmt.Errorf("waiting for element to become visible: %w", err)
	}
	return nil
}

// closePage closes page, treating an already closed page as success.
func (t *Tracker) closePage(page playwright.Page) error {
	if page.IsClosed() {
		return nil
	}
	url := page.URL()
	if err := page.Close(); err != nil {
		if errors.Is(err, playwright.ErrTargetClosed) || page.IsClosed() {
			return nil
		}
		return fmt.Errorf("closing page %q: %w", url, err)
	}
	t.logger.Debug("Closed page.", zap.String("url", url))
	return nil
}

func (t *Tracker) bringToFront(page playwright.Page) error {
	if err := page.BringToFront(); err != nil {
		return fmt.Errorf("bringing page %q to front: %w", page.URL(), err)
	}
	t.logger.Debug("Focused page.", zap.String("url", page.URL()))
	return nil
}

// toMillis converts d to playwright's millisecond timeouts. Playwright reads
// 0 as "no timeout", so the result is at least 1.
func toMillis(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	if ms < 1 {
		return 1
	}
	return ms
}
