// pkg/browser/session.go
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/wallet-e2e/pkg/browser/action"
	"github.com/xkilldash9x/wallet-e2e/pkg/browser/selector"
	"github.com/xkilldash9x/wallet-e2e/pkg/browser/window"
	"github.com/xkilldash9x/wallet-e2e/pkg/config"
)

// ErrSessionClosed is returned by every Session method after Close.
var ErrSessionClosed = errors.New("session is closed")

// TestIDConfigurer is the part of playwright.Selectors that sets which
// attribute GetByTestId reads.
type TestIDConfigurer interface {
	SetTestIdAttribute(attributeName string)
}

var _ TestIDConfigurer = (playwright.Selectors)(nil)

// ConfigureSelectors applies the configured test id attribute. Call it once on
// pw.Selectors before creating the browser context.
func ConfigureSelectors(sel TestIDConfigurer, cfg config.SelectorConfig) {
	if cfg.TestIDAttribute != "" {
		sel.SetTestIdAttribute(cfg.TestIDAttribute)
	}
}

// Session is the step-level API over one browser context: selectors are
// resolved against whichever page is active when the step runs.
type Session struct {
	id      string
	logger  *zap.Logger
	tracker *window.Tracker
	actions *action.Runner

	onClose func()

	mu       sync.Mutex
	isClosed bool
}

// NewSession wraps src (normally a playwright.BrowserContext that already has
// the extension loaded). onClose, if non-nil, runs once on Close.
func NewSession(src window.PageSource, cfg config.Interface, logger *zap.Logger, onClose func(), opts ...window.Option) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New().String()
	sessionLogger := logger.Named("session").With(zap.String("session_id", id))

	return &Session{
		id:      id,
		logger:  sessionLogger,
		tracker: window.NewTracker(src, cfg.Window(), sessionLogger, opts...),
		actions: action.NewRunner(cfg, sessionLogger),
		onClose: onClose,
	}
}

func (s *Session) ID() string { return s.id }

// Tracker exposes the window tracker for steps that manage windows directly.
func (s *Session) Tracker() *window.Tracker { return s.tracker }

// Actions exposes the action runner.
func (s *Session) Actions() *action.Runner { return s.actions }

func (s *Session) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isClosed {
		return ErrSessionClosed
	}
	return nil
}

// Locate resolves sel against the active page.
func (s *Session) Locate(ctx context.Context, sel string) (playwright.Locator, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	page, err := s.tracker.Active(ctx)
	if err != nil {
		return nil, err
	}
	q := selector.Parse(sel)
	s.logger.Debug("Resolved selector.",
		zap.String("selector", sel),
		zap.String("tier", string(q.Tier)),
		zap.Stringer("locator", q))
	return q.Build(page), nil
}

// Click clicks the element sel resolves to on the active page.
func (s *Session) Click(ctx context.Context, sel string, kind action.ClickKind) error {
	loc, err := s.Locate(ctx, sel)
	if err != nil {
		return err
	}
	if err := s.actions.Click(ctx, loc, kind); err != nil {
		return fmt.Errorf("%s on %q: %w", kind, sel, err)
	}
	return nil
}

// SetInput sets or appends to the input field sel resolves to.
func (s *Session) SetInput(ctx context.Context, sel string, mode action.InputMode, value string) error {
	loc, err := s.Locate(ctx, sel)
	if err != nil {
		return err
	}
	if err := s.actions.SetInputField(ctx, loc, mode, value); err != nil {
		return fmt.Errorf("setting %q: %w", sel, err)
	}
	return nil
}

// ClearInput empties the input field sel resolves to.
func (s *Session) ClearInput(ctx context.Context, sel string) error {
	loc, err := s.Locate(ctx, sel)
	if err != nil {
		return err
	}
	return s.actions.ClearInputField(ctx, loc)
}

// CheckExists asserts how many elements sel matches on the active page.
func (s *Session) CheckExists(ctx context.Context, sel string, check action.ExistenceCheck) error {
	loc, err := s.Locate(ctx, sel)
	if err != nil {
		return err
	}
	if err := s.actions.CheckExists(ctx, loc, check); err != nil {
		return fmt.Errorf("%q: %w", sel, err)
	}
	return nil
}

// Focus focuses a window by url, title or element selector.
func (s *Session) Focus(ctx context.Context, mt window.MatchType, value string) (playwright.Page, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.tracker.Focus(ctx, mt, value)
}

// CloseWindow closes a window by url, title or element selector.
func (s *Session) CloseWindow(ctx context.Context, mt window.MatchType, value string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.tracker.Close(ctx, mt, value)
}

// Close marks the session closed and runs onClose. Pages and the browser
// context belong to the caller and are left open. Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.isClosed {
		s.mu.Unlock()
		return
	}
	s.isClosed = true
	s.mu.Unlock()

	if s.onClose != nil {
		s.onClose()
	}
	s.logger.Debug("Session closed.")
}
