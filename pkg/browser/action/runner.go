// pkg/browser/action/runner.go
package action

import (
	"context"
	"errors"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/wallet-e2e/pkg/config"
)

// ErrAssertion marks a failed expectation about the page, as opposed to a
// failure to talk to the browser.
var ErrAssertion = errors.New("assertion failed")

// Runner performs the user-level actions a scenario step is built from.
// It holds no page state; callers hand it locators from the selector
// package and pages from a window.Tracker.
type Runner struct {
	cfg    config.Interface
	logger *zap.Logger
}

// NewRunner creates a Runner. A nil logger is replaced with a no-op logger.
func NewRunner(cfg config.Interface, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:    cfg,
		logger: logger.Named("action"),
	}
}

// deadlineMillis returns ctx's remaining time as a playwright timeout, or nil
// when ctx has no deadline and playwright's own default applies.
func deadlineMillis(ctx context.Context) *float64 {
	deadline, ok := ctx.Deadline()
	if !ok {
		return nil
	}
	return playwright.Float(toMillis(time.Until(deadline)))
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

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
