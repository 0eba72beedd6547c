// pkg/browser/action/window.go
package action

import (
	"context"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/wallet-e2e/pkg/browser/window"
)

// Window steps pause before acting so extension popups can finish opening or
// closing. The pauses come from the window config section.

// CloseLastWindow waits for the settle pause, then closes the last opened
// window and refocuses per window.Tracker.CloseActive.
func (r *Runner) CloseLastWindow(ctx context.Context, tracker *window.Tracker) error {
	if err := sleep(ctx, r.cfg.Window().SettlePause); err != nil {
		return err
	}
	return tracker.CloseActive(ctx)
}

// CloseLastTab closes the last opened tab without pausing.
func (r *Runner) CloseLastTab(ctx context.Context, tracker *window.Tracker) error {
	return tracker.CloseActive(ctx)
}

// FocusWindowByURL waits for the focus pause, then focuses the first window
// whose URL contains substr.
func (r *Runner) FocusWindowByURL(ctx context.Context, tracker *window.Tracker, substr string) (playwright.Page, error) {
	if err := sleep(ctx, r.cfg.Window().FocusPause); err != nil {
		return nil, err
	}
	return tracker.FocusByURL(ctx, substr)
}

// FocusDashboard focuses the dashboard window. It is a no-op returning a nil
// page when no dashboard URL is configured.
func (r *Runner) FocusDashboard(ctx context.Context, tracker *window.Tracker) (playwright.Page, error) {
	url := r.cfg.Site().DashboardURL
	if url == "" {
		r.logger.Debug("No dashboard URL configured; not focusing.")
		return nil, nil
	}
	return r.FocusWindowByURL(ctx, tracker, url)
}

// BackToPreviousWindow waits for the focus pause, then returns to the first
// window and goes back in its history.
func (r *Runner) BackToPreviousWindow(ctx context.Context, tracker *window.Tracker) error {
	if err := sleep(ctx, r.cfg.Window().FocusPause); err != nil {
		return err
	}
	if err := r.BackToPage(ctx, tracker, 0); err != nil {
		return err
	}
	r.logger.Debug("Returned to previous window.", zap.String("tracker_id", tracker.ID()))
	return nil
}
