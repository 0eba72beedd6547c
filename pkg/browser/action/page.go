// pkg/browser/action/page.go
package action

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/wallet-e2e/pkg/browser/window"
)

// NavigationKind says how OpenURL interprets its target.
type NavigationKind string

const (
	// NavigateURL opens the target as an absolute URL.
	NavigateURL NavigationKind = "url"
	// NavigateSite opens the target as a path below the configured base URL.
	NavigateSite NavigationKind = "site"
)

// DialogAction is what to do with a confirm box or prompt.
type DialogAction string

const (
	DialogAccept  DialogAction = "accept"
	DialogDismiss DialogAction = "dismiss"
)

// ModalType names the kind of dialog a step expects.
type ModalType string

const (
	ModalAlert   ModalType = "alertbox"
	ModalConfirm ModalType = "confirmbox"
	ModalPrompt  ModalType = "prompt"
)

// PressKeys presses each key in order on page's keyboard.
func (r *Runner) PressKeys(ctx context.Context, page playwright.Page, keys ...string) error {
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := page.Keyboard().Press(k); err != nil {
			return fmt.Errorf("pressing %q: %w", k, err)
		}
	}
	return nil
}

// Pause waits for d. While page is open the wait runs in the browser;
// otherwise (nil or closed page) it is a timer that ctx can cut short.
// The browser wait cannot be cancelled, so it is clamped to ctx's deadline
// and reports ctx's error when the clamp applied.
func (r *Runner) Pause(ctx context.Context, page playwright.Page, d time.Duration) error {
	if page == nil || page.IsClosed() {
		return sleep(ctx, d)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	clamped := false
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < d {
			d, clamped = remaining, true
		}
	}
	if d > 0 {
		page.WaitForTimeout(float64(d.Milliseconds()))
	}
	if clamped {
		return context.DeadlineExceeded
	}
	return nil
}

// Refresh reloads page.
func (r *Runner) Refresh(ctx context.Context, page playwright.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := page.Reload(playwright.PageReloadOptions{Timeout: deadlineMillis(ctx)}); err != nil {
		return fmt.Errorf("reloading %q: %w", page.URL(), err)
	}
	return nil
}

// OpenURL navigates the active page. NavigateSite prefixes target with the
// configured base URL. The page is resolved through tracker at call time, so
// a page that closed since the last step is replaced by an open one.
func (r *Runner) OpenURL(ctx context.Context, tracker *window.Tracker, kind NavigationKind, target string) error {
	url := target
	switch kind {
	case NavigateURL:
	case NavigateSite:
		url = r.cfg.Site().BaseURL + target
	default:
		return fmt.Errorf("unknown navigation kind %q", kind)
	}

	page, err := tracker.Active(ctx)
	if err != nil {
		return fmt.Errorf("resolving page to navigate: %w", err)
	}
	if _, err := page.Goto(url, playwright.PageGotoOptions{Timeout: deadlineMillis(ctx)}); err != nil {
		return fmt.Errorf("navigating to %q: %w", url, err)
	}
	r.logger.Debug("Opened URL.", zap.String("url", url))
	return nil
}

// BackToPage focuses the page at index (the first page when out of range)
// and goes back one entry in its history.
func (r *Runner) BackToPage(ctx context.Context, tracker *window.Tracker, index int) error {
	page, err := tracker.PageAt(ctx, index)
	if err != nil {
		return err
	}
	if _, err := page.GoBack(playwright.PageGoBackOptions{Timeout: deadlineMillis(ctx)}); err != nil {
		return fmt.Errorf("going back on %q: %w", page.URL(), err)
	}
	return nil
}

// HandleModal arranges for the next dialog on page to be accepted or
// dismissed. Alert boxes are always accepted since dismissing them crashes
// Chromium under automation. The handler fires once; later dialogs get
// playwright's default treatment or whatever handler a later step registers.
func (r *Runner) HandleModal(page playwright.Page, act DialogAction, modal ModalType) {
	logger := r.logger
	page.Once("dialog", func(d playwright.Dialog) {
		var err error
		if modal == ModalAlert || d.Type() == "alert" || act == DialogAccept {
			err = d.Accept()
		} else {
			err = d.Dismiss()
		}
		if err != nil {
			logger.Warn("Failed to handle dialog.", zap.String("type", d.Type()), zap.Error(err))
		}
	})
}

// ParseModalType accepts the modal words used in step text.
func ParseModalType(s string) (ModalType, error) {
	switch m := ModalType(strings.ToLower(strings.TrimSpace(s))); m {
	case ModalAlert, ModalConfirm, ModalPrompt:
		return m, nil
	default:
		return "", fmt.Errorf("unknown modal type %q", s)
	}
}
