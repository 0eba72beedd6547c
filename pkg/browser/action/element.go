// pkg/browser/action/element.go
package action

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// ClickKind is the kind of click a step performs.
type ClickKind string

const (
	ClickSingle ClickKind = "click"
	ClickDouble ClickKind = "doubleClick"
)

// ParseClickKind accepts "click" and "doubleClick" (any case).
func ParseClickKind(s string) (ClickKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "click":
		return ClickSingle, nil
	case "doubleclick":
		return ClickDouble, nil
	default:
		return "", fmt.Errorf("unknown click kind %q", s)
	}
}

// InputMode says whether SetInputField replaces or appends to a field's value.
type InputMode string

const (
	InputSet InputMode = "set"
	InputAdd InputMode = "add"
)

// ExistenceCheck is an expectation about how many elements a locator matches.
// Absent takes precedence over Exactly; with neither set at least one match
// is required.
type ExistenceCheck struct {
	Absent  bool
	Exactly int
}

func (c ExistenceCheck) String() string {
	switch {
	case c.Absent:
		return "absent"
	case c.Exactly > 0:
		return fmt.Sprintf("exactly %d", c.Exactly)
	default:
		return "present"
	}
}

// CheckExists counts the locator's matches and compares them with check.
// A mismatch returns an error wrapping ErrAssertion.
func (r *Runner) CheckExists(ctx context.Context, locator playwright.Locator, check ExistenceCheck) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := locator.Count()
	if err != nil {
		return fmt.Errorf("counting elements: %w", err)
	}

	switch {
	case check.Absent:
		if n != 0 {
			return fmt.Errorf("%w: element should not exist on the page (found %d)", ErrAssertion, n)
		}
	case check.Exactly > 0:
		if n != check.Exactly {
			return fmt.Errorf("%w: element should exist exactly %d time(s) (found %d)", ErrAssertion, check.Exactly, n)
		}
	default:
		if n < 1 {
			return fmt.Errorf("%w: element should exist on the page", ErrAssertion)
		}
	}
	r.logger.Debug("Existence check passed.", zap.Stringer("check", check), zap.Int("count", n))
	return nil
}

// Click clicks or double-clicks the element after asserting it exists.
func (r *Runner) Click(ctx context.Context, locator playwright.Locator, kind ClickKind) error {
	if err := r.CheckExists(ctx, locator, ExistenceCheck{}); err != nil {
		return err
	}

	var err error
	switch kind {
	case ClickSingle:
		err = locator.Click(playwright.LocatorClickOptions{Timeout: deadlineMillis(ctx)})
	case ClickDouble:
		err = locator.Dblclick(playwright.LocatorDblclickOptions{Timeout: deadlineMillis(ctx)})
	default:
		return fmt.Errorf("unknown click kind %q", kind)
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", kind, err)
	}
	r.logger.Debug("Clicked element.", zap.String("kind", string(kind)))
	return nil
}

// SetInputField fills the single element the locator matches. InputAdd appends
// value to the current input value; anything else replaces it.
func (r *Runner) SetInputField(ctx context.Context, locator playwright.Locator, mode InputMode, value string) error {
	if err := r.CheckExists(ctx, locator, ExistenceCheck{Exactly: 1}); err != nil {
		return err
	}

	text := value
	if mode == InputAdd {
		current, err := locator.InputValue(playwright.LocatorInputValueOptions{Timeout: deadlineMillis(ctx)})
		if err != nil {
			return fmt.Errorf("reading current input value: %w", err)
		}
		text = current + value
	}

	if err := locator.Fill(text, playwright.LocatorFillOptions{Timeout: deadlineMillis(ctx)}); err != nil {
		return fmt.Errorf("filling input field: %w", err)
	}
	r.logger.Debug("Set input field.", zap.String("mode", string(mode)), zap.Int("length", len(text)))
	return nil
}

// ClearInputField empties an input field.
func (r *Runner) ClearInputField(ctx context.Context, locator playwright.Locator) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := locator.Clear(playwright.LocatorClearOptions{Timeout: deadlineMillis(ctx)}); err != nil {
		return fmt.Errorf("clearing input field: %w", err)
	}
	return nil
}

var waitStates = map[string]*playwright.WaitForSelectorState{
	"exist":     playwright.WaitForSelectorStateAttached,
	"existent":  playwright.WaitForSelectorStateAttached,
	"displayed": playwright.WaitForSelectorStateVisible,
	"visible":   playwright.WaitForSelectorStateVisible,
	"enabled":   playwright.WaitForSelectorStateAttached,
	"clickable": playwright.WaitForSelectorStateVisible,
}

// ParseWaitState maps the state words used in step text ("exist", "be
// displayed", "become clickable", ...) to a playwright wait state. Only the
// last word counts. Unknown or empty states mean visible. With negate the
// result flips between visible and hidden, or attached and detached.
func ParseWaitState(state string, negate bool) *playwright.WaitForSelectorState {
	word := ""
	if fields := strings.Fields(state); len(fields) > 0 {
		word = strings.ToLower(fields[len(fields)-1])
	}
	s, ok := waitStates[word]
	if !ok {
		s = playwright.WaitForSelectorStateVisible
	}
	if !negate {
		return s
	}
	switch *s {
	case *playwright.WaitForSelectorStateVisible:
		return playwright.WaitForSelectorStateHidden
	case *playwright.WaitForSelectorStateAttached:
		return playwright.WaitForSelectorStateDetached
	default:
		return s
	}
}

// WaitFor waits until the element reaches state (see ParseWaitState). A
// non-positive timeout uses the configured default; the wait never outlives ctx.
func (r *Runner) WaitFor(ctx context.Context, locator playwright.Locator, timeout time.Duration, negate bool, state string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if timeout <= 0 {
		timeout = r.cfg.Action().DefaultWaitTimeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	target := ParseWaitState(state, negate)
	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   target,
		Timeout: playwright.Float(toMillis(timeout)),
	})
	if err != nil {
		return fmt.Errorf("waiting %s for element to be %s: %w", timeout, *target, err)
	}
	return nil
}
