// pkg/browser/window/match.go
package window

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/xkilldash9x/wallet-e2e/pkg/browser/selector"
)

// MatchType selects how Focus and Close identify their target window.
type MatchType string

const (
	MatchURL     MatchType = "url"
	MatchTitle   MatchType = "title"
	MatchElement MatchType = "element"
)

// ParseMatchType accepts the words used in step text ("url", "title",
// "element"), case-insensitively.
func ParseMatchType(s string) (MatchType, error) {
	switch mt := MatchType(strings.ToLower(strings.TrimSpace(s))); mt {
	case MatchURL, MatchTitle, MatchElement:
		return mt, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMatchType, s)
	}
}

// ElementResolver turns an element match value into a locator on page.
type ElementResolver func(page playwright.Page, value string) playwright.Locator

func resolveWithSelector(page playwright.Page, value string) playwright.Locator {
	return selector.Resolve(page, value)
}
