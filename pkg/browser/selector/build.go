// pkg/browser/selector/build.go
package selector

import (
	"github.com/playwright-community/playwright-go"
)

// LocatorSource is the part of a page the builder needs. playwright.Page
// satisfies it; tests substitute a recording fake.
type LocatorSource interface {
	GetByTestId(testId interface{}) playwright.Locator
	GetByText(text interface{}, options ...playwright.PageGetByTextOptions) playwright.Locator
	GetByRole(role playwright.AriaRole, options ...playwright.PageGetByRoleOptions) playwright.Locator
	GetByLabel(text interface{}, options ...playwright.PageGetByLabelOptions) playwright.Locator
	GetByPlaceholder(text interface{}, options ...playwright.PageGetByPlaceholderOptions) playwright.Locator
	GetByAltText(text interface{}, options ...playwright.PageGetByAltTextOptions) playwright.Locator
	GetByTitle(text interface{}, options ...playwright.PageGetByTitleOptions) playwright.Locator
	Locator(selector string, options ...playwright.PageLocatorOptions) playwright.Locator
}

var _ LocatorSource = (playwright.Page)(nil)

// Build constructs the playwright locator described by q.
func (q Query) Build(src LocatorSource) playwright.Locator {
	switch q.Strategy {
	case StrategyTestID:
		return src.GetByTestId(q.Value)
	case StrategyText:
		return src.GetByText(q.Value)
	case StrategyRole:
		return src.GetByRole(playwright.AriaRole(q.Role), q.roleOptions()...)
	case StrategyLabel:
		return src.GetByLabel(q.Value)
	case StrategyPlaceholder:
		return src.GetByPlaceholder(q.Value)
	case StrategyAltText:
		return src.GetByAltText(q.Value)
	case StrategyTitle:
		return src.GetByTitle(q.Value)
	case StrategyTaggedTestID:
		// The element carrying the test id must itself be a <tag>.
		return src.GetByTestId(q.Value).And(src.Locator(q.Tag))
	case StrategyTagText:
		return src.Locator(q.Tag).Filter(playwright.LocatorFilterOptions{HasText: q.Value})
	case StrategyTestIDOrText:
		return src.GetByTestId(q.Value).Or(src.GetByText(q.Value))
	default:
		return src.Locator(q.Value)
	}
}

func (q Query) roleOptions() []playwright.PageGetByRoleOptions {
	if q.Name == "" && q.Level == 0 {
		return nil
	}
	var opts playwright.PageGetByRoleOptions
	if q.Name != "" {
		opts.Name = q.Name
	}
	if q.Level > 0 {
		opts.Level = playwright.Int(q.Level)
	}
	return []playwright.PageGetByRoleOptions{opts}
}
