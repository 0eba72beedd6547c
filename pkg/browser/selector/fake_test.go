// pkg/browser/selector/fake_test.go
package selector

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// baseLocator lets fakeLocator embed the interface without the embedded field
// shadowing Locator's own Locator method.
type baseLocator = playwright.Locator

var _ playwright.Locator = (*fakeLocator)(nil)

// fakeLocator records the call chain that produced it. Embedding the
// interface lets it stand in for playwright.Locator; only the combinators the
// builder uses are implemented.
type fakeLocator struct {
	baseLocator
	desc string
}

func (f *fakeLocator) And(other playwright.Locator) playwright.Locator {
	return &fakeLocator{desc: fmt.Sprintf("%s.And(%s)", f.desc, other.(*fakeLocator).desc)}
}

func (f *fakeLocator) Or(other playwright.Locator) playwright.Locator {
	return &fakeLocator{desc: fmt.Sprintf("%s.Or(%s)", f.desc, other.(*fakeLocator).desc)}
}

func (f *fakeLocator) Filter(options ...playwright.LocatorFilterOptions) playwright.Locator {
	var parts []string
	for _, o := range options {
		if o.HasText != nil {
			parts = append(parts, fmt.Sprintf("HasText: %q", o.HasText))
		}
	}
	return &fakeLocator{desc: fmt.Sprintf("%s.Filter({%s})", f.desc, strings.Join(parts, ", "))}
}

// recordingSource is a LocatorSource that returns fakeLocators and counts calls.
type recordingSource struct {
	calls int
}

var _ LocatorSource = (*recordingSource)(nil)

func (r *recordingSource) loc(format string, args ...interface{}) playwright.Locator {
	r.calls++
	return &fakeLocator{desc: fmt.Sprintf(format, args...)}
}

func (r *recordingSource) GetByTestId(testId interface{}) playwright.Locator {
	return r.loc("GetByTestId(%q)", testId)
}

func (r *recordingSource) GetByText(text interface{}, _ ...playwright.PageGetByTextOptions) playwright.Locator {
	return r.loc("GetByText(%q)", text)
}

func (r *recordingSource) GetByRole(role playwright.AriaRole, options ...playwright.PageGetByRoleOptions) playwright.Locator {
	if len(options) == 0 {
		return r.loc("GetByRole(%q)", string(role))
	}
	var opts []string
	if options[0].Name != nil {
		opts = append(opts, fmt.Sprintf("Name: %q", options[0].Name))
	}
	if options[0].Level != nil {
		opts = append(opts, fmt.Sprintf("Level: %d", *options[0].Level))
	}
	return r.loc("GetByRole(%q, {%s})", string(role), strings.Join(opts, ", "))
}

func (r *recordingSource) GetByLabel(text interface{}, _ ...playwright.PageGetByLabelOptions) playwright.Locator {
	return r.loc("GetByLabel(%q)", text)
}

func (r *recordingSource) GetByPlaceholder(text interface{}, _ ...playwright.PageGetByPlaceholderOptions) playwright.Locator {
	return r.loc("GetByPlaceholder(%q)", text)
}

func (r *recordingSource) GetByAltText(text interface{}, _ ...playwright.PageGetByAltTextOptions) playwright.Locator {
	return r.loc("GetByAltText(%q)", text)
}

func (r *recordingSource) GetByTitle(text interface{}, _ ...playwright.PageGetByTitleOptions) playwright.Locator {
	return r.loc("GetByTitle(%q)", text)
}

func (r *recordingSource) Locator(selector string, _ ...playwright.PageLocatorOptions) playwright.Locator {
	return r.loc("Locator(%q)", selector)
}

func describe(l playwright.Locator) string {
	return l.(*fakeLocator).desc
}
