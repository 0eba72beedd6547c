// pkg/browser/window/errors.go
package window

import "errors"

var (
	// ErrWindowNotFound is returned when a focus or close by url/title finds no
	// matching page, even after waiting for a new one.
	ErrWindowNotFound = errors.New("window not found")
	// ErrNoActivePage is returned when the context has no open page, no usable
	// fallback, and no page opened within the wait.
	ErrNoActivePage = errors.New("no active page")
	// ErrNoPages is returned by index lookups on an empty context.
	ErrNoPages = errors.New("no pages available")
	// ErrUnknownMatchType is returned for match types other than url, title
	// and element.
	ErrUnknownMatchType = errors.New("unknown window match type")
)
