// pkg/browser/window/fake_test.go
package window

import (
	"errors"
	"time"

	"github.com/playwright-community/playwright-go"
)

// fakeContext is an in-memory PageSource. Pages queued on incoming "open"
// during the next WaitForEvent call.
type fakeContext struct {
	pages    []playwright.Page
	incoming []*fakePage
	waits    int
	timeouts []float64
	// front is the page most recently brought to front.
	front *fakePage
}

func newFakeContext(pages ...*fakePage) *fakeContext {
	c := &fakeContext{}
	for _, p := range pages {
		c.add(p)
	}
	return c
}

func (c *fakeContext) add(p *fakePage) {
	p.ctx = c
	c.pages = append(c.pages, p)
}

func (c *fakeContext) Pages() []playwright.Page {
	out := make([]playwright.Page, len(c.pages))
	copy(out, c.pages)
	return out
}

func (c *fakeContext) WaitForEvent(event string, options ...playwright.BrowserContextWaitForEventOptions) (interface{}, error) {
	c.waits++
	if len(options) > 0 && options[0].Timeout != nil {
		c.timeouts = append(c.timeouts, *options[0].Timeout)
	}
	if event != "page" {
		return nil, errors.New("unexpected event " + event)
	}
	if len(c.incoming) == 0 {
		// Simulate the timeout without sleeping for the whole wait.
		time.Sleep(time.Millisecond)
		return nil, errors.New("Timeout exceeded while waiting for event \"page\"")
	}
	p := c.incoming[0]
	c.incoming = c.incoming[1:]
	c.add(p)
	return p, nil
}

// fakePage implements the handful of playwright.Page methods the tracker calls.
type fakePage struct {
	playwright.Page
	ctx      *fakeContext
	url      string
	title    string
	titleErr error
	closed   bool
	closeErr error
	frontErr error
	fronted  int
}

func newFakePage(url, title string) *fakePage {
	return &fakePage{url: url, title: title}
}

func (p *fakePage) URL() string { return p.url }

func (p *fakePage) Title() (string, error) {
	if p.titleErr != nil {
		return "", p.titleErr
	}
	return p.title, nil
}

func (p *fakePage) IsClosed() bool { return p.closed }

func (p *fakePage) Close(options ...playwright.PageCloseOptions) error {
	if p.closeErr != nil {
		return p.closeErr
	}
	p.closed = true
	return nil
}

func (p *fakePage) BringToFront() error {
	if p.frontErr != nil {
		return p.frontErr
	}
	p.fronted++
	if p.ctx != nil {
		p.ctx.front = p
	}
	return nil
}

// Aliased so the embedded field is not named Locator, which would shadow the
// interface's Locator method.
type baseLocator = playwright.Locator

var _ playwright.Locator = (*fakeLocator)(nil)

// fakeLocator implements WaitFor only.
type fakeLocator struct {
	baseLocator
	waitErr error
	waited  int
	state   *playwright.WaitForSelectorState
}

func (l *fakeLocator) WaitFor(options ...playwright.LocatorWaitForOptions) error {
	l.waited++
	if len(options) > 0 {
		l.state = options[0].State
	}
	return l.waitErr
}
