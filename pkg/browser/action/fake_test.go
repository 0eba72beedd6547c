// pkg/browser/action/fake_test.go
package action

import (
	"errors"

	"github.com/playwright-community/playwright-go"
)

// baseLocator lets fakeLocator embed the interface without the embedded field
// shadowing Locator's own Locator method.
type baseLocator = playwright.Locator

var _ playwright.Locator = (*fakeLocator)(nil)

type fakeLocator struct {
	baseLocator
	count    int
	countErr error
	clickErr error
	fillErr  error
	waitErr  error
	value    string

	clicks    int
	dblclicks int
	filled    []string
	cleared   int
	waitOpts  []playwright.LocatorWaitForOptions
}

func (l *fakeLocator) Count() (int, error) { return l.count, l.countErr }

func (l *fakeLocator) Click(options ...playwright.LocatorClickOptions) error {
	l.clicks++
	return l.clickErr
}

func (l *fakeLocator) Dblclick(options ...playwright.LocatorDblclickOptions) error {
	l.dblclicks++
	return l.clickErr
}

func (l *fakeLocator) InputValue(options ...playwright.LocatorInputValueOptions) (string, error) {
	return l.value, nil
}

func (l *fakeLocator) Fill(value string, options ...playwright.LocatorFillOptions) error {
	if l.fillErr != nil {
		return l.fillErr
	}
	l.filled = append(l.filled, value)
	l.value = value
	return nil
}

func (l *fakeLocator) Clear(options ...playwright.LocatorClearOptions) error {
	l.cleared++
	l.value = ""
	return nil
}

func (l *fakeLocator) WaitFor(options ...playwright.LocatorWaitForOptions) error {
	l.waitOpts = append(l.waitOpts, options...)
	return l.waitErr
}

type fakeKeyboard struct {
	playwright.Keyboard
	pressed []string
	failOn  string
}

func (k *fakeKeyboard) Press(key string, options ...playwright.KeyboardPressOptions) error {
	if key == k.failOn {
		return errors.New("unknown key")
	}
	k.pressed = append(k.pressed, key)
	return nil
}

type fakePage struct {
	playwright.Page
	ctx      *fakeContext
	url      string
	closed   bool
	keyboard *fakeKeyboard

	gotoURLs []string
	gotoErr  error
	reloads  int
	backs    int
	fronted  int
	waitedMs []float64
	dialogs  []dialogListener
}

type dialogListener struct {
	fn   func(playwright.Dialog)
	once bool
}

func newFakePage(url string) *fakePage {
	return &fakePage{url: url, keyboard: &fakeKeyboard{}}
}

func (p *fakePage) URL() string { return p.url }
func (p *fakePage) IsClosed() bool { return p.closed }
func (p *fakePage) Keyboard() playwright.Keyboard { return p.keyboard }

func (p *fakePage) Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error) {
	if p.gotoErr != nil {
		return nil, p.gotoErr
	}
	p.gotoURLs = append(p.gotoURLs, url)
	p.url = url
	return nil, nil
}

func (p *fakePage) Reload(options ...playwright.PageReloadOptions) (playwright.Response, error) {
	p.reloads++
	return nil, nil
}

func (p *fakePage) GoBack(options ...playwright.PageGoBackOptions) (playwright.Response, error) {
	p.backs++
	return nil, nil
}

func (p *fakePage) BringToFront() error {
	p.fronted++
	return nil
}

func (p *fakePage) Close(options ...playwright.PageCloseOptions) error {
	p.closed = true
	return nil
}

func (p *fakePage) WaitForTimeout(timeout float64) {
	p.waitedMs = append(p.waitedMs, timeout)
}

func (p *fakePage) OnDialog(fn func(playwright.Dialog)) {
	p.dialogs = append(p.dialogs, dialogListener{fn: fn})
}

func (p *fakePage) On(name string, handler interface{}) { p.addListener(name, handler, false) }

func (p *fakePage) Once(name string, handler interface{}) { p.addListener(name, handler, true) }

func (p *fakePage) addListener(name string, handler interface{}, once bool) {
	if fn, ok := handler.(func(playwright.Dialog)); ok && name == "dialog" {
		p.dialogs = append(p.dialogs, dialogListener{fn: fn, once: once})
	}
}

// openDialog delivers d the way playwright does: every listener runs in
// registration order, one-shot listeners are dropped after running, and a
// dialog nobody listens for is dismissed.
func (p *fakePage) openDialog(d playwright.Dialog) {
	if len(p.dialogs) == 0 {
		_ = d.Dismiss()
		return
	}
	listeners := p.dialogs
	p.dialogs = nil
	for _, l := range listeners {
		if !l.once {
			p.dialogs = append(p.dialogs, l)
		}
	}
	for _, l := range listeners {
		l.fn(d)
	}
}

type fakeDialog struct {
	playwright.Dialog
	kind      string
	accepted  bool
	dismissed bool
	handled   int
}

func (d *fakeDialog) Type() string { return d.kind }

func (d *fakeDialog) Accept(promptText ...string) error {
	d.accepted = true
	d.handled++
	return nil
}

func (d *fakeDialog) Dismiss() error {
	d.dismissed = true
	d.handled++
	return nil
}

// fakeContext is a window.PageSource over a fixed page list.
type fakeContext struct {
	pages []playwright.Page
}

func newFakeContext(pages ...*fakePage) *fakeContext {
	c := &fakeContext{}
	for _, p := range pages {
		p.ctx = c
		c.pages = append(c.pages, p)
	}
	return c
}

func (c *fakeContext) Pages() []playwright.Page { return c.pages }

func (c *fakeContext) WaitForEvent(event string, options ...playwright.BrowserContextWaitForEventOptions) (interface{}, error) {
	return nil, errors.New("Timeout exceeded while waiting for event \"page\"")
}
