package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"
)

// defaultOpTimeout bounds non-navigation DOM operations so a single broken
// query cannot stall the pipeline.
const defaultOpTimeout = 10 * time.Second

// Page is a live browser tab driven over CDP. One Page is shared across the
// whole run and mutated sequentially; it is not safe for concurrent use.
type Page struct {
	ctx       context.Context
	opTimeout time.Duration
}

// NewPage wraps a chromedp tab context
func NewPage(ctx context.Context) *Page {
	return &Page{ctx: ctx, opTimeout: defaultOpTimeout}
}

// run executes chromedp actions against the tab under a timeout. Caller
// cancellation is honored between operations, not by interrupting one
// mid-flight.
func (p *Page) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	runCtx := p.ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, timeout)
		defer cancel()
	}
	return chromedp.Run(runCtx, actions...)
}

// Navigate drives the tab to the given URL under the given timeout.
// A deadline overrun surfaces as context.DeadlineExceeded in the error chain.
func (p *Page) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	return p.run(ctx, timeout, chromedp.Navigate(url))
}

// Count returns the number of elements matching the CSS selector
func (p *Page) Count(ctx context.Context, selector string) (int, error) {
	var count int
	expr := fmt.Sprintf(`document.querySelectorAll(%q).length`, selector)
	err := p.run(ctx, p.opTimeout, chromedp.Evaluate(expr, &count))
	return count, err
}

// Links returns the href attributes of elements matching the CSS selector,
// in document order. max <= 0 means no limit.
func (p *Page) Links(ctx context.Context, selector string, max int) ([]string, error) {
	var hrefs []string
	expr := fmt.Sprintf(
		`Array.from(document.querySelectorAll(%q)).map(a => a.getAttribute('href')).filter(h => h)`,
		selector)
	if err := p.run(ctx, p.opTimeout, chromedp.Evaluate(expr, &hrefs)); err != nil {
		return nil, err
	}
	if max > 0 && len(hrefs) > max {
		hrefs = hrefs[:max]
	}
	return hrefs, nil
}

// Text returns the visible text of the first element matching the CSS
// selector, empty if no element matches.
func (p *Page) Text(ctx context.Context, selector string) (string, error) {
	var text string
	err := p.run(ctx, p.opTimeout,
		chromedp.Text(selector, &text, chromedp.ByQuery, chromedp.AtLeast(0)))
	return strings.TrimSpace(text), err
}

// TextByXPath returns the visible text of the first node matching the XPath,
// empty if no node matches.
func (p *Page) TextByXPath(ctx context.Context, xpath string) (string, error) {
	var text string
	err := p.run(ctx, p.opTimeout,
		chromedp.Text(xpath, &text, chromedp.BySearch, chromedp.AtLeast(0)))
	return strings.TrimSpace(text), err
}

// Attribute reads an attribute off the first element matching the CSS
// selector. ok is false when the element or attribute is absent.
func (p *Page) Attribute(ctx context.Context, selector, name string) (string, bool, error) {
	var value string
	var ok bool
	err := p.run(ctx, p.opTimeout,
		chromedp.AttributeValue(selector, name, &value, &ok, chromedp.ByQuery, chromedp.AtLeast(0)))
	return value, ok, err
}

// HTML returns a snapshot of the document's outer HTML
func (p *Page) HTML(ctx context.Context) (string, error) {
	var html string
	err := p.run(ctx, p.opTimeout, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

// Scroll dispatches a mouse wheel event to scroll the viewport down
func (p *Page) Scroll(ctx context.Context, deltaY int) error {
	return p.run(ctx, p.opTimeout, chromedp.ActionFunc(func(ctx context.Context) error {
		return input.DispatchMouseEvent(input.MouseWheel, 400, 400).
			WithDeltaX(0).
			WithDeltaY(float64(deltaY)).
			Do(ctx)
	}))
}

// ClickByText clicks the first element matching the CSS selector whose
// visible text contains one of the given strings (case-insensitive).
// Returns whether anything was clicked.
func (p *Page) ClickByText(ctx context.Context, selector string, texts []string) (bool, error) {
	var clicked bool
	needles := make([]string, len(texts))
	for i, t := range texts {
		needles[i] = strings.ToLower(t)
	}
	expr := fmt.Sprintf(`(() => {
		const needles = %s;
		for (const el of document.querySelectorAll(%q)) {
			const text = (el.innerText || '').trim().toLowerCase();
			if (needles.some(n => text.includes(n))) {
				el.click();
				return true;
			}
		}
		return false;
	})()`, jsStringArray(needles), selector)
	err := p.run(ctx, p.opTimeout, chromedp.Evaluate(expr, &clicked))
	return clicked, err
}

func jsStringArray(items []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%q", item)
	}
	b.WriteByte(']')
	return b.String()
}
