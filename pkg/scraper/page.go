package scraper

import (
	"context"
	"time"
)

// Page is the minimal surface of a browser tab the pipeline drives. The
// production implementation lives in pkg/browser; tests substitute fakes.
//
// One Page is shared by the whole run and used strictly sequentially: a
// single tab cannot be in two places at once, so nothing here is expected
// to be safe for concurrent use.
type Page interface {
	// Navigate drives the tab to url under the given timeout. A deadline
	// overrun must surface context.DeadlineExceeded in the error chain.
	Navigate(ctx context.Context, url string, timeout time.Duration) error

	// Count returns how many elements match the CSS selector
	Count(ctx context.Context, selector string) (int, error)

	// Links returns href attributes of matching elements in document
	// order; max <= 0 means no limit
	Links(ctx context.Context, selector string, max int) ([]string, error)

	// Text returns the visible text of the first matching element,
	// empty when nothing matches
	Text(ctx context.Context, selector string) (string, error)

	// TextByXPath is Text addressed by an XPath expression
	TextByXPath(ctx context.Context, xpath string) (string, error)

	// Attribute reads an attribute off the first matching element;
	// ok is false when the element or attribute is absent
	Attribute(ctx context.Context, selector, name string) (string, bool, error)

	// HTML returns a snapshot of the document's outer HTML
	HTML(ctx context.Context) (string, error)

	// Scroll scrolls the viewport down by deltaY pixels
	Scroll(ctx context.Context, deltaY int) error

	// ClickByText clicks the first matching element whose text contains
	// one of the given strings; reports whether anything was clicked
	ClickByText(ctx context.Context, selector string, texts []string) (bool, error)
}
