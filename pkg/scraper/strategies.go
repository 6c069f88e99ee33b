package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"ighelper/pkg/instagram"
	"ighelper/pkg/logger"
)

// timestampLayouts are the datetime formats Instagram has been observed
// emitting, most specific first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTimestamp parses a datetime attribute value
func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", raw)
}

// DateChain resolves a post's publication timestamp. All strategies read
// machine-readable attributes, never rendered text, so the result is
// locale-independent.
func DateChain(log logger.Logger) *Chain {
	attrStrategy := func(name, selector, attr string) Strategy {
		return Strategy{
			Name: name,
			Fn: func(ctx context.Context, page Page) (string, error) {
				v, ok, err := page.Attribute(ctx, selector, attr)
				if err != nil || !ok {
					return "", err
				}
				// validate here so a garbage attribute falls through
				// to the next strategy instead of poisoning the post
				if _, perr := parseTimestamp(v); perr != nil {
					return "", perr
				}
				return v, nil
			},
		}
	}
	return NewChain("date", log,
		attrStrategy("time-datetime", instagram.PostDateSelector, "datetime"),
		attrStrategy("article-time", instagram.ArticleDateSelector, "datetime"),
		attrStrategy("meta-published", instagram.MetaDateSelector, "content"),
	)
}

// CaptionChain resolves a post's caption text. Order matters: the legacy
// structural XPath first, then conservative CSS fallbacks, then a generic
// scan over an HTML snapshot as the net under everything else.
func CaptionChain(log logger.Logger) *Chain {
	strategies := []Strategy{
		{
			Name: "structural-xpath",
			Fn: func(ctx context.Context, page Page) (string, error) {
				return page.TextByXPath(ctx, instagram.CaptionXPath)
			},
		},
	}
	for i, sel := range instagram.CaptionSelectors {
		selector := sel
		strategies = append(strategies, Strategy{
			Name: fmt.Sprintf("css-fallback-%d", i+1),
			Fn: func(ctx context.Context, page Page) (string, error) {
				return page.Text(ctx, selector)
			},
		})
	}
	strategies = append(strategies, Strategy{
		Name: "generic-scan",
		Fn:   genericCaptionScan,
	})
	return NewChain("caption", log, strategies...)
}

// chromeWords are single words that identify UI chrome rather than caption
// content when a text node consists of exactly one of them.
var chromeWords = map[string]struct{}{
	"follow":   {},
	"like":     {},
	"liked":    {},
	"likes":    {},
	"comment":  {},
	"comments": {},
	"share":    {},
	"save":     {},
	"more":     {},
	"reply":    {},
}

// genericCaptionScan walks a snapshot of the page and picks the first leaf
// span that looks like prose. The length band and chrome-word filter keep
// it from grabbing buttons and counters; it will still lose to truly short
// or truly enormous captions, which is an accepted trade for a strategy of
// last resort.
func genericCaptionScan(ctx context.Context, page Page) (string, error) {
	html, err := page.HTML(ctx)
	if err != nil {
		return "", err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	var caption string
	doc.Find("main span[dir='auto'], article span[dir='auto']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Children().Length() > 0 {
			return true
		}
		text := strings.TrimSpace(s.Text())
		if !looksLikeCaption(text) {
			return true
		}
		caption = text
		return false
	})
	return caption, nil
}

func looksLikeCaption(text string) bool {
	n := utf8.RuneCountInString(text)
	if n <= 10 || n >= 500 {
		return false
	}
	// UI chrome reads like "View all 1,234 comments" or "Liked by x and
	// others"; any chrome token in the text disqualifies it
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?:;()\"'")
		if _, chrome := chromeWords[word]; chrome {
			return false
		}
	}
	return true
}
