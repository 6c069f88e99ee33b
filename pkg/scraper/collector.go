package scraper

import (
	"context"
	"time"

	"ighelper/pkg/instagram"
	"ighelper/pkg/logger"
	"ighelper/pkg/retry"
)

// Collector discovers post permalinks on a profile page.
type Collector struct {
	page         Page
	baseURL      string
	maxScrolls   int
	scrollSettle time.Duration
	log          logger.Logger
}

// NewCollector creates a collector over the shared page
func NewCollector(page Page, baseURL string, maxScrolls int, scrollSettle time.Duration, log logger.Logger) *Collector {
	return &Collector{
		page:         page,
		baseURL:      baseURL,
		maxScrolls:   maxScrolls,
		scrollSettle: scrollSettle,
		log:          log,
	}
}

// Collect returns up to max canonical post URLs from the current page, in
// discovery order. The selector patterns are tried in priority order and
// the first one that matches anything wins; mixing patterns would
// interleave permalinks with junk navigation links.
func (c *Collector) Collect(ctx context.Context, max int) ([]string, error) {
	if c.maxScrolls > 0 {
		if err := c.scrollUntilStable(ctx, max); err != nil {
			return nil, err
		}
	}

	for _, selector := range instagram.LinkSelectors() {
		hrefs, err := c.page.Links(ctx, selector, 0)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// one broken pattern must not cost the account; the next
			// pattern may still match
			c.log.WithError(err).WithField("selector", selector).Debug("Link query failed")
			continue
		}
		urls := c.canonicalizePostLinks(hrefs, max)
		if len(urls) > 0 {
			c.log.DebugWithFields("Collected post links", map[string]interface{}{
				"selector": selector,
				"count":    len(urls),
			})
			return urls, nil
		}
	}
	return nil, nil
}

// canonicalizePostLinks canonicalizes hrefs, keeps only post permalinks,
// and dedupes while preserving first-seen order
func (c *Collector) canonicalizePostLinks(hrefs []string, max int) []string {
	seen := make(map[string]struct{}, len(hrefs))
	var urls []string
	for _, href := range hrefs {
		url, ok := instagram.Canonicalize(c.baseURL, href)
		if !ok || !instagram.IsPostURL(url) {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		urls = append(urls, url)
		if max > 0 && len(urls) >= max {
			break
		}
	}
	return urls
}

// scrollUntilStable scrolls the feed to trigger lazy loading, stopping once
// enough links are visible for the target, the count stops growing, or the
// scroll budget runs out
func (c *Collector) scrollUntilStable(ctx context.Context, target int) error {
	prev := -1
	for i := 0; i < c.maxScrolls; i++ {
		if err := c.page.Scroll(ctx, 800); err != nil {
			// scrolling is an optimization; the links already on the
			// page are still collectable
			c.log.WithError(err).Debug("Scroll failed")
			return nil
		}
		if err := retry.Wait(ctx, c.scrollSettle); err != nil {
			return err
		}
		count, err := c.page.Count(ctx, instagram.AnyLinkSelector)
		if err != nil {
			return nil
		}
		if target > 0 && count >= target {
			break
		}
		if count == prev {
			break
		}
		prev = count
	}
	return nil
}
