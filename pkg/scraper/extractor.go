package scraper

import (
	"context"
	"time"

	"ighelper/pkg/errors"
	"ighelper/pkg/logger"
	"ighelper/pkg/models"
	"ighelper/pkg/retry"
)

// Extractor turns a post URL into a Post record.
type Extractor struct {
	page       Page
	nav        *Navigator
	dates      *Chain
	captions   *Chain
	loc        *time.Location
	maxRetries int
	retryDelay time.Duration
	log        logger.Logger
}

// NewExtractor creates an extractor. maxRetries is the number of extra
// navigation attempts after the first; only timeouts are retried.
func NewExtractor(page Page, nav *Navigator, loc *time.Location, maxRetries int, retryDelay time.Duration, log logger.Logger) *Extractor {
	return &Extractor{
		page:       page,
		nav:        nav,
		dates:      DateChain(log),
		captions:   CaptionChain(log),
		loc:        loc,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		log:        log,
	}
}

// Extract navigates to url and pulls out the post's fields. The date is
// resolved first and gates everything else: a post with no readable date is
// unusable, and a post older than cutoff is reported stale before any
// caption work is spent on it. Failures come back as typed errors so the
// caller can tell a stale post from a broken page.
func (e *Extractor) Extract(ctx context.Context, account, url string, cutoff time.Time) (*models.Post, error) {
	navigate := func() error {
		return e.nav.Navigate(ctx, url, "post")
	}
	err := retry.Do(navigate, &retry.Config{
		MaxAttempts: e.maxRetries + 1,
		Backoff:     &retry.ConstantBackoff{Delay: e.retryDelay},
		RetryIf:     retry.DefaultRetryIf,
		OnRetry: func(attempt int, err error, _ time.Duration) {
			logger.LogNavigation(url, "post", attempt, err)
		},
		Context: ctx,
		Logger:  e.log,
	})
	if err != nil {
		return nil, err
	}

	rawDate, dateStrategy := e.dates.Resolve(ctx, e.page)
	if rawDate == "" {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.New(errors.ErrorTypeMissingDate, "no post date found", url)
	}
	posted, err := parseTimestamp(rawDate)
	if err != nil {
		return nil, errors.Wrap(errors.ErrorTypeParsing, err, url)
	}
	posted = posted.In(e.loc)

	if posted.Before(cutoff) {
		return nil, errors.New(errors.ErrorTypeStalePost, "post older than cutoff", url)
	}

	caption, captionStrategy := e.captions.Resolve(ctx, e.page)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	e.log.DebugWithFields("Extracted post", map[string]interface{}{
		"account":          account,
		"url":              url,
		"date_strategy":    dateStrategy,
		"caption_strategy": captionStrategy,
		"has_caption":      caption != "",
	})

	return &models.Post{
		URL:        url,
		Account:    account,
		Caption:    caption,
		DatePosted: posted,
	}, nil
}
