package scraper

import (
	"context"
	"time"

	"ighelper/pkg/errors"
	"ighelper/pkg/instagram"
	"ighelper/pkg/logger"
	"ighelper/pkg/models"
	"ighelper/pkg/ratelimit"
)

// AccountResult is what one account's pass produced.
type AccountResult struct {
	Account string
	Posts   []*models.Post
	// Visited counts post pages actually navigated to
	Visited int
	// StopReason classifies why the pass ended early, empty when the
	// account was exhausted normally
	StopReason errors.ErrorType
}

// Processor runs the discovery and extraction pipeline for one account.
type Processor struct {
	nav       *Navigator
	collector *Collector
	extractor *Extractor
	baseURL   string
	maxPosts  int
	pacer     ratelimit.Limiter
	log       logger.Logger
}

// NewProcessor wires the per-account pipeline
func NewProcessor(nav *Navigator, collector *Collector, extractor *Extractor, baseURL string, maxPosts int, pacer ratelimit.Limiter, log logger.Logger) *Processor {
	return &Processor{
		nav:       nav,
		collector: collector,
		extractor: extractor,
		baseURL:   baseURL,
		maxPosts:  maxPosts,
		pacer:     pacer,
		log:       log,
	}
}

// Process visits an account's profile, collects post links, and extracts
// them newest first. Posts appear in feed order, so the first extraction
// miss ends the account: a stale post means everything below it is older
// still, and a broken page this early usually means the markup shifted and
// further visits would just burn time. The posts gathered before the miss
// are kept.
func (p *Processor) Process(ctx context.Context, account string, cutoff time.Time) (*AccountResult, error) {
	result := &AccountResult{Account: account}
	if ctx.Err() != nil {
		return result, ctx.Err()
	}

	profileURL := instagram.ProfileURL(p.baseURL, account)
	if err := p.nav.Navigate(ctx, profileURL, "profile"); err != nil {
		return result, err
	}

	urls, err := p.collector.Collect(ctx, p.maxPosts)
	if err != nil {
		return result, err
	}
	if len(urls) == 0 {
		p.log.WithField("account", account).Warn("No post links found on profile")
		return result, nil
	}

	for _, url := range urls {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		if err := p.pacer.Wait(ctx); err != nil {
			return result, err
		}

		result.Visited++
		post, err := p.extractor.Extract(ctx, account, url, cutoff)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.StopReason = errors.TypeOf(err)
			logger.LogExtraction(account, url, false, string(result.StopReason))
			break
		}
		logger.LogExtraction(account, url, true, "")
		result.Posts = append(result.Posts, post)
	}

	return result, nil
}
