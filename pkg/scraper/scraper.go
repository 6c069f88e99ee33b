package scraper

import (
	"context"
	"time"

	"ighelper/pkg/errors"
	"ighelper/pkg/logger"
	"ighelper/pkg/models"
	"ighelper/pkg/ratelimit"
)

// RunResult aggregates a whole run across accounts.
type RunResult struct {
	Posts []*models.Post
	// Processed counts accounts that completed their pass, including
	// passes that stopped early on a stale or broken post
	Processed int
	// Failed counts accounts whose profile could not be processed at all
	Failed int
	// Visited counts post pages navigated to across all accounts
	Visited int
	Started time.Time
	Elapsed time.Duration
}

// Scraper walks the account list and runs the per-account pipeline.
type Scraper struct {
	processor *Processor
	pacer     ratelimit.Limiter
	log       logger.Logger
}

// New creates a scraper. pacer spaces out account visits.
func New(processor *Processor, pacer ratelimit.Limiter, log logger.Logger) *Scraper {
	return &Scraper{processor: processor, pacer: pacer, log: log}
}

// Run processes every account in order and collects the extracted posts.
// One account failing does not abort the run; the error is logged and the
// walk moves on. Context cancellation does abort, returning whatever was
// gathered so far alongside the context error.
func (s *Scraper) Run(ctx context.Context, accounts []string, cutoff time.Time) (*RunResult, error) {
	result := &RunResult{Started: time.Now()}
	defer func() { result.Elapsed = time.Since(result.Started) }()

	s.log.InfoWithFields("Starting run", map[string]interface{}{
		"accounts": len(accounts),
		"cutoff":   cutoff.Format(time.RFC3339),
	})

	for i, account := range accounts {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		if i > 0 {
			if err := s.pacer.Wait(ctx); err != nil {
				return result, err
			}
		}

		ar, err := s.processor.Process(ctx, account, cutoff)
		result.Visited += ar.Visited
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Failed++
			s.log.WithError(err).WithFields(map[string]interface{}{
				"account": account,
				"type":    string(errors.TypeOf(err)),
			}).Error("Account failed")
			continue
		}

		result.Processed++
		result.Posts = append(result.Posts, ar.Posts...)
		logger.LogAccountSummary(account, ar.Visited, len(ar.Posts))
	}

	logger.LogRunSummary(len(accounts), result.Processed, result.Failed, len(result.Posts))
	return result, nil
}
