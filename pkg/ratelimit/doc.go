// Package ratelimit paces the sequential scraping pipeline.
//
// The pipeline drives a single shared browser page, so pacing is simply a
// minimum interval between consecutive operations (posts within an account,
// accounts within a run). The Pacer wraps golang.org/x/time/rate with a burst
// of one, which reduces to exactly that fixed spacing.
//
// Usage:
//
//	pacer := ratelimit.NewPacer(time.Second)
//
//	for _, url := range urls {
//	    if err := pacer.Wait(ctx); err != nil {
//	        return err // cancelled
//	    }
//	    // process url
//	}
package ratelimit
