// Package retry provides backoff and retry logic for transient failures,
// particularly navigation timeouts while driving the browser.
//
// Features:
//   - Multiple backoff strategies (exponential, linear, constant)
//   - Jitter to avoid lockstep retries
//   - Context support for cancellation
//   - Configurable retry predicates
//
// Basic usage:
//
//	// Simple retry with defaults
//	err := retry.Do(func() error {
//		return nav.Navigate(ctx, url, "post")
//	}, nil)
//
//	// Custom configuration
//	cfg := &retry.Config{
//		MaxAttempts: 3,
//		Backoff:     &retry.ConstantBackoff{Delay: 2 * time.Second},
//		RetryIf:     retry.DefaultRetryIf,
//	}
//	err := retry.Do(op, cfg)
package retry
