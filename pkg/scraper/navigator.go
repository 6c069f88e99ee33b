package scraper

import (
	"context"
	stderrors "errors"
	"time"

	"ighelper/pkg/errors"
	"ighelper/pkg/instagram"
	"ighelper/pkg/logger"
	"ighelper/pkg/retry"
)

// Navigator wraps page navigation with timeout classification, wall
// handling, and the unconditional settle delay.
type Navigator struct {
	page    Page
	timeout time.Duration
	settle  time.Duration
	log     logger.Logger
}

// NewNavigator creates a navigator over the shared page
func NewNavigator(page Page, timeout, settle time.Duration, log logger.Logger) *Navigator {
	return &Navigator{
		page:    page,
		timeout: timeout,
		settle:  settle,
		log:     log,
	}
}

// Navigate performs one navigation attempt to url. Failures are classified:
// a deadline overrun is a retryable timeout, a detected login wall is an
// auth failure, anything else is a plain navigation failure. After a
// successful load the navigator waits a fixed settle delay so client-side
// rendering can populate the DOM; this is deliberately a blind sleep, not a
// readiness poll.
func (n *Navigator) Navigate(ctx context.Context, url, purpose string) error {
	err := n.page.Navigate(ctx, url, n.timeout)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if stderrors.Is(err, context.DeadlineExceeded) {
			return errors.Wrap(errors.ErrorTypeTimeout, err, url)
		}
		return errors.Wrap(errors.ErrorTypeNavigation, err, url)
	}

	n.dismissConsent(ctx)

	if n.isLoginPage(ctx) {
		n.log.WithField("url", url).Error("Login page detected; session is not authenticated")
		return errors.New(errors.ErrorTypeAuth, "login wall detected", url)
	}

	if err := retry.Wait(ctx, n.settle); err != nil {
		return err
	}

	n.log.DebugWithFields("Navigation completed", map[string]interface{}{
		"url":     url,
		"purpose": purpose,
	})
	return nil
}

// dismissConsent clicks away common consent dialogs if present. Best-effort:
// every failure here is swallowed.
func (n *Navigator) dismissConsent(ctx context.Context) {
	clicked, err := n.page.ClickByText(ctx, instagram.ConsentButtonSelector, instagram.ConsentButtonTexts)
	if err != nil {
		n.log.WithError(err).Debug("Consent dismissal failed")
		return
	}
	if clicked {
		n.log.Debug("Dismissed consent dialog")
	}
}

// isLoginPage detects the login screen: both credential inputs present
func (n *Navigator) isLoginPage(ctx context.Context) bool {
	count, err := n.page.Count(ctx, instagram.LoginInputSelector)
	if err != nil {
		return false
	}
	return count >= 2
}
