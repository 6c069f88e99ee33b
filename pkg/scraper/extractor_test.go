package scraper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ighelper/pkg/errors"
	"ighelper/pkg/instagram"
	"ighelper/pkg/logger"
)

const postURL = "https://www.instagram.com/p/ABC123"

func newTestExtractor(page Page, maxRetries int) *Extractor {
	nav := NewNavigator(page, 0, 0, logger.NewNopLogger())
	return NewExtractor(page, nav, time.UTC, maxRetries, 0, logger.NewNopLogger())
}

func freshPost(page *fakePage, posted time.Time, caption string) *pageState {
	st := page.addPage(postURL)
	st.setAttr(instagram.PostDateSelector, "datetime", posted.UTC().Format(time.RFC3339))
	if caption != "" {
		st.xpath[instagram.CaptionXPath] = caption
	}
	return st
}

func TestExtractHappyPath(t *testing.T) {
	page := newFakePage()
	posted := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	freshPost(page, posted, "Fresh bread every morning")
	cutoff := posted.Add(-72 * time.Hour)

	post, err := newTestExtractor(page, 0).Extract(context.Background(), "someaccount", postURL, cutoff)
	require.NoError(t, err)
	assert.Equal(t, postURL, post.URL)
	assert.Equal(t, "someaccount", post.Account)
	assert.Equal(t, "Fresh bread every morning", post.Caption)
	assert.True(t, post.DatePosted.Equal(posted))
}

func TestExtractMissingDate(t *testing.T) {
	page := newFakePage()
	page.addPage(postURL) // no date anywhere

	_, err := newTestExtractor(page, 0).Extract(context.Background(), "someaccount", postURL, time.Now())
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeMissingDate, errors.TypeOf(err))
}

func TestExtractStaleStopsBeforeCaption(t *testing.T) {
	page := newFakePage()
	posted := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	freshPost(page, posted, "An old caption nobody needs")
	cutoff := posted.Add(24 * time.Hour)

	_, err := newTestExtractor(page, 0).Extract(context.Background(), "someaccount", postURL, cutoff)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeStalePost, errors.TypeOf(err))
	// caption resolution never ran on a stale post
	assert.Zero(t, page.textCalls)
}

func TestExtractPostAtCutoffIsKept(t *testing.T) {
	page := newFakePage()
	posted := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	freshPost(page, posted, "Right on the boundary")

	post, err := newTestExtractor(page, 0).Extract(context.Background(), "someaccount", postURL, posted)
	require.NoError(t, err)
	assert.True(t, post.DatePosted.Equal(posted))
}

func TestExtractEmptyCaptionIsValid(t *testing.T) {
	page := newFakePage()
	posted := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	freshPost(page, posted, "")

	post, err := newTestExtractor(page, 0).Extract(context.Background(), "someaccount", postURL, posted.Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, post.Caption)
}

func TestExtractRetriesTimeoutOnce(t *testing.T) {
	page := newFakePage()
	posted := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	st := freshPost(page, posted, "Here after a slow load")
	st.navErrs = []error{fmt.Errorf("navigate: %w", context.DeadlineExceeded), nil}

	post, err := newTestExtractor(page, 2).Extract(context.Background(), "someaccount", postURL, posted.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "Here after a slow load", post.Caption)
	assert.Len(t, page.visits, 2)
}

func TestExtractRecoversAfterTwoTimeouts(t *testing.T) {
	// maxRetries=2 allows three attempts, so two timeouts in a row still
	// end in a record
	page := newFakePage()
	posted := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	st := freshPost(page, posted, "Third time lucky")
	st.navErrs = []error{
		fmt.Errorf("navigate: %w", context.DeadlineExceeded),
		fmt.Errorf("navigate: %w", context.DeadlineExceeded),
		nil,
	}

	post, err := newTestExtractor(page, 2).Extract(context.Background(), "someaccount", postURL, posted.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "Third time lucky", post.Caption)
	assert.Len(t, page.visits, 3)
}

func TestExtractDoesNotRetryNavigationFailure(t *testing.T) {
	page := newFakePage()
	st := page.addPage(postURL)
	st.navErrs = []error{fmt.Errorf("net::ERR_NAME_NOT_RESOLVED")}

	_, err := newTestExtractor(page, 2).Extract(context.Background(), "someaccount", postURL, time.Now())
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeNavigation, errors.TypeOf(err))
	assert.Len(t, page.visits, 1)
}

func TestExtractGivesUpAfterRetryBudget(t *testing.T) {
	page := newFakePage()
	st := page.addPage(postURL)
	st.navErrs = []error{
		fmt.Errorf("navigate: %w", context.DeadlineExceeded),
		fmt.Errorf("navigate: %w", context.DeadlineExceeded),
		fmt.Errorf("navigate: %w", context.DeadlineExceeded),
	}

	_, err := newTestExtractor(page, 2).Extract(context.Background(), "someaccount", postURL, time.Now())
	require.Error(t, err)
	assert.Len(t, page.visits, 3)
}
