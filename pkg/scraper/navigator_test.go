package scraper

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ighelper/pkg/errors"
	"ighelper/pkg/instagram"
	"ighelper/pkg/logger"
)

func newTestNavigator(page Page) *Navigator {
	return NewNavigator(page, 0, 0, logger.NewNopLogger())
}

func TestNavigatorClassifiesTimeout(t *testing.T) {
	page := newFakePage()
	page.addPage("https://www.instagram.com/p/ABC").navErrs = []error{
		fmt.Errorf("navigate: %w", context.DeadlineExceeded),
	}

	err := newTestNavigator(page).Navigate(context.Background(), "https://www.instagram.com/p/ABC", "post")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeTimeout, errors.TypeOf(err))
	assert.True(t, stderrors.Is(err, context.DeadlineExceeded))
}

func TestNavigatorClassifiesNavigationFailure(t *testing.T) {
	page := newFakePage()
	page.addPage("https://www.instagram.com/p/ABC").navErrs = []error{
		stderrors.New("net::ERR_CONNECTION_REFUSED"),
	}

	err := newTestNavigator(page).Navigate(context.Background(), "https://www.instagram.com/p/ABC", "post")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeNavigation, errors.TypeOf(err))
}

func TestNavigatorDetectsLoginWall(t *testing.T) {
	page := newFakePage()
	st := page.addPage("https://www.instagram.com/someaccount/")
	st.counts[instagram.LoginInputSelector] = 2

	err := newTestNavigator(page).Navigate(context.Background(), "https://www.instagram.com/someaccount/", "profile")
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeAuth, errors.TypeOf(err))
}

func TestNavigatorSingleLoginInputIsNotAWall(t *testing.T) {
	// a stray search box should not be mistaken for the login screen
	page := newFakePage()
	st := page.addPage("https://www.instagram.com/someaccount/")
	st.counts[instagram.LoginInputSelector] = 1

	err := newTestNavigator(page).Navigate(context.Background(), "https://www.instagram.com/someaccount/", "profile")
	assert.NoError(t, err)
}

func TestNavigatorHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	page := newFakePage()
	page.addPage("https://www.instagram.com/p/ABC").navErrs = []error{
		stderrors.New("aborted"),
	}

	err := newTestNavigator(page).Navigate(ctx, "https://www.instagram.com/p/ABC", "post")
	assert.ErrorIs(t, err, context.Canceled)
}
