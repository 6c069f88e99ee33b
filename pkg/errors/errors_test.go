package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := New(ErrorTypeStalePost, "post older than cutoff", "https://www.instagram.com/p/ABC")
	assert.Equal(t, "stale_post error at https://www.instagram.com/p/ABC: post older than cutoff", err.Error())

	bare := New(ErrorTypeUnknown, "something broke", "")
	assert.Equal(t, "unknown error: something broke", bare.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("underlying failure")
	err := Wrap(ErrorTypeNavigation, cause, "https://www.instagram.com/p/ABC")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause.Error(), err.Message)
}

func TestTypeOfWalksTheChain(t *testing.T) {
	inner := New(ErrorTypeTimeout, "deadline exceeded", "")
	outer := fmt.Errorf("attempt 3: %w", inner)

	assert.Equal(t, ErrorTypeTimeout, TypeOf(outer))
	assert.Equal(t, ErrorTypeUnknown, TypeOf(stderrors.New("plain")))
	assert.True(t, IsType(outer, ErrorTypeTimeout))
	assert.False(t, IsType(outer, ErrorTypeAuth))
}

func TestOnlyTimeoutsAreRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrorTypeTimeout))

	for _, et := range []ErrorType{
		ErrorTypeNavigation,
		ErrorTypeAuth,
		ErrorTypeMissingDate,
		ErrorTypeStalePost,
		ErrorTypeParsing,
		ErrorTypeUnknown,
	} {
		assert.False(t, IsRetryable(et), string(et))
	}
}
