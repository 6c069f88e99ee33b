package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCaption(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Concert on Friday evening", "Concert on Friday evening"},
		{"hashtags removed", "Big news #gijon #culture today", "Big news today"},
		{"emoji stripped", "Party time 🎉🎉 tonight", "Party time tonight"},
		{"whitespace collapsed", "line one\n\n  line two", "line one line two"},
		{"empty", "", ""},
		{"only hashtags", "#one #two #three", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanCaption(tt.in))
		})
	}
}

func TestCleanCaptionTruncatesAtWordBoundary(t *testing.T) {
	long := strings.Repeat("palabra ", 100)
	got := CleanCaption(long)

	assert.LessOrEqual(t, len([]rune(got)), maxCaptionRunes+1)
	assert.True(t, strings.HasSuffix(got, "…"))
	// cut lands on a word boundary, not mid-word
	assert.True(t, strings.HasSuffix(strings.TrimSuffix(got, "…"), "palabra"))
}
