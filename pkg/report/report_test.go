package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ighelper/pkg/logger"
	"ighelper/pkg/models"
)

func generate(t *testing.T, posts []*models.Post) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path, err := NewGenerator(logger.NewNopLogger()).Generate(posts, Options{
		Title:           "Weekly roundup",
		OutputDir:       dir,
		Cutoff:          time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
		AccountsChecked: 5,
		Location:        time.UTC,
	})
	require.NoError(t, err)
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	return path, string(body)
}

func TestGenerateReport(t *testing.T) {
	posts := []*models.Post{
		{
			URL:        "https://www.instagram.com/p/AAA",
			Account:    "someaccount",
			Caption:    "Concert on Friday evening",
			DatePosted: time.Date(2026, 8, 29, 19, 0, 0, 0, time.UTC),
		},
		{
			URL:        "https://www.instagram.com/p/BBB",
			Account:    "otheraccount",
			DatePosted: time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
		},
	}

	path, body := generate(t, posts)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "ig_report_"))
	assert.Contains(t, body, "Weekly roundup")
	assert.Contains(t, body, "@someaccount")
	assert.Contains(t, body, "@otheraccount")
	assert.Contains(t, body, "Concert on Friday evening")
	assert.Contains(t, body, "https://www.instagram.com/p/AAA")
	assert.Contains(t, body, "no caption")

	// chart file sits next to the report and is referenced by it
	chart := strings.TrimSuffix(path, ".html") + "_chart.html"
	_, err := os.Stat(chart)
	assert.NoError(t, err)
	assert.Contains(t, body, filepath.Base(chart))
}

func TestGenerateEmptyRunStillWritesReport(t *testing.T) {
	path, body := generate(t, nil)
	assert.FileExists(t, path)
	assert.Contains(t, body, "No posts found inside the window")
	assert.NotContains(t, body, "_chart.html")
}

func TestGenerateEscapesCaptionMarkup(t *testing.T) {
	posts := []*models.Post{{
		URL:        "https://www.instagram.com/p/AAA",
		Account:    "someaccount",
		Caption:    `<script>alert("x")</script> concert tonight`,
		DatePosted: time.Date(2026, 8, 29, 19, 0, 0, 0, time.UTC),
	}}

	_, body := generate(t, posts)
	assert.NotContains(t, body, "<script>alert")
}

func TestGenerateGroupsNewestFirst(t *testing.T) {
	posts := []*models.Post{
		{URL: "https://www.instagram.com/p/OLD", Account: "someaccount", DatePosted: time.Date(2026, 8, 27, 8, 0, 0, 0, time.UTC)},
		{URL: "https://www.instagram.com/p/NEW", Account: "someaccount", DatePosted: time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)},
	}

	_, body := generate(t, posts)
	assert.Less(t, strings.Index(body, "/p/NEW"), strings.Index(body, "/p/OLD"))
}
