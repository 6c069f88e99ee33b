package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://www.instagram.com", cfg.Instagram.BaseURL)
	assert.Equal(t, 20*time.Second, cfg.Instagram.NavigationTimeout)
	assert.Equal(t, 3, cfg.Instagram.MaxPostsPerAccount)
	assert.Equal(t, 2, cfg.Instagram.MaxRetries)
	assert.Equal(t, 3, cfg.Instagram.DaysBack)
	assert.Equal(t, 9222, cfg.Browser.RemotePort)
	assert.Equal(t, "Europe/Madrid", cfg.Timezone)
	assert.NotEmpty(t, cfg.Accounts)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultAccountsAreCopied(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Accounts[0] = "mutated"
	assert.NotEqual(t, "mutated", DefaultAccounts[0])
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
accounts:
  - someaccount
  - otheraccount
instagram:
  days_back: 7
  max_posts_per_account: 5
browser:
  remote_port: 9333
timezone: UTC
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, []string{"someaccount", "otheraccount"}, cfg.Accounts)
	assert.Equal(t, 7, cfg.Instagram.DaysBack)
	assert.Equal(t, 5, cfg.Instagram.MaxPostsPerAccount)
	assert.Equal(t, 9333, cfg.Browser.RemotePort)
	assert.Equal(t, "UTC", cfg.Timezone)
	// untouched sections keep their defaults
	assert.Equal(t, 20*time.Second, cfg.Instagram.NavigationTimeout)
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("accounts: [unclosed"), 0o644))

	cfg := DefaultConfig()
	assert.Error(t, cfg.LoadFromFile(path))
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("IGHELPER_ACCOUNTS", "one, two ,three")
	t.Setenv("IGHELPER_DAYS_BACK", "14")
	t.Setenv("IGHELPER_NAVIGATION_TIMEOUT", "45s")
	t.Setenv("IGHELPER_BROWSER_PORT", "9444")
	t.Setenv("IGHELPER_TIMEZONE", "UTC")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, []string{"one", "two", "three"}, cfg.Accounts)
	assert.Equal(t, 14, cfg.Instagram.DaysBack)
	assert.Equal(t, 45*time.Second, cfg.Instagram.NavigationTimeout)
	assert.Equal(t, 9444, cfg.Browser.RemotePort)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestLoadFromEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("IGHELPER_DAYS_BACK", "soon")
	t.Setenv("IGHELPER_BROWSER_PORT", "-1")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())
	assert.Equal(t, 3, cfg.Instagram.DaysBack)
	assert.Equal(t, 9222, cfg.Browser.RemotePort)
}

func TestMergeCommandLineFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeCommandLineFlags(map[string]interface{}{
		"accounts":      []string{"onlyone"},
		"days":          9,
		"max-posts":     6,
		"output":        "/tmp/reports",
		"headless":      true,
		"skip-archived": true,
		"log-level":     "debug",
	})

	assert.Equal(t, []string{"onlyone"}, cfg.Accounts)
	assert.Equal(t, 9, cfg.Instagram.DaysBack)
	assert.Equal(t, 6, cfg.Instagram.MaxPostsPerAccount)
	assert.Equal(t, "/tmp/reports", cfg.Report.OutputDir)
	assert.True(t, cfg.Browser.Headless)
	assert.True(t, cfg.Storage.SkipArchived)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"no accounts", func(c *Config) { c.Accounts = nil }, false},
		{"empty base url", func(c *Config) { c.Instagram.BaseURL = "" }, false},
		{"zero timeout", func(c *Config) { c.Instagram.NavigationTimeout = 0 }, false},
		{"zero max posts", func(c *Config) { c.Instagram.MaxPostsPerAccount = 0 }, false},
		{"negative retries", func(c *Config) { c.Instagram.MaxRetries = -1 }, false},
		{"zero days back", func(c *Config) { c.Instagram.DaysBack = 0 }, false},
		{"scrolling without budget", func(c *Config) { c.Instagram.MaxScrolls = 0 }, false},
		{"scrolling disabled needs no budget", func(c *Config) {
			c.Instagram.ScrollEnabled = false
			c.Instagram.MaxScrolls = 0
		}, true},
		{"bad port", func(c *Config) { c.Browser.RemotePort = 70000 }, false},
		{"no output dir", func(c *Config) { c.Report.OutputDir = "" }, false},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, false},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Madrid", loc.String())

	cfg.Timezone = ""
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")

	cfg := DefaultConfig()
	cfg.Accounts = []string{"someaccount"}
	cfg.Instagram.DaysBack = 11
	require.NoError(t, cfg.Save(path))

	loaded := DefaultConfig()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, []string{"someaccount"}, loaded.Accounts)
	assert.Equal(t, 11, loaded.Instagram.DaysBack)
}
