package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the Instagram helper
type Config struct {
	// Accounts to scan, in processing order
	Accounts []string `yaml:"accounts" json:"accounts"`

	// Instagram scraping settings
	Instagram InstagramConfig `yaml:"instagram" json:"instagram"`

	// Browser session settings
	Browser BrowserConfig `yaml:"browser" json:"browser"`

	// Fixed pacing delays
	Delays DelayConfig `yaml:"delays" json:"delays"`

	// Report output settings
	Report ReportConfig `yaml:"report" json:"report"`

	// Post archive settings
	Storage StorageConfig `yaml:"storage" json:"storage"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Timezone is the IANA zone the cutoff and post dates are expressed in
	Timezone string `yaml:"timezone" json:"timezone"`
}

// InstagramConfig holds scraping-specific configuration
type InstagramConfig struct {
	BaseURL            string        `yaml:"base_url" json:"base_url"`
	NavigationTimeout  time.Duration `yaml:"navigation_timeout" json:"navigation_timeout"`
	MaxPostsPerAccount int           `yaml:"max_posts_per_account" json:"max_posts_per_account"`
	MaxRetries         int           `yaml:"max_retries" json:"max_retries"`
	DaysBack           int           `yaml:"days_back" json:"days_back"`
	ScrollEnabled      bool          `yaml:"scroll_enabled" json:"scroll_enabled"`
	MaxScrolls         int           `yaml:"max_scrolls" json:"max_scrolls"`
}

// BrowserConfig holds the CDP session configuration. The helper attaches to a
// real, already-logged-in browser profile over the DevTools protocol; it only
// launches a browser itself when no debugger is reachable.
type BrowserConfig struct {
	RemoteHost string        `yaml:"remote_host" json:"remote_host"`
	RemotePort int           `yaml:"remote_port" json:"remote_port"`
	ExecPath   string        `yaml:"exec_path" json:"exec_path"`
	UserDataDir string       `yaml:"user_data_dir" json:"user_data_dir"`
	ProfileDir string        `yaml:"profile_dir" json:"profile_dir"`
	StartURL   string        `yaml:"start_url" json:"start_url"`
	Headless   bool          `yaml:"headless" json:"headless"`
	LaunchWait time.Duration `yaml:"launch_wait" json:"launch_wait"`
}

// DelayConfig holds the fixed delays the sequential pipeline sleeps on
type DelayConfig struct {
	// Settle is the unconditional wait after a successful navigation, to let
	// client-side rendering populate the DOM
	Settle time.Duration `yaml:"settle" json:"settle"`
	// Retry is the fixed wait between navigation retry attempts
	Retry time.Duration `yaml:"retry" json:"retry"`
	// ScrollSettle is the wait after each scroll step in the collector
	ScrollSettle time.Duration `yaml:"scroll_settle" json:"scroll_settle"`
	// InterPost is the minimum spacing between per-post extractions
	InterPost time.Duration `yaml:"inter_post" json:"inter_post"`
	// InterAccount is the minimum spacing between accounts
	InterAccount time.Duration `yaml:"inter_account" json:"inter_account"`
}

// ReportConfig holds HTML report settings
type ReportConfig struct {
	OutputDir string `yaml:"output_dir" json:"output_dir"`
	Title     string `yaml:"title" json:"title"`
}

// StorageConfig holds the sqlite post archive settings
type StorageConfig struct {
	DatabasePath string `yaml:"database_path" json:"database_path"`
	SkipArchived bool   `yaml:"skip_archived" json:"skip_archived"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultAccounts is the stock account list; override per run with --accounts
// or in the config file.
var DefaultAccounts = []string{
	"agendagijon",
	"asociacionelviescu",
	"asturiasacoge",
	"asturiesculturaenrede",
	"aytocastrillon",
	"aytoviedo",
	"ayuntamientocabranes",
	"bandinalagarrapiella",
	"biodevas",
	"centroniemeyer",
	"centros_sociales_oviedo",
	"chigreculturallatadezinc",
	"cinesfoncalada",
	"conocerasturias",
	"conseyu_cmx",
	"crjasturias",
	"cuentosdemaleta",
	"cultura.gijon",
	"cultura.grau",
	"culturacolunga",
	"culturallanes",
	"deportesayov",
	"exprime.gijon",
	"ferialibroxixon",
	"gijon",
	"gonggalaxyclub",
	"juventudgijon",
	"juventudoviedo",
	"kbunsgijon",
	"kuivi_almacenes",
	"laboralciudadcultura",
	"lacompaniadelalba",
	"lasalvaje.oviedo",
	"mierescultura",
	"museosgijonxixon",
	"museudelpuebludasturies",
	"nortes.me",
	"oviedo.turismo",
	"paramo_bar",
	"patioh_laboral",
	"prestosofest",
	"prial_asociacion",
	"traslapuertatiteres",
	"trivilorioyeimpro",
	"youropia_asociacion",
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	outputDir := filepath.Join(home, "ig_helper")

	return &Config{
		Accounts: append([]string(nil), DefaultAccounts...),
		Instagram: InstagramConfig{
			BaseURL:            "https://www.instagram.com",
			NavigationTimeout:  20 * time.Second,
			MaxPostsPerAccount: 3,
			MaxRetries:         2,
			DaysBack:           3,
			ScrollEnabled:      true,
			MaxScrolls:         10,
		},
		Browser: BrowserConfig{
			RemoteHost: "localhost",
			RemotePort: 9222,
			ProfileDir: "Default",
			StartURL:   "https://www.instagram.com/",
			Headless:   false,
			LaunchWait: 4 * time.Second,
		},
		Delays: DelayConfig{
			Settle:       2 * time.Second,
			Retry:        2 * time.Second,
			ScrollSettle: 350 * time.Millisecond,
			InterPost:    time.Second,
			InterAccount: 2 * time.Second,
		},
		Report: ReportConfig{
			OutputDir: outputDir,
			Title:     "Instagram recent posts",
		},
		Storage: StorageConfig{
			DatabasePath: filepath.Join(outputDir, "posts.db"),
			SkipArchived: false,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
		Timezone: "Europe/Madrid",
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if accounts := os.Getenv("IGHELPER_ACCOUNTS"); accounts != "" {
		c.Accounts = splitAndTrim(accounts)
	}
	if baseURL := os.Getenv("IGHELPER_BASE_URL"); baseURL != "" {
		c.Instagram.BaseURL = baseURL
	}
	if maxPosts := os.Getenv("IGHELPER_MAX_POSTS"); maxPosts != "" {
		if val, err := strconv.Atoi(maxPosts); err == nil && val > 0 {
			c.Instagram.MaxPostsPerAccount = val
		}
	}
	if days := os.Getenv("IGHELPER_DAYS_BACK"); days != "" {
		if val, err := strconv.Atoi(days); err == nil && val > 0 {
			c.Instagram.DaysBack = val
		}
	}
	if timeout := os.Getenv("IGHELPER_NAVIGATION_TIMEOUT"); timeout != "" {
		if val, err := time.ParseDuration(timeout); err == nil && val > 0 {
			c.Instagram.NavigationTimeout = val
		}
	}
	if host := os.Getenv("IGHELPER_BROWSER_HOST"); host != "" {
		c.Browser.RemoteHost = host
	}
	if port := os.Getenv("IGHELPER_BROWSER_PORT"); port != "" {
		if val, err := strconv.Atoi(port); err == nil && val > 0 {
			c.Browser.RemotePort = val
		}
	}
	if execPath := os.Getenv("IGHELPER_BROWSER_PATH"); execPath != "" {
		c.Browser.ExecPath = execPath
	}
	if outputDir := os.Getenv("IGHELPER_OUTPUT_DIR"); outputDir != "" {
		c.Report.OutputDir = outputDir
	}
	if dbPath := os.Getenv("IGHELPER_DATABASE_PATH"); dbPath != "" {
		c.Storage.DatabasePath = dbPath
	}
	if tz := os.Getenv("IGHELPER_TIMEZONE"); tz != "" {
		c.Timezone = tz
	}
	if logLevel := os.Getenv("IGHELPER_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	return nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".ighelper.yaml",
		".ighelper.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "ighelper", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "ighelper", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".ighelper.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if len(c.Accounts) == 0 {
		errs = append(errs, errors.New("at least one account is required"))
	}
	if c.Instagram.BaseURL == "" {
		errs = append(errs, errors.New("instagram base URL is required"))
	}
	if c.Instagram.NavigationTimeout <= 0 {
		errs = append(errs, errors.New("navigation timeout must be positive"))
	}
	if c.Instagram.MaxPostsPerAccount <= 0 {
		errs = append(errs, errors.New("max posts per account must be positive"))
	}
	if c.Instagram.MaxRetries < 0 {
		errs = append(errs, errors.New("max retries cannot be negative"))
	}
	if c.Instagram.DaysBack <= 0 {
		errs = append(errs, errors.New("days back must be positive"))
	}
	if c.Instagram.ScrollEnabled && c.Instagram.MaxScrolls <= 0 {
		errs = append(errs, errors.New("max scrolls must be positive when scrolling is enabled"))
	}
	if c.Browser.RemotePort <= 0 || c.Browser.RemotePort > 65535 {
		errs = append(errs, errors.New("browser remote port must be a valid port"))
	}
	if c.Report.OutputDir == "" {
		errs = append(errs, errors.New("report output directory is required"))
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("invalid timezone %q", c.Timezone))
		}
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Location resolves the configured timezone, UTC when unset
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if accounts, ok := flags["accounts"].([]string); ok && len(accounts) > 0 {
		c.Accounts = accounts
	}
	if days, ok := flags["days"].(int); ok && days > 0 {
		c.Instagram.DaysBack = days
	}
	if maxPosts, ok := flags["max-posts"].(int); ok && maxPosts > 0 {
		c.Instagram.MaxPostsPerAccount = maxPosts
	}
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Report.OutputDir = outputDir
	}
	if headless, ok := flags["headless"].(bool); ok && headless {
		c.Browser.Headless = true
	}
	if skipArchived, ok := flags["skip-archived"].(bool); ok && skipArchived {
		c.Storage.SkipArchived = true
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".ighelper.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
