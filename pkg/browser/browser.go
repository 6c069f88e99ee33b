// Package browser provides the browser session the scraping pipeline drives.
//
// The preferred mode attaches over the DevTools protocol to an already
// running real-profile browser, so the Instagram session (cookies, login)
// is the user's own. When no debugger is reachable the package launches a
// local Brave/Chrome/Edge binary with remote debugging enabled and attaches
// to that; a managed headless Chrome is the last resort.
package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"ighelper/pkg/config"
	"ighelper/pkg/logger"
)

// Session owns one connected browser and the single page the run reuses
type Session struct {
	page    *Page
	cancels []context.CancelFunc
	proc    *exec.Cmd
	log     logger.Logger
}

// Setup establishes a browser session following the fallback chain:
// attach to a running debugger, launch a local real-profile browser and
// attach, or launch a managed headless Chrome.
func Setup(ctx context.Context, cfg config.BrowserConfig, log logger.Logger) (*Session, error) {
	if cfg.Headless {
		log.Info("Running in headless mode")
		return launchManaged(ctx, cfg, log)
	}

	if s, err := attach(ctx, cfg, log); err == nil {
		log.Info("Attached to running browser")
		return s, nil
	} else {
		log.WithError(err).Debug("No running browser debugger reachable")
	}

	if s, err := launchLocal(ctx, cfg, log); err == nil {
		log.Info("Launched and attached to local browser")
		return s, nil
	} else {
		log.WithError(err).Warn("Local browser launch failed, falling back to managed Chrome")
	}

	return launchManaged(ctx, cfg, log)
}

// attach connects to an already running browser over CDP
func attach(ctx context.Context, cfg config.BrowserConfig, log logger.Logger) (*Session, error) {
	url := fmt.Sprintf("http://%s:%d/", cfg.RemoteHost, cfg.RemotePort)

	allocCtx, allocCancel := chromedp.NewRemoteAllocator(ctx, url)
	browserCtx, ctxCancel := chromedp.NewContext(allocCtx)

	if err := probe(browserCtx, 5*time.Second); err != nil {
		ctxCancel()
		allocCancel()
		return nil, fmt.Errorf("connect to browser at %s: %w", url, err)
	}

	return &Session{
		page:    NewPage(browserCtx),
		cancels: []context.CancelFunc{ctxCancel, allocCancel},
		log:     log,
	}, nil
}

// launchLocal starts a local real-profile browser with remote debugging
// enabled, then attaches to it
func launchLocal(ctx context.Context, cfg config.BrowserConfig, log logger.Logger) (*Session, error) {
	execPath := cfg.ExecPath
	if execPath == "" {
		execPath = discoverExecPath()
	}
	if execPath == "" {
		return nil, fmt.Errorf("no browser binary found")
	}

	args := []string{
		fmt.Sprintf("--remote-debugging-port=%d", cfg.RemotePort),
		"--no-first-run",
		"--no-default-browser-check",
		"--disable-background-timer-throttling",
		"--disable-backgrounding-occluded-windows",
		"--disable-renderer-backgrounding",
	}
	if cfg.UserDataDir != "" {
		args = append(args, "--user-data-dir="+cfg.UserDataDir)
	}
	if cfg.ProfileDir != "" {
		args = append(args, "--profile-directory="+cfg.ProfileDir)
	}
	if cfg.StartURL != "" {
		args = append(args, cfg.StartURL)
	}

	log.WithFields(map[string]interface{}{
		"exec_path": execPath,
		"port":      cfg.RemotePort,
	}).Info("Launching local browser")

	cmd := exec.Command(execPath, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start browser: %w", err)
	}

	// The debugger endpoint is not up instantly
	wait := cfg.LaunchWait
	if wait <= 0 {
		wait = 4 * time.Second
	}
	select {
	case <-time.After(wait):
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		return nil, ctx.Err()
	}

	s, err := attach(ctx, cfg, log)
	if err != nil {
		_ = cmd.Process.Kill()
		return nil, err
	}
	s.proc = cmd
	return s, nil
}

// launchManaged starts a chromedp-managed Chrome instance
func launchManaged(ctx context.Context, cfg config.BrowserConfig, log logger.Logger) (*Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
	)
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, ctxCancel := chromedp.NewContext(allocCtx)

	if err := probe(browserCtx, 30*time.Second); err != nil {
		ctxCancel()
		allocCancel()
		return nil, fmt.Errorf("start managed browser: %w", err)
	}

	log.Info("Started managed Chrome instance")
	return &Session{
		page:    NewPage(browserCtx),
		cancels: []context.CancelFunc{ctxCancel, allocCancel},
		log:     log,
	}, nil
}

// probe runs an empty task to force the connection and surface failures early
func probe(browserCtx context.Context, timeout time.Duration) error {
	tctx, cancel := context.WithTimeout(browserCtx, timeout)
	defer cancel()
	return chromedp.Run(tctx)
}

// discoverExecPath tries Brave, Chrome, then Edge
func discoverExecPath() string {
	candidates := []string{
		"/usr/bin/brave-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/microsoft-edge",
		"/Applications/Brave Browser.app/Contents/MacOS/Brave Browser",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, name := range []string{"brave-browser", "google-chrome", "chromium", "microsoft-edge"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return ""
}

// Page returns the single navigable page this session drives
func (s *Session) Page() *Page {
	return s.page
}

// Close tears the session down. A browser we launched is killed; one we
// merely attached to is left running.
func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
	if s.proc != nil && s.proc.Process != nil {
		_ = s.proc.Process.Kill()
	}
}
