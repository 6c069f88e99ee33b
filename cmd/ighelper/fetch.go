package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ighelper/pkg/browser"
	"ighelper/pkg/config"
	"ighelper/pkg/logger"
	"ighelper/pkg/ratelimit"
	"ighelper/pkg/report"
	"ighelper/pkg/scraper"
	"ighelper/pkg/store"
	"ighelper/pkg/ui"
)

var (
	// Fetch command flags
	daysBack     int
	maxPosts     int
	outputDir    string
	accountsFlag []string
	headless     bool
	skipArchived bool
	noReport     bool
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Collect recent posts and generate the report",
	Long: `Visit every configured account, extract posts newer than the cutoff,
archive them, and render the HTML report.

The cutoff is computed as now minus --days in the configured timezone.
Accounts come from the config file unless overridden with --accounts.`,
	Example: `  # Default run over the configured account list
  ighelper fetch

  # Look back a week for two specific accounts
  ighelper fetch --days 7 --accounts someaccount,otheraccount

  # Headless run that skips posts already in the archive
  ighelper fetch --headless --skip-archived`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runFetch()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().IntVarP(&daysBack, "days", "d", 0, "how many days back to look (default from config)")
	fetchCmd.Flags().IntVar(&maxPosts, "max-posts", 0, "max posts to extract per account (default from config)")
	fetchCmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory for the report (default from config)")
	fetchCmd.Flags().StringSliceVarP(&accountsFlag, "accounts", "a", nil, "comma-separated accounts, overrides the configured list")
	fetchCmd.Flags().BoolVar(&headless, "headless", false, "launch a managed headless browser instead of attaching")
	fetchCmd.Flags().BoolVar(&noReport, "no-report", false, "skip report generation, archive only")
	fetchCmd.Flags().BoolVar(&skipArchived, "skip-archived", false, "leave posts already in the archive out of the report")
}

func runFetch() {
	flags := make(map[string]interface{})
	if daysBack > 0 {
		flags["days"] = daysBack
	}
	if maxPosts > 0 {
		flags["max-posts"] = maxPosts
	}
	if outputDir != "" {
		flags["output"] = outputDir
	}
	if len(accountsFlag) > 0 {
		flags["accounts"] = cleanAccounts(accountsFlag)
	}
	if headless {
		flags["headless"] = true
	}
	if skipArchived {
		flags["skip-archived"] = true
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logger", err.Error())
		os.Exit(1)
	}
	log := logger.GetLogger()
	log.WithField("version", version).Info("ighelper starting")

	loc, err := cfg.Location()
	if err != nil {
		ui.PrintError("Invalid timezone", err.Error())
		os.Exit(1)
	}
	cutoff := time.Now().In(loc).AddDate(0, 0, -cfg.Instagram.DaysBack)

	ui.PrintInfo("Accounts", fmt.Sprintf("%d", len(cfg.Accounts)))
	ui.PrintInfo("Cutoff", cutoff.Format("2006-01-02 15:04 MST"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := browser.Setup(ctx, cfg.Browser, log)
	if err != nil {
		log.WithError(err).Error("Browser setup failed")
		ui.PrintError("Browser setup failed", err.Error())
		os.Exit(1)
	}
	defer session.Close()

	db, err := store.Open(cfg.Storage.DatabasePath)
	if err != nil {
		log.WithError(err).Error("Archive open failed")
		ui.PrintError("Archive open failed", err.Error())
		os.Exit(1)
	}
	defer db.Close()

	ui.PrintHighlight("[COLLECTING POSTS]")

	result, runErr := buildScraper(session.Page(), cfg, loc, log).Run(ctx, cfg.Accounts, cutoff)
	if runErr != nil && ctx.Err() == nil {
		log.WithError(runErr).Error("Run failed")
		ui.PrintError("Run failed", runErr.Error())
		os.Exit(1)
	}
	if ctx.Err() != nil {
		ui.PrintWarning("Interrupted, reporting what was gathered so far")
	}

	posts := result.Posts
	if cfg.Storage.SkipArchived {
		fresh, err := db.FilterNew(context.Background(), posts)
		if err != nil {
			log.WithError(err).Error("Archive filter failed")
			ui.PrintError("Archive filter failed", err.Error())
			os.Exit(1)
		}
		log.InfoWithFields("Archive filter applied", map[string]interface{}{
			"collected": len(posts),
			"fresh":     len(fresh),
		})
		posts = fresh
	}

	if saved, err := db.SavePosts(context.Background(), result.Posts); err != nil {
		log.WithError(err).Warn("Archiving posts failed")
	} else {
		log.WithField("saved", saved).Debug("Posts archived")
	}

	ui.PrintInfo("Posts found", fmt.Sprintf("%d", len(posts)))

	if noReport {
		ui.PrintSuccess("[DONE, REPORT SKIPPED]")
		return
	}

	reportPath, err := report.NewGenerator(log).Generate(posts, report.Options{
		Title:           cfg.Report.Title,
		OutputDir:       cfg.Report.OutputDir,
		Cutoff:          cutoff,
		AccountsChecked: len(cfg.Accounts),
		Location:        loc,
	})
	if err != nil {
		log.WithError(err).Error("Report generation failed")
		ui.PrintError("Report generation failed", err.Error())
		os.Exit(1)
	}

	log.WithField("report", reportPath).Info("Run completed")
	ui.PrintInfo("Report", reportPath)
	ui.PrintSuccess("[DONE]")
}

// buildScraper wires the pipeline onto one shared page
func buildScraper(page scraper.Page, cfg *config.Config, loc *time.Location, log logger.Logger) *scraper.Scraper {
	nav := scraper.NewNavigator(page, cfg.Instagram.NavigationTimeout, cfg.Delays.Settle, log)

	maxScrolls := cfg.Instagram.MaxScrolls
	if !cfg.Instagram.ScrollEnabled {
		maxScrolls = 0
	}
	collector := scraper.NewCollector(page, cfg.Instagram.BaseURL, maxScrolls, cfg.Delays.ScrollSettle, log)
	extractor := scraper.NewExtractor(page, nav, loc, cfg.Instagram.MaxRetries, cfg.Delays.Retry, log)

	processor := scraper.NewProcessor(nav, collector, extractor,
		cfg.Instagram.BaseURL, cfg.Instagram.MaxPostsPerAccount,
		ratelimit.NewPacer(cfg.Delays.InterPost), log)

	return scraper.New(processor, ratelimit.NewPacer(cfg.Delays.InterAccount), log)
}

func cleanAccounts(raw []string) []string {
	var accounts []string
	for _, a := range raw {
		a = strings.TrimSpace(strings.TrimPrefix(a, "@"))
		if a != "" {
			accounts = append(accounts, a)
		}
	}
	return accounts
}
