// Package report renders a run's posts into a static HTML summary.
package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"time"

	"ighelper/pkg/logger"
	"ighelper/pkg/models"
)

//go:embed template.html
var reportTemplate string

// Options controls report generation.
type Options struct {
	Title string
	// OutputDir receives the report and chart files
	OutputDir string
	// Cutoff is the lower bound of the run's window, shown in the header
	Cutoff time.Time
	// AccountsChecked is how many accounts the run visited
	AccountsChecked int
	// Location formats post dates; nil means local time
	Location *time.Location
}

// Generator writes reports.
type Generator struct {
	log logger.Logger
}

// NewGenerator creates a report generator
func NewGenerator(log logger.Logger) *Generator {
	return &Generator{log: log}
}

type reportPost struct {
	Date    string
	Caption string
	URL     string
}

type accountGroup struct {
	Account string
	Posts   []reportPost
}

type reportData struct {
	Title           string
	GeneratedAt     string
	Cutoff          string
	Oldest, Newest  string
	TotalPosts      int
	ActiveAccounts  int
	AccountsChecked int
	Groups          []accountGroup
	ChartFile       string
}

const (
	dateFormat = "Mon 02 Jan 2006 15:04"
	fileStamp  = "20060102_150405"
)

// Generate renders posts into a timestamped HTML file and returns its path.
// An empty post list still produces a report so a quiet run leaves evidence
// it happened.
func (g *Generator) Generate(posts []*models.Post, opts Options) (string, error) {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	now := time.Now().In(loc)
	reportPath := filepath.Join(opts.OutputDir, fmt.Sprintf("ig_report_%s.html", now.Format(fileStamp)))

	data := g.buildData(posts, opts, loc, now)

	if len(posts) > 0 {
		chartPath := filepath.Join(opts.OutputDir, fmt.Sprintf("ig_report_%s_chart.html", now.Format(fileStamp)))
		if err := writeChart(chartPath, posts); err != nil {
			// the report is still useful without the chart
			g.log.WithError(err).Warn("Chart generation failed")
		} else {
			data.ChartFile = filepath.Base(chartPath)
		}
	}

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	f, err := os.Create(reportPath)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}

	g.log.InfoWithFields("Report written", map[string]interface{}{
		"path":  reportPath,
		"posts": len(posts),
	})
	return reportPath, nil
}

func (g *Generator) buildData(posts []*models.Post, opts Options, loc *time.Location, now time.Time) *reportData {
	title := opts.Title
	if title == "" {
		title = "Instagram Activity Report"
	}

	data := &reportData{
		Title:           title,
		GeneratedAt:     now.Format(dateFormat),
		Cutoff:          opts.Cutoff.In(loc).Format(dateFormat),
		TotalPosts:      len(posts),
		AccountsChecked: opts.AccountsChecked,
	}
	if len(posts) == 0 {
		return data
	}

	sorted := make([]*models.Post, len(posts))
	copy(sorted, posts)
	sort.Sort(models.ByDateDesc(sorted))

	data.Newest = sorted[0].DatePosted.In(loc).Format(dateFormat)
	data.Oldest = sorted[len(sorted)-1].DatePosted.In(loc).Format(dateFormat)

	groups := make(map[string][]reportPost)
	var order []string
	for _, p := range sorted {
		if _, ok := groups[p.Account]; !ok {
			order = append(order, p.Account)
		}
		groups[p.Account] = append(groups[p.Account], reportPost{
			Date:    p.DatePosted.In(loc).Format(dateFormat),
			Caption: CleanCaption(p.Caption),
			URL:     p.URL,
		})
	}
	for _, account := range order {
		data.Groups = append(data.Groups, accountGroup{Account: account, Posts: groups[account]})
	}
	data.ActiveAccounts = len(order)
	return data
}
