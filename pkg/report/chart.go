package report

import (
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"ighelper/pkg/models"
)

// writeChart renders a posts-per-account bar chart as its own HTML page,
// embedded into the report via an iframe
func writeChart(path string, posts []*models.Post) error {
	counts := make(map[string]int)
	for _, p := range posts {
		counts[p.Account]++
	}

	accounts := make([]string, 0, len(counts))
	for account := range counts {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		if counts[accounts[i]] != counts[accounts[j]] {
			return counts[accounts[i]] > counts[accounts[j]]
		}
		return accounts[i] < accounts[j]
	})

	var values []opts.BarData
	for _, account := range accounts {
		values = append(values, opts.BarData{Value: counts[account]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Posts per account"}),
	)
	bar.SetXAxis(accounts).AddSeries("posts", values)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return bar.Render(f)
}
