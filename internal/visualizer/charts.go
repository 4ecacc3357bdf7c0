// Package visualizer turns labeled series into chart artifacts: standalone
// HTML charts for files and bar charts for the terminal.
package visualizer

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/naka-gawa/github-profile-report/internal/domain"
)

// ErrNoData is returned when a series has nothing to draw.
var ErrNoData = errors.New("no data to chart")

// LanguageTitle is the title of the language distribution chart.
func LanguageTitle(username string) string {
	return fmt.Sprintf("Programming Languages Used by %s", username)
}

// ActivityTitle is the title of the monthly activity chart. The data is a
// sample, so the title says where it comes from.
func ActivityTitle(username string, sampledRepos int) string {
	return fmt.Sprintf("Monthly Contributions by %s (commits sampled from top %d starred repositories)", username, sampledRepos)
}

// LanguagePie renders the language series as an HTML pie chart.
func LanguagePie(w io.Writer, title string, series []domain.DataPoint) error {
	if len(series) == 0 {
		return ErrNoData
	}
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       title,
			BackgroundColor: "transparent",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
	)

	data := make([]opts.PieData, 0, len(series))
	for _, p := range series {
		data = append(data, opts.PieData{Name: p.Label, Value: p.Value})
	}
	pie.AddSeries("Repositories", data)
	return pie.Render(w)
}

// ActivityBar renders the monthly series as an HTML bar chart.
// The series is expected in ascending month order.
func ActivityBar(w io.Writer, title string, series []domain.DataPoint) error {
	if len(series) == 0 {
		return ErrNoData
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       title,
			BackgroundColor: "transparent",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Month"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Contributions"}),
	)

	months := make([]string, 0, len(series))
	data := make([]opts.BarData, 0, len(series))
	for _, p := range series {
		months = append(months, p.Label)
		data = append(data, opts.BarData{Name: p.Label, Value: p.Value})
	}
	bar.SetXAxis(months).AddSeries("Contributions", data)
	return bar.Render(w)
}
