package visualizer

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/naka-gawa/github-profile-report/internal/domain"
)

// Terminal draws series as horizontal bar charts on a writer.
type Terminal struct {
	w io.Writer
}

// NewTerminal creates a Terminal writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// Bars prints a titled horizontal bar chart of the series.
func (t *Terminal) Bars(title string, series []domain.DataPoint) error {
	if len(series) == 0 {
		return ErrNoData
	}
	bars := make(pterm.Bars, 0, len(series))
	for _, p := range series {
		bars = append(bars, pterm.Bar{Label: p.Label, Value: p.Value})
	}
	chart, err := pterm.DefaultBarChart.
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		return fmt.Errorf("failed to render bar chart: %w", err)
	}
	_, err = fmt.Fprintf(t.w, "%s\n%s\n", pterm.DefaultSection.Sprint(title), chart)
	return err
}
