package components

import (
	"fmt"

	"bigskydata/mtcounties/internal/history"
	"bigskydata/mtcounties/internal/tui/styles"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
)

// chartHeight is the fixed height for the county bar chart.
const chartHeight = 8

var barStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(styles.Blue),
	lipgloss.NewStyle().Foreground(styles.Green),
	lipgloss.NewStyle().Foreground(styles.Yellow),
	lipgloss.NewStyle().Foreground(styles.Red),
}

// CountyChart renders a bar chart of lookup counts per county, with a
// legend line per bar. Returns a placeholder string if counts is empty.
func CountyChart(width int, counts []history.CountyCount) string {
	if len(counts) == 0 {
		return styles.MutedText.Render("No lookups recorded yet.")
	}
	if width < 20 {
		width = 20
	}

	bc := barchart.New(width, chartHeight)
	for i, c := range counts {
		bc.Push(barchart.BarData{
			Label: fmt.Sprintf("%d", c.Count),
			Values: []barchart.BarValue{
				{Name: c.County, Value: float64(c.Count), Style: barStyles[i%len(barStyles)]},
			},
		})
	}
	bc.Draw()

	legend := make([]string, len(counts))
	for i, c := range counts {
		marker := barStyles[i%len(barStyles)].Render("■")
		legend[i] = fmt.Sprintf("%s %s (%d)", marker, c.County, c.Count)
	}

	header := styles.Label.Render("Lookups by county")
	return lipgloss.JoinVertical(lipgloss.Left,
		append([]string{header, bc.View()}, legend...)...,
	)
}
