package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"stockdash/internal/dashboard"
)

var (
	symbolStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	chartStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("105"))
	blockStyle  = lipgloss.NewStyle().MarginBottom(1)
)

// Text renders v for a terminal of the given width.
func Text(v dashboard.View, width int) string {
	if v.Loading {
		return faintStyle.Render(dashboard.LoadingMessage)
	}
	if v.Error != "" {
		return errorStyle.Render(v.Error)
	}
	if width <= 0 {
		width = 80
	}

	blocks := make([]string, 0, len(v.Sections))
	for _, sec := range v.Sections {
		lines := []string{
			symbolStyle.Render(sec.Symbol),
			sec.PriceLine,
			sec.AverageLine,
		}
		if sec.HasChart {
			lines = append(lines, chartLines(sec, width)...)
		}
		blocks = append(blocks, blockStyle.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func chartLines(sec dashboard.Section, width int) []string {
	if len(sec.Chart) == 0 {
		return []string{faintStyle.Render("(no history)")}
	}
	c := NewChart(sec.Chart, 0, 0)
	return []string{
		chartStyle.Render(Sparkline(sec.Chart, width)),
		faintStyle.Render(c.FirstDate + " – " + c.LastDate + "  low " + c.MinLabel + "  high " + c.MaxLabel),
	}
}
