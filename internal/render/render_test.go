package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"stockdash/internal/dashboard"
	"stockdash/internal/market"
)

func pts(closes ...int64) []market.Point {
	out := make([]market.Point, len(closes))
	for i, c := range closes {
		out[i] = market.Point{Date: "2024-01-0" + string(rune('1'+i)), Close: decimal.NewFromInt(c)}
	}
	return out
}

func sampleView() dashboard.View {
	return dashboard.View{
		Days: "30",
		Sections: []dashboard.Section{{
			Symbol:      "AAPL",
			PriceLine:   "Current Price: $150",
			AverageLine: "Average Price over 30 days: $148.5",
			HasChart:    true,
			Chart:       pts(149),
		}},
	}
}

func TestNewChart_SinglePointCentered(t *testing.T) {
	t.Parallel()

	c := NewChart(pts(149), 100, 50)
	require.Len(t, c.Dots, 1)
	require.InDelta(t, 50.0, c.Dots[0].X, 0.001)
	require.InDelta(t, 25.0, c.Dots[0].Y, 0.001)
	require.Equal(t, "149", c.MinLabel)
	require.Equal(t, "149", c.MaxLabel)
}

func TestNewChart_ScalesToBox(t *testing.T) {
	t.Parallel()

	c := NewChart(pts(10, 20, 15), 116, 116)
	require.Len(t, c.Dots, 3)
	// lowest close at the bottom edge, highest at the top
	require.InDelta(t, chartPad, c.Dots[0].X, 0.001)
	require.InDelta(t, 116-chartPad, c.Dots[0].Y, 0.001)
	require.InDelta(t, chartPad, c.Dots[1].Y, 0.001)
	require.InDelta(t, 116-chartPad, c.Dots[2].X, 0.001)
	require.Equal(t, 3, len(strings.Fields(c.Polyline)))
}

func TestNewChart_Empty(t *testing.T) {
	t.Parallel()

	c := NewChart(nil, 100, 50)
	require.Empty(t, c.Polyline)
	require.Empty(t, c.Dots)
}

func TestSparkline(t *testing.T) {
	t.Parallel()

	require.Equal(t, "▁█", Sparkline(pts(1, 2), 10))
	require.Equal(t, "▅▅▅", Sparkline(pts(3, 3, 3), 10))
	require.Equal(t, 4, len([]rune(Sparkline(pts(1, 2, 3, 4, 5, 6, 7, 8), 4))))
	require.Empty(t, Sparkline(nil, 10))
}

func TestHTML_RendersSections(t *testing.T) {
	t.Parallel()

	// Arrange
	h, err := NewHTML()
	require.NoError(t, err)

	// Act
	var buf bytes.Buffer
	require.NoError(t, h.Render(&buf, Page{SymbolsInput: "AAPL", DaysInput: "30", View: sampleView()}))

	// Assert
	out := buf.String()
	require.Contains(t, out, "<h2>AAPL</h2>")
	require.Contains(t, out, "Current Price: $150")
	require.Contains(t, out, "Average Price over 30 days: $148.5")
	require.Equal(t, 1, strings.Count(out, "<circle"))
	require.Contains(t, out, `value="AAPL"`)
}

func TestHTML_ErrorOnly(t *testing.T) {
	t.Parallel()

	h, err := NewHTML()
	require.NoError(t, err)

	var buf bytes.Buffer
	v := dashboard.View{Error: dashboard.PricesFailedMessage, Sections: []dashboard.Section{}}
	require.NoError(t, h.Render(&buf, Page{View: v}))

	out := buf.String()
	require.Contains(t, out, dashboard.PricesFailedMessage)
	require.NotContains(t, out, "<h2>")
}

func TestHTML_EscapesInput(t *testing.T) {
	t.Parallel()

	h, err := NewHTML()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, h.Render(&buf, Page{SymbolsInput: `"><script>`, View: dashboard.View{Sections: []dashboard.Section{}}}))
	require.NotContains(t, buf.String(), "<script>")
}

func TestText(t *testing.T) {
	t.Parallel()

	out := Text(sampleView(), 40)
	require.Contains(t, out, "AAPL")
	require.Contains(t, out, "Current Price: $150")
	require.Contains(t, out, "Average Price over 30 days: $148.5")

	require.Contains(t, Text(dashboard.View{Loading: true}, 40), "Loading...")
	require.Contains(t, Text(dashboard.View{Error: "Error fetching average prices"}, 40), "Error fetching average prices")
}
