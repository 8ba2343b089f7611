package render

import (
	"fmt"
	"strings"

	"stockdash/internal/market"
)

// Chart is a close-over-date line laid out in a Width x Height box,
// y growing downwards as in SVG.
type Chart struct {
	Width, Height int
	// Polyline is the SVG points attribute.
	Polyline  string
	Dots      []Dot
	MinLabel  string
	MaxLabel  string
	FirstDate string
	LastDate  string
}

// Dot is one plotted point.
type Dot struct {
	X, Y  float64
	Title string
}

const chartPad = 8.0

// NewChart scales points into the box. A single point or a flat series is drawn
// at mid height.
func NewChart(points []market.Point, width, height int) Chart {
	c := Chart{Width: width, Height: height}
	if len(points) == 0 {
		return c
	}

	lo, hi := points[0].Close, points[0].Close
	for _, p := range points[1:] {
		if p.Close.LessThan(lo) {
			lo = p.Close
		}
		if p.Close.GreaterThan(hi) {
			hi = p.Close
		}
	}
	c.MinLabel, c.MaxLabel = lo.String(), hi.String()
	c.FirstDate, c.LastDate = points[0].Date, points[len(points)-1].Date

	w := float64(width) - 2*chartPad
	h := float64(height) - 2*chartPad
	span := hi.Sub(lo).InexactFloat64()

	coords := make([]string, 0, len(points))
	for i, p := range points {
		x := chartPad + w/2
		if len(points) > 1 {
			x = chartPad + w*float64(i)/float64(len(points)-1)
		}
		y := chartPad + h/2
		if span > 0 {
			y = chartPad + h*(1-p.Close.Sub(lo).InexactFloat64()/span)
		}
		coords = append(coords, fmt.Sprintf("%.1f,%.1f", x, y))
		c.Dots = append(c.Dots, Dot{X: x, Y: y, Title: p.Date + ": " + p.Close.String()})
	}
	c.Polyline = strings.Join(coords, " ")
	return c
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws closes as block characters, at most width of them.
// Longer series are sampled evenly, always keeping the last point.
func Sparkline(points []market.Point, width int) string {
	if len(points) == 0 || width <= 0 {
		return ""
	}
	sampled := points
	if len(points) > width {
		sampled = make([]market.Point, width)
		for i := range width {
			idx := i * (len(points) - 1) / max(width-1, 1)
			sampled[i] = points[idx]
		}
	}

	lo, hi := sampled[0].Close, sampled[0].Close
	for _, p := range sampled {
		if p.Close.LessThan(lo) {
			lo = p.Close
		}
		if p.Close.GreaterThan(hi) {
			hi = p.Close
		}
	}
	span := hi.Sub(lo).InexactFloat64()

	var b strings.Builder
	for _, p := range sampled {
		level := len(sparkBlocks) / 2
		if span > 0 {
			level = int(p.Close.Sub(lo).InexactFloat64() / span * float64(len(sparkBlocks)-1))
		}
		b.WriteRune(sparkBlocks[level])
	}
	return b.String()
}
