package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"stockdash/internal/dashboard"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// Chart box used on the HTML page.
const (
	ChartWidth  = 720
	ChartHeight = 240
)

// Page is everything the HTML dashboard needs.
type Page struct {
	// SymbolsInput and DaysInput refill the form.
	SymbolsInput string
	DaysInput    string
	View         dashboard.View
}

type htmlSection struct {
	dashboard.Section
	Chart Chart
}

type htmlPage struct {
	Page
	Sections []htmlSection
}

// HTML renders the dashboard page.
type HTML struct {
	tmpl *template.Template
}

// NewHTML parses the embedded templates.
func NewHTML() (*HTML, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &HTML{tmpl: tmpl}, nil
}

// Render writes the page for p to w.
func (h *HTML) Render(w io.Writer, p Page) error {
	data := htmlPage{Page: p, Sections: make([]htmlSection, 0, len(p.View.Sections))}
	for _, sec := range p.View.Sections {
		hs := htmlSection{Section: sec}
		if sec.HasChart {
			hs.Chart = NewChart(sec.Chart, ChartWidth, ChartHeight)
		}
		data.Sections = append(data.Sections, hs)
	}
	if err := h.tmpl.ExecuteTemplate(w, "dashboard", data); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}
