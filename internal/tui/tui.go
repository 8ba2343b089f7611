// Package tui is the terminal front end of the dashboard: two text inputs on
// top, the rendered dashboard below.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"stockdash/internal/dashboard"
	"stockdash/internal/render"
	"stockdash/internal/symbols"
)

// Session is the part of dashboard.Session the UI drives.
type Session interface {
	SetSymbols(raw string)
	SetDays(days string)
	Refresh()
	State() dashboard.State
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	helpStyle  = lipgloss.NewStyle().Faint(true).MarginTop(1)
)

type changedMsg struct{}

// Changed is the message to send to the program when the session state moved.
// Send it from a goroutine of its own: the session may report from inside Update.
func Changed() tea.Msg { return changedMsg{} }

// Model is the bubbletea model.
type Model struct {
	session Session
	symbols textinput.Model
	days    textinput.Model
	width   int
}

// New builds the model with the inputs prefilled from in.
func New(session Session, in dashboard.Inputs) Model {
	sym := textinput.New()
	sym.Prompt = "Symbols: "
	sym.Placeholder = "Enter stock symbols, separated by commas"
	sym.SetValue(symbols.Join(in.Symbols))
	sym.Focus()

	days := textinput.New()
	days.Prompt = "Days:    "
	days.Placeholder = "Enter number of days for average price"
	days.SetValue(in.Days)

	return Model{session: session, symbols: sym, days: days}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case changedMsg:
		// View reads the session directly.
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab":
			if m.symbols.Focused() {
				m.symbols.Blur()
				return m, m.days.Focus()
			}
			m.days.Blur()
			return m, m.symbols.Focus()
		case "ctrl+r":
			m.session.Refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.symbols.Focused() {
		before := m.symbols.Value()
		m.symbols, cmd = m.symbols.Update(msg)
		if v := m.symbols.Value(); v != before {
			m.session.SetSymbols(v)
		}
		return m, cmd
	}
	before := m.days.Value()
	m.days, cmd = m.days.Update(msg)
	if v := m.days.Value(); v != before {
		m.session.SetDays(v)
	}
	return m, cmd
}

func (m Model) View() string {
	body := render.Text(m.session.State().View(), m.width)
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Stock Scraper"),
		m.symbols.View(),
		m.days.View(),
		"",
		body,
		helpStyle.Render("tab switch field • ctrl+r refresh • esc quit"),
	)
}
