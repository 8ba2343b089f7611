package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"stockdash/internal/backend"
	"stockdash/internal/config"
	"stockdash/internal/dashboard"
	"stockdash/internal/scheduler"
	"stockdash/internal/tui"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI; logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(cfg.Log, logOut)

	in := dashboard.NewInputs(cfg.Dashboard.Symbols, cfg.Dashboard.Days)

	var p *tea.Program
	session := dashboard.NewSession(backend.New(cfg.Backend, logger), in,
		dashboard.WithLogger(logger),
		dashboard.WithOnChange(func(dashboard.State) {
			// Send blocks until Update runs, and the session reports from inside Update.
			go p.Send(tui.Changed())
		}),
	)
	defer session.Close()

	p = tea.NewProgram(tui.New(session, in), tea.WithAltScreen())

	if cfg.Dashboard.RefreshCron != "" {
		sched, err := scheduler.New(cfg.Dashboard.RefreshCron, session, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "scheduler: %v\n", err)
			os.Exit(1)
		}
		sched.Start()
		defer sched.Stop()
	}

	session.Refresh()
	if _, err := p.Run(); err != nil {
		logger.Error("dashboard", "err", err)
		fmt.Fprintf(os.Stderr, "dashboard: %v\n", err)
		os.Exit(1)
	}
}
