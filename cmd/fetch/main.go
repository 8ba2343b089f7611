package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"stockdash/internal/backend"
	"stockdash/internal/config"
	"stockdash/internal/dashboard"
	"stockdash/internal/render"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run fetches the dashboard once and prints it. It returns the exit code:
// 0 on success, 1 when the dashboard shows an error, 2 on bad usage.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var symbolsCSV, days, format, configPath string
	var timeout int
	fs.StringVar(&symbolsCSV, "symbols", "", "comma-separated ticker symbols (default from config)")
	fs.StringVar(&days, "days", "", "lookback window for the average price (default from config)")
	fs.StringVar(&format, "format", "text", "output format: text or json")
	fs.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json or config.yaml (optional)")
	fs.IntVar(&timeout, "timeout", 0, "request timeout seconds (default from config)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if format != "text" && format != "json" {
		fmt.Fprintf(stderr, "unknown format %q\n", format)
		return 2
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}
	// Explicit flags win, even when empty.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "symbols":
			cfg.Dashboard.Symbols = symbolsCSV
		case "days":
			cfg.Dashboard.Days = days
		case "timeout":
			cfg.Backend.RequestTimeoutSec = timeout
		}
	})

	logger := config.NewLogger(cfg.Log, stderr)
	b := backend.New(cfg.Backend, logger)
	in := dashboard.NewInputs(cfg.Dashboard.Symbols, cfg.Dashboard.Days)

	// Three sequences run side by side, so one timeout bounds the whole fetch.
	// Zero means no limit, as for the HTTP client.
	ctx := context.Background()
	if cfg.Backend.RequestTimeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Backend.RequestTimeoutSec)*time.Second)
		defer cancel()
	}
	st := dashboard.Load(ctx, b, in, logger)
	v := st.View()

	switch format {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(st); err != nil {
			fmt.Fprintf(stderr, "encode: %v\n", err)
			return 1
		}
	default:
		fmt.Fprintln(stdout, render.Text(v, 80))
	}

	if v.Error != "" {
		return 1
	}
	return 0
}
