package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"stockdash/internal/config"
	"stockdash/internal/dashboard"
	"stockdash/internal/market"
	"stockdash/internal/render"
)

type handler struct {
	backend  market.Backend
	pages    *render.HTML
	defaults config.Dashboard
	logger   *slog.Logger
	// timeout bounds one dashboard load, rate limiter waits included. Zero means none.
	timeout time.Duration
}

type dashboardResponse struct {
	View  dashboard.View  `json:"view"`
	State dashboard.State `json:"state"`
}

func newRouter(h *handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/", h.page)
	r.Get("/api/dashboard", h.api)
	return r
}

// query reads the two inputs. A parameter that is present but empty is kept
// empty; only absent ones fall back to the configured defaults.
func (h *handler) query(r *http.Request) (rawSymbols, days string) {
	q := r.URL.Query()
	rawSymbols, days = h.defaults.Symbols, h.defaults.Days
	if q.Has("symbols") {
		rawSymbols = q.Get("symbols")
	}
	if q.Has("days") {
		days = q.Get("days")
	}
	return rawSymbols, days
}

func (h *handler) load(r *http.Request) (string, string, dashboard.State) {
	rawSymbols, days := h.query(r)
	logger := h.logger.With("request_id", middleware.GetReqID(r.Context()))
	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	st := dashboard.Load(ctx, h.backend, dashboard.NewInputs(rawSymbols, days), logger)
	return rawSymbols, days, st
}

func (h *handler) page(w http.ResponseWriter, r *http.Request) {
	rawSymbols, days, st := h.load(r)

	var buf bytes.Buffer
	err := h.pages.Render(&buf, render.Page{SymbolsInput: rawSymbols, DaysInput: days, View: st.View()})
	if err != nil {
		h.logger.Error("render page", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *handler) api(w http.ResponseWriter, r *http.Request) {
	_, _, st := h.load(r)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(dashboardResponse{View: st.View(), State: st}); err != nil {
		h.logger.Warn("encode dashboard", "err", err)
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/healthz") {
				next.ServeHTTP(w, r)
				return
			}
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
