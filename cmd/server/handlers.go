package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/okpulse/links-scrubber/internal/core"
	"github.com/okpulse/links-scrubber/internal/logger"
	"github.com/okpulse/links-scrubber/internal/metrics"
)

type api struct {
	maxBody  int64
	maxBatch int
}

var knownRoutes = map[string]bool{
	"/api/clean":       true,
	"/api/clean/batch": true,
	"/api/validate":    true,
	"/api/explain":     true,
	"/healthz":         true,
	"/metrics":         true,
}

func newHandler(a *api, withMetrics bool) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/clean", a.handleClean)
	mux.HandleFunc("/api/clean/batch", a.handleBatch)
	mux.HandleFunc("/api/validate", handleValidate)
	mux.HandleFunc("/api/explain", handleExplain)
	mux.HandleFunc("/healthz", handleHealth)
	if withMetrics {
		mux.Handle("/metrics", promhttp.Handler())
	}
	return withRequestLog(mux)
}

// statusRecorder captures the status code for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		route := r.URL.Path
		if !knownRoutes[route] {
			route = "other"
		}
		metrics.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		logger.Log.Debug("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", elapsed),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Warn("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (a *api) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, a.maxBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "bad request")
		return false
	}
	return true
}

type cleanResponse struct {
	core.CleanResult
	Message string `json:"message"`
	Found   bool   `json:"found"`
}

func (a *api) handleClean(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !a.decode(w, r, &req) {
		return
	}

	res, found := core.CleanText(req.Text)
	metrics.ObserveClean(res.Platform.String(), res.Removed, found)
	writeJSON(w, http.StatusOK, cleanResponse{CleanResult: res, Message: res.Summary(), Found: found})
}

type batchItem struct {
	core.CleanResult
	Valid bool `json:"valid"`
}

func (a *api) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URLs []string `json:"urls"`
	}
	if !a.decode(w, r, &req) {
		return
	}
	if len(req.URLs) > a.maxBatch {
		writeError(w, http.StatusBadRequest, "too many urls in batch")
		return
	}

	resp := struct {
		Results []batchItem `json:"results"`
		Removed int         `json:"removed"`
	}{Results: make([]batchItem, 0, len(req.URLs))}
	for _, raw := range req.URLs {
		valid := core.IsValidURL(raw)
		res := core.CleanURL(raw)
		metrics.ObserveClean(res.Platform.String(), res.Removed, valid)
		resp.Results = append(resp.Results, batchItem{CleanResult: res, Valid: valid})
		resp.Removed += res.Removed
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": core.IsValidURL(r.URL.Query().Get("url"))})
}

func handleExplain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ex, ok := core.Explain(r.URL.Query().Get("url"))
	if !ok {
		writeError(w, http.StatusBadRequest, "not a cleanable url")
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
