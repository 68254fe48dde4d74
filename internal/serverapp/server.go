package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lifedeck/internal/config"
	"lifedeck/internal/httpmw"
	"lifedeck/internal/session"
	"lifedeck/internal/telemetry"
)

type Options struct {
	Config    *config.Config
	DataDir   string
	Logger    *log.Logger
	Telemetry telemetry.Repository
	Registry  *prometheus.Registry
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = "data"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.NewMemoryRepository()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
		opts.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "lifedeck",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	gameFiles, err := session.NewFileRepo(filepath.Join(opts.DataDir, "games"))
	if err != nil {
		return nil, err
	}
	mgr := session.NewManager(telemetry.Recorder{Repo: opts.Telemetry})
	gameHandler := session.NewHandler(mgr, gameFiles, opts.Config)

	mux.HandleFunc("POST /api/games", gameHandler.Create)
	mux.HandleFunc("GET /api/games", gameHandler.List)
	mux.HandleFunc("GET /api/games/{id}/state", gameHandler.State)
	mux.HandleFunc("GET /api/games/{id}/insurances", gameHandler.Insurances)
	mux.HandleFunc("POST /api/games/{id}/cmd", gameHandler.Command)
	mux.HandleFunc("POST /api/games/{id}/restore", gameHandler.RestoreSaved)
	mux.HandleFunc("DELETE /api/games/{id}", gameHandler.Delete)

	mux.HandleFunc("GET /api/stats", func(w http.ResponseWriter, r *http.Request) {
		since := time.Time{}
		if raw := strings.TrimSpace(r.URL.Query().Get("since")); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]any{
					"error": "since must be YYYY-MM-DD",
				})
				return
			}
			since = parsed
		}
		events, err := opts.Telemetry.GetEvents(since, nil)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
			return
		}
		stats, err := telemetry.CalculateStats(events, since)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, stats)
	})

	mux.HandleFunc("GET /api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, opts.Config)
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := gameFiles.List(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "game storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "lifedeck",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))

	metrics := httpmw.NewMetrics(opts.Registry)
	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithMetrics(metrics),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
