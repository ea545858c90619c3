package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	apimw "github.com/hamed0406/netwatchdog/internal/httpapi/middleware"
	"github.com/hamed0406/netwatchdog/internal/repo"
)

const maxResultsLimit = 100

// Server exposes the watchdog's state read-only. It is only started when a
// status address is configured.
type Server struct {
	Logger  *zap.Logger
	Results repo.ResultStore
	Status  repo.StatusStore
	Metrics http.Handler
}

func NewServer(l *zap.Logger, rs repo.ResultStore, ss repo.StatusStore, metrics http.Handler) *Server {
	return &Server{Logger: l, Results: rs, Status: ss, Metrics: metrics}
}

type RouterOptions struct {
	APIKeys []string
	RPM     int
	Burst   int
}

func (s *Server) Router(opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "X-API-Key"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(apimw.RateLimit(opts.RPM, opts.Burst))
		r.Use(apimw.RequireKey(opts.APIKeys))

		r.Get("/api/status", s.handleStatus)
		r.Get("/api/results", s.handleResults)
		if s.Metrics != nil {
			r.Method(http.MethodGet, "/metrics", s.Metrics)
		}
	})

	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.Status.Status(r.Context())
	if err != nil {
		s.Logger.Warn("status_read_error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "status error")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxResultsLimit)
	}

	rs, err := s.Results.Recent(r.Context(), limit)
	if err != nil {
		s.Logger.Warn("results_read_error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "results error")
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
