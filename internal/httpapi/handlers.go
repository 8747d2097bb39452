package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/schoolfit/fitness-server/internal/service"
	"github.com/schoolfit/fitness-server/pkg/metrics"
)

const (
	defaultCacheDuration  = 10 * time.Minute
	defaultRequestTimeout = 15 * time.Second
)

const (
	cacheKeyGradeStats       = "http:grade_stats"
	cacheKeyStudentComposite = "http:student_composite"
	cacheKeyStudentHistory   = "http:student_history"
	cacheKeyGradeHistory     = "http:grade_history"
)

// Handlers serves the fitness statistics HTTP API. Read endpoints go
// through a Redis response cache in front of the service layer.
type Handlers struct {
	stats    StatisticsService
	cache    Cacher
	logger   *zap.Logger
	metrics  *metrics.Collector
	sfGroup  singleflight.Group
	cacheTTL time.Duration
}

// NewHandlers initializes the HTTP handlers.
func NewHandlers(stats StatisticsService, cache Cacher, logger *zap.Logger, collector *metrics.Collector, ttl time.Duration) *Handlers {
	if stats == nil {
		panic("nil StatisticsService provided to NewHandlers")
	}
	if cache == nil {
		panic("nil Cacher provided to NewHandlers")
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &Handlers{
		stats:    stats,
		cache:    cache,
		logger:   logger.Named("http-handler"),
		metrics:  collector,
		cacheTTL: ttl,
	}
}

// RegisterRoutes attaches all API routes to the router.
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/grades/{gradeID}/statistics", h.GetGradeStatistics).Methods(http.MethodGet)
	api.HandleFunc("/grades/{gradeID}/history", h.GetGradeHistory).Methods(http.MethodGet)
	api.HandleFunc("/students/{studentID}/composite", h.GetStudentComposite).Methods(http.MethodGet)
	api.HandleFunc("/students/{studentID}/history", h.GetStudentHistory).Methods(http.MethodGet)
	api.HandleFunc("/cache/stats", h.CacheStats).Methods(http.MethodGet)
	// Registered last: in gorilla/mux v1.8.1 a route registered after a
	// method-mismatched one resets the match error, turning the intended
	// 405 for GET /cache/invalidate into a 404.
	api.HandleFunc("/cache/invalidate", h.InvalidateCache).Methods(http.MethodPost)

	r.HandleFunc("/healthz", h.HealthCheck).Methods(http.MethodGet)
}

// ErrorResponse is the JSON envelope for API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// GetGradeStatistics handles GET /api/v1/grades/{gradeID}/statistics?year=YYYY.
func (h *Handlers) GetGradeStatistics(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/v1/grades/statistics"
	done := h.observe(endpoint)

	gradeID := mux.Vars(r)["gradeID"]
	year, err := parseYear(r)
	if err != nil {
		done(h.sendError(w, endpoint, err.Error(), http.StatusBadRequest))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	key := fmt.Sprintf("%s:%s:%d", cacheKeyGradeStats, gradeID, year)
	agg, err := findAndCache(ctx, h.cache, &h.sfGroup, key, h.cacheTTL, h.logger,
		h.metrics.ResponseCacheHits.Inc, h.metrics.ResponseCacheMisses.Inc,
		func(fetchCtx context.Context) (*service.GradeAggregate, error) {
			return h.stats.GetGradeStatistics(fetchCtx, gradeID, year)
		})
	if err != nil {
		done(h.handleServiceError(w, ctx, endpoint, err))
		return
	}

	done(h.sendJSON(w, endpoint, agg, http.StatusOK))
}

// GetStudentComposite handles GET /api/v1/students/{studentID}/composite?year=YYYY.
func (h *Handlers) GetStudentComposite(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/v1/students/composite"
	done := h.observe(endpoint)

	studentID := mux.Vars(r)["studentID"]
	year, err := parseYear(r)
	if err != nil {
		done(h.sendError(w, endpoint, err.Error(), http.StatusBadRequest))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	key := fmt.Sprintf("%s:%s:%d", cacheKeyStudentComposite, studentID, year)
	rec, err := findAndCache(ctx, h.cache, &h.sfGroup, key, h.cacheTTL, h.logger,
		h.metrics.ResponseCacheHits.Inc, h.metrics.ResponseCacheMisses.Inc,
		func(fetchCtx context.Context) (*service.CompositeRecord, error) {
			return h.stats.GetStudentComposite(fetchCtx, studentID, year)
		})
	if err != nil {
		done(h.handleServiceError(w, ctx, endpoint, err))
		return
	}

	done(h.sendJSON(w, endpoint, rec, http.StatusOK))
}

// GetStudentHistory handles GET /api/v1/students/{studentID}/history.
func (h *Handlers) GetStudentHistory(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/v1/students/history"
	done := h.observe(endpoint)

	studentID := mux.Vars(r)["studentID"]

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	key := fmt.Sprintf("%s:%s", cacheKeyStudentHistory, studentID)
	hist, err := findAndCache(ctx, h.cache, &h.sfGroup, key, h.cacheTTL, h.logger,
		h.metrics.ResponseCacheHits.Inc, h.metrics.ResponseCacheMisses.Inc,
		func(fetchCtx context.Context) (*service.StudentHistory, error) {
			return h.stats.GetStudentHistory(fetchCtx, studentID)
		})
	if err != nil {
		done(h.handleServiceError(w, ctx, endpoint, err))
		return
	}

	done(h.sendJSON(w, endpoint, hist, http.StatusOK))
}

// GetGradeHistory handles GET /api/v1/grades/{gradeID}/history.
func (h *Handlers) GetGradeHistory(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/v1/grades/history"
	done := h.observe(endpoint)

	gradeID := mux.Vars(r)["gradeID"]

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	key := fmt.Sprintf("%s:%s", cacheKeyGradeHistory, gradeID)
	hist, err := findAndCache(ctx, h.cache, &h.sfGroup, key, h.cacheTTL, h.logger,
		h.metrics.ResponseCacheHits.Inc, h.metrics.ResponseCacheMisses.Inc,
		func(fetchCtx context.Context) (*service.GradeHistory, error) {
			return h.stats.GetGradeHistory(fetchCtx, gradeID)
		})
	if err != nil {
		done(h.handleServiceError(w, ctx, endpoint, err))
		return
	}

	done(h.sendJSON(w, endpoint, hist, http.StatusOK))
}

// InvalidateCache handles POST /api/v1/cache/invalidate?scope=PREFIX. An
// empty scope clears the whole memoization store.
func (h *Handlers) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/v1/cache/invalidate"
	done := h.observe(endpoint)

	scope := r.URL.Query().Get("scope")
	removed := h.stats.InvalidateCache(scope)

	done(h.sendJSON(w, endpoint, map[string]any{
		"scope":   scope,
		"removed": removed,
	}, http.StatusOK))
}

// CacheStats handles GET /api/v1/cache/stats.
func (h *Handlers) CacheStats(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/v1/cache/stats"
	done := h.observe(endpoint)

	stats := h.stats.CacheStats()
	done(h.sendJSON(w, endpoint, map[string]any{
		"entries":            stats.Entries,
		"oldest_age_seconds": stats.OldestAge.Seconds(),
	}, http.StatusOK))
}

// HealthCheck handles GET /healthz.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/healthz"
	done := h.observe(endpoint)

	done(h.sendJSON(w, endpoint, map[string]string{"status": "ok"}, http.StatusOK))
}

func parseYear(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return 0, errors.New("year query parameter is required")
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year <= 0 {
		return 0, errors.New("invalid year, expected a positive integer")
	}
	return year, nil
}

// observe starts timing an endpoint and returns a completion callback that
// records the request counter with its final status.
func (h *Handlers) observe(endpoint string) func(status int) {
	start := time.Now()
	return func(status int) {
		h.metrics.APIRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		h.metrics.APIRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	}
}

func (h *Handlers) handleServiceError(w http.ResponseWriter, ctx context.Context, endpoint string, err error) int {
	switch ctx.Err() {
	case context.Canceled:
		h.logger.Warn("request canceled", zap.String("endpoint", endpoint))
		return h.sendError(w, endpoint, "request canceled", statusClientClosedRequest)
	case context.DeadlineExceeded:
		h.logger.Warn("request timeout", zap.String("endpoint", endpoint))
		return h.sendError(w, endpoint, "request timed out", http.StatusGatewayTimeout)
	}

	switch {
	case errors.Is(err, service.ErrNoData):
		h.logger.Info("no data found", zap.String("endpoint", endpoint))
		return h.sendError(w, endpoint, "no fitness data for the requested subject", http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidArgument):
		h.logger.Info("invalid request", zap.String("endpoint", endpoint), zap.Error(err))
		return h.sendError(w, endpoint, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrProviderFailure):
		h.logger.Error("data provider failure", zap.String("endpoint", endpoint), zap.Error(err))
		return h.sendError(w, endpoint, "data provider unavailable", http.StatusBadGateway)
	default:
		h.logger.Error("unexpected error", zap.String("endpoint", endpoint), zap.Error(err))
		return h.sendError(w, endpoint, "internal server error", http.StatusInternalServerError)
	}
}

// statusClientClosedRequest mirrors the nginx convention for canceled requests.
const statusClientClosedRequest = 499

func (h *Handlers) sendJSON(w http.ResponseWriter, endpoint string, data any, status int) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("endpoint", endpoint), zap.Error(err))
	}
	return status
}

func (h *Handlers) sendError(w http.ResponseWriter, endpoint, message string, status int) int {
	return h.sendJSON(w, endpoint, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}, status)
}
