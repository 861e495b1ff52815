package observability

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal counts HTTP requests by route/method/status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	// HTTPRequestDuration observes HTTP request latency.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	// GenRequestsTotal counts generation collaborator calls by outcome.
	GenRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_requests_total",
			Help: "Total number of generation requests by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)
	// GenRequestDuration observes generation call latency.
	GenRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "generation_request_duration_seconds",
			Help:    "Generation request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider"},
	)

	// ModerationOutcomesTotal counts safety filter verdicts per rule family.
	ModerationOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moderation_outcomes_total",
			Help: "Total number of moderation outcomes by kind and rule family",
		},
		[]string{"kind", "rule"},
	)
	// FallbacksTotal counts deterministic fallback substitutions by cause.
	FallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fallback_substitutions_total",
			Help: "Total number of fallback substitutions by cause",
		},
		[]string{"cause"},
	)
	// QuestionsSelected observes the eligible question pool per selection.
	QuestionsSelected = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "question_selection_pool_size",
			Help:    "Distribution of eligible pool sizes at question selection",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	// ScoreTasksEnqueuedTotal counts scoring tasks published to the queue.
	ScoreTasksEnqueuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "score_tasks_enqueued_total",
			Help: "Total number of scoring tasks enqueued",
		},
	)
	// ScoreTasksCompletedTotal counts scoring tasks by terminal outcome.
	ScoreTasksCompletedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "score_tasks_completed_total",
			Help: "Total number of scoring tasks completed by outcome",
		},
		[]string{"outcome"},
	)
	// SessionScoreHistogram records session-aggregate overall scores.
	SessionScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "session_score_overall",
			Help:    "Distribution of session overall scores [0,100]",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)
)

// InitMetrics registers all Prometheus collectors once per process.
func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(GenRequestsTotal)
	prometheus.MustRegister(GenRequestDuration)
	prometheus.MustRegister(ModerationOutcomesTotal)
	prometheus.MustRegister(FallbacksTotal)
	prometheus.MustRegister(QuestionsSelected)
	prometheus.MustRegister(ScoreTasksEnqueuedTotal)
	prometheus.MustRegister(ScoreTasksCompletedTotal)
	prometheus.MustRegister(SessionScoreHistogram)
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		method := r.Method
		status := ww.Status()
		HTTPRequestsTotal.WithLabelValues(route, method, http.StatusText(status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, method).Observe(dur)
	})
}

// ObserveModeration records one safety-filter verdict.
func ObserveModeration(kind, rule string) {
	ModerationOutcomesTotal.WithLabelValues(kind, rule).Inc()
}

// ObserveFallback records one fallback substitution.
func ObserveFallback(cause string) {
	FallbacksTotal.WithLabelValues(cause).Inc()
}
