package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Service struct {
	UpstreamRequests  *prometheus.CounterVec
	RateLimitRetries  *prometheus.CounterVec
	MatchesSynced     prometheus.Counter
	MatchesSkipped    *prometheus.CounterVec
	RecomputeDuration prometheus.Histogram
	HTTPDuration      *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// NewService registers the tracker metrics on reg, or on the default
// registerer when none is given. Tests pass a fresh prometheus.Registry.
func NewService(reg ...*prometheus.Registry) *Service {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if len(reg) > 0 && reg[0] != nil {
		registerer, gatherer = reg[0], reg[0]
	}

	s := &Service{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_upstream_requests_total",
			Help: "Upstream API requests by endpoint and HTTP status.",
		}, []string{"endpoint", "status"}),
		RateLimitRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_upstream_rate_limit_retries_total",
			Help: "Retries issued after an upstream 429.",
		}, []string{"endpoint"}),
		MatchesSynced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_matches_synced_total",
			Help: "Match records persisted by the synchronizer.",
		}),
		MatchesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_matches_skipped_total",
			Help: "Match details skipped during sync by reason.",
		}, []string{"reason"}),
		RecomputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tracker_champion_stats_recompute_seconds",
			Help:    "Duration of champion stats recomputation.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tracker_http_request_duration_seconds",
			Help:    "HTTP request duration by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		gatherer: gatherer,
	}

	registerer.MustRegister(
		s.UpstreamRequests,
		s.RateLimitRetries,
		s.MatchesSynced,
		s.MatchesSkipped,
		s.RecomputeDuration,
		s.HTTPDuration,
	)

	return s
}

func (s *Service) ObserveUpstreamRequest(endpoint string, status int) {
	s.UpstreamRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

func (s *Service) IncRateLimitRetry(endpoint string) {
	s.RateLimitRetries.WithLabelValues(endpoint).Inc()
}

func (s *Service) AddMatchesSynced(n int) {
	s.MatchesSynced.Add(float64(n))
}

func (s *Service) IncMatchSkipped(reason string) {
	s.MatchesSkipped.WithLabelValues(reason).Inc()
}

func (s *Service) ObserveRecompute(seconds float64) {
	s.RecomputeDuration.Observe(seconds)
}

func (s *Service) ObserveHTTPRequest(method, route string, status int, seconds float64) {
	s.HTTPDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(seconds)
}

func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})
}

// Provide is the fx constructor; it registers on the default registry.
func Provide() *Service {
	return NewService()
}
