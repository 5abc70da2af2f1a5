package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"summoner-tracker/internal/api"
	"summoner-tracker/internal/domain"
	"summoner-tracker/internal/metrics"
	"summoner-tracker/internal/middleware"
	"summoner-tracker/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// Tracker is what the HTTP layer needs from *service.DashboardService.
type Tracker interface {
	Dashboard(ctx context.Context, region, name string, force bool) (*service.Dashboard, error)
	Sync(ctx context.Context, region, name string) (*service.SyncReport, error)
	Refresh(ctx context.Context, region, name string, force bool) (*domain.Summoner, error)
	RecentMatches(ctx context.Context, puuid string, limit int) ([]service.RecentMatch, error)
	TopChampions(ctx context.Context, puuid string, limit int) ([]domain.ChampionStats, error)
	RoleCounts(ctx context.Context, puuid string) (map[string]int, error)
}

var _ Tracker = (*service.DashboardService)(nil)

type TrackerServer struct {
	tracker Tracker
	metrics *metrics.Service
	logger  zerolog.Logger
}

func NewTrackerServer(tracker *service.DashboardService, m *metrics.Service, logger zerolog.Logger) *TrackerServer {
	return newTrackerServer(tracker, m, logger)
}

func newTrackerServer(tracker Tracker, m *metrics.Service, logger zerolog.Logger) *TrackerServer {
	return &TrackerServer{tracker: tracker, metrics: m, logger: logger}
}

func (s *TrackerServer) Routes() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID(s.logger))
	r.Use(middleware.Metrics(s.metrics))
	r.Use(c.Handler)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api/v1/summoners/{region}/{name}", func(r chi.Router) {
		r.Get("/", s.handleDashboard)
		r.Get("/matches", s.handleMatches)
		r.Get("/champions", s.handleChampions)
		r.Get("/roles", s.handleRoles)
		r.Post("/sync", s.handleSync)
	})

	return r
}

func (s *TrackerServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *TrackerServer) handleDashboard(w http.ResponseWriter, r *http.Request) {
	region, name := pathSummoner(r)
	force, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

	view, err := s.tracker.Dashboard(r.Context(), region, name, force)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDashboardResponse(view))
}

func (s *TrackerServer) handleMatches(w http.ResponseWriter, r *http.Request) {
	summoner, ok := s.lookup(w, r)
	if !ok {
		return
	}

	matches, err := s.tracker.RecentMatches(r.Context(), summoner.Puuid, queryLimit(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMatchResponses(matches))
}

func (s *TrackerServer) handleChampions(w http.ResponseWriter, r *http.Request) {
	summoner, ok := s.lookup(w, r)
	if !ok {
		return
	}

	stats, err := s.tracker.TopChampions(r.Context(), summoner.Puuid, queryLimit(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toChampionResponses(stats))
}

func (s *TrackerServer) handleRoles(w http.ResponseWriter, r *http.Request) {
	summoner, ok := s.lookup(w, r)
	if !ok {
		return
	}

	roles, err := s.tracker.RoleCounts(r.Context(), summoner.Puuid)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoleResponses(roles))
}

func (s *TrackerServer) handleSync(w http.ResponseWriter, r *http.Request) {
	region, name := pathSummoner(r)

	report, err := s.tracker.Sync(r.Context(), region, name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, syncResponse{
		Summoner:   toSummonerResponse(report.Summoner),
		NewMatches: matchIDStrings(report.NewMatches),
	})
}

func (s *TrackerServer) lookup(w http.ResponseWriter, r *http.Request) (*domain.Summoner, bool) {
	region, name := pathSummoner(r)
	summoner, err := s.tracker.Refresh(r.Context(), region, name, false)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return summoner, true
}

func pathSummoner(r *http.Request) (region, name string) {
	region, name = chi.URLParam(r, "region"), chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return region, name
}

func queryLimit(r *http.Request) int {
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

func (s *TrackerServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := http.StatusInternalServerError, "internal error"

	var upstream *api.UpstreamError
	switch {
	case errors.Is(err, domain.ErrSummonerNotFound):
		status, msg = http.StatusNotFound, "summoner not found"
	case errors.Is(err, domain.ErrUnknownRegion):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.As(err, &upstream):
		status, msg = http.StatusBadGateway, upstream.Error()
	case errors.Is(err, context.DeadlineExceeded):
		status, msg = http.StatusGatewayTimeout, "timed out"
	}

	logger := zerolog.Ctx(r.Context())
	if logger.GetLevel() == zerolog.Disabled {
		logger = &s.logger
	}
	logger.Error().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request failed")

	writeJSON(w, status, errorResponse{Error: msg, RequestID: middleware.GetRequestID(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
