package service

import (
	"context"
	"fmt"

	"summoner-tracker/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type DashboardService struct {
	players *PlayerService
	matches *MatchService
	stats   *StatsService
	logger  zerolog.Logger
}

func NewDashboardService(players *PlayerService, matches *MatchService, stats *StatsService, logger zerolog.Logger) *DashboardService {
	return &DashboardService{
		players: players,
		matches: matches,
		stats:   stats,
		logger:  logger.With().Str("component", "dashboard_service").Logger(),
	}
}

type RecentMatch struct {
	domain.Match
	GameType string
}

type Dashboard struct {
	Summoner      *domain.Summoner
	TopChampions  []domain.ChampionStats
	RecentMatches []RecentMatch
	Roles         map[string]int
	NewMatches    []domain.MatchID
}

type SyncReport struct {
	Summoner   *domain.Summoner
	NewMatches []domain.MatchID
}

// Dashboard refreshes the profile, syncs new matches, recomputes the
// champion rows when something changed and reads the summary views.
func (s *DashboardService) Dashboard(ctx context.Context, region, name string, force bool) (*Dashboard, error) {
	report, err := s.refreshAndSync(ctx, region, name, force)
	if err != nil {
		return nil, err
	}
	puuid := report.Summoner.Puuid

	view := &Dashboard{
		Summoner:   report.Summoner,
		NewMatches: report.NewMatches,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		top, err := s.stats.TopChampions(gCtx, puuid, 0)
		if err != nil {
			return fmt.Errorf("failed to read top champions: %w", err)
		}
		view.TopChampions = top
		return nil
	})
	g.Go(func() error {
		recent, err := s.RecentMatches(gCtx, puuid, 0)
		if err != nil {
			return err
		}
		view.RecentMatches = recent
		return nil
	})
	g.Go(func() error {
		roles, err := s.stats.RoleCounts(gCtx, puuid)
		if err != nil {
			return fmt.Errorf("failed to read role counts: %w", err)
		}
		view.Roles = roles
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("puuid", puuid).Msg("failed to build dashboard")
		return nil, err
	}

	return view, nil
}

// Sync refreshes the profile when stale, stores new matches and recomputes
// the champion rows when needed.
func (s *DashboardService) Sync(ctx context.Context, region, name string) (*SyncReport, error) {
	return s.refreshAndSync(ctx, region, name, false)
}

func (s *DashboardService) Refresh(ctx context.Context, region, name string, force bool) (*domain.Summoner, error) {
	return s.players.Refresh(ctx, region, name, force)
}

// Recompute rebuilds the champion rows of a summoner without touching the
// upstream API beyond the profile lookup.
func (s *DashboardService) Recompute(ctx context.Context, region, name string) (*domain.Summoner, error) {
	summoner, err := s.players.Refresh(ctx, region, name, false)
	if err != nil {
		return nil, err
	}
	if err := s.stats.Recompute(ctx, summoner.Puuid); err != nil {
		return nil, err
	}
	return summoner, nil
}

func (s *DashboardService) RecentMatches(ctx context.Context, puuid string, limit int) ([]RecentMatch, error) {
	matches, err := s.stats.RecentMatches(ctx, puuid, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read recent matches: %w", err)
	}
	recent := make([]RecentMatch, len(matches))
	for i, m := range matches {
		recent[i] = RecentMatch{Match: m, GameType: s.stats.QueueLabel(m.QueueID)}
	}
	return recent, nil
}

func (s *DashboardService) TopChampions(ctx context.Context, puuid string, limit int) ([]domain.ChampionStats, error) {
	return s.stats.TopChampions(ctx, puuid, limit)
}

func (s *DashboardService) RoleCounts(ctx context.Context, puuid string) (map[string]int, error) {
	return s.stats.RoleCounts(ctx, puuid)
}

func (s *DashboardService) refreshAndSync(ctx context.Context, region, name string, force bool) (*SyncReport, error) {
	summoner, err := s.players.Refresh(ctx, region, name, force)
	if err != nil {
		return nil, err
	}

	newMatches, err := s.matches.Sync(ctx, summoner)
	if err != nil {
		return nil, err
	}

	stale, err := s.stats.Stale(ctx, summoner.Puuid)
	if err != nil {
		return nil, err
	}
	if stale {
		if err := s.stats.Recompute(ctx, summoner.Puuid); err != nil {
			return nil, err
		}
	}

	return &SyncReport{Summoner: summoner, NewMatches: newMatches}, nil
}
