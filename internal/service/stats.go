package service

import (
	"context"
	"fmt"
	"time"

	"summoner-tracker/internal/constants"
	"summoner-tracker/internal/domain"
	"summoner-tracker/internal/metrics"
	"summoner-tracker/internal/repository"

	"github.com/rs/zerolog"
)

type StatsService struct {
	matches *repository.MatchRepository
	stats   *repository.ChampionStatsRepository
	metrics *metrics.Service
	logger  zerolog.Logger
	now     func() time.Time
}

func NewStatsService(matches *repository.MatchRepository, stats *repository.ChampionStatsRepository, m *metrics.Service, logger zerolog.Logger) *StatsService {
	return &StatsService{
		matches: matches,
		stats:   stats,
		metrics: m,
		logger:  logger.With().Str("component", "stats_service").Logger(),
		now:     time.Now,
	}
}

// Recompute rebuilds the player's champion rows from the stored ranked
// matches. Running it twice over the same matches yields the same rows.
func (s *StatsService) Recompute(ctx context.Context, puuid string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	start := time.Now()

	ranked, err := s.matches.RankedMatches(ctx, puuid)
	if err != nil {
		return err
	}

	now := s.now()
	stats := domain.AggregateChampionStats(puuid, ranked, now)
	if err := s.stats.ReplaceForPlayer(ctx, puuid, stats, now); err != nil {
		s.logger.Error().Err(err).Str("puuid", puuid).Msg("failed to store champion stats")
		return fmt.Errorf("failed to store champion stats: %w", err)
	}

	elapsed := time.Since(start)
	s.metrics.ObserveRecompute(elapsed.Seconds())
	s.logger.Debug().
		Str("puuid", puuid).
		Int("ranked_matches", len(ranked)).
		Int("champions", len(stats)).
		Dur("took", elapsed).
		Msg("champion stats recomputed")

	return nil
}

// Stale reports whether the player's champion rows were computed from a
// different set of ranked matches than the one stored. Match records are
// insert-only, so equal counts mean the rows are current.
func (s *StatsService) Stale(ctx context.Context, puuid string) (bool, error) {
	ranked, err := s.matches.RankedCount(ctx, puuid)
	if err != nil {
		return false, err
	}
	covered, err := s.stats.MatchesCovered(ctx, puuid)
	if err != nil {
		return false, err
	}
	return ranked != covered, nil
}

func (s *StatsService) RecentMatches(ctx context.Context, puuid string, limit int) ([]domain.Match, error) {
	if limit <= 0 {
		limit = constants.RecentMatchesLimit
	}
	return s.matches.Recent(ctx, puuid, limit)
}

func (s *StatsService) TopChampions(ctx context.Context, puuid string, limit int) ([]domain.ChampionStats, error) {
	if limit <= 0 {
		limit = constants.TopChampionsLimit
	}
	return s.stats.Top(ctx, puuid, limit)
}

func (s *StatsService) RoleCounts(ctx context.Context, puuid string) (map[string]int, error) {
	return s.matches.RoleCounts(ctx, puuid)
}

func (s *StatsService) QueueLabel(queueID int) string {
	return domain.QueueLabel(queueID)
}
