package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"summoner-tracker/internal/config"
	"summoner-tracker/internal/constants"
	"summoner-tracker/internal/domain"
	"summoner-tracker/internal/metrics"
	"summoner-tracker/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	skipFetchFailed   = "fetch_failed"
	skipMalformed     = "malformed"
	skipPlayerMissing = "player_missing"
)

type MatchService struct {
	riot        RiotAPI
	repo        *repository.MatchRepository
	metrics     *metrics.Service
	seasonStart time.Time
	logger      zerolog.Logger
	group       singleflight.Group
}

func NewMatchService(riot RiotAPI, repo *repository.MatchRepository, m *metrics.Service, cfg *config.Config, logger zerolog.Logger) *MatchService {
	return &MatchService{
		riot:        riot,
		repo:        repo,
		metrics:     m,
		seasonStart: cfg.SeasonStart,
		logger:      logger.With().Str("component", "match_service").Logger(),
	}
}

// Sync stores the matches of the season the player has not stored yet and
// returns the identifiers that needed a detail fetch, in upstream order.
// Concurrent calls for the same player share one run. The run is detached
// from the caller that started it and bounded by SyncTimeout; each caller
// stops waiting when its own ctx is done.
func (s *MatchService) Sync(ctx context.Context, summoner *domain.Summoner) ([]domain.MatchID, error) {
	ch := s.group.DoChan(summoner.Puuid, func() (interface{}, error) {
		return s.sync(context.WithoutCancel(ctx), summoner)
	})

	select {
	case <-ctx.Done():
		s.logger.Warn().Err(ctx.Err()).Str("puuid", summoner.Puuid).Msg("stopped waiting for match sync")
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			s.logger.Debug().Str("puuid", summoner.Puuid).Msg("joined in-flight sync")
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]domain.MatchID), nil
	}
}

func (s *MatchService) sync(ctx context.Context, summoner *domain.Summoner) ([]domain.MatchID, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.SyncTimeout)
	defer cancel()

	latest, hasLatest, err := s.repo.LatestMatchID(ctx, summoner.Puuid)
	if err != nil {
		return nil, err
	}

	ids, err := s.seasonMatchIDs(ctx, summoner)
	if err != nil {
		s.logger.Error().Err(err).Str("puuid", summoner.Puuid).Msg("failed to list match ids")
		return nil, fmt.Errorf("failed to list match ids: %w", err)
	}

	pending := ids
	if hasLatest {
		pending = make([]domain.MatchID, 0, len(ids))
		for _, id := range ids {
			if id.NewerThan(latest) {
				pending = append(pending, id)
			}
		}
	}

	s.logger.Info().
		Str("puuid", summoner.Puuid).
		Str("latest", latest.String()).
		Int("listed", len(ids)).
		Int("pending", len(pending)).
		Msg("syncing matches")

	matches := make([]domain.Match, 0, len(pending))
	for _, id := range pending {
		resp, err := s.riot.GetMatch(ctx, summoner.Region, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("failed to fetch match %s: %w", id, ctx.Err())
			}
			s.skip(id, skipFetchFailed, err)
			continue
		}

		match, err := buildMatch(id, summoner.Puuid, resp)
		switch {
		case errors.Is(err, domain.ErrMalformedRecord):
			s.skip(id, skipMalformed, err)
			continue
		case errors.Is(err, domain.ErrNotFoundInMatch):
			s.skip(id, skipPlayerMissing, err)
			continue
		case err != nil:
			return nil, err
		}
		matches = append(matches, match)
	}

	inserted, err := s.repo.InsertBatch(ctx, matches)
	if err != nil {
		return nil, fmt.Errorf("failed to store matches: %w", err)
	}
	s.metrics.AddMatchesSynced(inserted)

	s.logger.Info().
		Str("puuid", summoner.Puuid).
		Int("fetched", len(pending)).
		Int("stored", inserted).
		Msg("match sync completed")

	return pending, nil
}

// seasonMatchIDs pages through the season's identifiers until an empty page
// or the season cap.
func (s *MatchService) seasonMatchIDs(ctx context.Context, summoner *domain.Summoner) ([]domain.MatchID, error) {
	var ids []domain.MatchID
	for start := 0; start < constants.MaxSeasonMatches; start += constants.MatchIDsPageSize {
		count := min(constants.MatchIDsPageSize, constants.MaxSeasonMatches-start)
		page, err := s.riot.GetMatchIDs(ctx, summoner.Region, summoner.Puuid, start, count, s.seasonStart)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		ids = append(ids, page...)
	}
	return ids, nil
}

func (s *MatchService) skip(id domain.MatchID, reason string, err error) {
	s.metrics.IncMatchSkipped(reason)
	s.logger.Warn().Err(err).Str("match_id", id.String()).Str("reason", reason).Msg("skipping match")
}
