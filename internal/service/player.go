package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"summoner-tracker/internal/api"
	"summoner-tracker/internal/config"
	"summoner-tracker/internal/constants"
	"summoner-tracker/internal/domain"
	"summoner-tracker/internal/repository"

	"github.com/rs/zerolog"
)

type PlayerService struct {
	riot   RiotAPI
	repo   *repository.SummonerRepository
	ttl    time.Duration
	logger zerolog.Logger
	now    func() time.Time
}

func NewPlayerService(riot RiotAPI, repo *repository.SummonerRepository, cfg *config.Config, logger zerolog.Logger) *PlayerService {
	ttl := cfg.ProfileTTL
	if ttl <= 0 {
		ttl = constants.ProfileRefreshTTL
	}
	return &PlayerService{
		riot:   riot,
		repo:   repo,
		ttl:    ttl,
		logger: logger.With().Str("component", "player_service").Logger(),
		now:    time.Now,
	}
}

// Refresh returns the profile for (region, name). The cached row is served
// while younger than the TTL; otherwise, or when force is set, the summoner
// and its ranked entries are fetched again and the row is upserted.
func (s *PlayerService) Refresh(ctx context.Context, region, name string, force bool) (*domain.Summoner, error) {
	region = strings.ToLower(strings.TrimSpace(region))
	name = strings.TrimSpace(name)
	if !domain.IsPlatform(region) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRegion, region)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", domain.ErrSummonerNotFound)
	}

	cached, err := s.repo.GetByName(ctx, region, name)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if cached != nil {
		age := now.Sub(cached.LastUpdateAt)
		if !force && age < s.ttl {
			s.logger.Debug().
				Str("puuid", cached.Puuid).
				Dur("age", age).
				Dur("ttl", s.ttl).
				Msg("returning cached summoner")
			return cached, nil
		}
		s.logger.Debug().
			Str("puuid", cached.Puuid).
			Bool("force", force).
			Dur("age", age).
			Msg("summoner is stale, refreshing")
	} else {
		s.logger.Debug().Str("region", region).Str("name", name).Msg("summoner not found in database, fetching from API")
	}

	apiCtx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	account, err := s.riot.GetSummonerByName(apiCtx, region, name)
	if err != nil {
		s.logger.Error().Err(err).Str("region", region).Str("name", name).Msg("failed to fetch summoner")
		return nil, fmt.Errorf("failed to fetch summoner: %w", err)
	}

	entries, err := s.riot.GetLeagueEntries(apiCtx, region, account.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("puuid", account.Puuid).Msg("failed to fetch league entries")
		return nil, fmt.Errorf("failed to fetch league entries: %w", err)
	}

	summoner := &domain.Summoner{
		Puuid:         account.Puuid,
		SummonerID:    account.ID,
		Name:          account.Name,
		Region:        region,
		ProfileIconID: account.ProfileIconID,
		Level:         account.SummonerLevel,
		SoloQueue:     domain.UnrankedQueue(),
		FlexQueue:     domain.UnrankedQueue(),
		LastUpdateAt:  now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if summoner.Name == "" {
		summoner.Name = name
	}
	if cached != nil && cached.Puuid == summoner.Puuid {
		summoner.CreatedAt = cached.CreatedAt
	}

	for _, entry := range entries {
		switch entry.QueueType {
		case domain.QueueTypeSolo:
			summoner.SoloQueue = s.queueRank(entry)
		case domain.QueueTypeFlex:
			summoner.FlexQueue = s.queueRank(entry)
		}
	}

	if err := s.repo.Upsert(ctx, summoner); err != nil {
		return nil, fmt.Errorf("failed to upsert summoner: %w", err)
	}

	s.logger.Info().
		Str("puuid", summoner.Puuid).
		Str("solo", summoner.SoloQueue.Rank).
		Str("flex", summoner.FlexQueue.Rank).
		Msg("summoner refreshed")

	return summoner, nil
}

func (s *PlayerService) queueRank(entry api.LeagueEntry) domain.QueueRank {
	division, err := domain.ParseDivision(entry.Rank)
	if err != nil {
		s.logger.Warn().Err(err).Str("queue", entry.QueueType).Str("tier", entry.Tier).Msg("unparseable division")
	}
	return domain.QueueRank{
		Rank:     domain.RankLabel(entry.Tier, division),
		Tier:     strings.ToUpper(entry.Tier),
		Division: division,
		LP:       entry.LeaguePoints,
		Wins:     entry.Wins,
		Losses:   entry.Losses,
		WinRate:  domain.WinRate(entry.Wins, entry.Losses),
	}
}
