package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"summoner-tracker/internal/db"
	"summoner-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type SummonerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewSummonerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *SummonerRepository {
	return &SummonerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// GetByName returns the cached profile for (region, name), or nil when the
// summoner was never looked up.
func (r *SummonerRepository) GetByName(ctx context.Context, region, name string) (*domain.Summoner, error) {
	row, err := r.queries.GetSummonerByName(ctx, strings.ToLower(region), nameKey(name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get summoner %s/%s: %w", region, name, err)
	}
	return toDomainSummoner(row), nil
}

func (r *SummonerRepository) Upsert(ctx context.Context, s *domain.Summoner) error {
	err := r.queries.UpsertSummoner(ctx, db.UpsertSummonerParams{
		Puuid:         s.Puuid,
		SummonerID:    s.SummonerID,
		Name:          s.Name,
		NameKey:       nameKey(s.Name),
		Region:        strings.ToLower(s.Region),
		ProfileIconID: int64(s.ProfileIconID),
		Level:         int64(s.Level),
		SoloRank:      s.SoloQueue.Rank,
		SoloTier:      s.SoloQueue.Tier,
		SoloDivision:  int64(s.SoloQueue.Division),
		SoloLp:        int64(s.SoloQueue.LP),
		SoloWins:      int64(s.SoloQueue.Wins),
		SoloLosses:    int64(s.SoloQueue.Losses),
		SoloWr:        int64(s.SoloQueue.WinRate),
		FlexRank:      s.FlexQueue.Rank,
		FlexTier:      s.FlexQueue.Tier,
		FlexDivision:  int64(s.FlexQueue.Division),
		FlexLp:        int64(s.FlexQueue.LP),
		FlexWins:      int64(s.FlexQueue.Wins),
		FlexLosses:    int64(s.FlexQueue.Losses),
		FlexWr:        int64(s.FlexQueue.WinRate),
		LastUpdateAt:  toMillis(s.LastUpdateAt),
		CreatedAt:     toMillis(s.CreatedAt),
		UpdatedAt:     toMillis(s.UpdatedAt),
	})
	if err != nil {
		r.logger.Error().Err(err).Str("puuid", s.Puuid).Msg("failed to upsert summoner")
		return fmt.Errorf("failed to upsert summoner %s: %w", s.Puuid, err)
	}
	return nil
}

func toDomainSummoner(row db.Summoner) *domain.Summoner {
	return &domain.Summoner{
		Puuid:         row.Puuid,
		SummonerID:    row.SummonerID,
		Name:          row.Name,
		Region:        row.Region,
		ProfileIconID: int(row.ProfileIconID),
		Level:         int(row.Level),
		SoloQueue: domain.QueueRank{
			Rank:     row.SoloRank,
			Tier:     row.SoloTier,
			Division: int(row.SoloDivision),
			LP:       int(row.SoloLp),
			Wins:     int(row.SoloWins),
			Losses:   int(row.SoloLosses),
			WinRate:  int(row.SoloWr),
		},
		FlexQueue: domain.QueueRank{
			Rank:     row.FlexRank,
			Tier:     row.FlexTier,
			Division: int(row.FlexDivision),
			LP:       int(row.FlexLp),
			Wins:     int(row.FlexWins),
			Losses:   int(row.FlexLosses),
			WinRate:  int(row.FlexWr),
		},
		LastUpdateAt: fromMillis(row.LastUpdateAt),
		CreatedAt:    fromMillis(row.CreatedAt),
		UpdatedAt:    fromMillis(row.UpdatedAt),
	}
}
