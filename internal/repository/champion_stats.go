package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"summoner-tracker/internal/db"
	"summoner-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type ChampionStatsRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewChampionStatsRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *ChampionStatsRepository {
	return &ChampionStatsRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// ReplaceForPlayer upserts one row per champion and removes the player's
// rows for champions missing from stats, all in one transaction.
func (r *ChampionStatsRepository) ReplaceForPlayer(ctx context.Context, puuid string, stats []domain.ChampionStats, now time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	stamp := toMillis(now)

	for _, s := range stats {
		err := qtx.UpsertChampionStat(ctx, db.UpsertChampionStatParams{
			Puuid:         puuid,
			ChampionName:  s.ChampionName,
			MatchesPlayed: int64(s.MatchesPlayed),
			Wins:          int64(s.Wins),
			Losses:        int64(s.Losses),
			WinRate:       int64(s.WinRate),
			Kda:           s.KDA,
			Kills:         s.Kills,
			Deaths:        s.Deaths,
			Assists:       s.Assists,
			Cs:            s.CS,
			UpdatedAt:     stamp,
		})
		if err != nil {
			return fmt.Errorf("failed to upsert champion stats %s/%s: %w", puuid, s.ChampionName, err)
		}
	}

	if err := qtx.DeleteStaleChampionStats(ctx, puuid, stamp); err != nil {
		return fmt.Errorf("failed to delete stale champion stats for %s: %w", puuid, err)
	}

	return tx.Commit()
}

func (r *ChampionStatsRepository) Top(ctx context.Context, puuid string, limit int) ([]domain.ChampionStats, error) {
	rows, err := r.queries.ListTopChampionStats(ctx, puuid, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list champion stats for %s: %w", puuid, err)
	}

	result := make([]domain.ChampionStats, len(rows))
	for i, row := range rows {
		result[i] = domain.ChampionStats{
			Puuid:         row.Puuid,
			ChampionName:  row.ChampionName,
			MatchesPlayed: int(row.MatchesPlayed),
			Wins:          int(row.Wins),
			Losses:        int(row.Losses),
			WinRate:       int(row.WinRate),
			KDA:           row.Kda,
			Kills:         row.Kills,
			Deaths:        row.Deaths,
			Assists:       row.Assists,
			CS:            row.Cs,
			UpdatedAt:     fromMillis(row.UpdatedAt),
		}
	}
	return result, nil
}

// MatchesCovered is the number of matches the player's champion rows were
// computed from.
func (r *ChampionStatsRepository) MatchesCovered(ctx context.Context, puuid string) (int, error) {
	n, err := r.queries.SumChampionMatchesPlayed(ctx, puuid)
	if err != nil {
		return 0, fmt.Errorf("failed to sum champion stats for %s: %w", puuid, err)
	}
	return int(n), nil
}
