package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"summoner-tracker/internal/constants"
	"summoner-tracker/internal/db"
	"summoner-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

type MatchRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// LatestMatchID returns the stored match with the greatest sequence for the
// player. ok is false when nothing is stored yet.
func (r *MatchRepository) LatestMatchID(ctx context.Context, puuid string) (id domain.MatchID, ok bool, err error) {
	row, err := r.queries.GetLatestMatch(ctx, puuid)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get latest match for %s: %w", puuid, err)
	}
	return domain.MatchID(row.MatchID), true, nil
}

// InsertBatch stores the matches in one transaction. Matches already stored
// for the player are ignored; the count of newly written rows is returned.
func (r *MatchRepository) InsertBatch(ctx context.Context, matches []domain.Match) (int, error) {
	if len(matches) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now()
	inserted := 0

	for i := 0; i < len(matches); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(matches) {
			end = len(matches)
		}

		for _, match := range matches[i:end] {
			params, err := toInsertParams(match, now)
			if err != nil {
				return 0, err
			}
			n, err := qtx.InsertMatch(ctx, params)
			if err != nil {
				return 0, fmt.Errorf("failed to insert match %s: %w", match.MatchID, err)
			}
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit matches: %w", err)
	}

	r.logger.Debug().
		Int("received", len(matches)).
		Int("inserted", inserted).
		Msg("match batch stored")

	return inserted, nil
}

func (r *MatchRepository) Recent(ctx context.Context, puuid string, limit int) ([]domain.Match, error) {
	rows, err := r.queries.ListRecentMatches(ctx, puuid, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list recent matches for %s: %w", puuid, err)
	}

	result := make([]domain.Match, 0, len(rows))
	for _, row := range rows {
		m, err := toDomainMatch(row)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, nil
}

// RankedMatches returns the player's solo and flex queue games, oldest first.
func (r *MatchRepository) RankedMatches(ctx context.Context, puuid string) ([]domain.RankedMatch, error) {
	rows, err := r.queries.ListRankedMatchStats(ctx, db.ListRankedMatchStatsParams{
		Puuid:     puuid,
		SoloQueue: constants.QueueRankedSolo,
		FlexQueue: constants.QueueRankedFlex,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list ranked matches for %s: %w", puuid, err)
	}

	result := make([]domain.RankedMatch, len(rows))
	for i, row := range rows {
		result[i] = domain.RankedMatch{
			ChampionName: row.ChampionName,
			Win:          row.Win,
			Kills:        int(row.Kills),
			Deaths:       int(row.Deaths),
			Assists:      int(row.Assists),
			CS:           int(row.Cs),
		}
	}
	return result, nil
}

// RankedCount is the number of stored solo and flex queue games.
func (r *MatchRepository) RankedCount(ctx context.Context, puuid string) (int, error) {
	n, err := r.queries.CountRankedMatches(ctx, db.CountRankedMatchesParams{
		Puuid:     puuid,
		SoloQueue: constants.QueueRankedSolo,
		FlexQueue: constants.QueueRankedFlex,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count ranked matches for %s: %w", puuid, err)
	}
	return int(n), nil
}

// RoleCounts returns games per role for every known role, zero included.
// Positions outside the role set are ignored.
func (r *MatchRepository) RoleCounts(ctx context.Context, puuid string) (map[string]int, error) {
	rows, err := r.queries.CountRolesByPuuid(ctx, puuid)
	if err != nil {
		return nil, fmt.Errorf("failed to count roles for %s: %w", puuid, err)
	}

	counts := make(map[string]int, len(domain.Roles))
	for _, role := range domain.Roles {
		counts[role] = 0
	}
	for _, row := range rows {
		if domain.IsRole(row.TeamPosition) {
			counts[row.TeamPosition] = int(row.Games)
		}
	}
	return counts, nil
}

func (r *MatchRepository) Count(ctx context.Context, puuid string) (int, error) {
	n, err := r.queries.CountMatches(ctx, puuid)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches for %s: %w", puuid, err)
	}
	return int(n), nil
}

func toInsertParams(m domain.Match, now time.Time) (db.InsertMatchParams, error) {
	id := m.ID
	if id == "" {
		var err error
		id, err = gonanoid.New()
		if err != nil {
			return db.InsertMatchParams{}, fmt.Errorf("failed to generate nanoid: %w", err)
		}
	}

	items, err := msgpack.Marshal(m.Items)
	if err != nil {
		return db.InsertMatchParams{}, fmt.Errorf("failed to encode items for %s: %w", m.MatchID, err)
	}
	participants, err := msgpack.Marshal(m.Participants)
	if err != nil {
		return db.InsertMatchParams{}, fmt.Errorf("failed to encode participants for %s: %w", m.MatchID, err)
	}

	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	return db.InsertMatchParams{
		ID:             id,
		MatchID:        m.MatchID.String(),
		MatchSeq:       m.MatchID.Seq(),
		Puuid:          m.Puuid,
		ChampionName:   m.ChampionName,
		Kills:          int64(m.Kills),
		Deaths:         int64(m.Deaths),
		Assists:        int64(m.Assists),
		Win:            m.Win,
		Kda:            m.KDA,
		Cs:             int64(m.CS),
		Vision:         int64(m.Vision),
		SummonerSpell1: int64(m.SummonerSpell[0]),
		SummonerSpell2: int64(m.SummonerSpell[1]),
		Items:          items,
		TeamPosition:   m.TeamPosition,
		GameMode:       m.GameMode,
		GameDuration:   int64(m.GameDuration),
		QueueID:        int64(m.QueueID),
		GameStartedAt:  toMillis(m.GameStartedAt),
		Participants:   participants,
		CreatedAt:      toMillis(createdAt),
	}, nil
}

func toDomainMatch(row db.Match) (domain.Match, error) {
	m := domain.Match{
		ID:            row.ID,
		MatchID:       domain.MatchID(row.MatchID),
		Puuid:         row.Puuid,
		ChampionName:  row.ChampionName,
		Kills:         int(row.Kills),
		Deaths:        int(row.Deaths),
		Assists:       int(row.Assists),
		Win:           row.Win,
		KDA:           row.Kda,
		CS:            int(row.Cs),
		Vision:        int(row.Vision),
		SummonerSpell: [2]int{int(row.SummonerSpell1), int(row.SummonerSpell2)},
		TeamPosition:  row.TeamPosition,
		GameMode:      row.GameMode,
		GameDuration:  int(row.GameDuration),
		QueueID:       int(row.QueueID),
		GameStartedAt: fromMillis(row.GameStartedAt),
		CreatedAt:     fromMillis(row.CreatedAt),
	}
	if err := msgpack.Unmarshal(row.Items, &m.Items); err != nil {
		return domain.Match{}, fmt.Errorf("failed to decode items for %s: %w", row.MatchID, err)
	}
	if err := msgpack.Unmarshal(row.Participants, &m.Participants); err != nil {
		return domain.Match{}, fmt.Errorf("failed to decode participants for %s: %w", row.MatchID, err)
	}
	return m, nil
}
