package db

import (
	"context"
)

const summonerColumns = `puuid, summoner_id, name, name_key, region, profile_icon_id, level,
    solo_rank, solo_tier, solo_division, solo_lp, solo_wins, solo_losses, solo_wr,
    flex_rank, flex_tier, flex_division, flex_lp, flex_wins, flex_losses, flex_wr,
    last_update_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSummoner(row rowScanner) (Summoner, error) {
	var i Summoner
	err := row.Scan(
		&i.Puuid,
		&i.SummonerID,
		&i.Name,
		&i.NameKey,
		&i.Region,
		&i.ProfileIconID,
		&i.Level,
		&i.SoloRank,
		&i.SoloTier,
		&i.SoloDivision,
		&i.SoloLp,
		&i.SoloWins,
		&i.SoloLosses,
		&i.SoloWr,
		&i.FlexRank,
		&i.FlexTier,
		&i.FlexDivision,
		&i.FlexLp,
		&i.FlexWins,
		&i.FlexLosses,
		&i.FlexWr,
		&i.LastUpdateAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getSummonerByName = `
SELECT ` + summonerColumns + `
FROM summoners
WHERE region = ? AND name_key = ?
ORDER BY updated_at DESC
LIMIT 1
`

func (q *Queries) GetSummonerByName(ctx context.Context, region string, nameKey string) (Summoner, error) {
	row := q.db.QueryRowContext(ctx, getSummonerByName, region, nameKey)
	return scanSummoner(row)
}

const upsertSummoner = `
INSERT INTO summoners (` + summonerColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (puuid) DO UPDATE SET
    summoner_id = excluded.summoner_id,
    name = excluded.name,
    name_key = excluded.name_key,
    region = excluded.region,
    profile_icon_id = excluded.profile_icon_id,
    level = excluded.level,
    solo_rank = excluded.solo_rank,
    solo_tier = excluded.solo_tier,
    solo_division = excluded.solo_division,
    solo_lp = excluded.solo_lp,
    solo_wins = excluded.solo_wins,
    solo_losses = excluded.solo_losses,
    solo_wr = excluded.solo_wr,
    flex_rank = excluded.flex_rank,
    flex_tier = excluded.flex_tier,
    flex_division = excluded.flex_division,
    flex_lp = excluded.flex_lp,
    flex_wins = excluded.flex_wins,
    flex_losses = excluded.flex_losses,
    flex_wr = excluded.flex_wr,
    last_update_at = excluded.last_update_at,
    updated_at = excluded.updated_at
`

type UpsertSummonerParams Summoner

func (q *Queries) UpsertSummoner(ctx context.Context, arg UpsertSummonerParams) error {
	_, err := q.db.ExecContext(ctx, upsertSummoner,
		arg.Puuid,
		arg.SummonerID,
		arg.Name,
		arg.NameKey,
		arg.Region,
		arg.ProfileIconID,
		arg.Level,
		arg.SoloRank,
		arg.SoloTier,
		arg.SoloDivision,
		arg.SoloLp,
		arg.SoloWins,
		arg.SoloLosses,
		arg.SoloWr,
		arg.FlexRank,
		arg.FlexTier,
		arg.FlexDivision,
		arg.FlexLp,
		arg.FlexWins,
		arg.FlexLosses,
		arg.FlexWr,
		arg.LastUpdateAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}
