package db

import (
	"context"
)

const upsertChampionStat = `
INSERT INTO champion_stats (
    puuid, champion_name, matches_played, wins, losses, win_rate,
    kda, kills, deaths, assists, cs, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (puuid, champion_name) DO UPDATE SET
    matches_played = excluded.matches_played,
    wins = excluded.wins,
    losses = excluded.losses,
    win_rate = excluded.win_rate,
    kda = excluded.kda,
    kills = excluded.kills,
    deaths = excluded.deaths,
    assists = excluded.assists,
    cs = excluded.cs,
    updated_at = excluded.updated_at
`

type UpsertChampionStatParams ChampionStat

func (q *Queries) UpsertChampionStat(ctx context.Context, arg UpsertChampionStatParams) error {
	_, err := q.db.ExecContext(ctx, upsertChampionStat,
		arg.Puuid,
		arg.ChampionName,
		arg.MatchesPlayed,
		arg.Wins,
		arg.Losses,
		arg.WinRate,
		arg.Kda,
		arg.Kills,
		arg.Deaths,
		arg.Assists,
		arg.Cs,
		arg.UpdatedAt,
	)
	return err
}

const deleteStaleChampionStats = `
DELETE FROM champion_stats
WHERE puuid = ? AND updated_at <> ?
`

// DeleteStaleChampionStats drops the player's rows not written by the
// recompute stamped updatedAt.
func (q *Queries) DeleteStaleChampionStats(ctx context.Context, puuid string, updatedAt int64) error {
	_, err := q.db.ExecContext(ctx, deleteStaleChampionStats, puuid, updatedAt)
	return err
}

const listTopChampionStats = `
SELECT puuid, champion_name, matches_played, wins, losses, win_rate,
    kda, kills, deaths, assists, cs, updated_at
FROM champion_stats
WHERE puuid = ?
ORDER BY matches_played DESC, win_rate DESC, kda DESC, champion_name
LIMIT ?
`

func (q *Queries) ListTopChampionStats(ctx context.Context, puuid string, limit int64) ([]ChampionStat, error) {
	rows, err := q.db.QueryContext(ctx, listTopChampionStats, puuid, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ChampionStat
	for rows.Next() {
		var i ChampionStat
		if err := rows.Scan(
			&i.Puuid,
			&i.ChampionName,
			&i.MatchesPlayed,
			&i.Wins,
			&i.Losses,
			&i.WinRate,
			&i.Kda,
			&i.Kills,
			&i.Deaths,
			&i.Assists,
			&i.Cs,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const sumChampionMatchesPlayed = `
SELECT CAST(COALESCE(SUM(matches_played), 0) AS INTEGER) FROM champion_stats WHERE puuid = ?
`

func (q *Queries) SumChampionMatchesPlayed(ctx context.Context, puuid string) (int64, error) {
	row := q.db.QueryRowContext(ctx, sumChampionMatchesPlayed, puuid)
	var total int64
	err := row.Scan(&total)
	return total, err
}
