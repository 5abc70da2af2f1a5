package db

import (
	"context"
)

const matchColumns = `id, match_id, match_seq, puuid, champion_name, kills, deaths, assists, win, kda,
    cs, vision, summoner_spell1, summoner_spell2, items, team_position, game_mode,
    game_duration, queue_id, game_started_at, participants, created_at`

const insertMatch = `
INSERT INTO matches (` + matchColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (puuid, match_id) DO NOTHING
`

type InsertMatchParams Match

// InsertMatch returns the number of rows written: 0 when the match was
// already stored for the player.
func (q *Queries) InsertMatch(ctx context.Context, arg InsertMatchParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, insertMatch,
		arg.ID,
		arg.MatchID,
		arg.MatchSeq,
		arg.Puuid,
		arg.ChampionName,
		arg.Kills,
		arg.Deaths,
		arg.Assists,
		arg.Win,
		arg.Kda,
		arg.Cs,
		arg.Vision,
		arg.SummonerSpell1,
		arg.SummonerSpell2,
		arg.Items,
		arg.TeamPosition,
		arg.GameMode,
		arg.GameDuration,
		arg.QueueID,
		arg.GameStartedAt,
		arg.Participants,
		arg.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getLatestMatch = `
SELECT match_id, match_seq
FROM matches
WHERE puuid = ?
ORDER BY match_seq DESC
LIMIT 1
`

type GetLatestMatchRow struct {
	MatchID  string
	MatchSeq int64
}

func (q *Queries) GetLatestMatch(ctx context.Context, puuid string) (GetLatestMatchRow, error) {
	row := q.db.QueryRowContext(ctx, getLatestMatch, puuid)
	var i GetLatestMatchRow
	err := row.Scan(&i.MatchID, &i.MatchSeq)
	return i, err
}

const listRecentMatches = `
SELECT ` + matchColumns + `
FROM matches
WHERE puuid = ?
ORDER BY match_seq DESC
LIMIT ?
`

func (q *Queries) ListRecentMatches(ctx context.Context, puuid string, limit int64) ([]Match, error) {
	rows, err := q.db.QueryContext(ctx, listRecentMatches, puuid, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Match
	for rows.Next() {
		var i Match
		if err := rows.Scan(
			&i.ID,
			&i.MatchID,
			&i.MatchSeq,
			&i.Puuid,
			&i.ChampionName,
			&i.Kills,
			&i.Deaths,
			&i.Assists,
			&i.Win,
			&i.Kda,
			&i.Cs,
			&i.Vision,
			&i.SummonerSpell1,
			&i.SummonerSpell2,
			&i.Items,
			&i.TeamPosition,
			&i.GameMode,
			&i.GameDuration,
			&i.QueueID,
			&i.GameStartedAt,
			&i.Participants,
			&i.CreatedAt,
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

const listRankedMatchStats = `
SELECT champion_name, win, kills, deaths, assists, cs
FROM matches
WHERE puuid = ? AND queue_id IN (?, ?)
ORDER BY match_seq
`

type ListRankedMatchStatsParams struct {
	Puuid     string
	SoloQueue int64
	FlexQueue int64
}

type ListRankedMatchStatsRow struct {
	ChampionName string
	Win          bool
	Kills        int64
	Deaths       int64
	Assists      int64
	Cs           int64
}

func (q *Queries) ListRankedMatchStats(ctx context.Context, arg ListRankedMatchStatsParams) ([]ListRankedMatchStatsRow, error) {
	rows, err := q.db.QueryContext(ctx, listRankedMatchStats, arg.Puuid, arg.SoloQueue, arg.FlexQueue)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListRankedMatchStatsRow
	for rows.Next() {
		var i ListRankedMatchStatsRow
		if err := rows.Scan(
			&i.ChampionName,
			&i.Win,
			&i.Kills,
			&i.Deaths,
			&i.Assists,
			&i.Cs,
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

const countRolesByPuuid = `
SELECT team_position, COUNT(*) AS games
FROM matches
WHERE puuid = ? AND team_position <> ''
GROUP BY team_position
`

type CountRolesByPuuidRow struct {
	TeamPosition string
	Games        int64
}

func (q *Queries) CountRolesByPuuid(ctx context.Context, puuid string) ([]CountRolesByPuuidRow, error) {
	rows, err := q.db.QueryContext(ctx, countRolesByPuuid, puuid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CountRolesByPuuidRow
	for rows.Next() {
		var i CountRolesByPuuidRow
		if err := rows.Scan(&i.TeamPosition, &i.Games); err != nil {
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

const countMatches = `
SELECT COUNT(*) FROM matches WHERE puuid = ?
`

func (q *Queries) CountMatches(ctx context.Context, puuid string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countMatches, puuid)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countRankedMatches = `
SELECT COUNT(*) FROM matches WHERE puuid = ? AND queue_id IN (?, ?)
`

type CountRankedMatchesParams struct {
	Puuid     string
	SoloQueue int64
	FlexQueue int64
}

func (q *Queries) CountRankedMatches(ctx context.Context, arg CountRankedMatchesParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countRankedMatches, arg.Puuid, arg.SoloQueue, arg.FlexQueue)
	var count int64
	err := row.Scan(&count)
	return count, err
}
