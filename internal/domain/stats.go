package domain

import (
	"math"
	"sort"
	"time"
)

// AggregateChampionStats rolls ranked matches up into one row per champion.
// Output is sorted by champion name so repeated runs are identical.
func AggregateChampionStats(puuid string, matches []RankedMatch, now time.Time) []ChampionStats {
	type totals struct {
		played, wins, kills, deaths, assists, cs int
	}

	byChampion := make(map[string]*totals)
	for _, m := range matches {
		t, ok := byChampion[m.ChampionName]
		if !ok {
			t = &totals{}
			byChampion[m.ChampionName] = t
		}
		t.played++
		if m.Win {
			t.wins++
		}
		t.kills += m.Kills
		t.deaths += m.Deaths
		t.assists += m.Assists
		t.cs += m.CS
	}

	stats := make([]ChampionStats, 0, len(byChampion))
	for champion, t := range byChampion {
		n := float64(t.played)
		stats = append(stats, ChampionStats{
			Puuid:         puuid,
			ChampionName:  champion,
			MatchesPlayed: t.played,
			Wins:          t.wins,
			Losses:        t.played - t.wins,
			WinRate:       WinRate(t.wins, t.played-t.wins),
			KDA:           KDA(t.kills, t.deaths, t.assists),
			Kills:         round2(float64(t.kills) / n),
			Deaths:        round2(float64(t.deaths) / n),
			Assists:       round2(float64(t.assists) / n),
			CS:            round2(float64(t.cs) / n),
			UpdatedAt:     now,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].ChampionName < stats[j].ChampionName
	})
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
