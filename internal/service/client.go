package service

import (
	"context"
	"time"

	"summoner-tracker/internal/api"
	"summoner-tracker/internal/domain"
)

// RiotAPI is the slice of *api.RiotClient the services depend on.
type RiotAPI interface {
	GetSummonerByName(ctx context.Context, platform, name string) (*api.SummonerResponse, error)
	GetLeagueEntries(ctx context.Context, platform, summonerID string) ([]api.LeagueEntry, error)
	GetMatchIDs(ctx context.Context, platform, puuid string, start, count int, startTime time.Time) ([]domain.MatchID, error)
	GetMatch(ctx context.Context, platform string, matchID domain.MatchID) (*api.MatchResponse, error)
}

var _ RiotAPI = (*api.RiotClient)(nil)
