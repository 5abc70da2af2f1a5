package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"summoner-tracker/internal/domain"
)

func (c *RiotClient) GetSummonerByName(ctx context.Context, platform, name string) (*SummonerResponse, error) {
	endpoint := fmt.Sprintf("summoner/v4/summoners/by-name/%s", url.PathEscape(name))

	var result SummonerResponse
	if err := c.Fetch(ctx, platform, endpoint, nil, &result); err != nil {
		var upstream *UpstreamError
		if errors.As(err, &upstream) && upstream.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s/%s", domain.ErrSummonerNotFound, platform, name)
		}
		return nil, err
	}
	return &result, nil
}

func (c *RiotClient) GetLeagueEntries(ctx context.Context, platform, summonerID string) ([]LeagueEntry, error) {
	endpoint := fmt.Sprintf("league/v4/entries/by-summoner/%s", url.PathEscape(summonerID))

	var result []LeagueEntry
	if err := c.Fetch(ctx, platform, endpoint, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetMatchIDs returns one page of match identifiers, newest first.
func (c *RiotClient) GetMatchIDs(ctx context.Context, platform, puuid string, start, count int, startTime time.Time) ([]domain.MatchID, error) {
	endpoint := fmt.Sprintf("match/v5/matches/by-puuid/%s/ids", url.PathEscape(puuid))
	params := url.Values{
		"start": {strconv.Itoa(start)},
		"count": {strconv.Itoa(count)},
	}
	if !startTime.IsZero() {
		params.Set("startTime", strconv.FormatInt(startTime.Unix(), 10))
	}

	var result []domain.MatchID
	if err := c.Fetch(ctx, domain.RoutingRegion(platform), endpoint, params, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *RiotClient) GetMatch(ctx context.Context, platform string, matchID domain.MatchID) (*MatchResponse, error) {
	endpoint := fmt.Sprintf("match/v5/matches/%s", url.PathEscape(matchID.String()))

	var result MatchResponse
	if err := c.Fetch(ctx, domain.RoutingRegion(platform), endpoint, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
