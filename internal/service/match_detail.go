package service

import (
	"fmt"
	"time"

	"summoner-tracker/internal/api"
	"summoner-tracker/internal/domain"
)

// buildMatch turns one match-v5 payload into the tracked player's Match
// record. A payload without info or participants, or with an invalid roster,
// is ErrMalformedRecord; a payload the player is absent from is
// ErrNotFoundInMatch.
func buildMatch(id domain.MatchID, puuid string, resp *api.MatchResponse) (domain.Match, error) {
	if resp == nil || resp.Info == nil {
		return domain.Match{}, fmt.Errorf("%w: %s has no info", domain.ErrMalformedRecord, id)
	}
	info := resp.Info
	if info.Participants == nil {
		return domain.Match{}, fmt.Errorf("%w: %s has no participants", domain.ErrMalformedRecord, id)
	}

	roster := make([]domain.Participant, len(info.Participants))
	var self *api.MatchParticipant
	for i := range info.Participants {
		p := &info.Participants[i]
		roster[i] = domain.Participant{
			SummonerName: p.DisplayName(),
			ChampionName: p.ChampionName,
			TeamID:       p.TeamID,
		}
		if p.Puuid == puuid {
			self = p
		}
	}

	participants, err := domain.NewParticipants(roster)
	if err != nil {
		return domain.Match{}, fmt.Errorf("%s: %w", id, err)
	}
	if self == nil {
		return domain.Match{}, fmt.Errorf("%w: %s in %s", domain.ErrNotFoundInMatch, puuid, id)
	}

	startedAt := info.GameStartTimestamp
	if startedAt == 0 {
		startedAt = info.GameCreation
	}

	return domain.Match{
		MatchID:       id,
		Puuid:         puuid,
		ChampionName:  self.ChampionName,
		Kills:         self.Kills,
		Deaths:        self.Deaths,
		Assists:       self.Assists,
		Win:           self.Win,
		KDA:           domain.KDA(self.Kills, self.Deaths, self.Assists),
		CS:            self.TotalMinionsKilled + self.NeutralMinionsKilled,
		Vision:        self.VisionScore,
		SummonerSpell: [2]int{self.Summoner1ID, self.Summoner2ID},
		Items:         self.Items(),
		TeamPosition:  self.TeamPosition,
		GameMode:      info.GameMode,
		GameDuration:  info.DurationSeconds(),
		QueueID:       info.QueueID,
		GameStartedAt: time.UnixMilli(startedAt).UTC(),
		Participants:  participants,
	}, nil
}
