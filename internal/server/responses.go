package server

import (
	"time"

	"summoner-tracker/internal/domain"
	"summoner-tracker/internal/service"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type queueResponse struct {
	Rank     string `json:"rank"`
	Tier     string `json:"tier,omitempty"`
	Division int    `json:"division,omitempty"`
	LP       int    `json:"lp"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	WinRate  int    `json:"win_rate"`
}

type summonerResponse struct {
	Puuid         string        `json:"puuid"`
	Name          string        `json:"name"`
	Region        string        `json:"region"`
	ProfileIconID int           `json:"profile_icon_id"`
	Level         int           `json:"level"`
	SoloQueue     queueResponse `json:"solo_queue"`
	FlexQueue     queueResponse `json:"flex_queue"`
	LastUpdateAt  string        `json:"last_update_at"`
}

type participantResponse struct {
	SummonerName string `json:"summoner_name"`
	ChampionName string `json:"champion_name"`
	TeamID       int    `json:"team_id"`
}

type matchResponse struct {
	MatchID       string                `json:"match_id"`
	ChampionName  string                `json:"champion_name"`
	Kills         int                   `json:"kills"`
	Deaths        int                   `json:"deaths"`
	Assists       int                   `json:"assists"`
	KDA           float64               `json:"kda"`
	Win           bool                  `json:"win"`
	CS            int                   `json:"cs"`
	Vision        int                   `json:"vision"`
	SummonerSpell [2]int                `json:"summoner_spells"`
	Items         [7]int                `json:"items"`
	TeamPosition  string                `json:"team_position"`
	GameMode      string                `json:"game_mode"`
	GameType      string                `json:"game_type"`
	GameDuration  int                   `json:"game_duration"`
	QueueID       int                   `json:"queue_id"`
	GameStartedAt string                `json:"game_started_at"`
	Participants  []participantResponse `json:"participants"`
}

type championResponse struct {
	ChampionName  string  `json:"champion_name"`
	MatchesPlayed int     `json:"matches_played"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinRate       int     `json:"win_rate"`
	KDA           float64 `json:"kda"`
	Kills         float64 `json:"kills"`
	Deaths        float64 `json:"deaths"`
	Assists       float64 `json:"assists"`
	CS            float64 `json:"cs"`
}

type roleResponse struct {
	Role  string `json:"role"`
	Games int    `json:"games"`
}

type dashboardResponse struct {
	Summoner      summonerResponse   `json:"summoner"`
	TopChampions  []championResponse `json:"top_champions"`
	RecentMatches []matchResponse    `json:"recent_matches"`
	Roles         []roleResponse     `json:"roles"`
	NewMatches    []string           `json:"new_matches"`
}

type syncResponse struct {
	Summoner   summonerResponse `json:"summoner"`
	NewMatches []string         `json:"new_matches"`
}

func toDashboardResponse(d *service.Dashboard) dashboardResponse {
	return dashboardResponse{
		Summoner:      toSummonerResponse(d.Summoner),
		TopChampions:  toChampionResponses(d.TopChampions),
		RecentMatches: toMatchResponses(d.RecentMatches),
		Roles:         toRoleResponses(d.Roles),
		NewMatches:    matchIDStrings(d.NewMatches),
	}
}

func toSummonerResponse(s *domain.Summoner) summonerResponse {
	return summonerResponse{
		Puuid:         s.Puuid,
		Name:          s.Name,
		Region:        s.Region,
		ProfileIconID: s.ProfileIconID,
		Level:         s.Level,
		SoloQueue:     toQueueResponse(s.SoloQueue),
		FlexQueue:     toQueueResponse(s.FlexQueue),
		LastUpdateAt:  s.LastUpdateAt.Format(time.RFC3339),
	}
}

func toQueueResponse(q domain.QueueRank) queueResponse {
	return queueResponse{
		Rank:     q.Rank,
		Tier:     q.Tier,
		Division: q.Division,
		LP:       q.LP,
		Wins:     q.Wins,
		Losses:   q.Losses,
		WinRate:  q.WinRate,
	}
}

func toMatchResponses(matches []service.RecentMatch) []matchResponse {
	out := make([]matchResponse, len(matches))
	for i, m := range matches {
		participants := make([]participantResponse, len(m.Participants))
		for j, p := range m.Participants {
			participants[j] = participantResponse{
				SummonerName: p.SummonerName,
				ChampionName: p.ChampionName,
				TeamID:       p.TeamID,
			}
		}
		out[i] = matchResponse{
			MatchID:       m.MatchID.String(),
			ChampionName:  m.ChampionName,
			Kills:         m.Kills,
			Deaths:        m.Deaths,
			Assists:       m.Assists,
			KDA:           m.KDA,
			Win:           m.Win,
			CS:            m.CS,
			Vision:        m.Vision,
			SummonerSpell: m.SummonerSpell,
			Items:         m.Items,
			TeamPosition:  m.TeamPosition,
			GameMode:      m.GameMode,
			GameType:      m.GameType,
			GameDuration:  m.GameDuration,
			QueueID:       m.QueueID,
			GameStartedAt: m.GameStartedAt.Format(time.RFC3339),
			Participants:  participants,
		}
	}
	return out
}

func toChampionResponses(stats []domain.ChampionStats) []championResponse {
	out := make([]championResponse, len(stats))
	for i, s := range stats {
		out[i] = championResponse{
			ChampionName:  s.ChampionName,
			MatchesPlayed: s.MatchesPlayed,
			Wins:          s.Wins,
			Losses:        s.Losses,
			WinRate:       s.WinRate,
			KDA:           s.KDA,
			Kills:         s.Kills,
			Deaths:        s.Deaths,
			Assists:       s.Assists,
			CS:            s.CS,
		}
	}
	return out
}

// toRoleResponses keeps the fixed role order instead of map order.
func toRoleResponses(roles map[string]int) []roleResponse {
	out := make([]roleResponse, 0, len(domain.Roles))
	for _, role := range domain.Roles {
		out = append(out, roleResponse{Role: role, Games: roles[role]})
	}
	return out
}

func matchIDStrings(ids []domain.MatchID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
