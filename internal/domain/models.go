package domain

import (
	"time"
)

type Summoner struct {
	Puuid         string
	SummonerID    string
	Name          string
	Region        string
	ProfileIconID int
	Level         int
	SoloQueue     QueueRank
	FlexQueue     QueueRank
	LastUpdateAt  time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// QueueRank is the ranked summary of one queue. Rank holds the display label,
// "Unranked" when the player has no entry for the queue.
type QueueRank struct {
	Rank     string
	Tier     string
	Division int
	LP       int
	Wins     int
	Losses   int
	WinRate  int
}

type Participant struct {
	SummonerName string `msgpack:"n" validate:"required"`
	ChampionName string `msgpack:"c" validate:"required"`
	TeamID       int    `msgpack:"t" validate:"oneof=100 200"`
}

type Match struct {
	ID            string // nanoid
	MatchID       MatchID
	Puuid         string
	ChampionName  string
	Kills         int
	Deaths        int
	Assists       int
	Win           bool
	KDA           float64
	CS            int
	Vision        int
	SummonerSpell [2]int
	Items         [7]int
	TeamPosition  string // TOP, JUNGLE, MIDDLE, BOTTOM, UTILITY or ""
	GameMode      string
	GameDuration  int // seconds
	QueueID       int
	GameStartedAt time.Time
	Participants  []Participant
	CreatedAt     time.Time
}

type ChampionStats struct {
	Puuid         string
	ChampionName  string
	MatchesPlayed int
	Wins          int
	Losses        int
	WinRate       int
	KDA           float64
	Kills         float64
	Deaths        float64
	Assists       float64
	CS            float64
	UpdatedAt     time.Time
}

// RankedMatch is the slice of a match the aggregator needs.
type RankedMatch struct {
	ChampionName string
	Win          bool
	Kills        int
	Deaths       int
	Assists      int
	CS           int
}
