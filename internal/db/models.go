package db

// Timestamps are unix milliseconds so the schema reads the same through the
// local sqlite3 driver and the remote libsql one.

type Summoner struct {
	Puuid         string
	SummonerID    string
	Name          string
	NameKey       string
	Region        string
	ProfileIconID int64
	Level         int64
	SoloRank      string
	SoloTier      string
	SoloDivision  int64
	SoloLp        int64
	SoloWins      int64
	SoloLosses    int64
	SoloWr        int64
	FlexRank      string
	FlexTier      string
	FlexDivision  int64
	FlexLp        int64
	FlexWins      int64
	FlexLosses    int64
	FlexWr        int64
	LastUpdateAt  int64
	CreatedAt     int64
	UpdatedAt     int64
}

type Match struct {
	ID             string
	MatchID        string
	MatchSeq       int64
	Puuid          string
	ChampionName   string
	Kills          int64
	Deaths         int64
	Assists        int64
	Win            bool
	Kda            float64
	Cs             int64
	Vision         int64
	SummonerSpell1 int64
	SummonerSpell2 int64
	Items          []byte
	TeamPosition   string
	GameMode       string
	GameDuration   int64
	QueueID        int64
	GameStartedAt  int64
	Participants   []byte
	CreatedAt      int64
}

type ChampionStat struct {
	Puuid         string
	ChampionName  string
	MatchesPlayed int64
	Wins          int64
	Losses        int64
	WinRate       int64
	Kda           float64
	Kills         float64
	Deaths        float64
	Assists       float64
	Cs            float64
	UpdatedAt     int64
}
