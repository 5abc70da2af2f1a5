package api

type SummonerResponse struct {
	ID            string `json:"id"`
	AccountID     string `json:"accountId"`
	Puuid         string `json:"puuid"`
	Name          string `json:"name"`
	ProfileIconID int    `json:"profileIconId"`
	RevisionDate  int64  `json:"revisionDate"`
	SummonerLevel int    `json:"summonerLevel"`
}

type LeagueEntry struct {
	LeagueID     string `json:"leagueId"`
	SummonerID   string `json:"summonerId"`
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// MatchResponse mirrors match-v5. Info is a pointer so a payload without it
// can be told apart from an empty one.
type MatchResponse struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     *MatchInfo    `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	DataVersion  string   `json:"dataVersion"`
	Participants []string `json:"participants"`
}

type MatchInfo struct {
	GameCreation       int64              `json:"gameCreation"`
	GameDuration       int                `json:"gameDuration"`
	GameStartTimestamp int64              `json:"gameStartTimestamp"`
	GameEndTimestamp   int64              `json:"gameEndTimestamp"`
	GameMode           string             `json:"gameMode"`
	QueueID            int                `json:"queueId"`
	PlatformID         string             `json:"platformId"`
	Participants       []MatchParticipant `json:"participants"`
}

type MatchParticipant struct {
	Puuid                string `json:"puuid"`
	SummonerName         string `json:"summonerName"`
	RiotIDGameName       string `json:"riotIdGameName"`
	ChampionName         string `json:"championName"`
	TeamID               int    `json:"teamId"`
	TeamPosition         string `json:"teamPosition"`
	Kills                int    `json:"kills"`
	Deaths               int    `json:"deaths"`
	Assists              int    `json:"assists"`
	Win                  bool   `json:"win"`
	TotalMinionsKilled   int    `json:"totalMinionsKilled"`
	NeutralMinionsKilled int    `json:"neutralMinionsKilled"`
	VisionScore          int    `json:"visionScore"`
	Summoner1ID          int    `json:"summoner1Id"`
	Summoner2ID          int    `json:"summoner2Id"`
	Item0                int    `json:"item0"`
	Item1                int    `json:"item1"`
	Item2                int    `json:"item2"`
	Item3                int    `json:"item3"`
	Item4                int    `json:"item4"`
	Item5                int    `json:"item5"`
	Item6                int    `json:"item6"`
}

// DisplayName prefers the legacy summoner name and falls back to the Riot ID
// game name, which newer payloads fill instead.
func (p MatchParticipant) DisplayName() string {
	if p.SummonerName != "" {
		return p.SummonerName
	}
	return p.RiotIDGameName
}

func (p MatchParticipant) Items() [7]int {
	return [7]int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5, p.Item6}
}

// DurationSeconds normalizes gameDuration, which match-v5 reported in
// milliseconds before gameEndTimestamp was introduced.
func (i MatchInfo) DurationSeconds() int {
	if i.GameEndTimestamp == 0 {
		return i.GameDuration / 1000
	}
	return i.GameDuration
}
