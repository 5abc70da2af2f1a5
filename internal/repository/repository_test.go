package repository

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"summoner-tracker/internal/config"
	"summoner-tracker/internal/database"
	"summoner-tracker/internal/db"
	"summoner-tracker/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repos struct {
	summoners *SummonerRepository
	matches   *MatchRepository
	stats     *ChampionStatsRepository
}

func setupRepos(t *testing.T) repos {
	t.Helper()

	sqlDB, err := database.New(&config.Config{DBPath: ":memory:"}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return newRepos(sqlDB)
}

func newRepos(sqlDB *sql.DB) repos {
	q := db.New(sqlDB)
	return repos{
		summoners: NewSummonerRepository(sqlDB, q, zerolog.Nop()),
		matches:   NewMatchRepository(sqlDB, q, zerolog.Nop()),
		stats:     NewChampionStatsRepository(sqlDB, q, zerolog.Nop()),
	}
}

func seedSummoner(t *testing.T, r repos, puuid, name string) *domain.Summoner {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Millisecond)
	s := &domain.Summoner{
		Puuid:        puuid,
		SummonerID:   "sid-" + puuid,
		Name:         name,
		Region:       "euw1",
		Level:        100,
		SoloQueue:    domain.QueueRank{Rank: "GOLD II", Tier: "GOLD", Division: 2, LP: 40, Wins: 10, Losses: 5, WinRate: 67},
		FlexQueue:    domain.UnrankedQueue(),
		LastUpdateAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, r.summoners.Upsert(context.Background(), s))
	return s
}

func testRoster() []domain.Participant {
	ps := make([]domain.Participant, 10)
	for i := range ps {
		team := 100
		if i >= 5 {
			team = 200
		}
		ps[i] = domain.Participant{SummonerName: fmt.Sprintf("player%d", i), ChampionName: "Annie", TeamID: team}
	}
	return ps
}

func testMatch(puuid string, id domain.MatchID, champion string, queue int, position string, win bool) domain.Match {
	return domain.Match{
		MatchID:       id,
		Puuid:         puuid,
		ChampionName:  champion,
		Kills:         5,
		Deaths:        2,
		Assists:       7,
		Win:           win,
		KDA:           domain.KDA(5, 2, 7),
		CS:            180,
		Vision:        22,
		SummonerSpell: [2]int{4, 14},
		Items:         [7]int{3157, 3020, 0, 0, 0, 0, 3340},
		TeamPosition:  position,
		GameMode:      "CLASSIC",
		GameDuration:  1800,
		QueueID:       queue,
		GameStartedAt: time.UnixMilli(1700000000000).UTC(),
		Participants:  testRoster(),
	}
}

func TestSummonerRepository_UpsertAndGet(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	missing, err := r.summoners.GetByName(ctx, "euw1", "Nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	seeded := seedSummoner(t, r, "p1", "Some Player")

	got, err := r.summoners.GetByName(ctx, "EUW1", "someplayer")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "p1", got.Puuid)
	assert.Equal(t, "Some Player", got.Name)
	assert.Equal(t, "GOLD II", got.SoloQueue.Rank)
	assert.Equal(t, 67, got.SoloQueue.WinRate)
	assert.Equal(t, domain.Unranked, got.FlexQueue.Rank)
	assert.True(t, seeded.LastUpdateAt.Equal(got.LastUpdateAt))

	updated := *seeded
	updated.Level = 101
	updated.CreatedAt = seeded.CreatedAt.Add(time.Hour)
	updated.UpdatedAt = seeded.UpdatedAt.Add(time.Hour)
	require.NoError(t, r.summoners.Upsert(ctx, &updated))

	got, err = r.summoners.GetByName(ctx, "euw1", "Some Player")
	require.NoError(t, err)
	assert.Equal(t, 101, got.Level)
	assert.True(t, seeded.CreatedAt.Equal(got.CreatedAt), "created_at is kept on update")
}

func TestMatchRepository_InsertBatchIsIdempotent(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	seedSummoner(t, r, "p1", "Player")

	batch := []domain.Match{
		testMatch("p1", "EUW1_999", "Ahri", 420, "MIDDLE", true),
		testMatch("p1", "EUW1_1000", "Zed", 420, "MIDDLE", false),
	}

	n, err := r.matches.InsertBatch(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = r.matches.InsertBatch(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	count, err := r.matches.Count(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMatchRepository_LatestMatchIDIsNumeric(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	seedSummoner(t, r, "p1", "Player")

	_, ok, err := r.matches.LatestMatchID(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = r.matches.InsertBatch(ctx, []domain.Match{
		testMatch("p1", "EUW1_1000", "Ahri", 420, "MIDDLE", true),
		testMatch("p1", "EUW1_999", "Ahri", 420, "MIDDLE", true),
	})
	require.NoError(t, err)

	latest, ok, err := r.matches.LatestMatchID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.MatchID("EUW1_1000"), latest)
}

func TestMatchRepository_RecentDecodesBlobs(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	seedSummoner(t, r, "p1", "Player")

	var batch []domain.Match
	for i := 1; i <= 12; i++ {
		batch = append(batch, testMatch("p1", domain.MatchID(fmt.Sprintf("EUW1_%d", i)), "Ahri", 420, "MIDDLE", true))
	}
	_, err := r.matches.InsertBatch(ctx, batch)
	require.NoError(t, err)

	recent, err := r.matches.Recent(ctx, "p1", 10)
	require.NoError(t, err)
	require.Len(t, recent, 10)
	assert.Equal(t, domain.MatchID("EUW1_12"), recent[0].MatchID)
	assert.Equal(t, domain.MatchID("EUW1_3"), recent[9].MatchID)

	m := recent[0]
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, [7]int{3157, 3020, 0, 0, 0, 0, 3340}, m.Items)
	assert.Equal(t, [2]int{4, 14}, m.SummonerSpell)
	assert.Equal(t, testRoster(), m.Participants)
	assert.True(t, m.Win)
	assert.Equal(t, 6.0, m.KDA)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), m.GameStartedAt)
}

func TestMatchRepository_RoleCountsAndRankedFilter(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	seedSummoner(t, r, "p1", "Player")

	_, err := r.matches.InsertBatch(ctx, []domain.Match{
		testMatch("p1", "EUW1_1", "Ahri", 420, "MIDDLE", true),
		testMatch("p1", "EUW1_2", "Lux", 440, "UTILITY", false),
		testMatch("p1", "EUW1_3", "Garen", 450, "", true),
		testMatch("p1", "EUW1_4", "Ahri", 400, "MIDDLE", true),
	})
	require.NoError(t, err)

	roles, err := r.matches.RoleCounts(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"TOP": 0, "JUNGLE": 0, "MIDDLE": 2, "BOTTOM": 0, "UTILITY": 1}, roles)

	ranked, err := r.matches.RankedMatches(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Ahri", ranked[0].ChampionName)
	assert.Equal(t, "Lux", ranked[1].ChampionName)
	assert.False(t, ranked[1].Win)

	rankedCount, err := r.matches.RankedCount(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, rankedCount)
}

func TestChampionStatsRepository_ReplaceForPlayer(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	seedSummoner(t, r, "p1", "Player")

	now := time.Unix(1700000000, 0)
	first := []domain.ChampionStats{
		{ChampionName: "Ahri", MatchesPlayed: 3, Wins: 2, Losses: 1, WinRate: 67, KDA: 4},
		{ChampionName: "Zed", MatchesPlayed: 3, Wins: 3, Losses: 0, WinRate: 100, KDA: 2},
		{ChampionName: "Lux", MatchesPlayed: 1, Wins: 0, Losses: 1, WinRate: 0, KDA: 1},
	}
	require.NoError(t, r.stats.ReplaceForPlayer(ctx, "p1", first, now))

	top, err := r.stats.Top(ctx, "p1", 5)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "Zed", top[0].ChampionName, "ties on played break on win rate")
	assert.Equal(t, "Ahri", top[1].ChampionName)
	assert.Equal(t, "Lux", top[2].ChampionName)

	second := []domain.ChampionStats{
		{ChampionName: "Ahri", MatchesPlayed: 4, Wins: 3, Losses: 1, WinRate: 75, KDA: 4.5},
	}
	require.NoError(t, r.stats.ReplaceForPlayer(ctx, "p1", second, now.Add(time.Minute)))

	top, err = r.stats.Top(ctx, "p1", 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 4, top[0].MatchesPlayed)
	assert.Equal(t, 75, top[0].WinRate)

	covered, err := r.stats.MatchesCovered(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, covered)
}

func TestNameKey(t *testing.T) {
	assert.Equal(t, "someplayer", nameKey("Some Player"))
	assert.Equal(t, "faker", nameKey(" FAKER "))
}
