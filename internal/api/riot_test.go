package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"summoner-tracker/internal/config"
	"summoner-tracker/internal/domain"
	"summoner-tracker/internal/metrics"
	"summoner-tracker/internal/ratelimit"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUnit = time.Millisecond

type testClient struct {
	*RiotClient
	metrics *metrics.Service
	slept   []time.Duration
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *testClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		RiotAPIKey: "test-key",
		APIBaseURL: srv.URL + "/{region}",
		RetryUnit:  testUnit,
		MaxRetries: 1,
	}
	m := metrics.NewService(prometheus.NewRegistry())
	tc := &testClient{metrics: m}
	tc.RiotClient = NewRiotClient(cfg, ratelimit.NewSpacingLimiter(0, zerolog.Nop()), m, zerolog.Nop())
	tc.sleep = func(_ context.Context, d time.Duration) error {
		tc.slept = append(tc.slept, d)
		return nil
	}
	return tc
}

func TestFetch_RetryAfterThenSuccess(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"id":"sid","puuid":"p1","name":"Faker","summonerLevel":30}`))
	})

	s, err := c.GetSummonerByName(context.Background(), "kr", "Faker")
	require.NoError(t, err)
	assert.Equal(t, "p1", s.Puuid)
	assert.Equal(t, 30, s.SummonerLevel)

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, []time.Duration{2 * testUnit}, c.slept)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.RateLimitRetries.WithLabelValues("summoner/v4/summoners")))
}

func TestFetch_RetryCapExhausted(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.GetLeagueEntries(context.Background(), "euw1", "sid")
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	assert.Equal(t, int32(2), calls.Load())
	// no Retry-After header falls back to one unit
	assert.Equal(t, []time.Duration{testUnit}, c.slept)
}

func TestFetch_ServerErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":{"message":"down"}}`))
	})

	_, err := c.GetMatch(context.Background(), "euw1", "EUW1_1")

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusServiceUnavailable, upstream.StatusCode)
	assert.Equal(t, "match/v5/matches", upstream.Endpoint)
	assert.Contains(t, upstream.Body, "down")
	assert.Equal(t, int32(1), calls.Load())
	assert.Empty(t, c.slept)
}

func TestGetSummonerByName_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetSummonerByName(context.Background(), "euw1", "nobody")
	assert.ErrorIs(t, err, domain.ErrSummonerNotFound)
}

func TestGetMatchIDs_RequestShape(t *testing.T) {
	var gotPath, gotKey, gotStart, gotCount, gotStartTime string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		q := r.URL.Query()
		gotKey, gotStart, gotCount, gotStartTime = q.Get("api_key"), q.Get("start"), q.Get("count"), q.Get("startTime")
		w.Write([]byte(`["EUW1_3","EUW1_2","EUW1_1"]`))
	})

	season := time.Date(2023, 1, 11, 0, 0, 0, 0, time.UTC)
	ids, err := c.GetMatchIDs(context.Background(), "euw1", "p1", 100, 100, season)
	require.NoError(t, err)

	assert.Equal(t, []domain.MatchID{"EUW1_3", "EUW1_2", "EUW1_1"}, ids)
	assert.Equal(t, "/europe/lol/match/v5/matches/by-puuid/p1/ids", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "100", gotStart)
	assert.Equal(t, "100", gotCount)
	assert.Equal(t, "1673395200", gotStartTime)
}

func TestGetMatch_MissingInfo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/europe/lol/match/v5/matches/EUW1_9", r.URL.Path)
		w.Write([]byte(`{"metadata":{"matchId":"EUW1_9"}}`))
	})

	m, err := c.GetMatch(context.Background(), "euw1", "EUW1_9")
	require.NoError(t, err)
	assert.Equal(t, "EUW1_9", m.Metadata.MatchID)
	assert.Nil(t, m.Info)
}

func TestFetch_ContextCancelledDuringRetry(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "5")
		w.WriteHeader(http.StatusTooManyRequests)
	})
	c.sleep = sleepContext
	c.retryUnit = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Fetch(ctx, "euw1", "summoner/v4/summoners/by-name/x", nil, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEndpointClass(t *testing.T) {
	tests := map[string]string{
		"summoner/v4/summoners/by-name/Faker":  "summoner/v4/summoners",
		"league/v4/entries/by-summoner/abc":    "league/v4/entries",
		"match/v5/matches/by-puuid/p1/ids":     "match/v5/matches/ids",
		"match/v5/matches/EUW1_1":              "match/v5/matches",
		"status/v4/platform-data":              "status/v4/platform-data",
	}
	for in, want := range tests {
		assert.Equal(t, want, endpointClass(in), in)
	}
}

func TestMatchInfo_DurationSeconds(t *testing.T) {
	assert.Equal(t, 1800, MatchInfo{GameDuration: 1800, GameEndTimestamp: 1}.DurationSeconds())
	assert.Equal(t, 1800, MatchInfo{GameDuration: 1800000}.DurationSeconds())
}
