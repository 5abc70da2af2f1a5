package constants

import "time"

const (
	ProfileRefreshTTL = 1 * time.Hour
	RequestSpacing    = 1 * time.Second
	RetryAfterUnit    = 1 * time.Second
	DefaultRetryAfter = 1
	MaxRateLimitRetry = 1
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	// a cold sync walks up to 5000 match details at one request per second
	SyncTimeout    = 2 * time.Hour
	RequestTimeout = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	MatchIDsPageSize = 100
	MaxSeasonMatches = 5000
	SeasonStartDate  = "2023-01-11"
)

const (
	RecentMatchesLimit = 10
	TopChampionsLimit  = 5
	ParticipantCount   = 10
)

const (
	QueueRankedSolo = 420
	QueueRankedFlex = 440
)

// KDAEpsilon floors the deaths denominator.
const KDAEpsilon = 0.001
