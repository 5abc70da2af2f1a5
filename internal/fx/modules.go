package fx

import (
	"database/sql"

	"summoner-tracker/internal/api"
	"summoner-tracker/internal/config"
	"summoner-tracker/internal/database"
	"summoner-tracker/internal/db"
	"summoner-tracker/internal/logger"
	"summoner-tracker/internal/metrics"
	"summoner-tracker/internal/ratelimit"
	"summoner-tracker/internal/repository"
	"summoner-tracker/internal/server"
	"summoner-tracker/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

// Core wires everything except the HTTP layer; the CLI runs on it alone.
var Core = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	fx.Provide(metrics.Provide),
	fx.Provide(ratelimit.New),
	// repos
	fx.Provide(repository.NewSummonerRepository),
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewChampionStatsRepository),
	// api client
	fx.Provide(
		fx.Annotate(api.NewRiotClient, fx.As(new(service.RiotAPI))),
	),
	// svc
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewStatsService),
	fx.Provide(service.NewDashboardService),
)

var Module = fx.Options(
	Core,
	// server
	fx.Provide(server.NewTrackerServer),
)
