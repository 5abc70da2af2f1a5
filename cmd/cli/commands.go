package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"

	"summoner-tracker/internal/config"
	"summoner-tracker/internal/domain"
	fxmodules "summoner-tracker/internal/fx"
	"summoner-tracker/internal/service"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func init() {
	refreshCmd.Flags().BoolVar(&force, "force", false, "Ignore the cached profile age")
	dashboardCmd.Flags().BoolVar(&force, "force", false, "Ignore the cached profile age")

	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(recomputeCmd)
	rootCmd.AddCommand(dashboardCmd)
}

var refreshCmd = &cobra.Command{
	Use:   "refresh <summoner name>",
	Short: "Refresh a summoner profile and its ranked queues",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, t *service.DashboardService, region string) error {
			summoner, err := t.Refresh(ctx, region, args[0], force)
			if err != nil {
				return err
			}
			return printJSON(summoner)
		})
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync <summoner name>",
	Short: "Store new season matches and rebuild champion statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, t *service.DashboardService, region string) error {
			report, err := t.Sync(ctx, region, args[0])
			if err != nil {
				return err
			}
			return printJSON(struct {
				Puuid      string           `json:"puuid"`
				NewMatches []domain.MatchID `json:"new_matches"`
			}{report.Summoner.Puuid, report.NewMatches})
		})
	},
}

var recomputeCmd = &cobra.Command{
	Use:   "recompute <summoner name>",
	Short: "Rebuild champion statistics from stored matches",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, t *service.DashboardService, region string) error {
			summoner, err := t.Recompute(ctx, region, args[0])
			if err != nil {
				return err
			}
			top, err := t.TopChampions(ctx, summoner.Puuid, 0)
			if err != nil {
				return err
			}
			return printJSON(top)
		})
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard <summoner name>",
	Short: "Print the full summoner dashboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, t *service.DashboardService, region string) error {
			view, err := t.Dashboard(ctx, region, args[0], force)
			if err != nil {
				return err
			}
			return printJSON(view)
		})
	},
}

// withTracker builds the service graph without the HTTP layer and runs fn
// with a context cancelled on interrupt.
func withTracker(cmd *cobra.Command, fn func(ctx context.Context, t *service.DashboardService, region string) error) error {
	var (
		tracker *service.DashboardService
		cfg     *config.Config
		sqlDB   *sql.DB
	)

	app := fx.New(
		fxmodules.Core,
		fx.NopLogger,
		fx.Populate(&tracker, &cfg, &sqlDB),
	)
	if err := app.Err(); err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer sqlDB.Close()

	r := region
	if r == "" {
		r = cfg.DefaultRegion
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return fn(ctx, tracker, r)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
