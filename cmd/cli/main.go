package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	region string
	force  bool
)

var rootCmd = &cobra.Command{
	Use:   "tracker-cli",
	Short: "Run tracker operations against the local store",
	Long: `A command-line interface that refreshes summoner profiles, syncs
season matches and rebuilds champion statistics without the HTTP server.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&region, "region", "", "Platform region of the summoner (defaults to DEFAULT_REGION)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
