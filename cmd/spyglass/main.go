package main

import (
	"os"

	"github.com/spf13/cobra"

	"spyglass/internal/interfaces/cli/aggregate"
	"spyglass/internal/interfaces/cli/backfill"
	"spyglass/internal/interfaces/cli/migrate"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "spyglass",
		Short: "Spyglass - learning activity analytics pipeline",
		Long:  `Spyglass aggregates raw learning platform activity into per-tenant daily and monthly metrics, with historical backfill and migration tools.`,
	}

	rootCmd.AddCommand(
		migrate.NewCommand(),
		aggregate.NewCommand(),
		backfill.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
