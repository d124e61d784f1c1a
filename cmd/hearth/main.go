package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hearth-labs/hearth/internal/interfaces/cli/migrate"
	"github.com/hearth-labs/hearth/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hearth",
		Short: "Hearth - home care subscription retention service",
		Long:  `Hearth scores home care subscriptions for churn risk and runs retention campaigns against at-risk customers.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
