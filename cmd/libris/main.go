package main

import (
	"os"

	"github.com/spf13/cobra"

	"libris/internal/interfaces/cli/migrate"
	"libris/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "libris",
		Short: "Libris - library management backend",
		Long:  `Libris is a library management backend with a catalog, lending ledger, and administrative tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
