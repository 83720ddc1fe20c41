package main

import (
	"github.com/spf13/cobra"

	"platerental/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply schema migrations (Postgres) or create indexes (Mongo)",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("migrate")

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		log.Info().Str("db_type", appConfig.DBType).Msg("store schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
