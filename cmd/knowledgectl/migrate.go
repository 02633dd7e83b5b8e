package main

import (
	"github.com/spf13/cobra"

	"knowledgelib/internal/pipeline/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <file1.sql> [file2.sql ...]",
	Short: "Run SQL migration files against the catalog database",
	Long: `Executes the given SQL files in order. Stops at the first failure and
exits nonzero.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migrate.Run(cmd.Context(), db, args, logger); err != nil {
			return err
		}

		logger.Info("all migrations completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
