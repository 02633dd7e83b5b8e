package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"knowledgelib/internal/pipeline/cards"
)

var insertCmd = &cobra.Command{
	Use:   "insert-cards <card.json> [card2.json ...]",
	Short: "Upsert knowledge cards and their affiliate links from JSON files",
	Long: `Reads one or more card JSON files and upserts each card together with
its affiliate links inside a single transaction. The run stops at the first
failing card and exits nonzero; nothing is retried.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		inserter := cards.NewInserter(db, logger)
		if err := inserter.InsertFiles(cmd.Context(), args); err != nil {
			return err
		}

		logger.Info("all cards inserted", zap.Int("files", len(args)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insertCmd)
}
