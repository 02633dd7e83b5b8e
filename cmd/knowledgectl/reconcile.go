package main

import (
	"github.com/spf13/cobra"

	"knowledgelib/internal/pipeline/catalog"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Regenerate catalog.json and sitemap.xml from the active card set",
	Long: `Reads all active cards from the database, rewrites catalog.json and
sitemap.xml under the configured site directory, syncs tracker.md statistics,
and removes leftover card_data_*.json temp files.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		reconciler := catalog.NewReconciler(
			catalog.NewStore(db),
			catalog.NewGenerator("https://"+cfg.Site.Domain),
			cfg.Pipeline.SiteDir,
			cfg.Pipeline.TrackerPath,
			logger,
		)
		if err := reconciler.Run(cmd.Context()); err != nil {
			return err
		}

		logger.Info("reconciliation complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}
