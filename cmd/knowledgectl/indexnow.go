package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"knowledgelib/internal/pipeline/indexnow"
)

var indexnowNewOnly bool

var indexnowCmd = &cobra.Command{
	Use:   "indexnow",
	Short: "Submit sitemap URLs to the IndexNow API",
	Long: `Extracts URLs from the generated sitemap.xml and POSTs them to the
IndexNow endpoint. With --new, only URLs absent from the previous snapshot are
submitted. The snapshot is rewritten after every run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Pipeline.IndexNow.Key == "" {
			return fmt.Errorf("pipeline.indexnow.key is not configured")
		}

		submitter := indexnow.NewSubmitter(
			cfg.Pipeline.IndexNow.Endpoint,
			cfg.Site.Domain,
			cfg.Pipeline.IndexNow.Key,
			logger,
		)
		return submitter.Run(
			cmd.Context(),
			filepath.Join(cfg.Pipeline.SiteDir, "sitemap.xml"),
			cfg.Pipeline.IndexNow.SnapshotPath,
			indexnowNewOnly,
		)
	},
}

func init() {
	indexnowCmd.Flags().BoolVar(&indexnowNewOnly, "new", false, "submit only URLs missing from the last snapshot")
	rootCmd.AddCommand(indexnowCmd)
}
