package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Reconciler regenerates the published catalog.json and sitemap.xml from the
// store's active card set and syncs tracker.md counts. Run after a card batch
// lands so the static artifacts match the database again.
type Reconciler struct {
	store       *Store
	gen         *Generator
	siteDir     string
	trackerPath string
	logger      *zap.Logger
}

// NewReconciler creates a Reconciler writing into siteDir.
func NewReconciler(store *Store, gen *Generator, siteDir, trackerPath string, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		store:       store,
		gen:         gen,
		siteDir:     siteDir,
		trackerPath: trackerPath,
		logger:      logger,
	}
}

// Run performs one full reconciliation pass.
func (r *Reconciler) Run(ctx context.Context) error {
	cards, err := r.store.ActiveCards(ctx)
	if err != nil {
		return err
	}
	r.logger.Info("active cards loaded", zap.Int("count", len(cards)))

	now := time.Now().UTC()

	catalog := r.gen.BuildCatalog(cards, now)
	catalogJSON, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}
	catalogPath := filepath.Join(r.siteDir, "catalog.json")
	if err := os.WriteFile(catalogPath, append(catalogJSON, '\n'), 0644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	r.logger.Info("catalog written", zap.String("path", catalogPath), zap.Int("units", len(cards)))

	sitemap, err := r.gen.BuildSitemap(cards, now)
	if err != nil {
		return err
	}
	sitemapPath := filepath.Join(r.siteDir, "sitemap.xml")
	if err := os.WriteFile(sitemapPath, sitemap, 0644); err != nil {
		return fmt.Errorf("writing sitemap: %w", err)
	}
	r.logger.Info("sitemap written", zap.String("path", sitemapPath))

	stats, err := SyncTrackerStats(r.trackerPath)
	if err != nil {
		return err
	}
	r.logger.Info("tracker stats synced",
		zap.Int("done", stats.Done),
		zap.Int("pending", stats.Pending),
		zap.Int("in_progress", stats.InProgress),
		zap.Int("skipped", stats.Skipped),
	)

	removed, err := r.cleanupTempFiles()
	if err != nil {
		return err
	}
	r.logger.Info("temp files removed", zap.Int("count", removed))

	return nil
}

// cleanupTempFiles removes the card_data_*.json scratch files left behind by
// parallel card-creation sessions.
func (r *Reconciler) cleanupTempFiles() (int, error) {
	entries, err := os.ReadDir(r.siteDir)
	if err != nil {
		return 0, fmt.Errorf("reading site dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "card_data_") && strings.HasSuffix(name, ".json") {
			if err := os.Remove(filepath.Join(r.siteDir, name)); err != nil {
				return removed, fmt.Errorf("removing %s: %w", name, err)
			}
			removed++
		}
	}
	return removed, nil
}
