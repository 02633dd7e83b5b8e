package cards

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const upsertCardSQL = `
INSERT INTO knowledge_cards (
    id, category, subcategory, topic, version_tag,
    canonical_question, aliases, entity_type, region,
    confidence, token_estimate, source_count,
    md_path, html_path,
    status, published_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,'active',NOW())
ON CONFLICT (id) DO UPDATE SET
    canonical_question = EXCLUDED.canonical_question,
    aliases = EXCLUDED.aliases,
    confidence = EXCLUDED.confidence,
    token_estimate = EXCLUDED.token_estimate,
    source_count = EXCLUDED.source_count,
    updated_at = NOW(),
    content_version = knowledge_cards.content_version + 1`

const upsertLinkSQL = `
INSERT INTO affiliate_links (slug, card_id, product_name, retailer, destination_url, destination_url_clean)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (slug) DO UPDATE SET
    product_name = EXCLUDED.product_name,
    retailer = EXCLUDED.retailer,
    destination_url = EXCLUDED.destination_url,
    updated_at = NOW()`

// Inserter upserts cards and their affiliate links into Postgres. Each card
// is one transaction: either the card and all its links land, or none do.
// There are no retries; a failed card aborts the run.
type Inserter struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewInserter creates an Inserter.
func NewInserter(db *sql.DB, logger *zap.Logger) *Inserter {
	return &Inserter{db: db, logger: logger}
}

// Insert upserts one card and its links transactionally.
func (i *Inserter) Insert(ctx context.Context, card *Card) error {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction for %s: %w", card.ID, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, upsertCardSQL,
		card.ID, card.Category, card.Subcategory, card.Topic, card.VersionTag,
		card.CanonicalQuestion, pq.Array(card.Aliases), card.EntityType, card.Region,
		card.Confidence, card.TokenEstimate, card.SourceCount,
		card.MDPath, card.HTMLPath,
	); err != nil {
		return fmt.Errorf("upserting card %s: %w", card.ID, err)
	}

	for _, link := range card.BuyLinks {
		if _, err := tx.ExecContext(ctx, upsertLinkSQL,
			link.Slug, card.ID, link.ProductName, link.Retailer,
			link.DestinationURL, link.DestinationURLClean,
		); err != nil {
			return fmt.Errorf("upserting link %s for card %s: %w", link.Slug, card.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing card %s: %w", card.ID, err)
	}

	i.logger.Info("card inserted",
		zap.String("card_id", card.ID),
		zap.Int("links", len(card.BuyLinks)),
	)
	return nil
}

// InsertFiles loads and inserts each card file in order, stopping at the
// first failure.
func (i *Inserter) InsertFiles(ctx context.Context, paths []string) error {
	for _, path := range paths {
		card, err := Load(path)
		if err != nil {
			return err
		}
		if err := i.Insert(ctx, card); err != nil {
			return err
		}
	}
	return nil
}
