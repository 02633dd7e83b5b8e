package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// CardRow is one active knowledge card as read from Postgres.
type CardRow struct {
	ID                string
	Category          string
	Subcategory       string
	Topic             string
	VersionTag        string
	CanonicalQuestion string
	Aliases           []string
	Confidence        float64
	SourceCount       int
	TokenEstimate     int
	MDPath            string
	HTMLPath          string
	PublishedAt       time.Time
}

// Store reads the active card set from Postgres.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ActiveCards returns all active cards ordered by id.
func (s *Store) ActiveCards(ctx context.Context) ([]CardRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category, subcategory, topic, version_tag,
		       canonical_question, aliases, confidence, source_count,
		       token_estimate, md_path, html_path, published_at
		FROM knowledge_cards
		WHERE status = 'active'
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying active cards: %w", err)
	}
	defer rows.Close()

	var cards []CardRow
	for rows.Next() {
		var c CardRow
		if err := rows.Scan(
			&c.ID, &c.Category, &c.Subcategory, &c.Topic, &c.VersionTag,
			&c.CanonicalQuestion, pq.Array(&c.Aliases), &c.Confidence, &c.SourceCount,
			&c.TokenEstimate, &c.MDPath, &c.HTMLPath, &c.PublishedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning card row: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}
