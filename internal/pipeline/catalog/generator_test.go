package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knowledgelib/internal/pipeline/catalog"
)

func fixtureCards() []catalog.CardRow {
	published := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	return []catalog.CardRow{
		{
			ID:                "consumer-electronics/audio/wireless-earbuds-under-150/2026",
			Category:          "consumer-electronics",
			Subcategory:       "audio",
			Topic:             "wireless-earbuds-under-150",
			VersionTag:        "2026",
			CanonicalQuestion: "What are the best wireless earbuds under $150 in 2026?",
			Aliases:           []string{"best budget earbuds 2026"},
			Confidence:        0.88,
			SourceCount:       8,
			TokenEstimate:     1800,
			PublishedAt:       published,
		},
		{
			ID:          "consumer-electronics/audio/noise-cancelling-headphones/2026",
			Category:    "consumer-electronics",
			Subcategory: "audio",
			Topic:       "noise-cancelling-headphones",
			PublishedAt: published,
		},
		{
			ID:          "home-fitness/cardio/treadmills-under-1000/2026",
			Category:    "home-fitness",
			Subcategory: "cardio",
			Topic:       "treadmills-under-1000",
			PublishedAt: published,
		},
	}
}

func TestBuildCatalog(t *testing.T) {
	gen := catalog.NewGenerator("https://knowledgelib.io")
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	cat := gen.BuildCatalog(fixtureCards(), now)

	assert.Equal(t, "1.0", cat.SchemaVersion)
	assert.Equal(t, "2026-03-01", cat.Generated)
	assert.Equal(t, 3, cat.TotalUnits)

	require.Len(t, cat.Domains, 2)
	electronics := cat.Domains[0]
	assert.Equal(t, "consumer-electronics", electronics.ID)
	assert.Equal(t, "Consumer Electronics", electronics.Name)
	assert.Equal(t, 2, electronics.UnitCount)
	require.Len(t, electronics.Subdomains, 1)
	assert.Equal(t, 2, electronics.Subdomains[0].UnitCount)

	require.Len(t, cat.Units, 3)
	unit := cat.Units[0]
	assert.Equal(t, "consumer_electronics > audio > wireless_earbuds_under_150", unit.Domain)
	assert.Equal(t, "https://knowledgelib.io/consumer-electronics/audio/wireless-earbuds-under-150/2026", unit.URL)
	assert.Equal(t, "https://knowledgelib.io/api/v1/units/consumer-electronics/audio/wireless-earbuds-under-150/2026.md", unit.RawMD)
	assert.Equal(t, "2026-02-10", unit.LastVerified)
	assert.Equal(t, []string{"best budget earbuds 2026"}, unit.Aliases)
}

func TestBuildCatalog_Empty(t *testing.T) {
	gen := catalog.NewGenerator("https://knowledgelib.io")

	cat := gen.BuildCatalog(nil, time.Now())

	assert.Zero(t, cat.TotalUnits)
	assert.Empty(t, cat.Domains)
	assert.Empty(t, cat.Units)
}

func TestBuildSitemap(t *testing.T) {
	gen := catalog.NewGenerator("https://knowledgelib.io")
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	out, err := gen.BuildSitemap(fixtureCards(), now)
	require.NoError(t, err)
	sitemap := string(out)

	assert.Contains(t, sitemap, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, sitemap, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)

	// Static entries, homepage stamped with the generation date.
	assert.Contains(t, sitemap, "<loc>https://knowledgelib.io/</loc>")
	assert.Contains(t, sitemap, "<loc>https://knowledgelib.io/about</loc>")
	assert.Contains(t, sitemap, "<loc>https://knowledgelib.io/methodology</loc>")
	assert.Contains(t, sitemap, "<loc>https://knowledgelib.io/api</loc>")
	assert.Contains(t, sitemap, "<lastmod>2026-03-01</lastmod>")

	// One entry per active card.
	assert.Contains(t, sitemap, "<loc>https://knowledgelib.io/consumer-electronics/audio/wireless-earbuds-under-150/2026</loc>")
	assert.Contains(t, sitemap, "<loc>https://knowledgelib.io/home-fitness/cardio/treadmills-under-1000/2026</loc>")
	assert.Contains(t, sitemap, "<changefreq>quarterly</changefreq>")
	assert.Contains(t, sitemap, "<priority>0.9</priority>")
}
