package catalog

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Catalog is the machine-readable card index published as catalog.json.
type Catalog struct {
	SchemaVersion string   `json:"schema_version"`
	Generated     string   `json:"generated"`
	TotalUnits    int      `json:"total_units"`
	Domains       []Domain `json:"domains"`
	Units         []Unit   `json:"units"`
}

// Domain is a top-level category with per-subdomain unit counts.
type Domain struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	UnitCount  int         `json:"unit_count"`
	Subdomains []Subdomain `json:"subdomains"`
}

type Subdomain struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitCount int    `json:"unit_count"`
}

// Unit is one catalog entry for a knowledge card.
type Unit struct {
	ID                string   `json:"id"`
	CanonicalQuestion string   `json:"canonical_question"`
	Aliases           []string `json:"aliases"`
	Domain            string   `json:"domain"`
	Confidence        float64  `json:"confidence"`
	LastVerified      string   `json:"last_verified"`
	Freshness         string   `json:"freshness"`
	TemporalScope     string   `json:"temporal_scope"`
	URL               string   `json:"url"`
	RawMD             string   `json:"raw_md"`
	SourceCount       int      `json:"source_count"`
	TokenEstimate     int      `json:"token_estimate"`
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Generator builds the catalog and sitemap documents from the active card
// set. baseURL is the public site root without a trailing slash.
type Generator struct {
	baseURL string
}

// NewGenerator creates a Generator.
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// BuildCatalog builds catalog.json content from the active cards.
func (g *Generator) BuildCatalog(cards []CardRow, now time.Time) *Catalog {
	domainIndex := make(map[string]*Domain)
	var domainOrder []string

	for _, card := range cards {
		d, ok := domainIndex[card.Category]
		if !ok {
			d = &Domain{ID: card.Category, Name: formatName(card.Category)}
			domainIndex[card.Category] = d
			domainOrder = append(domainOrder, card.Category)
		}
		d.UnitCount++

		idx := -1
		for i := range d.Subdomains {
			if d.Subdomains[i].ID == card.Subcategory {
				idx = i
				break
			}
		}
		if idx == -1 {
			d.Subdomains = append(d.Subdomains, Subdomain{ID: card.Subcategory, Name: formatName(card.Subcategory)})
			idx = len(d.Subdomains) - 1
		}
		d.Subdomains[idx].UnitCount++
	}

	domains := lo.Map(domainOrder, func(id string, _ int) Domain {
		return *domainIndex[id]
	})

	units := lo.Map(cards, func(card CardRow, _ int) Unit {
		return Unit{
			ID:                card.ID,
			CanonicalQuestion: card.CanonicalQuestion,
			Aliases:           card.Aliases,
			Domain:            domainPath(card.Category, card.Subcategory, card.Topic),
			Confidence:        card.Confidence,
			LastVerified:      card.PublishedAt.Format("2006-01-02"),
			Freshness:         "quarterly",
			TemporalScope:     "2025-2026",
			URL:               fmt.Sprintf("%s/%s", g.baseURL, card.ID),
			RawMD:             fmt.Sprintf("%s/api/v1/units/%s.md", g.baseURL, card.ID),
			SourceCount:       card.SourceCount,
			TokenEstimate:     card.TokenEstimate,
		}
	})

	return &Catalog{
		SchemaVersion: "1.0",
		Generated:     now.Format("2006-01-02"),
		TotalUnits:    len(cards),
		Domains:       domains,
		Units:         units,
	}
}

// staticPages are the fixed sitemap entries ahead of the card URLs.
var staticPages = []sitemapURL{
	{Loc: "/", LastMod: "", ChangeFreq: "weekly", Priority: "1.0"},
	{Loc: "/about", LastMod: "2026-02-07", ChangeFreq: "monthly", Priority: "0.7"},
	{Loc: "/methodology", LastMod: "2026-02-07", ChangeFreq: "monthly", Priority: "0.7"},
	{Loc: "/api", LastMod: "2026-02-07", ChangeFreq: "monthly", Priority: "0.8"},
}

// BuildSitemap builds sitemap.xml content from the active cards.
func (g *Generator) BuildSitemap(cards []CardRow, now time.Time) ([]byte, error) {
	today := now.Format("2006-01-02")

	entries := lo.Map(staticPages, func(p sitemapURL, _ int) sitemapURL {
		p.Loc = g.baseURL + p.Loc
		if p.LastMod == "" {
			p.LastMod = today
		}
		return p
	})

	for _, card := range cards {
		entries = append(entries, sitemapURL{
			Loc:        fmt.Sprintf("%s/%s", g.baseURL, card.ID),
			LastMod:    card.PublishedAt.Format("2006-01-02"),
			ChangeFreq: "quarterly",
			Priority:   "0.9",
		})
	}

	doc := urlset{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  entries,
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling sitemap: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// formatName turns a slug like "consumer-electronics" into
// "Consumer Electronics".
func formatName(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// domainPath renders the "category > subcategory > topic" breadcrumb used in
// catalog units, with underscores in place of dashes.
func domainPath(parts ...string) string {
	rendered := lo.Map(parts, func(p string, _ int) string {
		return strings.ReplaceAll(p, "-", "_")
	})
	return strings.Join(rendered, " > ")
}
