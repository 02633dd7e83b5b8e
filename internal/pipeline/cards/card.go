package cards

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// BuyLink is one affiliate purchase link attached to a card.
type BuyLink struct {
	Slug                string `json:"slug"`
	ProductName         string `json:"product_name"`
	Retailer            string `json:"retailer"`
	DestinationURL      string `json:"destination_url"`
	DestinationURLClean string `json:"destination_url_clean"`
}

// Card is the batch-insert input shape for one knowledge card and its
// affiliate links.
type Card struct {
	ID                string    `json:"id"`
	Category          string    `json:"category"`
	Subcategory       string    `json:"subcategory"`
	Topic             string    `json:"topic"`
	VersionTag        string    `json:"version_tag"`
	CanonicalQuestion string    `json:"canonical_question"`
	Aliases           []string  `json:"aliases"`
	EntityType        string    `json:"entity_type"`
	Region            string    `json:"region"`
	Confidence        float64   `json:"confidence"`
	TokenEstimate     int       `json:"token_estimate"`
	SourceCount       int       `json:"source_count"`
	MDPath            string    `json:"md_path"`
	HTMLPath          string    `json:"html_path"`
	BuyLinks          []BuyLink `json:"buy_links"`
}

// Load reads and validates a card JSON file, applying the input defaults
// (entity type, region, retailer, cleaned destination URL).
func Load(path string) (*Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var card Card
	if err := json.Unmarshal(data, &card); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := card.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	card.applyDefaults()
	return &card, nil
}

func (c *Card) validate() error {
	if c.ID == "" {
		return fmt.Errorf("card id is required")
	}
	if c.Category == "" || c.Subcategory == "" || c.Topic == "" {
		return fmt.Errorf("card %s: category, subcategory and topic are required", c.ID)
	}
	if c.CanonicalQuestion == "" {
		return fmt.Errorf("card %s: canonical_question is required", c.ID)
	}
	for i, link := range c.BuyLinks {
		if link.Slug == "" {
			return fmt.Errorf("card %s: buy_links[%d] has no slug", c.ID, i)
		}
		if link.DestinationURL == "" {
			return fmt.Errorf("card %s: buy link %q has no destination_url", c.ID, link.Slug)
		}
	}
	return nil
}

func (c *Card) applyDefaults() {
	if c.EntityType == "" {
		c.EntityType = "product_comparison"
	}
	if c.Region == "" {
		c.Region = "global"
	}
	if c.Aliases == nil {
		c.Aliases = []string{}
	}
	for i := range c.BuyLinks {
		link := &c.BuyLinks[i]
		if link.Retailer == "" {
			link.Retailer = "amazon_us"
		}
		if link.DestinationURLClean == "" {
			link.DestinationURLClean = strings.SplitN(link.DestinationURL, "?", 2)[0]
		}
	}
}
