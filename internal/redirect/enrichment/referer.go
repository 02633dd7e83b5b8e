package enrichment

import (
	"regexp"

	"knowledgelib/internal/redirect/domain"
)

// refererRule pairs a pattern with the traffic-source class it maps to.
type refererRule struct {
	pattern *regexp.Regexp
	class   domain.RefererType
}

// RefererClassifier classifies traffic sources from referer URLs using an
// ordered rule table. The first matching rule wins, so the serving domain is
// checked before the AI-agent and search-engine patterns.
type RefererClassifier struct {
	rules []refererRule
}

// NewRefererClassifier creates a RefererClassifier for the given serving
// domain. The domain is injected rather than hardcoded so the classifier can
// be exercised against arbitrary sites.
func NewRefererClassifier(siteDomain string) *RefererClassifier {
	return &RefererClassifier{
		rules: []refererRule{
			{regexp.MustCompile(regexp.QuoteMeta(siteDomain)), domain.RefererInternal},
			{regexp.MustCompile(`(?i)chatgpt|openai|claude|anthropic|perplexity`), domain.RefererAIAgent},
			{regexp.MustCompile(`(?i)google|bing|duckduckgo|yahoo`), domain.RefererSearch},
		},
	}
}

// Classify returns the traffic-source class for a raw Referer header value.
// An empty referer is a direct visit; an unmatched one is external.
func (c *RefererClassifier) Classify(referer string) domain.RefererType {
	if referer == "" {
		return domain.RefererDirect
	}
	for _, rule := range c.rules {
		if rule.pattern.MatchString(referer) {
			return rule.class
		}
	}
	return domain.RefererExternal
}
