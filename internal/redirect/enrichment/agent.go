package enrichment

import (
	"regexp"

	"knowledgelib/internal/redirect/domain"
)

type agentRule struct {
	pattern *regexp.Regexp
	agent   domain.AgentType
}

// AgentClassifier identifies AI-assistant products from User-Agent strings.
type AgentClassifier struct {
	rules []agentRule
}

// NewAgentClassifier creates an AgentClassifier with the known agent patterns.
func NewAgentClassifier() *AgentClassifier {
	return &AgentClassifier{
		rules: []agentRule{
			{regexp.MustCompile(`(?i)chatgpt|openai`), domain.AgentChatGPT},
			{regexp.MustCompile(`(?i)claude|anthropic`), domain.AgentClaude},
			{regexp.MustCompile(`(?i)perplexity`), domain.AgentPerplexity},
		},
	}
}

// Classify returns the agent product for a User-Agent string. The second
// return value is false when no known agent matches.
func (c *AgentClassifier) Classify(userAgent string) (domain.AgentType, bool) {
	if userAgent == "" {
		return "", false
	}
	for _, rule := range c.rules {
		if rule.pattern.MatchString(userAgent) {
			return rule.agent, true
		}
	}
	return "", false
}
