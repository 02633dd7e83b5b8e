package enrichment_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"knowledgelib/internal/redirect/enrichment"
)

func TestHashIP(t *testing.T) {
	hexRe := regexp.MustCompile(`^[0-9a-f]{64}$`)

	t.Run("produces 64 lowercase hex chars", func(t *testing.T) {
		assert.Regexp(t, hexRe, enrichment.HashIP("203.0.113.7"))
		assert.Regexp(t, hexRe, enrichment.HashIP("2001:db8::1"))
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, enrichment.HashIP("203.0.113.7"), enrichment.HashIP("203.0.113.7"))
	})

	t.Run("distinct inputs give distinct digests", func(t *testing.T) {
		assert.NotEqual(t, enrichment.HashIP("203.0.113.7"), enrichment.HashIP("203.0.113.8"))
	})

	t.Run("empty input hashes the empty string", func(t *testing.T) {
		// SHA-256 of "": a missing client-IP header is accepted, not an error.
		assert.Equal(t,
			"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
			enrichment.HashIP(""),
		)
	})
}
