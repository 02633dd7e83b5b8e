package postgrest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"knowledgelib/internal/redirect/domain"
)

const linkSelect = "id,destination_url,card_id,product_name"

// LinkRepository resolves slugs against the external link store's PostgREST
// endpoint. The store owns affiliate_links; this client only reads it.
type LinkRepository struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewLinkRepository creates a LinkRepository for the given store base URL and
// bearer credential. The timeout bounds every lookup; the redirect hot path
// must never wait on the store longer than the platform's own deadline.
func NewLinkRepository(baseURL, apiKey string, timeout time.Duration) *LinkRepository {
	return &LinkRepository{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Resolve looks up an active link by slug.
// Returns domain.ErrLinkNotFound when no active row matches, and an error
// wrapping domain.ErrStoreUnavailable on transport failures or non-2xx
// responses. When the store returns several rows the first is used verbatim;
// ordering among duplicates is undefined.
func (r *LinkRepository) Resolve(ctx context.Context, slug string) (*domain.AffiliateLink, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/affiliate_links?slug=eq.%s&is_active=eq.true&select=%s",
		r.baseURL, url.QueryEscape(slug), linkSelect)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	r.authorize(req)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: store returned status %d", domain.ErrStoreUnavailable, resp.StatusCode)
	}

	var rows []domain.AffiliateLink
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: decoding store response: %v", domain.ErrStoreUnavailable, err)
	}

	if len(rows) == 0 {
		return nil, domain.ErrLinkNotFound
	}
	return &rows[0], nil
}

// Ping checks store reachability for the readiness probe.
func (r *LinkRepository) Ping(ctx context.Context) error {
	endpoint := r.baseURL + "/rest/v1/affiliate_links?select=id&limit=1"

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, endpoint, nil)
	if err != nil {
		return err
	}
	r.authorize(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("store returned status %d", resp.StatusCode)
	}
	return nil
}

func (r *LinkRepository) authorize(req *http.Request) {
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
}
