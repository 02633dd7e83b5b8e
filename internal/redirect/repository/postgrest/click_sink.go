package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"knowledgelib/internal/redirect/domain"
)

// ClickSink appends click attribution records to the analytics store's
// affiliate_click_log table. Append-only: events are written once and never
// read back by this service.
type ClickSink struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClickSink creates a ClickSink for the given store base URL and bearer
// credential.
func NewClickSink(baseURL, apiKey string, timeout time.Duration) *ClickSink {
	return &ClickSink{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Send writes one ClickEvent. The caller decides what to do with a failure;
// in practice the click logger drops it after logging.
func (s *ClickSink) Send(ctx context.Context, event *domain.ClickEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling click event: %w", err)
	}

	endpoint := s.baseURL + "/rest/v1/affiliate_click_log"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sink returned status %d", resp.StatusCode)
	}
	return nil
}
