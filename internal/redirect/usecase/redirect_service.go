package usecase

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"knowledgelib/internal/redirect/domain"
	"knowledgelib/internal/redirect/enrichment"
)

// User agents longer than this are truncated before persisting.
const maxUserAgentLen = 500

// RedirectService implements the redirect hot path and the detached click
// attribution that follows it. It holds no mutable state between requests;
// everything durable lives in the external stores.
type RedirectService struct {
	repo     LinkRepository
	sink     ClickSink
	referers *enrichment.RefererClassifier
	agents   *enrichment.AgentClassifier
	devices  *enrichment.DeviceClassifier
	logger   *zap.Logger
}

// NewRedirectService creates a RedirectService. siteDomain is the serving
// domain used to classify internal referers.
func NewRedirectService(repo LinkRepository, sink ClickSink, siteDomain string, logger *zap.Logger) *RedirectService {
	return &RedirectService{
		repo:     repo,
		sink:     sink,
		referers: enrichment.NewRefererClassifier(siteDomain),
		agents:   enrichment.NewAgentClassifier(),
		devices:  enrichment.NewDeviceClassifier(),
		logger:   logger,
	}
}

// Resolve looks up the active link for a slug.
func (s *RedirectService) Resolve(ctx context.Context, slug string) (*domain.AffiliateLink, error) {
	return s.repo.Resolve(ctx, slug)
}

// Ping checks link store reachability.
func (s *RedirectService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// LogClick builds the attribution record for a resolved redirect and sends it
// to the analytics sink. Runs on the detached path, after the 302 has been
// written: every failure is logged and dropped, never surfaced to the caller.
// Click loss is accepted; there is no retry.
func (s *RedirectService) LogClick(ctx context.Context, link *domain.AffiliateLink, meta domain.RequestMeta) {
	event := s.BuildClickEvent(link, meta)

	if err := s.sink.Send(ctx, event); err != nil {
		s.logger.Error("click logging failed",
			zap.Int64("link_id", link.ID),
			zap.String("card_id", link.CardID),
			zap.Error(err),
		)
	}
}

// BuildClickEvent assembles a ClickEvent from the resolved link and the
// request metadata captured before the redirect was written.
func (s *RedirectService) BuildClickEvent(link *domain.AffiliateLink, meta domain.RequestMeta) *domain.ClickEvent {
	event := &domain.ClickEvent{
		LinkID:         link.ID,
		CardID:         link.CardID,
		RefererType:    s.referers.Classify(meta.Referer),
		IPHash:         enrichment.HashIP(meta.ClientIP),
		DestinationURL: link.DestinationURL,
		HTTPStatus:     http.StatusFound,
	}

	if meta.Referer != "" {
		event.Referer = &meta.Referer
	}
	if agent, ok := s.agents.Classify(meta.UserAgent); ok {
		event.AgentType = &agent
	}
	if device, ok := s.devices.Classify(meta.UserAgent); ok {
		event.DeviceType = &device
	}
	if meta.UserAgent != "" {
		ua := truncate(meta.UserAgent, maxUserAgentLen)
		event.UserAgent = &ua
	}
	if meta.CountryCode != "" {
		event.CountryCode = &meta.CountryCode
	}

	return event
}

// truncate cuts s to at most n runes without splitting a multi-byte sequence.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
