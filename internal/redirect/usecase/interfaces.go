package usecase

import (
	"context"

	"knowledgelib/internal/redirect/domain"
)

// LinkRepository resolves slugs to affiliate links against the external link
// store.
type LinkRepository interface {
	// Resolve returns the first active link for the slug,
	// domain.ErrLinkNotFound when no active row matches, or an error wrapping
	// domain.ErrStoreUnavailable when the store cannot be queried.
	Resolve(ctx context.Context, slug string) (*domain.AffiliateLink, error)

	// Ping checks store reachability.
	Ping(ctx context.Context) error
}

// ClickSink appends click events to the external analytics store.
type ClickSink interface {
	Send(ctx context.Context, event *domain.ClickEvent) error
}
