package cache

import (
	"context"

	"knowledgelib/internal/redirect/domain"
	"knowledgelib/internal/redirect/usecase"
)

var _ usecase.LinkRepository = (*CachedLinkRepository)(nil)

// CachedLinkRepository decorates a LinkRepository with read-through caching.
// Only successful resolutions are cached: a not-found never enters the cache,
// so a deactivated link stops resolving as soon as its cached entry expires.
type CachedLinkRepository struct {
	repo  usecase.LinkRepository
	cache LinkCache
}

// NewCachedLinkRepository wraps repo with the given cache.
func NewCachedLinkRepository(repo usecase.LinkRepository, cache LinkCache) *CachedLinkRepository {
	return &CachedLinkRepository{repo: repo, cache: cache}
}

// Resolve checks the cache first and falls through to the store on a miss.
func (r *CachedLinkRepository) Resolve(ctx context.Context, slug string) (*domain.AffiliateLink, error) {
	if cached, err := r.cache.Get(ctx, slug); err == nil && cached != nil {
		return cached, nil
	}

	link, err := r.repo.Resolve(ctx, slug)
	if err != nil {
		return nil, err
	}

	_ = r.cache.Set(ctx, slug, link)
	return link, nil
}

// Ping delegates to the underlying store client.
func (r *CachedLinkRepository) Ping(ctx context.Context) error {
	return r.repo.Ping(ctx)
}
