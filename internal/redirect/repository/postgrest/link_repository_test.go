package postgrest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knowledgelib/internal/redirect/domain"
	"knowledgelib/internal/redirect/repository/postgrest"
)

func TestLinkRepository_Resolve_ActiveLink(t *testing.T) {
	var gotQuery string
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotHeaders = r.Header.Clone()
		assert.Equal(t, "/rest/v1/affiliate_links", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 42, "destination_url": "https://www.amazon.com/dp/XYZ", "card_id": "consumer-electronics/audio/wireless-earbuds-under-150/2026", "product_name": "Sony WF-C710N"}]`))
	}))
	defer srv.Close()

	repo := postgrest.NewLinkRepository(srv.URL, "secret-key", 2*time.Second)

	link, err := repo.Resolve(context.Background(), "sony-wf-c710n")
	require.NoError(t, err)

	assert.Equal(t, int64(42), link.ID)
	assert.Equal(t, "https://www.amazon.com/dp/XYZ", link.DestinationURL)
	assert.Equal(t, "consumer-electronics/audio/wireless-earbuds-under-150/2026", link.CardID)
	require.NotNil(t, link.ProductName)
	assert.Equal(t, "Sony WF-C710N", *link.ProductName)

	// Only active rows, only the fields the redirect path needs.
	assert.Contains(t, gotQuery, "slug=eq.sony-wf-c710n")
	assert.Contains(t, gotQuery, "is_active=eq.true")
	assert.Contains(t, gotQuery, "select=id,destination_url,card_id,product_name")

	assert.Equal(t, "secret-key", gotHeaders.Get("apikey"))
	assert.Equal(t, "Bearer secret-key", gotHeaders.Get("Authorization"))
}

func TestLinkRepository_Resolve_MultiSegmentSlugIsEscaped(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	repo := postgrest.NewLinkRepository(srv.URL, "k", 2*time.Second)

	_, err := repo.Resolve(context.Background(), "audio/sony wf")
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
	assert.Contains(t, gotQuery, "slug=eq.audio%2Fsony+wf")
}

func TestLinkRepository_Resolve_NoRows_ReturnsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	repo := postgrest.NewLinkRepository(srv.URL, "k", 2*time.Second)

	_, err := repo.Resolve(context.Background(), "expired-slug")
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
	assert.NotErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestLinkRepository_Resolve_MultipleRows_FirstWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": 1, "destination_url": "https://first.example", "card_id": "c1", "product_name": null},
			{"id": 2, "destination_url": "https://second.example", "card_id": "c2", "product_name": null}
		]`))
	}))
	defer srv.Close()

	repo := postgrest.NewLinkRepository(srv.URL, "k", 2*time.Second)

	link, err := repo.Resolve(context.Background(), "dup")
	require.NoError(t, err)
	assert.Equal(t, int64(1), link.ID)
	assert.Equal(t, "https://first.example", link.DestinationURL)
	assert.Nil(t, link.ProductName)
}

func TestLinkRepository_Resolve_StoreError_ReturnsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo := postgrest.NewLinkRepository(srv.URL, "k", 2*time.Second)

	_, err := repo.Resolve(context.Background(), "any")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestLinkRepository_Resolve_TransportError_ReturnsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	repo := postgrest.NewLinkRepository(srv.URL, "k", time.Second)

	_, err := repo.Resolve(context.Background(), "any")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestLinkRepository_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	repo := postgrest.NewLinkRepository(srv.URL, "k", time.Second)
	assert.NoError(t, repo.Ping(context.Background()))
}
