package indexnow_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"knowledgelib/internal/pipeline/indexnow"
)

const sitemapFixture = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url>
    <loc>https://knowledgelib.io/</loc>
    <lastmod>2026-03-01</lastmod>
    <changefreq>weekly</changefreq>
    <priority>1.0</priority>
  </url>
  <url>
    <loc>https://knowledgelib.io/consumer-electronics/audio/wireless-earbuds-under-150/2026</loc>
    <lastmod>2026-02-10</lastmod>
    <changefreq>quarterly</changefreq>
    <priority>0.9</priority>
  </url>
  <url>
    <loc>https://other-site.example/ignored</loc>
    <lastmod>2026-02-10</lastmod>
    <changefreq>weekly</changefreq>
    <priority>0.5</priority>
  </url>
</urlset>
`

func TestExtractURLs_FiltersForeignHosts(t *testing.T) {
	submitter := indexnow.NewSubmitter("https://api.indexnow.org/indexnow", "knowledgelib.io", "key", zap.NewNop())

	urls, err := submitter.ExtractURLs([]byte(sitemapFixture))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://knowledgelib.io/",
		"https://knowledgelib.io/consumer-electronics/audio/wireless-earbuds-under-150/2026",
	}, urls)
}

func TestRun_FullSubmission(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	dir := t.TempDir()
	sitemapPath := filepath.Join(dir, "sitemap.xml")
	snapshotPath := filepath.Join(dir, ".indexnow_last_urls.json")
	require.NoError(t, os.WriteFile(sitemapPath, []byte(sitemapFixture), 0644))

	submitter := indexnow.NewSubmitter(srv.URL, "knowledgelib.io", "abc-123", zap.NewNop())
	require.NoError(t, submitter.Run(context.Background(), sitemapPath, snapshotPath, false))

	var payload struct {
		Host        string   `json:"host"`
		Key         string   `json:"key"`
		KeyLocation string   `json:"keyLocation"`
		URLList     []string `json:"urlList"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, "knowledgelib.io", payload.Host)
	assert.Equal(t, "abc-123", payload.Key)
	assert.Equal(t, "https://knowledgelib.io/abc-123.txt", payload.KeyLocation)
	assert.Len(t, payload.URLList, 2)

	// The snapshot now holds everything that was in the sitemap.
	snapshot, err := os.ReadFile(snapshotPath)
	require.NoError(t, err)
	var saved []string
	require.NoError(t, json.Unmarshal(snapshot, &saved))
	assert.Len(t, saved, 2)
}

func TestRun_NewOnlySubmitsDiff(t *testing.T) {
	var submissions int
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		submissions++
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	dir := t.TempDir()
	sitemapPath := filepath.Join(dir, "sitemap.xml")
	snapshotPath := filepath.Join(dir, ".indexnow_last_urls.json")
	require.NoError(t, os.WriteFile(sitemapPath, []byte(sitemapFixture), 0644))
	require.NoError(t, os.WriteFile(snapshotPath, []byte(`["https://knowledgelib.io/"]`), 0644))

	submitter := indexnow.NewSubmitter(srv.URL, "knowledgelib.io", "abc-123", zap.NewNop())
	require.NoError(t, submitter.Run(context.Background(), sitemapPath, snapshotPath, true))

	require.Equal(t, 1, submissions)
	var payload struct {
		URLList []string `json:"urlList"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, []string{"https://knowledgelib.io/consumer-electronics/audio/wireless-earbuds-under-150/2026"}, payload.URLList)
}

func TestRun_NewOnlyWithNothingNewSkipsSubmission(t *testing.T) {
	var submissions int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		submissions++
	}))
	defer srv.Close()

	dir := t.TempDir()
	sitemapPath := filepath.Join(dir, "sitemap.xml")
	snapshotPath := filepath.Join(dir, ".indexnow_last_urls.json")
	require.NoError(t, os.WriteFile(sitemapPath, []byte(sitemapFixture), 0644))
	require.NoError(t, os.WriteFile(snapshotPath, []byte(
		`["https://knowledgelib.io/", "https://knowledgelib.io/consumer-electronics/audio/wireless-earbuds-under-150/2026"]`), 0644))

	submitter := indexnow.NewSubmitter(srv.URL, "knowledgelib.io", "abc-123", zap.NewNop())
	require.NoError(t, submitter.Run(context.Background(), sitemapPath, snapshotPath, true))

	assert.Zero(t, submissions)
}

func TestRun_MissingSitemapFails(t *testing.T) {
	submitter := indexnow.NewSubmitter("https://api.indexnow.org/indexnow", "knowledgelib.io", "k", zap.NewNop())

	err := submitter.Run(context.Background(), filepath.Join(t.TempDir(), "sitemap.xml"), "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reconcile")
}

func TestSubmit_RejectionIsReportedNotRetried(t *testing.T) {
	var submissions int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		submissions++
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	submitter := indexnow.NewSubmitter(srv.URL, "knowledgelib.io", "k", zap.NewNop())
	err := submitter.Submit(context.Background(), []string{"https://knowledgelib.io/x"})

	assert.NoError(t, err)
	assert.Equal(t, 1, submissions)
}
