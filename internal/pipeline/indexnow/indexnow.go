package indexnow

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// submission is the IndexNow batch-submit payload.
type submission struct {
	Host        string   `json:"host"`
	Key         string   `json:"key"`
	KeyLocation string   `json:"keyLocation"`
	URLList     []string `json:"urlList"`
}

// Submitter notifies the IndexNow API about site URLs and keeps a snapshot of
// what was already submitted so later runs can send only the new ones.
type Submitter struct {
	endpoint string
	host     string
	key      string
	client   *http.Client
	logger   *zap.Logger
}

// NewSubmitter creates a Submitter for the given site host and IndexNow key.
func NewSubmitter(endpoint, host, key string, logger *zap.Logger) *Submitter {
	return &Submitter{
		endpoint: endpoint,
		host:     host,
		key:      key,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
	}
}

// Run extracts URLs from the sitemap at sitemapPath, submits them (all, or
// only those missing from the snapshot when newOnly is set), and persists the
// full URL list as the next snapshot. The snapshot is written even when
// nothing was submitted, so a first run primes the diff baseline.
func (s *Submitter) Run(ctx context.Context, sitemapPath, snapshotPath string, newOnly bool) error {
	sitemap, err := os.ReadFile(sitemapPath)
	if err != nil {
		return fmt.Errorf("reading sitemap (run reconcile first?): %w", err)
	}

	allURLs, err := s.ExtractURLs(sitemap)
	if err != nil {
		return err
	}
	s.logger.Info("sitemap parsed", zap.Int("urls", len(allURLs)))

	toSubmit := allURLs
	if newOnly {
		last := loadSnapshot(snapshotPath, s.logger)
		seen := make(map[string]struct{}, len(last))
		for _, u := range last {
			seen[u] = struct{}{}
		}
		toSubmit = lo.Filter(allURLs, func(u string, _ int) bool {
			_, ok := seen[u]
			return !ok
		})
		s.logger.Info("new urls since last submission", zap.Int("count", len(toSubmit)))
	}

	if len(toSubmit) > 0 {
		if err := s.Submit(ctx, toSubmit); err != nil {
			return err
		}
	} else {
		s.logger.Info("no urls to submit")
	}

	return saveSnapshot(snapshotPath, allURLs)
}

type sitemapDoc struct {
	URLs []sitemapEntry `xml:"url"`
}

type sitemapEntry struct {
	Loc string `xml:"loc"`
}

// ExtractURLs pulls the site's URLs out of a sitemap document, ignoring any
// <loc> entries for other hosts.
func (s *Submitter) ExtractURLs(sitemap []byte) ([]string, error) {
	var doc sitemapDoc
	if err := xml.Unmarshal(sitemap, &doc); err != nil {
		return nil, fmt.Errorf("parsing sitemap: %w", err)
	}

	prefix := "https://" + s.host + "/"
	urls := lo.FilterMap(doc.URLs, func(u sitemapEntry, _ int) (string, bool) {
		loc := strings.TrimSpace(u.Loc)
		return loc, strings.HasPrefix(loc, prefix)
	})
	return urls, nil
}

// Submit POSTs one URL batch to the IndexNow endpoint. A non-2xx answer is
// reported but not retried; the snapshot is still advanced by the caller, so
// a rejected batch is dropped rather than resubmitted forever.
func (s *Submitter) Submit(ctx context.Context, urls []string) error {
	payload, err := json.Marshal(submission{
		Host:        s.host,
		Key:         s.key,
		KeyLocation: fmt.Sprintf("https://%s/%s.txt", s.host, s.key),
		URLList:     urls,
	})
	if err != nil {
		return fmt.Errorf("marshaling submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("indexnow request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		s.logger.Info("urls accepted and queued for indexing", zap.Int("count", len(urls)))
	case http.StatusAccepted:
		s.logger.Info("urls received, will be processed", zap.Int("count", len(urls)))
	default:
		s.logger.Warn("indexnow rejected submission",
			zap.Int("status", resp.StatusCode),
			zap.Int("count", len(urls)),
		)
	}
	return nil
}

func loadSnapshot(path string, logger *zap.Logger) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("could not load last snapshot", zap.Error(err))
		}
		return nil
	}

	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		logger.Warn("could not parse last snapshot", zap.Error(err))
		return nil
	}
	return urls
}

func saveSnapshot(path string, urls []string) error {
	data, err := json.MarshalIndent(urls, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}
