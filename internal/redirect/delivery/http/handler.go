package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"knowledgelib/internal/redirect/domain"
	"knowledgelib/internal/redirect/usecase"
	"knowledgelib/pkg/background"
	"knowledgelib/pkg/problemdetails"
)

// Handler serves the affiliate redirect route and the health probes.
type Handler struct {
	service       *usecase.RedirectService
	tasks         *background.Tracker
	fallbackURL   string
	ipHeader      string
	countryHeader string
	logger        *zap.Logger
}

// NewHandler creates a Handler. fallbackURL is where unknown or expired slugs
// land; ipHeader and countryHeader name the edge-platform headers carrying
// the client IP and geo country.
func NewHandler(service *usecase.RedirectService, tasks *background.Tracker, fallbackURL, ipHeader, countryHeader string, logger *zap.Logger) *Handler {
	return &Handler{
		service:       service,
		tasks:         tasks,
		fallbackURL:   fallbackURL,
		ipHeader:      ipHeader,
		countryHeader: countryHeader,
		logger:        logger,
	}
}

// Redirect handles GET /go/*. The slug is the full path remainder, segments
// rejoined by "/". Resolution outcomes map to: 302 to the destination, 302 to
// the home fallback (no active link), 502 (store unreachable), 500 (anything
// unexpected). Click logging is detached after the redirect is written and
// never delays or fails the response.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	slug := strings.Trim(chi.URLParam(r, "*"), "/")
	if slug == "" {
		writeProblem(w, problemdetails.New(
			http.StatusBadRequest,
			problemdetails.TypeMissingSlug,
			"Bad Request",
			"Missing redirect slug",
		))
		return
	}

	link, err := h.service.Resolve(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			// Unknown or expired link. Not an error, and nothing to attribute.
			http.Redirect(w, r, h.fallbackURL, http.StatusFound)
			return
		}
		if errors.Is(err, domain.ErrStoreUnavailable) {
			h.logger.Error("link resolution failed", zap.String("slug", slug), zap.Error(err))
			writeProblem(w, problemdetails.New(
				http.StatusBadGateway,
				problemdetails.TypeStoreUnavailable,
				"Bad Gateway",
				"Service temporarily unavailable",
			))
			return
		}
		h.logger.Error("unexpected redirect error", zap.String("slug", slug), zap.Error(err))
		writeProblem(w, problemdetails.New(
			http.StatusInternalServerError,
			problemdetails.TypeInternalError,
			"Internal Server Error",
			"Internal error",
		))
		return
	}

	// Capture attribution inputs before the redirect; the request is not safe
	// to touch once the handler returns.
	meta := domain.RequestMeta{
		Referer:     r.Header.Get("Referer"),
		UserAgent:   r.Header.Get("User-Agent"),
		ClientIP:    r.Header.Get(h.ipHeader),
		CountryCode: r.Header.Get(h.countryHeader),
	}

	http.Redirect(w, r, link.DestinationURL, http.StatusFound)

	h.tasks.Go("log-click", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		h.service.LogClick(ctx, link, meta)
	})
}

// HealthResponse is the health probe body.
type HealthResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Healthz handles GET /healthz (liveness probe).
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz handles GET /readyz (readiness probe). Ready means the link store
// answers within a short deadline.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.service.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "unavailable",
			Reason: "link store unavailable: " + err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ready"})
}
