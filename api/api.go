// Package api exposes the bridge over HTTP. It hosts two parallel route
// trees, /stac and /cloudstac: identical shapes, but the cloud tree scopes
// every granule search to collections the cloud-holding resolver reports.
package api

import (
	"strings"

	"go.uber.org/zap"

	"github.com/robert-malhotra/go-stac-bridge/catalog"
)

// Route tree modes. The mode doubles as the leading path segment.
const (
	ModeDefault = "stac"
	ModeCloud   = "cloudstac"
)

// Handler carries the request-independent collaborators of the HTTP
// surface. All per-request state lives on the call stack.
type Handler struct {
	cat     *catalog.Client
	log     *zap.Logger
	metrics *Metrics

	publicURL    string
	defaultLimit int
	maxLimit     int
}

// NewHandler constructs a Handler. publicURL is the external base URL
// every emitted link is rooted at.
func NewHandler(cat *catalog.Client, log *zap.Logger, metrics *Metrics, publicURL string, defaultLimit, maxLimit int) *Handler {
	return &Handler{
		cat:          cat,
		log:          log,
		metrics:      metrics,
		publicURL:    strings.TrimRight(publicURL, "/"),
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// rootHref returns the catalog root href for a route tree.
func (h *Handler) rootHref(mode string) string {
	return h.publicURL + "/" + mode
}
