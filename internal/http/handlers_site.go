package httpx

import (
	"log/slog"
	"net/http"

	"github.com/driftbox/driftbox/internal/domain/model"
	"github.com/driftbox/driftbox/internal/service"
)

// SiteHandlers provides HTTP handlers for the per-deployment settings record.
type SiteHandlers struct {
	Svc    *service.SiteService
	Logger *slog.Logger
}

// Settings returns the settings row for the configured site domain. Before
// first-run setup the row does not exist yet; the response then carries the
// domain with setup_complete false.
// GET /api/site/settings.
func (h *SiteHandlers) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Svc.Settings(r.Context())
	if err != nil {
		WriteServiceError(w, r, h.Logger, err)
		return
	}

	if settings == nil {
		settings = &model.SiteSettings{Site: h.Svc.Domain()}
	}

	WriteJSON(w, http.StatusOK, settings)
}

// Setup completes first-run setup; it runs at most once per deployment.
// POST /api/site/setup.
func (h *SiteHandlers) Setup(w http.ResponseWriter, r *http.Request) {
	var req model.SetupSiteRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	settings, err := h.Svc.Setup(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, r, h.Logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, settings)
}
