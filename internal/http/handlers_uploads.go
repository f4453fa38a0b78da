package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/driftbox/driftbox/internal/domain/model"
	"github.com/driftbox/driftbox/internal/service"
)

// UploadHandlers provides HTTP handlers for upload records.
type UploadHandlers struct {
	Svc    *service.UploadService
	Logger *slog.Logger
}

// Recent returns the newest uploads with uploader display data.
// GET /api/uploads/recent.
func (h *UploadHandlers) Recent(w http.ResponseWriter, r *http.Request) {
	feed, err := h.Svc.Recent(r.Context(), 0)
	if err != nil {
		WriteServiceError(w, r, h.Logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"uploads": feed})
}

// Record persists an upload's metadata for the current user.
// POST /api/uploads.
func (h *UploadHandlers) Record(w http.ResponseWriter, r *http.Request) {
	authed, ok := AuthedUserFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	var req model.CreateUploadRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	up, err := h.Svc.Record(r.Context(), authed.User.ID, &req)
	if err != nil {
		WriteServiceError(w, r, h.Logger, err)
		return
	}

	WriteJSON(w, http.StatusCreated, up)
}
