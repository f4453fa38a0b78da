package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/driftbox/driftbox/internal/domain/model"
	"github.com/driftbox/driftbox/internal/service"
)

// UserHandlers provides HTTP handlers for the current-user surface and the
// user-management admin table.
type UserHandlers struct {
	Users   *service.UserService
	Uploads *service.UploadService
	Logger  *slog.Logger
}

// Me returns the current session's user attributes.
// GET /api/me.
func (h *UserHandlers) Me(w http.ResponseWriter, r *http.Request) {
	authed, ok := AuthedUserFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	WriteJSON(w, http.StatusOK, authed.User)
}

// MeStats returns the current user's upload activity aggregates.
// GET /api/me/stats.
func (h *UserHandlers) MeStats(w http.ResponseWriter, r *http.Request) {
	authed, ok := AuthedUserFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	stats, err := h.Uploads.StatsFor(r.Context(), authed.User.ID)
	if err != nil {
		WriteServiceError(w, r, h.Logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}

// List returns the admin table rows: user fields plus upload activity.
// GET /api/users.
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Users.ListWithActivity(r.Context())
	if err != nil {
		WriteServiceError(w, r, h.Logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"users": rows})
}

// banRequest is the optional JSON body of a ban or unban call.
type banRequest struct {
	Reason string `json:"reason,omitempty"`
}

// Ban flags a user as banned and appends a ban entry to their rap sheet.
// POST /api/users/{id}/ban.
func (h *UserHandlers) Ban(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, (*service.UserService).Ban)
}

// Unban clears a user's banned flag and appends an unban entry.
// POST /api/users/{id}/unban.
func (h *UserHandlers) Unban(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, (*service.UserService).Unban)
}

func (h *UserHandlers) moderate(
	w http.ResponseWriter,
	r *http.Request,
	action func(*service.UserService, context.Context, service.BanInput) (*model.User, error),
) {
	authed, ok := AuthedUserFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	var req banRequest
	if r.Body != nil && r.ContentLength > 0 {
		if !DecodeJSON(w, r, &req) {
			return
		}
	}

	user, err := action(h.Users, r.Context(), service.BanInput{
		Issuer:      authed.User,
		RecipientID: r.PathValue("id"),
		Reason:      req.Reason,
	})
	if err != nil {
		WriteServiceError(w, r, h.Logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

// RapSheet returns a user's moderation history, newest first.
// GET /api/users/{id}/rap-sheet.
func (h *UserHandlers) RapSheet(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Users.RapSheet(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, r, h.Logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"entries": entries})
}
