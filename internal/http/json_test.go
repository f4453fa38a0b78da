package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/driftbox/driftbox/internal/errors"
)

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`))
		w := httptest.NewRecorder()

		var p payload
		assert.True(t, DecodeJSON(w, req, &p))
		assert.Equal(t, "a", p.Name)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		w := httptest.NewRecorder()

		var p payload
		assert.False(t, DecodeJSON(w, req, &p))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"bogus":1}`))
		w := httptest.NewRecorder()

		var p payload
		assert.False(t, DecodeJSON(w, req, &p))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWriteServiceError_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperrors.NotFound("user not found"), http.StatusNotFound},
		{"conflict", apperrors.Conflict("already done"), http.StatusConflict},
		{"validation", apperrors.Validation("bad input"), http.StatusBadRequest},
		{"foreign key", apperrors.ForeignKey("in use"), http.StatusConflict},
		{"unauthorized", apperrors.Unauthorized("Unauthorized"), http.StatusUnauthorized},
		{"forbidden", apperrors.Forbidden("nope"), http.StatusForbidden},
		{"plain error", errors.New("pg: something leaked"), http.StatusInternalServerError},
	}

	logger := slog.New(slog.DiscardHandler)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
			w := httptest.NewRecorder()

			WriteServiceError(w, req, logger, tt.err)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusInternalServerError {
				// Internal causes stay server-side.
				assert.NotContains(t, w.Body.String(), "leaked")
			}
		})
	}
}
