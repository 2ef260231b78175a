package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yaelle-pmu/studio/libs/httpx"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/generation"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/recordstore"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/studio"
)

type StudioHandler struct {
	svc    *studio.Service
	logger *slog.Logger
	now    func() time.Time
}

func NewStudioHandler(svc *studio.Service, logger *slog.Logger) *StudioHandler {
	return &StudioHandler{svc: svc, logger: logger, now: time.Now}
}

type idRequest struct {
	ID string `json:"id"`
}

func methodAllowed(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	return false
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(r, dst); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return false
	}
	return true
}

// fail maps domain errors to status codes. Unexpected errors are logged and
// answered with a generic message.
func (h *StudioHandler) fail(w http.ResponseWriter, r *http.Request, fallback string, err error) {
	var (
		verr *studio.ValidationError
		gerr *generation.Error
	)
	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, studio.ErrInvalidSegment):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, studio.ErrNoRecipients):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, studio.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, studio.ErrDuplicateEmail),
		errors.Is(err, studio.ErrIllegalTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, recordstore.ErrVersionConflict):
		http.Error(w, "record changed concurrently, retry", http.StatusConflict)
	case errors.Is(err, studio.ErrGenerationOff):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.As(err, &gerr):
		http.Error(w, gerr.Message, http.StatusBadGateway)
	default:
		h.logger.Error(fallback, "err", err, "request_id", httpx.RequestIDFromContext(r.Context()))
		http.Error(w, fallback, http.StatusInternalServerError)
	}
}
