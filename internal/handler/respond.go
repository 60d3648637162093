package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/it-logbook-api/internal/domain"
	"github.com/it-logbook-api/internal/dto"
	"github.com/it-logbook-api/internal/export"
)

// responder holds the response helpers shared by all handlers.
type responder struct {
	logger *slog.Logger
}

func (h responder) handleServiceError(w http.ResponseWriter, err error) {
	var storeErr *domain.StoreError

	switch {
	case errors.Is(err, domain.ErrValidation):
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		h.respondError(w, http.StatusNotFound, "record not found", "")
	case errors.Is(err, domain.ErrNotReady):
		h.respondError(w, http.StatusServiceUnavailable, "logbook is still loading", "")
	case errors.Is(err, domain.ErrEmptyDepartmentName):
		h.respondError(w, http.StatusBadRequest, "department name cannot be empty", "")
	case errors.Is(err, domain.ErrDuplicateDepartment):
		h.respondError(w, http.StatusConflict, "department with this name already exists", "")
	case errors.Is(err, domain.ErrDepartmentIndex):
		h.respondError(w, http.StatusNotFound, "department not found", "")
	case errors.As(err, &storeErr):
		h.logger.Error("store request failed",
			slog.String("op", storeErr.Op),
			slog.String("kind", string(storeErr.Kind)),
			slog.Any("error", storeErr.Err),
		)
		h.respondError(w, http.StatusBadGateway, "failed to reach the logbook store", storeErr.Err.Error())
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func (h responder) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h responder) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}

func (h responder) respondDocument(w http.ResponseWriter, doc export.Document) {
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Body); err != nil {
		h.logger.Error("failed to write export", slog.Any("error", err))
	}
}

// extractSegment returns the path element that follows prefix, e.g. the id
// in /entries/{id}.
func extractSegment(r *http.Request, prefix string) (string, error) {
	path := strings.TrimPrefix(r.URL.Path, prefix)
	path = strings.Trim(path, "/")

	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		return "", errors.New("id is required")
	}
	return parts[0], nil
}

func extractID(r *http.Request, prefix string) (int64, error) {
	seg, err := extractSegment(r, prefix)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(seg, 10, 64)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateLayout, s)
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}
