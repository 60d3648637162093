package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/it-logbook-api/internal/domain"
	"github.com/it-logbook-api/internal/dto"
	"github.com/it-logbook-api/internal/service"
)

// BackupHandler serves the backup log endpoints under /backups/.
type BackupHandler struct {
	responder
	store     *service.LogbookStore
	validator *validator.Validate
	now       func() time.Time
}

func NewBackupHandler(store *service.LogbookStore, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{
		responder: responder{logger: logger},
		store:     store,
		validator: service.NewValidator(),
		now:       time.Now,
	}
}

func (h *BackupHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.store.BackupEntries()
	resp := dto.ListResponse[dto.BackupEntryResponse]{
		Items:  make([]dto.BackupEntryResponse, len(entries)),
		Total:  len(entries),
		NextID: h.store.NextBackupEntryID(),
	}
	for i, e := range entries {
		resp.Items[i] = toBackupEntryResponse(e)
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *BackupHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r, "/backups/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid backup id", err.Error())
		return
	}

	entry, err := h.store.BackupEntry(id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toBackupEntryResponse(entry))
}

func (h *BackupHandler) Create(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.decodeEntry(w, r)
	if !ok {
		return
	}

	created, err := h.store.AddBackupEntry(r.Context(), entry)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toBackupEntryResponse(created))
}

func (h *BackupHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r, "/backups/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid backup id", err.Error())
		return
	}

	entry, ok := h.decodeEntry(w, r)
	if !ok {
		return
	}
	entry.ID = id

	updated, err := h.store.UpdateBackupEntry(r.Context(), entry)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toBackupEntryResponse(updated))
}

func (h *BackupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r, "/backups/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid backup id", err.Error())
		return
	}

	if err := h.store.DeleteBackupEntry(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	h.respondDocument(w, h.store.ExportBackupEntries(h.now()))
}

func (h *BackupHandler) decodeEntry(w http.ResponseWriter, r *http.Request) (domain.BackupEntry, bool) {
	var req dto.BackupEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return domain.BackupEntry{}, false
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return domain.BackupEntry{}, false
	}

	date, _ := parseDate(req.Date)
	return domain.BackupEntry{
		Date:           date,
		Shift:          domain.Shift(req.Shift),
		PersonInCharge: req.PersonInCharge,
		CreatedAt:      req.CreatedAt,
	}, true
}

func toBackupEntryResponse(e domain.BackupEntry) dto.BackupEntryResponse {
	return dto.BackupEntryResponse{
		ID:             e.ID,
		Date:           formatDate(e.Date),
		Shift:          string(e.Shift),
		PersonInCharge: e.PersonInCharge,
		CreatedAt:      e.CreatedAt,
	}
}
