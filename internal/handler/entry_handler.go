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

// EntryHandler serves the work entry endpoints under /entries/.
type EntryHandler struct {
	responder
	store     *service.LogbookStore
	validator *validator.Validate
	now       func() time.Time
}

func NewEntryHandler(store *service.LogbookStore, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{
		responder: responder{logger: logger},
		store:     store,
		validator: service.NewValidator(),
		now:       time.Now,
	}
}

func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	entries := h.store.WorkEntries(filter)
	resp := dto.ListResponse[dto.WorkEntryResponse]{
		Items:  make([]dto.WorkEntryResponse, len(entries)),
		Total:  len(entries),
		NextID: h.store.NextWorkEntryID(),
	}
	for i, e := range entries {
		resp.Items[i] = toWorkEntryResponse(e)
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *EntryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r, "/entries/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid entry id", err.Error())
		return
	}

	entry, err := h.store.WorkEntry(id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toWorkEntryResponse(entry))
}

func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.decodeEntry(w, r)
	if !ok {
		return
	}

	created, err := h.store.AddWorkEntry(r.Context(), entry)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toWorkEntryResponse(created))
}

func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r, "/entries/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid entry id", err.Error())
		return
	}

	entry, ok := h.decodeEntry(w, r)
	if !ok {
		return
	}
	entry.ID = id

	updated, err := h.store.UpdateWorkEntry(r.Context(), entry)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toWorkEntryResponse(updated))
}

func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r, "/entries/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid entry id", err.Error())
		return
	}

	if err := h.store.DeleteWorkEntry(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Export streams the filtered work entries as a CSV attachment.
func (h *EntryHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	h.respondDocument(w, h.store.ExportWorkEntries(filter, h.now()))
}

func (h *EntryHandler) decodeEntry(w http.ResponseWriter, r *http.Request) (domain.WorkEntry, bool) {
	var req dto.WorkEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return domain.WorkEntry{}, false
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return domain.WorkEntry{}, false
	}

	// Dates were checked by the datetime tag above.
	start, _ := parseDate(req.StartDate)
	entry := domain.WorkEntry{
		StartDate:             start,
		WorkType:              req.WorkType,
		Department:            req.Department,
		PersonInCharge:        req.PersonInCharge,
		Status:                domain.Status(req.Status),
		Notes:                 req.Notes,
		PurchaseRequestNumber: req.PurchaseRequestNumber,
	}
	if req.EndDate != "" {
		end, _ := parseDate(req.EndDate)
		entry.EndDate = &end
	}
	return entry, true
}

func (h *EntryHandler) parseFilter(w http.ResponseWriter, r *http.Request) (service.EntryFilter, bool) {
	q := r.URL.Query()
	query := dto.EntryListQuery{
		Search:     q.Get("search"),
		Status:     q.Get("status"),
		Department: q.Get("department"),
		Date:       q.Get("date"),
	}
	if err := h.validator.Struct(&query); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return service.EntryFilter{}, false
	}

	filter := service.EntryFilter{
		Search:     query.Search,
		Status:     domain.Status(query.Status),
		Department: query.Department,
	}
	if query.Date != "" {
		d, _ := parseDate(query.Date)
		filter.Date = &d
	}
	return filter, true
}

func toWorkEntryResponse(e domain.WorkEntry) dto.WorkEntryResponse {
	resp := dto.WorkEntryResponse{
		ID:                    e.ID,
		StartDate:             formatDate(e.StartDate),
		WorkType:              e.WorkType,
		Department:            e.Department,
		PersonInCharge:        e.PersonInCharge,
		Status:                string(e.Status),
		Notes:                 e.Notes,
		PurchaseRequestNumber: e.PurchaseRequestNumber,
	}
	if e.EndDate != nil {
		end := formatDate(*e.EndDate)
		resp.EndDate = &end
	}
	return resp
}
