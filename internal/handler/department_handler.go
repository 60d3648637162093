package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/it-logbook-api/internal/dto"
	"github.com/it-logbook-api/internal/service"
)

// DepartmentHandler serves the department list under /departments/.
// Departments are addressed by their position in the list.
type DepartmentHandler struct {
	responder
	deptService service.DepartmentService
	validator   *validator.Validate
}

func NewDepartmentHandler(deptService service.DepartmentService, logger *slog.Logger) *DepartmentHandler {
	return &DepartmentHandler{
		responder:   responder{logger: logger},
		deptService: deptService,
		validator:   validator.New(),
	}
}

func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.deptService.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.DepartmentListResponse{Departments: names})
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	names, err := h.deptService.Add(r.Context(), req.Name)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, dto.DepartmentListResponse{Departments: names})
}

func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	index, ok := h.extractIndex(w, r)
	if !ok {
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	names, err := h.deptService.Rename(r.Context(), index, req.Name)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.DepartmentListResponse{Departments: names})
}

func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	index, ok := h.extractIndex(w, r)
	if !ok {
		return
	}

	names, err := h.deptService.Delete(r.Context(), index)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.DepartmentListResponse{Departments: names})
}

func (h *DepartmentHandler) decode(w http.ResponseWriter, r *http.Request) (dto.DepartmentRequest, bool) {
	var req dto.DepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return req, false
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return req, false
	}
	return req, true
}

func (h *DepartmentHandler) extractIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	seg, err := extractSegment(r, "/departments/")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid department index", err.Error())
		return 0, false
	}
	index, err := strconv.Atoi(seg)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid department index", err.Error())
		return 0, false
	}
	return index, true
}
