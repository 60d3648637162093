package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/it-logbook-api/internal/dto"
	"github.com/it-logbook-api/internal/middleware"
	"github.com/it-logbook-api/internal/service"
)

// Router wires the API routes.
type Router struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	store         *service.LogbookStore
	entryHandler  *EntryHandler
	backupHandler *BackupHandler
	deptHandler   *DepartmentHandler
}

func NewRouter(
	store *service.LogbookStore,
	deptService service.DepartmentService,
	logger *slog.Logger,
) *Router {
	return &Router{
		mux:           http.NewServeMux(),
		logger:        logger,
		store:         store,
		entryHandler:  NewEntryHandler(store, logger),
		backupHandler: NewBackupHandler(store, logger),
		deptHandler:   NewDepartmentHandler(deptService, logger),
	}
}

// Setup registers the routes and wraps them in middleware.
func (r *Router) Setup() http.Handler {
	r.mux.HandleFunc("/entries/", r.entriesRouter)
	r.mux.HandleFunc("/backups/", r.backupsRouter)
	r.mux.HandleFunc("/departments/", r.departmentsRouter)
	r.mux.HandleFunc("/health", r.health)

	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}

func (r *Router) health(w http.ResponseWriter, _ *http.Request) {
	r.entryHandler.respondJSON(w, http.StatusOK, dto.HealthResponse{
		Status: "ok",
		State:  r.store.State().String(),
	})
}

func (r *Router) entriesRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.Trim(strings.TrimPrefix(req.URL.Path, "/entries"), "/")
	h := r.entryHandler

	switch {
	case path == "":
		switch req.Method {
		case http.MethodGet:
			h.List(w, req)
		case http.MethodPost:
			h.Create(w, req)
		default:
			methodNotAllowed(w)
		}
	case path == "export":
		if req.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.Export(w, req)
	case !strings.Contains(path, "/"):
		switch req.Method {
		case http.MethodGet:
			h.GetByID(w, req)
		case http.MethodPut:
			h.Update(w, req)
		case http.MethodDelete:
			h.Delete(w, req)
		default:
			methodNotAllowed(w)
		}
	default:
		notFound(w)
	}
}

func (r *Router) backupsRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.Trim(strings.TrimPrefix(req.URL.Path, "/backups"), "/")
	h := r.backupHandler

	switch {
	case path == "":
		switch req.Method {
		case http.MethodGet:
			h.List(w, req)
		case http.MethodPost:
			h.Create(w, req)
		default:
			methodNotAllowed(w)
		}
	case path == "export":
		if req.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.Export(w, req)
	case !strings.Contains(path, "/"):
		switch req.Method {
		case http.MethodGet:
			h.GetByID(w, req)
		case http.MethodPut:
			h.Update(w, req)
		case http.MethodDelete:
			h.Delete(w, req)
		default:
			methodNotAllowed(w)
		}
	default:
		notFound(w)
	}
}

func (r *Router) departmentsRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.Trim(strings.TrimPrefix(req.URL.Path, "/departments"), "/")
	h := r.deptHandler

	switch {
	case path == "":
		switch req.Method {
		case http.MethodGet:
			h.List(w, req)
		case http.MethodPost:
			h.Create(w, req)
		default:
			methodNotAllowed(w)
		}
	case !strings.Contains(path, "/"):
		// /departments/{index}
		switch req.Method {
		case http.MethodPut:
			h.Update(w, req)
		case http.MethodDelete:
			h.Delete(w, req)
		default:
			methodNotAllowed(w)
		}
	default:
		notFound(w)
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
}

func notFound(w http.ResponseWriter) {
	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}
