package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/handler/dto"
	"github.com/taskdeck/taskdeck/internal/service"
)

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	svc    *service.ProjectService
	logger *slog.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(svc *service.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{svc: svc, logger: logger}
}

// Create handles POST /api/projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		writeValidationError(w, "Title is required")
		return
	}

	principal := auth.PrincipalFromContext(r.Context())

	project, err := h.svc.CreateProject(r.Context(), principal, strings.TrimSpace(req.Title), req.Description)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("project created",
		slog.Int64("project_id", project.Project.ID),
		slog.Int64("owner_id", project.Project.OwnerID),
	)

	writeJSON(w, http.StatusCreated, dto.ToProjectResponse(*project))
}

// List handles GET /api/projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	page, size := pageRequest(r)

	result, err := h.svc.ListProjects(r.Context(), principal, service.PageRequest{Page: page, Size: size})
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPageResponse(result, dto.ToProjectResponse))
}

// Get handles GET /api/projects/{projectID}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	project, err := h.svc.GetProject(r.Context(), principal, pathID(r, "projectID"))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectResponse(*project))
}

// Update handles PUT /api/projects/{projectID}.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		writeValidationError(w, "Title is required")
		return
	}

	principal := auth.PrincipalFromContext(r.Context())

	project, err := h.svc.UpdateProject(r.Context(), principal, pathID(r, "projectID"), strings.TrimSpace(req.Title), req.Description)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("project updated", slog.Int64("project_id", project.Project.ID))

	writeJSON(w, http.StatusOK, dto.ToProjectResponse(*project))
}

// Delete handles DELETE /api/projects/{projectID}.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	id := pathID(r, "projectID")

	if err := h.svc.DeleteProject(r.Context(), principal, id); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("project deleted", slog.Int64("project_id", id))

	w.WriteHeader(http.StatusNoContent)
}

// Progress handles GET /api/projects/{projectID}/progress.
func (h *ProjectHandler) Progress(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	id := pathID(r, "projectID")

	snapshot, err := h.svc.GetProgress(r.Context(), principal, id)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProgressResponse{
		ProjectID:          id,
		TotalTasks:         snapshot.TotalTasks,
		CompletedTasks:     snapshot.CompletedTasks,
		ProgressPercentage: snapshot.Percentage,
	})
}
