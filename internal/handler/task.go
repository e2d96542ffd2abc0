package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/handler/dto"
	"github.com/taskdeck/taskdeck/internal/service"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	svc    *service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *service.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, logger: logger}
}

// List handles GET /api/projects/{projectID}/tasks.
// Query params: completed (true/false), search (title substring),
// page, size.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	query := r.URL.Query()

	input := service.TaskListInput{
		Search: query.Get("search"),
	}
	if c := query.Get("completed"); c != "" {
		completed, err := strconv.ParseBool(c)
		if err != nil {
			writeValidationError(w, "completed must be true or false")
			return
		}
		input.Completed = &completed
	}

	page, size := pageRequest(r)

	result, err := h.svc.ListTasks(r.Context(), principal, pathID(r, "projectID"), input, service.PageRequest{Page: page, Size: size})
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPageResponse(result, dto.ToTaskResponse))
}

// Get handles GET /api/projects/{projectID}/tasks/{taskID}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	task, err := h.svc.GetTask(r.Context(), principal, pathID(r, "projectID"), pathID(r, "taskID"))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// Create handles POST /api/projects/{projectID}/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		writeValidationError(w, "Title is required")
		return
	}

	principal := auth.PrincipalFromContext(r.Context())

	task, err := h.svc.CreateTask(r.Context(), principal, pathID(r, "projectID"), service.CreateTaskInput{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		DueDate:     req.DueDate.TimePtr(),
	})
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("project_id", task.ProjectID),
	)

	writeJSON(w, http.StatusCreated, dto.ToTaskResponse(task))
}

// Update handles PUT /api/projects/{projectID}/tasks/{taskID}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		writeValidationError(w, "Title is required")
		return
	}

	principal := auth.PrincipalFromContext(r.Context())

	task, err := h.svc.UpdateTask(r.Context(), principal, pathID(r, "projectID"), pathID(r, "taskID"), service.CreateTaskInput{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		DueDate:     req.DueDate.TimePtr(),
	})
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("task updated", slog.Int64("task_id", task.ID))

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// Complete handles PATCH /api/projects/{projectID}/tasks/{taskID}/complete.
// One-way: it only marks the task completed.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	task, err := h.svc.MarkCompleted(r.Context(), principal, pathID(r, "projectID"), pathID(r, "taskID"))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// SetCompletion handles PATCH /api/projects/{projectID}/tasks/{taskID}/completion.
// The target state comes from the required completed query parameter.
func (h *TaskHandler) SetCompletion(w http.ResponseWriter, r *http.Request) {
	completed, err := strconv.ParseBool(r.URL.Query().Get("completed"))
	if err != nil {
		writeValidationError(w, "completed must be true or false")
		return
	}

	principal := auth.PrincipalFromContext(r.Context())

	task, err := h.svc.SetCompleted(r.Context(), principal, pathID(r, "projectID"), pathID(r, "taskID"), completed)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// Delete handles DELETE /api/projects/{projectID}/tasks/{taskID}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	taskID := pathID(r, "taskID")

	if err := h.svc.DeleteTask(r.Context(), principal, pathID(r, "projectID"), taskID); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("task deleted", slog.Int64("task_id", taskID))

	w.WriteHeader(http.StatusNoContent)
}
