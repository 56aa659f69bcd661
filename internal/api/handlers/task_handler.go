package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/taskdesk-be/internal/models"
	"github.com/isdelr/taskdesk-be/internal/services"
	"github.com/rs/zerolog/log"
)

// TaskHandler handles HTTP requests related to tasks.
type TaskHandler struct {
	service services.TaskServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider) *TaskHandler {
	return &TaskHandler{service: service}
}

// TaskPayload is the full set of writable task fields.
type TaskPayload struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        models.Date `json:"date"`
	Completed   bool        `json:"completed"`
	Important   bool        `json:"important"`
}

func (p TaskPayload) task() models.Task {
	return models.Task{
		Title:       p.Title,
		Description: p.Description,
		Date:        p.Date,
		Completed:   p.Completed,
		Important:   p.Important,
	}
}

// GetAll handles the request to get all tasks.
func (h *TaskHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.GetAllTasks(r.Context())
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to retrieve tasks")
		ServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}

// Create handles the request to create a new task.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	var payload TaskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Error().Err(err).Msg("Failed to decode task")
		ServerError(w)
		return
	}

	task, err := h.service.CreateTask(r.Context(), payload.task())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create task")
		ServerError(w)
		return
	}

	logger.Debug().Int64("task_id", task.ID).Msg("Task created")
	writeText(w, http.StatusCreated, "Task created successfully")
}

// Update handles the request to overwrite an existing task.
// A missing id still answers 200; it is only logged.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	id, err := taskID(r)
	if err != nil {
		logger.Error().Err(err).Str("task_id", chi.URLParam(r, "id")).Msg("Invalid task id")
		ServerError(w)
		return
	}

	var payload TaskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Error().Err(err).Int64("task_id", id).Msg("Failed to decode task")
		ServerError(w)
		return
	}

	n, err := h.service.UpdateTask(r.Context(), id, payload.task())
	if err != nil {
		logger.Error().Err(err).Int64("task_id", id).Msg("Failed to update task")
		ServerError(w)
		return
	}
	if n == 0 {
		logger.Warn().Int64("task_id", id).Msg("Update matched no task")
	}

	writeText(w, http.StatusOK, "Task updated successfully")
}

// Delete handles the request to delete a task.
// A missing id still answers 200; it is only logged.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	id, err := taskID(r)
	if err != nil {
		logger.Error().Err(err).Str("task_id", chi.URLParam(r, "id")).Msg("Invalid task id")
		ServerError(w)
		return
	}

	n, err := h.service.DeleteTask(r.Context(), id)
	if err != nil {
		logger.Error().Err(err).Int64("task_id", id).Msg("Failed to delete task")
		ServerError(w)
		return
	}
	if n == 0 {
		logger.Warn().Int64("task_id", id).Msg("Delete matched no task")
	}

	writeText(w, http.StatusOK, "Task deleted successfully")
}

func taskID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
