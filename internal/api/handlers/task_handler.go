package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/tasklist/internal/auth"
	"github.com/isdelr/tasklist/internal/services"
	"github.com/rs/zerolog/log"
)

// TaskHandler serves the JSON task API. Routes must sit behind auth.RequireAPISession.
type TaskHandler struct {
	service services.TaskServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider) *TaskHandler {
	return &TaskHandler{service: service}
}

// TaskPayload is the body of a create request.
type TaskPayload struct {
	Task string `json:"task"`
}

// List returns the caller's tasks, newest first.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not logged in")
		return
	}

	tasks, err := h.service.GetTasksForUser(r.Context(), sess.UserID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", sess.UserID).Msg("Failed to list tasks")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// Create adds a task for the caller.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not logged in")
		return
	}

	// A body that is not a JSON object is treated like a missing task.
	var payload TaskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		payload = TaskPayload{}
	}

	text := strings.TrimSpace(payload.Task)
	if text == "" {
		writeError(w, http.StatusBadRequest, "Task cannot be empty")
		return
	}

	id, err := h.service.CreateTask(r.Context(), sess.UserID, text)
	if err != nil {
		log.Error().Err(err).Int64("user_id", sess.UserID).Msg("Failed to create task")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Saved", "id": id})
}

// Delete removes one of the caller's tasks. A task owned by someone else
// gets the same 404 as a missing one.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not logged in")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}

	deleted, err := h.service.DeleteTask(r.Context(), id, sess.UserID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", sess.UserID).Int64("task_id", id).Msg("Failed to delete task")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "Deleted", "id": id})
}
