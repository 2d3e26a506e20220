package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dkarlsson/taskhive/internal/application/task"
	"github.com/dkarlsson/taskhive/internal/domain"
	"github.com/dkarlsson/taskhive/internal/infrastructure/http/middleware"
)

type TaskHandler struct {
	svc      *task.Service
	validate *validator.Validate
	log      zerolog.Logger
}

func NewTaskHandler(svc *task.Service, log zerolog.Logger) *TaskHandler {
	return &TaskHandler{
		svc:      svc,
		validate: validator.New(),
		log:      log,
	}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	var body struct {
		Title       string     `json:"title" validate:"required,max=200"`
		Description string     `json:"description" validate:"max=2000"`
		DueDate     *time.Time `json:"due_date"`
		Priority    string     `json:"priority" validate:"max=20"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	created, err := h.svc.Create(r.Context(), ident, task.CreateInput{
		Title:       body.Title,
		Description: body.Description,
		DueDate:     body.DueDate,
		Priority:    body.Priority,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(created))
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.withTask(w, r, func(ident domain.Identity, id uuid.UUID) {
		t, err := h.svc.Get(r.Context(), ident, id)
		if err != nil {
			respondError(w, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, toTaskResponse(t))
	})
}

// ListAll serves GET /api/tasks, the admin-only view of every task.
func (h *TaskHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	tasks, err := h.svc.ListAll(r.Context(), ident)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": toTaskResponses(tasks)})
}

func (h *TaskHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	tasks, err := h.svc.ListMine(r.Context(), ident)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": toTaskResponses(tasks)})
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.withTask(w, r, func(ident domain.Identity, id uuid.UUID) {
		var body struct {
			Title       *string    `json:"title"`
			Description *string    `json:"description"`
			Completed   *bool      `json:"completed"`
			DueDate     *time.Time `json:"due_date"`
			Priority    *string    `json:"priority"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeErr(w, http.StatusBadRequest, "", "invalid body")
			return
		}
		updated, err := h.svc.Update(r.Context(), ident, id, task.Patch{
			Title:       body.Title,
			Description: body.Description,
			Completed:   body.Completed,
			DueDate:     body.DueDate,
			Priority:    body.Priority,
		})
		if err != nil {
			respondError(w, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, toTaskResponse(updated))
	})
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.withTask(w, r, func(ident domain.Identity, id uuid.UUID) {
		if err := h.svc.Delete(r.Context(), ident, id); err != nil {
			respondError(w, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "task deleted"})
	})
}

func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.setCompleted(w, r, true)
}

func (h *TaskHandler) Incomplete(w http.ResponseWriter, r *http.Request) {
	h.setCompleted(w, r, false)
}

func (h *TaskHandler) setCompleted(w http.ResponseWriter, r *http.Request, completed bool) {
	h.withTask(w, r, func(ident domain.Identity, id uuid.UUID) {
		t, err := h.svc.SetCompleted(r.Context(), ident, id, completed)
		if err != nil {
			respondError(w, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, toTaskResponse(t))
	})
}

func (h *TaskHandler) Search(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	query := r.URL.Query().Get("title")
	if query == "" {
		writeErr(w, http.StatusBadRequest, "", "title query parameter is required")
		return
	}
	tasks, err := h.svc.SearchByTitle(r.Context(), ident, query)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": toTaskResponses(tasks)})
}

func (h *TaskHandler) Completed(w http.ResponseWriter, r *http.Request) {
	h.listByCompletion(w, r, true)
}

func (h *TaskHandler) Pending(w http.ResponseWriter, r *http.Request) {
	h.listByCompletion(w, r, false)
}

func (h *TaskHandler) listByCompletion(w http.ResponseWriter, r *http.Request, completed bool) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	tasks, err := h.svc.ListByCompletion(r.Context(), ident, completed)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": toTaskResponses(tasks)})
}

func (h *TaskHandler) ByPriority(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	tasks, err := h.svc.ListByPriority(r.Context(), ident, chi.URLParam(r, "priority"))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": toTaskResponses(tasks)})
}

// withTask extracts identity and the {id} route parameter before invoking fn.
func (h *TaskHandler) withTask(w http.ResponseWriter, r *http.Request, fn func(domain.Identity, uuid.UUID)) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid task id")
		return
	}
	fn(ident, id)
}
