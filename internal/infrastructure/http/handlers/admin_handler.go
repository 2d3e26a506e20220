package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dkarlsson/taskhive/internal/application/auth"
	"github.com/dkarlsson/taskhive/internal/infrastructure/http/middleware"
)

// AdminHandler serves /api/auth/admin/*. Role checks live in the use cases;
// the handler only extracts identity and maps errors.
type AdminHandler struct {
	listUsers      *auth.ListUsers
	updateUserRole *auth.UpdateUserRole
	validate       *validator.Validate
	log            zerolog.Logger
}

func NewAdminHandler(listUsers *auth.ListUsers, updateUserRole *auth.UpdateUserRole, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		listUsers:      listUsers,
		updateUserRole: updateUserRole,
		validate:       validator.New(),
		log:            log,
	}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	users, err := h.listUsers.Execute(r.Context(), ident)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	items := make([]AdminUserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, toAdminUserResponse(u))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": items})
}

func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid user id")
		return
	}
	var body struct {
		NewRole string `json:"new_role" validate:"required,max=20"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	if err := h.updateUserRole.Execute(r.Context(), ident, targetID, body.NewRole); err != nil {
		AuditLog(h.log, r, "admin.role_change", targetID.String(), false, err.Error())
		respondError(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "admin.role_change", targetID.String(), true, "")
	writeJSON(w, http.StatusOK, map[string]string{"message": "role updated"})
}
