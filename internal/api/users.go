package api

import (
	"fmt"
	"net/http"
	"time"

	"bookcourier/internal/auth"
	"bookcourier/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Register handles POST /users. Duplicate registration is a tolerated
// no-op, and the stored role is always "user" no matter what the body
// says.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	existing, err := h.Store.Users.ByEmail(r.Context(), req.Email)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Register: lookup failed: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		h.respondJSON(w, http.StatusOK, map[string]interface{}{
			"inserted": false,
			"message":  "user already exists",
		})
		return
	}

	if req.Role != "" && req.Role != models.RoleUser {
		h.Logger.LogSecurity("ROLE_ESCALATION", fmt.Sprintf("registration for %s supplied role %q, forcing user", req.Email, req.Role))
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Email:     req.Email,
		Name:      req.Name,
		Role:      models.RoleUser,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Store.Users.Create(r.Context(), user); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Register: insert failed: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.Logger.Info("API", fmt.Sprintf("Register: created user %s", user.Email))
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"inserted": true,
		"id":       user.ID,
	})
}

// ListUsers handles GET /users (admin).
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.Users.List(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListUsers: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.respondJSON(w, http.StatusOK, users)
}

// GetUserRole handles GET /users/{email}/role.
func (h *Handler) GetUserRole(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	role, err := h.Store.Users.RoleByEmail(r.Context(), email)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetUserRole: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if role == "" {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"role": role})
}

// UpdateUserRole handles PATCH /users/{email}/role (admin).
func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var req models.RoleUpdateRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.Store.Users.UpdateRole(r.Context(), email, req.Role)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdateUserRole: %v", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !updated {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	h.Logger.Info("API", fmt.Sprintf("UpdateUserRole: %s is now %s (by %s)", email, req.Role, auth.PrincipalEmail(r.Context())))
	h.respondJSON(w, http.StatusOK, map[string]string{"email": email, "role": req.Role})
}
