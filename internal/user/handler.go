package user

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/novahq/nova-admin/internal/auth"
	"github.com/novahq/nova-admin/internal/transport"
	"github.com/novahq/nova-admin/pkg/logger"
)

type ServiceAPI interface {
	GetAll(limit, offset int) ([]*User, error)
	GetByID(id int64) (*User, error)
	Create(dto *CreateUserDTO) (*User, error)
	Update(id int64, dto *UpdateUserDTO) (*User, error)
	UpdateStatus(id int64, status string) (*User, error)
	SetSuperuser(id int64, isSuperuser bool) (*User, error)
	Delete(id int64) error
	GrantPermission(userID int64, permissionKey string, grantedBy *int64) error
	RevokePermission(userID int64, permissionKey string) error
	GetPermissions(userID int64) ([]string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) userIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 200 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	users, err := h.Service.GetAll(limit, offset)
	if err != nil {
		h.Logger.Error("ListUsers: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"users":  users,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	u, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

// GetCurrentUser handles GET /users/me from the session snapshot.
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok || session == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.Service.GetByID(session.ID)
	if err != nil {
		h.Logger.Error("GetCurrentUser: service error", "user_id", session.ID, "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.Create(&dto)
	if err != nil {
		h.Logger.Error("CreateUser: service error", "email", dto.Email, "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, u)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	var dto UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.Update(id, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.UpdateStatus(id, dto.Status)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) SetSuperuser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	var dto SetSuperuserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.SetSuperuser(id, dto.IsSuperuser)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GrantPermission(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	var dto GrantPermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var grantedBy *int64
	if session, ok := auth.SessionFromContext(r.Context()); ok && session != nil {
		grantedBy = &session.ID
	}

	if err := h.Service.GrantPermission(id, dto.PermissionKey, grantedBy); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "granted"})
}

func (h *Handler) RevokePermission(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	key := chi.URLParam(r, "key")
	if key == "" {
		h.WriteError(w, http.StatusBadRequest, "missing permission key")
		return
	}

	if err := h.Service.RevokePermission(id, key); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	keys, err := h.Service.GetPermissions(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"permissions": keys})
}
