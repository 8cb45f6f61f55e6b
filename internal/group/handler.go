package group

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
	GetAll() ([]*Group, error)
	GetByID(id int64) (*Group, error)
	Create(dto *CreateGroupDTO) (*Group, error)
	Update(id int64, dto *UpdateGroupDTO) (*Group, error)
	Delete(id int64) error
	GetMembers(groupID int64) ([]Member, error)
	AddMember(groupID, userID int64) error
	RemoveMember(groupID, userID int64) error
	GrantPermission(groupID int64, permissionKey string, grantedBy *int64) error
	RevokePermission(groupID int64, permissionKey string) error
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

func (h *Handler) groupIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid group ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Service.GetAll()
	if err != nil {
		h.Logger.Error("ListGroups: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"groups": groups})
}

func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := h.groupIDParam(w, r)
	if !ok {
		return
	}

	g, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, g)
}

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var dto CreateGroupDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.Service.Create(&dto)
	if err != nil {
		h.Logger.Error("CreateGroup: service error", "name", dto.Name, "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, g)
}

func (h *Handler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := h.groupIDParam(w, r)
	if !ok {
		return
	}

	var dto UpdateGroupDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.Service.Update(id, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, g)
}

func (h *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := h.groupIDParam(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := h.groupIDParam(w, r)
	if !ok {
		return
	}

	members, err := h.Service.GetMembers(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"members": members})
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	id, ok := h.groupIDParam(w, r)
	if !ok {
		return
	}

	var dto MemberDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.AddMember(id, dto.UserID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "added"})
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id, ok := h.groupIDParam(w, r)
	if !ok {
		return
	}

	userIDStr := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	if err := h.Service.RemoveMember(id, userID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GrantPermission(w http.ResponseWriter, r *http.Request) {
	id, ok := h.groupIDParam(w, r)
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
	id, ok := h.groupIDParam(w, r)
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
