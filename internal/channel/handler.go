package channel

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/novahq/nova-admin/internal/transport"
	"github.com/novahq/nova-admin/pkg/logger"
)

type ServiceAPI interface {
	GetAll() ([]*Channel, error)
	GetByID(id string) (*Channel, error)
	Create(dto *CreateChannelDTO) (*Channel, error)
	Delete(id string) error
	GetAccess(channelID string) ([]AccessEntry, error)
	UpsertAccess(channelID string, dto *UpsertAccessDTO) error
	RemoveAccess(channelID string, userID int64) error
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

func (h *Handler) ListChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.Service.GetAll()
	if err != nil {
		h.Logger.Error("ListChannels: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"channels": channels})
}

func (h *Handler) GetChannel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) CreateChannel(w http.ResponseWriter, r *http.Request) {
	var dto CreateChannelDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.Create(&dto)
	if err != nil {
		h.Logger.Error("CreateChannel: service error", "channel_id", dto.ID, "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) DeleteChannel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Service.Delete(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListAccess(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entries, err := h.Service.GetAccess(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"access": entries})
}

func (h *Handler) UpsertAccess(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto UpsertAccessDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.UpsertAccess(id, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) RemoveAccess(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	userIDStr := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	if err := h.Service.RemoveAccess(id, userID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
