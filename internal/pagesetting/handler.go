package pagesetting

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/novahq/nova-admin/internal/transport"
	"github.com/novahq/nova-admin/pkg/logger"
)

type ServiceAPI interface {
	GetAll() ([]Setting, error)
	Upsert(dto *UpsertSettingDTO) (*Setting, error)
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

func (h *Handler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.GetAll()
	if err != nil {
		h.Logger.Error("ListSettings: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"settings": settings})
}

func (h *Handler) UpsertSetting(w http.ResponseWriter, r *http.Request) {
	var dto UpsertSettingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	setting, err := h.Service.Upsert(&dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, setting)
}
