package permission

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/novahq/nova-admin/internal/transport"
	"github.com/novahq/nova-admin/pkg/logger"
)

type ServiceAPI interface {
	GetAll() ([]Entry, error)
	GetByKey(keyStr string) (*Entry, error)
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

// ListPermissions returns the full catalog; group and user grant screens
// populate their pickers from it.
func (h *Handler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.GetAll()
	if err != nil {
		h.Logger.Error("ListPermissions: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"permissions": entries})
}

func (h *Handler) GetPermission(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	entry, err := h.Service.GetByKey(key)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, entry)
}
