package weather

import (
	"context"
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
	GetAll() ([]*LocationResponse, error)
	GetByID(id int64) (*LocationResponse, error)
	Create(ctx context.Context, dto *CreateLocationDTO) (*LocationResponse, error)
	Delete(id int64) error
	OverrideField(ctx context.Context, id int64, dto *OverrideFieldDTO, userID int64) (*LocationResponse, error)
	RevertField(ctx context.Context, id int64, field string, userID int64) (*LocationResponse, error)
	Refresh(ctx context.Context, id int64) (*LocationResponse, error)
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

func (h *Handler) locationIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid location ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Service.GetAll()
	if err != nil {
		h.Logger.Error("ListLocations: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"locations": locations})
}

func (h *Handler) GetLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.locationIDParam(w, r)
	if !ok {
		return
	}

	loc, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, loc)
}

func (h *Handler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var dto CreateLocationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	loc, err := h.Service.Create(r.Context(), &dto)
	if err != nil {
		h.Logger.Error("CreateLocation: service error", "provider_id", dto.ProviderID, "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, loc)
}

func (h *Handler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.locationIDParam(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OverrideField handles PATCH /weather/locations/{id}/override.
func (h *Handler) OverrideField(w http.ResponseWriter, r *http.Request) {
	id, ok := h.locationIDParam(w, r)
	if !ok {
		return
	}

	session, ok := auth.SessionFromContext(r.Context())
	if !ok || session == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto OverrideFieldDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	loc, err := h.Service.OverrideField(r.Context(), id, &dto, session.ID)
	if err != nil {
		h.Logger.Error("OverrideField: service error", "location_id", id, "field", dto.Field, "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, loc)
}

// RevertField handles DELETE /weather/locations/{id}/override?field=...
func (h *Handler) RevertField(w http.ResponseWriter, r *http.Request) {
	id, ok := h.locationIDParam(w, r)
	if !ok {
		return
	}

	session, ok := auth.SessionFromContext(r.Context())
	if !ok || session == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	field := r.URL.Query().Get("field")
	loc, err := h.Service.RevertField(r.Context(), id, field, session.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, loc)
}

// Refresh handles POST /weather/locations/{id}/refresh.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	id, ok := h.locationIDParam(w, r)
	if !ok {
		return
	}

	loc, err := h.Service.Refresh(r.Context(), id)
	if err != nil {
		h.Logger.Error("Refresh: service error", "location_id", id, "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, loc)
}
