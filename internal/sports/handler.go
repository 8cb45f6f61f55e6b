package sports

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/novahq/nova-admin/internal/transport"
	"github.com/novahq/nova-admin/pkg/logger"
)

type ServiceAPI interface {
	GetTeams(league string, limit, offset int) ([]Team, error)
	GetGames(filter GameFilter) ([]Game, error)
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

func paging(r *http.Request) (int, int) {
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
	return limit, offset
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	limit, offset := paging(r)
	league := r.URL.Query().Get("league")

	teams, err := h.Service.GetTeams(league, limit, offset)
	if err != nil {
		h.Logger.Error("ListTeams: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"teams":  teams,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	limit, offset := paging(r)

	games, err := h.Service.GetGames(GameFilter{
		League: r.URL.Query().Get("league"),
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.Logger.Error("ListGames: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"games":  games,
		"limit":  limit,
		"offset": offset,
	})
}
