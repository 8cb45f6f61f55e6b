package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/novahq/nova-admin/internal/access"
	"github.com/novahq/nova-admin/internal/transport"
	"github.com/novahq/nova-admin/pkg/logger"
)

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

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err)

		switch err {
		case ErrInvalidCredentials:
			h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		case ErrUserInactive:
			h.WriteError(w, http.StatusForbidden, "user is inactive")
		default:
			if _, ok := err.(ValidationError); ok {
				h.WriteError(w, http.StatusBadRequest, err.Error())
			} else {
				h.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.Logger.Error("token refresh failed", "error", err)

		switch err {
		case ErrInvalidToken, ErrTokenExpired:
			h.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
		default:
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	if _, err := h.Service.ValidateAccessToken(token); err != nil {
		h.WriteError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PageAccess is the per-page gate summary the dashboard uses for menus and
// routing.
type PageAccess struct {
	CanRead  bool `json:"can_read"`
	CanWrite bool `json:"can_write"`
}

// SessionResponse is the UI bootstrap payload. The state field must be
// checked first: system_locked pre-empts everything else.
type SessionResponse struct {
	State       string                `json:"state"`
	User        *SessionUser          `json:"user,omitempty"`
	Superuser   bool                  `json:"is_superuser"`
	Permissions []string              `json:"permissions,omitempty"`
	Pages       map[string]PageAccess `json:"pages,omitempty"`
}

// Session handles GET /session. It works with or without a bearer token so
// the lockout and login screens can render before authentication.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	session, err := h.Service.SessionForToken(h.ExtractTokenFromHeader(r))
	if err != nil {
		h.Logger.Error("session resolution failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	snap := session.Snapshot
	resp := SessionResponse{State: string(snap.State)}

	if snap.State == access.StateResolved && snap.Authenticated {
		resp.User = session
		resp.Superuser = snap.IsSuperuser
		resp.Permissions = snap.EffectiveKeys()
		resp.Pages = make(map[string]PageAccess, len(access.Pages()))
		for _, page := range access.Pages() {
			resp.Pages[page] = PageAccess{
				CanRead:  snap.CanReadPage(page),
				CanWrite: snap.CanWritePage(page),
			}
		}
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// AuthMiddleware validates the bearer token and resolves the session
// snapshot once per request. The locked state turns every protected route
// into a 503 pointing at provisioning.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.Logger.Warn("token validation failed", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		session, err := h.Service.ResolveSession(claims.UserID)
		if err != nil {
			h.Logger.Error("failed to resolve session", "user_id", claims.UserID, "error", err)
			h.WriteError(w, http.StatusUnauthorized, "user not found")
			return
		}

		if session.Snapshot.State == access.StateSystemLocked {
			h.WriteError(w, http.StatusServiceUnavailable, "system locked: no superuser exists")
			return
		}

		if !session.Snapshot.Authenticated {
			h.WriteError(w, http.StatusUnauthorized, "user not found")
			return
		}

		ctx := ContextWithSession(r.Context(), session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
