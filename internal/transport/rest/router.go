package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/novahq/nova-admin/internal/access"
	"github.com/novahq/nova-admin/internal/auth"
	"github.com/novahq/nova-admin/internal/channel"
	"github.com/novahq/nova-admin/internal/group"
	"github.com/novahq/nova-admin/internal/pagesetting"
	"github.com/novahq/nova-admin/internal/permission"
	"github.com/novahq/nova-admin/internal/sports"
	"github.com/novahq/nova-admin/internal/transport/middleware"
	"github.com/novahq/nova-admin/internal/transport/swagger"
	"github.com/novahq/nova-admin/internal/user"
	"github.com/novahq/nova-admin/internal/weather"
)

// Handlers collects every HTTP handler the router mounts. Nil entries are
// skipped, which keeps partial wiring in tests cheap.
type Handlers struct {
	Auth        *auth.Handler
	User        *user.Handler
	Group       *group.Handler
	Permission  *permission.Handler
	Channel     *channel.Handler
	PageSetting *pagesetting.Handler
	Weather     *weather.Handler
	Sports      *sports.Handler
}

// RegisterAllRoutes mounts the full API surface under /api/v1. Page gates
// follow the resolver's read/write split: system pages are admin-only,
// dashboard-config needs the manage_config permission, and the domain
// pages check their own read/write keys.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, gate *auth.AccessGate, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI document and swagger UI live outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.RefreshToken)
				sr.Post("/logout", h.Auth.Logout)
			})

			// Session bootstrap works with or without a token so the login
			// and lockout screens can render first.
			r.Get("/session", h.Auth.Session)
		}

		if h.Auth == nil || gate == nil {
			return
		}

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Use(middleware.SessionLogContext)

			if h.User != nil {
				pr.Get("/users/me", h.User.GetCurrentUser)

				pr.Route("/users", func(ur chi.Router) {
					ur.Use(gate.RequirePageRead(access.PageUsers))
					ur.Get("/", h.User.ListUsers)
					ur.Get("/{id}", h.User.GetUser)
					ur.Get("/{id}/permissions", h.User.ListPermissions)

					ur.Group(func(wr chi.Router) {
						wr.Use(gate.RequirePageWrite(access.PageUsers))
						wr.Post("/", h.User.CreateUser)
						wr.Patch("/{id}", h.User.UpdateUser)
						wr.Patch("/{id}/status", h.User.UpdateUserStatus)
						wr.Patch("/{id}/superuser", h.User.SetSuperuser)
						wr.Delete("/{id}", h.User.DeleteUser)
						wr.Post("/{id}/permissions", h.User.GrantPermission)
						wr.Delete("/{id}/permissions/{key}", h.User.RevokePermission)
					})
				})
			}

			if h.Group != nil {
				pr.Route("/groups", func(gr chi.Router) {
					gr.Use(gate.RequirePageRead(access.PageGroups))
					gr.Get("/", h.Group.ListGroups)
					gr.Get("/{id}", h.Group.GetGroup)
					gr.Get("/{id}/members", h.Group.ListMembers)

					gr.Group(func(wr chi.Router) {
						wr.Use(gate.RequirePageWrite(access.PageGroups))
						wr.Post("/", h.Group.CreateGroup)
						wr.Patch("/{id}", h.Group.UpdateGroup)
						wr.Delete("/{id}", h.Group.DeleteGroup)
						wr.Post("/{id}/members", h.Group.AddMember)
						wr.Delete("/{id}/members/{userID}", h.Group.RemoveMember)
						wr.Post("/{id}/permissions", h.Group.GrantPermission)
						wr.Delete("/{id}/permissions/{key}", h.Group.RevokePermission)
					})
				})
			}

			if h.Permission != nil {
				pr.Route("/permissions", func(cr chi.Router) {
					cr.Use(gate.RequirePageRead(access.PageGroups))
					cr.Get("/", h.Permission.ListPermissions)
					cr.Get("/{key}", h.Permission.GetPermission)
				})
			}

			if h.Channel != nil {
				pr.Route("/channels", func(cr chi.Router) {
					cr.Use(gate.RequirePageRead(access.PageChannels))
					cr.Get("/", h.Channel.ListChannels)
					cr.Get("/{id}", h.Channel.GetChannel)
					cr.Get("/{id}/access", h.Channel.ListAccess)

					cr.Group(func(wr chi.Router) {
						wr.Use(gate.RequirePageWrite(access.PageChannels))
						wr.Post("/", h.Channel.CreateChannel)
						wr.Delete("/{id}", h.Channel.DeleteChannel)
						wr.Put("/{id}/access", h.Channel.UpsertAccess)
						wr.Delete("/{id}/access/{userID}", h.Channel.RemoveAccess)
					})
				})
			}

			if h.PageSetting != nil {
				pr.Route("/page-settings", func(sr chi.Router) {
					sr.Get("/", h.PageSetting.ListSettings)

					sr.Group(func(wr chi.Router) {
						wr.Use(gate.RequirePageWrite(access.PageDashboardConfig))
						wr.Put("/", h.PageSetting.UpsertSetting)
					})
				})
			}

			if h.Weather != nil {
				pr.Route("/weather/locations", func(wl chi.Router) {
					wl.Use(gate.RequirePageRead(access.PageWeather))
					wl.Get("/", h.Weather.ListLocations)
					wl.Get("/{id}", h.Weather.GetLocation)

					wl.Group(func(wr chi.Router) {
						wr.Use(gate.RequirePageWrite(access.PageWeather))
						wr.Post("/", h.Weather.CreateLocation)
						wr.Delete("/{id}", h.Weather.DeleteLocation)
						wr.Patch("/{id}/override", h.Weather.OverrideField)
						wr.Delete("/{id}/override", h.Weather.RevertField)
						wr.Post("/{id}/refresh", h.Weather.Refresh)
					})
				})
			}

			if h.Sports != nil {
				pr.Route("/sports", func(sr chi.Router) {
					sr.Use(gate.RequirePageRead(access.PageSports))
					sr.Get("/teams", h.Sports.ListTeams)
					sr.Get("/games", h.Sports.ListGames)
				})
			}
		})
	})
}
