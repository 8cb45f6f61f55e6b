package auth_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"
	ginkgo "github.com/onsi/ginkgo/v2"
	gomega "github.com/onsi/gomega"

	"github.com/novahq/nova-admin/internal/access"
	"github.com/novahq/nova-admin/internal/auth"
	"github.com/novahq/nova-admin/pkg/logger"
)

var _ = ginkgo.Describe("AccessGate", func() {
	var (
		gate *auth.AccessGate
		next http.Handler
	)

	ginkgo.BeforeEach(func() {
		gate = auth.NewAccessGate(logger.L())
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	serve := func(mw func(http.Handler) http.Handler, session *auth.SessionUser, target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if session != nil {
			req = req.WithContext(auth.ContextWithSession(req.Context(), session))
		}
		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, req)
		return rec
	}

	editorSession := func() *auth.SessionUser {
		snapshot := access.Resolve(7, access.StatusActive, false,
			[]access.GroupGrant{{ID: 1, Name: "Weather Ops", PermissionKeys: []string{"nova.weather.read", "nova.weather.write"}}},
			nil,
			[]access.ChannelGrant{{ChannelID: "alerts", CanWrite: true}, {ChannelID: "announcements", CanWrite: false}},
		)
		return &auth.SessionUser{ID: 7, Status: "active", Snapshot: snapshot}
	}

	ginkgo.Describe("RequirePermission", func() {
		ginkgo.It("rejects requests without a session", func() {
			rec := serve(gate.RequirePermission("nova.weather.read"), nil, "/weather")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("allows a session holding the key", func() {
			rec := serve(gate.RequirePermission("nova.weather.read"), editorSession(), "/weather")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("denies a session missing the key", func() {
			rec := serve(gate.RequirePermission("nova.sports.read"), editorSession(), "/sports")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})
	})

	ginkgo.Describe("page gates", func() {
		ginkgo.It("blocks system pages for non-admins", func() {
			rec := serve(gate.RequirePageRead(access.PageUsers), editorSession(), "/users")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("opens system pages for superusers", func() {
			snapshot := access.Resolve(1, access.StatusActive, true, nil, nil, nil)
			admin := &auth.SessionUser{ID: 1, Status: "active", Snapshot: snapshot}
			rec := serve(gate.RequirePageRead(access.PageUsers), admin, "/users")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("allows page writes for holders of the write key", func() {
			rec := serve(gate.RequirePageWrite(access.PageWeather), editorSession(), "/weather")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("keeps pending accounts read-only", func() {
			snapshot := access.Resolve(9, access.StatusPending, false, nil,
				[]string{"nova.weather.read", "nova.weather.write"}, nil)
			pending := &auth.SessionUser{ID: 9, Status: "pending", Snapshot: snapshot}

			rec := serve(gate.RequirePageRead(access.PageWeather), pending, "/weather")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))

			rec = serve(gate.RequirePageWrite(access.PageWeather), pending, "/weather")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("denies everything while the system is locked", func() {
			locked := &auth.SessionUser{ID: 0, Snapshot: access.SystemLocked()}
			rec := serve(gate.RequirePageRead(access.PageWeather), locked, "/weather")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})
	})

	ginkgo.Describe("RequireChannelWrite", func() {
		serveWithParam := func(session *auth.SessionUser, channelID string) *httptest.ResponseRecorder {
			router := chi.NewRouter()
			router.With(gate.RequireChannelWrite("id")).Post("/channels/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/channels/"+channelID+"/messages", nil)
			req = req.WithContext(auth.ContextWithSession(req.Context(), session))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			return rec
		}

		ginkgo.It("allows writes on channels with the capability", func() {
			rec := serveWithParam(editorSession(), "alerts")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("denies writes on channels without the capability", func() {
			rec := serveWithParam(editorSession(), "announcements")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("lets superusers write to any channel", func() {
			snapshot := access.Resolve(1, access.StatusActive, true, nil, nil, nil)
			admin := &auth.SessionUser{ID: 1, Status: "active", Snapshot: snapshot}
			rec := serveWithParam(admin, "anything")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})
	})
})
