package access

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func activeUser(keys ...string) *Snapshot {
	return Resolve(1, StatusActive, false, nil, keys, nil)
}

var _ = Describe("Resolver", func() {
	Describe("HasPermission", func() {
		Context("for a non-superuser active user", func() {
			It("should resolve exactly the union of direct and group keys", func() {
				groups := []GroupGrant{
					{ID: 10, Name: "Weather Ops", PermissionKeys: []string{"nova.weather.read"}},
					{ID: 11, Name: "Weather Editors", PermissionKeys: []string{"nova.weather.write"}},
				}
				snap := Resolve(1, StatusActive, false, groups, []string{"nova.sports.read"}, nil)

				Expect(snap.HasPermission("nova.weather.read")).To(BeTrue())
				Expect(snap.HasPermission("nova.weather.write")).To(BeTrue())
				Expect(snap.HasPermission("nova.sports.read")).To(BeTrue())
				Expect(snap.HasPermission("nova.sports.write")).To(BeFalse())
				Expect(snap.HasPermission("nova.users.admin")).To(BeFalse())
			})

			It("should treat a granted wildcard as every permission", func() {
				snap := activeUser(Wildcard)
				Expect(snap.HasPermission("nova.weather.write")).To(BeTrue())
				Expect(snap.HasPermission("anything.at.all")).To(BeTrue())
			})
		})

		Context("for a superuser", func() {
			It("should be true for arbitrary keys, even uncataloged ones", func() {
				snap := Resolve(1, StatusActive, true, nil, nil, nil)
				Expect(snap.HasPermission("nova.weather.write")).To(BeTrue())
				Expect(snap.HasPermission("made.up.key")).To(BeTrue())
			})
		})

		Context("for a pending user", func() {
			It("should suppress write-class keys even when granted", func() {
				snap := Resolve(1, StatusPending, false, nil, []string{"nova.weather.write", "nova.weather.read"}, nil)
				Expect(snap.HasPermission("nova.weather.write")).To(BeFalse())
				Expect(snap.HasPermission("nova.weather.read")).To(BeTrue())
			})
		})

		Context("for missing or dead sessions", func() {
			It("should deny everything", func() {
				var nilSnap *Snapshot
				Expect(nilSnap.HasPermission("nova.weather.read")).To(BeFalse())
				Expect(Uninitialized().HasPermission("nova.weather.read")).To(BeFalse())
				Expect(Loading().HasPermission("nova.weather.read")).To(BeFalse())
				Expect(Unauthenticated().HasPermission("nova.weather.read")).To(BeFalse())
			})

			It("should deny inactive users regardless of grants", func() {
				snap := Resolve(1, StatusInactive, false, nil, []string{"nova.weather.read"}, nil)
				Expect(snap.HasPermission("nova.weather.read")).To(BeFalse())
			})
		})
	})

	Describe("HasAnyPermission and HasAllPermissions", func() {
		It("should short-circuit for superusers", func() {
			snap := Resolve(1, StatusActive, true, nil, nil, nil)
			Expect(snap.HasAnyPermission("x.y.read")).To(BeTrue())
			Expect(snap.HasAllPermissions("x.y.read", "x.y.write")).To(BeTrue())
		})

		It("should require one versus every key otherwise", func() {
			snap := activeUser("nova.weather.read")
			Expect(snap.HasAnyPermission("nova.weather.read", "nova.sports.read")).To(BeTrue())
			Expect(snap.HasAnyPermission("nova.sports.read")).To(BeFalse())
			Expect(snap.HasAllPermissions("nova.weather.read")).To(BeTrue())
			Expect(snap.HasAllPermissions("nova.weather.read", "nova.sports.read")).To(BeFalse())
		})
	})

	Describe("CanReadPage", func() {
		It("should require admin for system pages, ignoring page tables", func() {
			snap := activeUser("nova.weather.read")
			for _, page := range []string{PageUsers, PageGroups, PageConnections, PageChannels} {
				Expect(snap.CanReadPage(page)).To(BeFalse(), "page %s", page)
			}

			admin := activeUser("nova.system.admin")
			for _, page := range []string{PageUsers, PageGroups, PageConnections, PageChannels} {
				Expect(admin.CanReadPage(page)).To(BeTrue(), "page %s", page)
			}
		})

		It("should require the dedicated manage permission for dashboard config", func() {
			Expect(activeUser("nova.system.admin").CanReadPage(PageDashboardConfig)).To(BeFalse())
			Expect(activeUser("nova.dashboard.manage_config").CanReadPage(PageDashboardConfig)).To(BeTrue())
		})

		It("should consult the read table for declared pages", func() {
			Expect(activeUser("nova.weather.read").CanReadPage(PageWeather)).To(BeTrue())
			Expect(activeUser().CanReadPage(PageWeather)).To(BeFalse())
		})

		It("should default undeclared pages to visible", func() {
			Expect(activeUser().CanReadPage("release-notes")).To(BeTrue())
		})

		It("should keep undeclared pages visible even without a session", func() {
			Expect(Unauthenticated().CanReadPage("release-notes")).To(BeTrue())
			Expect(Loading().CanReadPage("release-notes")).To(BeTrue())
			Expect(Uninitialized().CanReadPage("release-notes")).To(BeTrue())
		})

		It("should still deny declared pages without a session", func() {
			Expect(Unauthenticated().CanReadPage(PageWeather)).To(BeFalse())
			Expect(Unauthenticated().CanReadPage(PageUsers)).To(BeFalse())
			Expect(Unauthenticated().CanReadPage(PageDashboardConfig)).To(BeFalse())
			Expect(Loading().CanReadPage(PageWeather)).To(BeFalse())
		})

		It("should hide undeclared pages from inactive users", func() {
			inactive := Resolve(1, StatusInactive, false, nil, nil, nil)
			Expect(inactive.CanReadPage("release-notes")).To(BeFalse())
		})

		It("should always allow superusers", func() {
			snap := Resolve(1, StatusActive, true, nil, nil, nil)
			Expect(snap.CanReadPage(PageUsers)).To(BeTrue())
			Expect(snap.CanReadPage(PageDashboardConfig)).To(BeTrue())
		})
	})

	Describe("CanWritePage", func() {
		It("should deny pending and inactive users everywhere", func() {
			pending := Resolve(1, StatusPending, false, nil, []string{"nova.weather.write", "nova.system.admin"}, nil)
			Expect(pending.CanWritePage(PageWeather)).To(BeFalse())
			Expect(pending.CanWritePage(PageUsers)).To(BeFalse())
			Expect(pending.CanWritePage("release-notes")).To(BeFalse())

			inactive := Resolve(1, StatusInactive, false, nil, []string{"nova.weather.write"}, nil)
			Expect(inactive.CanWritePage(PageWeather)).To(BeFalse())
		})

		It("should require admin for system pages", func() {
			Expect(activeUser("nova.weather.write").CanWritePage(PageUsers)).To(BeFalse())
			Expect(activeUser("nova.system.admin").CanWritePage(PageUsers)).To(BeTrue())
		})

		It("should consult the write table for declared pages", func() {
			Expect(activeUser("nova.weather.write").CanWritePage(PageWeather)).To(BeTrue())
			Expect(activeUser("nova.weather.read").CanWritePage(PageWeather)).To(BeFalse())
		})

		It("should default undeclared pages to any authenticated session", func() {
			Expect(activeUser().CanWritePage("release-notes")).To(BeTrue())
			Expect(Unauthenticated().CanWritePage("release-notes")).To(BeFalse())
		})

		It("should let the superuser flag outrank pending status", func() {
			pendingSuper := Resolve(1, StatusPending, true, nil, nil, nil)
			Expect(pendingSuper.CanWritePage(PageWeather)).To(BeTrue())
			Expect(pendingSuper.CanWritePage(PageUsers)).To(BeTrue())

			inactiveSuper := Resolve(1, StatusInactive, true, nil, nil, nil)
			Expect(inactiveSuper.CanWritePage(PageWeather)).To(BeFalse())
		})
	})

	Describe("CanWriteChannel", func() {
		It("should look up the channel by exact id and default to deny", func() {
			snap := Resolve(1, StatusActive, false, nil, nil, []ChannelGrant{{ChannelID: "C1", CanWrite: true}})
			Expect(snap.CanWriteChannel("C1")).To(BeTrue())
			Expect(snap.CanWriteChannel("C2")).To(BeFalse())
		})

		It("should ignore entries that do not grant write", func() {
			snap := Resolve(1, StatusActive, false, nil, nil, []ChannelGrant{{ChannelID: "C1", CanWrite: false}})
			Expect(snap.CanWriteChannel("C1")).To(BeFalse())
		})

		It("should bypass the list for superusers and deny pending users", func() {
			super := Resolve(1, StatusActive, true, nil, nil, nil)
			Expect(super.CanWriteChannel("C9")).To(BeTrue())

			pending := Resolve(1, StatusPending, false, nil, nil, []ChannelGrant{{ChannelID: "C1", CanWrite: true}})
			Expect(pending.CanWriteChannel("C1")).To(BeFalse())
		})

		It("should let the superuser flag outrank pending status", func() {
			pendingSuper := Resolve(1, StatusPending, true, nil, nil, nil)
			Expect(pendingSuper.CanWriteChannel("C1")).To(BeTrue())

			inactiveSuper := Resolve(1, StatusInactive, true, nil, nil, nil)
			Expect(inactiveSuper.CanWriteChannel("C1")).To(BeFalse())
		})
	})

	Describe("system locked state", func() {
		It("should pre-empt every resolution", func() {
			locked := SystemLocked()
			Expect(locked.State).To(Equal(StateSystemLocked))
			Expect(locked.HasPermission("nova.weather.read")).To(BeFalse())
			Expect(locked.CanReadPage(PageWeather)).To(BeFalse())
			Expect(locked.CanReadPage("release-notes")).To(BeFalse())
			Expect(locked.CanWritePage(PageWeather)).To(BeFalse())
			Expect(locked.CanWriteChannel("C1")).To(BeFalse())
		})
	})
})
