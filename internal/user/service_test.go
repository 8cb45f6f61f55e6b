package user

import (
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/novahq/nova-admin/internal"
	"github.com/novahq/nova-admin/internal/access"
	userDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/user"
)

func TestUser(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "User Module Suite")
}

type mockRepository struct {
	users       map[int64]*userDatamodel.User
	permissions map[string]int64 // key string -> permission id
	grants      map[int64][]int64
	nextID      int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users: map[int64]*userDatamodel.User{
			1: {ID: 1, Email: "ops@nova.dev", Name: "Ops", Status: userDatamodel.StatusActive},
		},
		permissions: map[string]int64{
			"nova.weather.read":  100,
			"nova.weather.write": 101,
		},
		grants: map[int64][]int64{},
		nextID: 1,
	}
}

func (m *mockRepository) GetAll(limit, offset int) ([]*userDatamodel.User, error) {
	var out []*userDatamodel.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockRepository) GetByID(id int64) (*userDatamodel.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockRepository) Create(u *userDatamodel.User) error {
	m.nextID++
	u.ID = m.nextID
	m.users[u.ID] = u
	return nil
}

func (m *mockRepository) Update(u *userDatamodel.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockRepository) Delete(id int64) error {
	delete(m.users, id)
	return nil
}

func (m *mockRepository) GetPermissionKeys(userID int64) ([]string, error) {
	var keys []string
	for key, id := range m.permissions {
		for _, granted := range m.grants[userID] {
			if granted == id {
				keys = append(keys, key)
			}
		}
	}
	return keys, nil
}

func (m *mockRepository) FindPermissionID(key access.Key) (int64, error) {
	if id, ok := m.permissions[key.String()]; ok {
		return id, nil
	}
	return 0, internal.ErrPermissionNotFound
}

func (m *mockRepository) GrantPermission(userID, permissionID int64, grantedBy *int64) error {
	m.grants[userID] = append(m.grants[userID], permissionID)
	return nil
}

func (m *mockRepository) RevokePermission(userID, permissionID int64) error {
	var kept []int64
	for _, id := range m.grants[userID] {
		if id != permissionID {
			kept = append(kept, id)
		}
	}
	m.grants[userID] = kept
	return nil
}

var _ = ginkgo.Describe("UserService", func() {
	var (
		service  *Service
		mockRepo *mockRepository
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockRepository()
		service = NewService(mockRepo, bcrypt.MinCost, slog.Default())
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should default new accounts to pending", func() {
			u, err := service.Create(&CreateUserDTO{
				Email:    "new@nova.dev",
				Name:     "New User",
				Password: "long-enough-password",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.Status).To(gomega.Equal(userDatamodel.StatusPending))
			gomega.Expect(u.ID).ToNot(gomega.BeZero())
		})

		ginkgo.It("should hash the password before storing", func() {
			u, err := service.Create(&CreateUserDTO{
				Email:    "hashed@nova.dev",
				Name:     "Hashed",
				Password: "long-enough-password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			stored := mockRepo.users[u.ID]
			gomega.Expect(stored.PasswordHash).ToNot(gomega.Equal("long-enough-password"))
			gomega.Expect(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("long-enough-password"))).To(gomega.Succeed())
		})

		ginkgo.It("should reject a duplicate email", func() {
			_, err := service.Create(&CreateUserDTO{
				Email:    "ops@nova.dev",
				Name:     "Duplicate",
				Password: "long-enough-password",
			})
			gomega.Expect(err).To(gomega.Equal(internal.ErrDuplicateUser))
		})

		ginkgo.It("should reject a short password", func() {
			_, err := service.Create(&CreateUserDTO{
				Email:    "short@nova.dev",
				Name:     "Short",
				Password: "short",
			})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("UpdateStatus", func() {
		ginkgo.It("should move a user to inactive", func() {
			u, err := service.UpdateStatus(1, userDatamodel.StatusInactive)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.Status).To(gomega.Equal(userDatamodel.StatusInactive))
		})

		ginkgo.It("should reject an unknown status", func() {
			_, err := service.UpdateStatus(1, "suspended")
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should surface not-found for a missing user", func() {
			_, err := service.UpdateStatus(999, userDatamodel.StatusActive)
			gomega.Expect(err).To(gomega.Equal(internal.ErrUserNotFound))
		})
	})

	ginkgo.Describe("SetSuperuser", func() {
		ginkgo.It("should toggle the flag", func() {
			u, err := service.SetSuperuser(1, true)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.IsSuperuser).To(gomega.BeTrue())

			u, err = service.SetSuperuser(1, false)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.IsSuperuser).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("GrantPermission", func() {
		ginkgo.It("should attach a catalog permission by key", func() {
			granter := int64(1)
			err := service.GrantPermission(1, "nova.weather.write", &granter)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			keys, err := service.GetPermissions(1)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(keys).To(gomega.ContainElement("nova.weather.write"))
		})

		ginkgo.It("should reject a malformed key", func() {
			err := service.GrantPermission(1, "not-a-key", nil)
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should reject a key missing from the catalog", func() {
			err := service.GrantPermission(1, "nova.sports.write", nil)
			gomega.Expect(err).To(gomega.Equal(internal.ErrPermissionNotFound))
		})
	})

	ginkgo.Describe("RevokePermission", func() {
		ginkgo.It("should remove a previously granted key", func() {
			gomega.Expect(service.GrantPermission(1, "nova.weather.read", nil)).To(gomega.Succeed())
			gomega.Expect(service.RevokePermission(1, "nova.weather.read")).To(gomega.Succeed())

			keys, err := service.GetPermissions(1)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(keys).ToNot(gomega.ContainElement("nova.weather.read"))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("should remove the user", func() {
			gomega.Expect(service.Delete(1)).To(gomega.Succeed())
			_, err := service.GetByID(1)
			gomega.Expect(err).To(gomega.Equal(internal.ErrUserNotFound))
		})
	})
})
