package group

import (
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/novahq/nova-admin/internal"
	"github.com/novahq/nova-admin/internal/access"
	groupDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/group"
)

func TestGroup(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Group Module Suite")
}

type mockRepository struct {
	groups      map[int64]*groupDatamodel.Group
	members     map[int64][]int64
	permissions map[string]int64
	grants      map[int64][]int64
	nextID      int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		groups: map[int64]*groupDatamodel.Group{
			1: {ID: 1, Name: "Nova Administrators", IsSystem: true},
			2: {ID: 2, Name: "Weather Ops", Color: "#1d4ed8"},
		},
		members: map[int64][]int64{},
		permissions: map[string]int64{
			"nova.weather.read":  100,
			"nova.weather.write": 101,
		},
		grants: map[int64][]int64{},
		nextID: 2,
	}
}

func (m *mockRepository) GetAll() ([]*groupDatamodel.Group, error) {
	var out []*groupDatamodel.Group
	for _, g := range m.groups {
		out = append(out, g)
	}
	return out, nil
}

func (m *mockRepository) GetByID(id int64) (*groupDatamodel.Group, error) {
	if g, ok := m.groups[id]; ok {
		return g, nil
	}
	return nil, internal.ErrGroupNotFound
}

func (m *mockRepository) Create(g *groupDatamodel.Group) error {
	m.nextID++
	g.ID = m.nextID
	m.groups[g.ID] = g
	return nil
}

func (m *mockRepository) Update(g *groupDatamodel.Group) error {
	m.groups[g.ID] = g
	return nil
}

func (m *mockRepository) Delete(id int64) error {
	delete(m.groups, id)
	delete(m.members, id)
	return nil
}

func (m *mockRepository) CountMembers(groupID int64) (int64, error) {
	return int64(len(m.members[groupID])), nil
}

func (m *mockRepository) GetMembers(groupID int64) ([]Member, error) {
	var out []Member
	for _, userID := range m.members[groupID] {
		out = append(out, Member{UserID: userID})
	}
	return out, nil
}

func (m *mockRepository) AddMember(groupID, userID int64) error {
	m.members[groupID] = append(m.members[groupID], userID)
	return nil
}

func (m *mockRepository) RemoveMember(groupID, userID int64) error {
	var kept []int64
	for _, id := range m.members[groupID] {
		if id != userID {
			kept = append(kept, id)
		}
	}
	m.members[groupID] = kept
	return nil
}

func (m *mockRepository) GetPermissionKeys(groupID int64) ([]string, error) {
	var keys []string
	for key, id := range m.permissions {
		for _, granted := range m.grants[groupID] {
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

func (m *mockRepository) GrantPermission(groupID, permissionID int64, grantedBy *int64) error {
	m.grants[groupID] = append(m.grants[groupID], permissionID)
	return nil
}

func (m *mockRepository) RevokePermission(groupID, permissionID int64) error {
	var kept []int64
	for _, id := range m.grants[groupID] {
		if id != permissionID {
			kept = append(kept, id)
		}
	}
	m.grants[groupID] = kept
	return nil
}

var _ = ginkgo.Describe("GroupService", func() {
	var (
		service  *Service
		mockRepo *mockRepository
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockRepository()
		service = NewService(mockRepo, slog.Default())
	})

	ginkgo.Describe("system group protection", func() {
		ginkgo.It("should refuse to rename a system group", func() {
			newName := "Renamed"
			_, err := service.Update(1, &UpdateGroupDTO{Name: &newName})
			gomega.Expect(err).To(gomega.Equal(internal.ErrSystemGroup))
		})

		ginkgo.It("should refuse to delete a system group", func() {
			err := service.Delete(1)
			gomega.Expect(err).To(gomega.Equal(internal.ErrSystemGroup))
		})

		ginkgo.It("should allow description and color edits on a system group", func() {
			desc := "Full administrative access"
			g, err := service.Update(1, &UpdateGroupDTO{Description: &desc})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(g.Description).To(gomega.Equal(desc))
			gomega.Expect(g.Name).To(gomega.Equal("Nova Administrators"))
		})
	})

	ginkgo.Describe("Create and Delete", func() {
		ginkgo.It("should create an ordinary group", func() {
			g, err := service.Create(&CreateGroupDTO{Name: "Sports Ops", Color: "#16a34a"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(g.ID).ToNot(gomega.BeZero())
			gomega.Expect(g.IsSystem).To(gomega.BeFalse())
		})

		ginkgo.It("should reject an empty name", func() {
			_, err := service.Create(&CreateGroupDTO{Name: "  "})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should delete an ordinary group", func() {
			gomega.Expect(service.Delete(2)).To(gomega.Succeed())
			_, err := service.GetByID(2)
			gomega.Expect(err).To(gomega.Equal(internal.ErrGroupNotFound))
		})
	})

	ginkgo.Describe("membership", func() {
		ginkgo.It("should add and remove members", func() {
			gomega.Expect(service.AddMember(2, 7)).To(gomega.Succeed())

			members, err := service.GetMembers(2)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(members).To(gomega.HaveLen(1))

			gomega.Expect(service.RemoveMember(2, 7)).To(gomega.Succeed())
			members, err = service.GetMembers(2)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(members).To(gomega.BeEmpty())
		})

		ginkgo.It("should surface not-found for a missing group", func() {
			err := service.AddMember(999, 7)
			gomega.Expect(err).To(gomega.Equal(internal.ErrGroupNotFound))
		})
	})

	ginkgo.Describe("group permissions", func() {
		ginkgo.It("should grant and revoke catalog keys", func() {
			gomega.Expect(service.GrantPermission(2, "nova.weather.write", nil)).To(gomega.Succeed())

			g, err := service.GetByID(2)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(g.PermissionKeys).To(gomega.ContainElement("nova.weather.write"))

			gomega.Expect(service.RevokePermission(2, "nova.weather.write")).To(gomega.Succeed())
			g, err = service.GetByID(2)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(g.PermissionKeys).ToNot(gomega.ContainElement("nova.weather.write"))
		})

		ginkgo.It("should reject keys missing from the catalog", func() {
			err := service.GrantPermission(2, "nova.sports.write", nil)
			gomega.Expect(err).To(gomega.Equal(internal.ErrPermissionNotFound))
		})
	})
})
