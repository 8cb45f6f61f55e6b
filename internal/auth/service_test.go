package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/novahq/nova-admin/internal/access"
	"github.com/novahq/nova-admin/pkg/logger"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock repository for testing
type mockRepository struct {
	passwords     map[string]string // email -> password hash
	userIDs       map[string]int64  // email -> userID
	statuses      map[string]string // email -> status
	snapshots     map[int64]*SnapshotData
	superusers    int64
	returnError   bool
	errorToReturn error
}

func newMockRepository() *mockRepository {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.DefaultCost)

	return &mockRepository{
		passwords: map[string]string{
			"viewer@nova.dev":   string(hashedPassword),
			"admin@nova.dev":    string(hashedPassword),
			"pending@nova.dev":  string(hashedPassword),
			"inactive@nova.dev": string(hashedPassword),
		},
		userIDs: map[string]int64{
			"viewer@nova.dev":   1,
			"admin@nova.dev":    2,
			"pending@nova.dev":  3,
			"inactive@nova.dev": 4,
		},
		statuses: map[string]string{
			"viewer@nova.dev":   "active",
			"admin@nova.dev":    "active",
			"pending@nova.dev":  "pending",
			"inactive@nova.dev": "inactive",
		},
		snapshots: map[int64]*SnapshotData{
			1: {
				User: UserRecord{ID: 1, Email: "viewer@nova.dev", Name: "Viewer", Status: "active"},
				Groups: []access.GroupGrant{
					{ID: 10, Name: "Weather Ops", PermissionKeys: []string{"nova.weather.read"}},
					{ID: 11, Name: "Weather Editors", PermissionKeys: []string{"nova.weather.write"}},
				},
				Channels: []access.ChannelGrant{{ChannelID: "C1", CanWrite: true}},
			},
			2: {
				User:       UserRecord{ID: 2, Email: "admin@nova.dev", Name: "Admin", Status: "active", IsSuperuser: true},
				DirectKeys: []string{"nova.system.admin"},
			},
			3: {
				User:       UserRecord{ID: 3, Email: "pending@nova.dev", Name: "Pending", Status: "pending"},
				DirectKeys: []string{"nova.weather.write", "nova.weather.read"},
			},
		},
		superusers: 1,
	}
}

func (m *mockRepository) GetPasswordForEmail(email string) (string, int64, string, error) {
	if m.returnError {
		return "", 0, "", m.errorToReturn
	}
	hash, exists := m.passwords[email]
	if !exists {
		return "", 0, "", errors.New("user not found")
	}
	return hash, m.userIDs[email], m.statuses[email], nil
}

func (m *mockRepository) CountSuperusers() (int64, error) {
	if m.returnError {
		return 0, m.errorToReturn
	}
	return m.superusers, nil
}

func (m *mockRepository) GetSnapshotData(userID int64) (*SnapshotData, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	if data, exists := m.snapshots[userID]; exists {
		return data, nil
	}
	return nil, errors.New("user not found")
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockRepository
		tokenGen *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockRepository()
		tokenGen = NewJWTTokenGenerator("test-access-secret", "test-refresh-secret", 15*time.Minute, 24*time.Hour)
		service = NewService(mockRepo, tokenGen, nil, bcrypt.DefaultCost, logger.L())
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return access and refresh tokens", func() {
				tokens, err := service.Authenticate(LoginDTO{Email: "viewer@nova.dev", Password: "correct_password"})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.RefreshToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.Equal(tokens.RefreshToken))
			})

			ginkgo.It("should generate valid JWT tokens", func() {
				tokens, err := service.Authenticate(LoginDTO{Email: "admin@nova.dev", Password: "correct_password"})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := service.ValidateAccessToken(tokens.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.UserID).To(gomega.Equal(int64(2)))
				gomega.Expect(claims.Email).To(gomega.Equal("admin@nova.dev"))
			})

			ginkgo.It("should let pending users log in", func() {
				_, err := service.Authenticate(LoginDTO{Email: "pending@nova.dev", Password: "correct_password"})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should reject an unknown email", func() {
				_, err := service.Authenticate(LoginDTO{Email: "nobody@nova.dev", Password: "whatever"})
				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})

			ginkgo.It("should reject a wrong password", func() {
				_, err := service.Authenticate(LoginDTO{Email: "viewer@nova.dev", Password: "wrong_password"})
				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})

			ginkgo.It("should reject missing fields with a validation error", func() {
				_, err := service.Authenticate(LoginDTO{Email: "viewer@nova.dev"})
				gomega.Expect(err).To(gomega.BeAssignableToTypeOf(ValidationError{}))
			})
		})

		ginkgo.Context("when the user is inactive", func() {
			ginkgo.It("should refuse the login outright", func() {
				_, err := service.Authenticate(LoginDTO{Email: "inactive@nova.dev", Password: "correct_password"})
				gomega.Expect(err).To(gomega.Equal(ErrUserInactive))
			})
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("should rotate both tokens for a valid refresh token", func() {
			tokens, err := service.Authenticate(LoginDTO{Email: "viewer@nova.dev", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			rotated, err := service.RefreshTokens(tokens.RefreshToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(rotated.AccessToken).ToNot(gomega.BeEmpty())
			gomega.Expect(rotated.RefreshToken).ToNot(gomega.BeEmpty())
		})

		ginkgo.It("should reject an access token used as a refresh token", func() {
			tokens, err := service.Authenticate(LoginDTO{Email: "viewer@nova.dev", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.RefreshTokens(tokens.AccessToken)
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})

		ginkgo.It("should reject garbage tokens", func() {
			_, err := service.RefreshTokens("not-a-token")
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})
	})

	ginkgo.Describe("ResolveSession", func() {
		ginkgo.It("should aggregate group and direct permissions into the snapshot", func() {
			session, err := service.ResolveSession(1)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			snap := session.Snapshot
			gomega.Expect(snap.State).To(gomega.Equal(access.StateResolved))
			gomega.Expect(snap.HasPermission("nova.weather.read")).To(gomega.BeTrue())
			gomega.Expect(snap.HasPermission("nova.weather.write")).To(gomega.BeTrue())
			gomega.Expect(snap.HasPermission("nova.sports.read")).To(gomega.BeFalse())
			gomega.Expect(snap.CanWriteChannel("C1")).To(gomega.BeTrue())
			gomega.Expect(snap.CanWriteChannel("C2")).To(gomega.BeFalse())
		})

		ginkgo.It("should keep pending users read-only through the snapshot", func() {
			session, err := service.ResolveSession(3)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			snap := session.Snapshot
			gomega.Expect(snap.HasPermission("nova.weather.read")).To(gomega.BeTrue())
			gomega.Expect(snap.HasPermission("nova.weather.write")).To(gomega.BeFalse())
		})

		ginkgo.Context("when no superuser exists", func() {
			ginkgo.BeforeEach(func() {
				mockRepo.superusers = 0
			})

			ginkgo.It("should resolve to the locked state for every user", func() {
				session, err := service.ResolveSession(2)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(session.Snapshot.State).To(gomega.Equal(access.StateSystemLocked))
				gomega.Expect(session.Snapshot.CanReadPage(access.PageWeather)).To(gomega.BeFalse())
			})
		})
	})

	ginkgo.Describe("SessionForToken", func() {
		ginkgo.It("should resolve unauthenticated for a missing token", func() {
			session, err := service.SessionForToken("")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(session.Snapshot.State).To(gomega.Equal(access.StateResolved))
			gomega.Expect(session.Snapshot.Authenticated).To(gomega.BeFalse())
		})

		ginkgo.It("should resolve unauthenticated for an invalid token", func() {
			session, err := service.SessionForToken("garbage")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(session.Snapshot.Authenticated).To(gomega.BeFalse())
		})

		ginkgo.It("should resolve the full snapshot for a valid token", func() {
			tokens, err := service.Authenticate(LoginDTO{Email: "viewer@nova.dev", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			session, err := service.SessionForToken(tokens.AccessToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(session.ID).To(gomega.Equal(int64(1)))
			gomega.Expect(session.Snapshot.HasPermission("nova.weather.read")).To(gomega.BeTrue())
		})

		ginkgo.It("should report the locked state before consulting the token", func() {
			mockRepo.superusers = 0
			session, err := service.SessionForToken("anything")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(session.Snapshot.State).To(gomega.Equal(access.StateSystemLocked))
		})
	})
})
