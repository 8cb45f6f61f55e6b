package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/novahq/nova-admin/internal/access"
	"golang.org/x/crypto/bcrypt"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ResolveSession(userID int64) (*SessionUser, error)
	SessionForToken(tokenString string) (*SessionUser, error)
	HashPassword(password string) (string, error)
}

// RepositoryAPI supplies the pre-fetched session inputs the resolver
// operates on. Snapshot fetches must be idempotent.
type RepositoryAPI interface {
	GetPasswordForEmail(email string) (passwordHash string, userID int64, status string, err error)
	CountSuperusers() (int64, error)
	GetSnapshotData(userID int64) (*SnapshotData, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID int64, email string) (token string, err error)
	GenerateRefreshToken(userID int64, email string) (token string, err error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

// UserRecord is the identity row backing a session.
type UserRecord struct {
	ID          int64
	Email       string
	Name        string
	Status      string
	IsSuperuser bool
}

// SnapshotData is everything one snapshot fetch returns: the user row,
// group memberships with their permission keys, direct grants, and channel
// access entries.
type SnapshotData struct {
	User       UserRecord
	Groups     []access.GroupGrant
	DirectKeys []string
	Channels   []access.ChannelGrant
}

// SessionUser is the resolved session handed to handlers: identity plus the
// immutable authorization snapshot. Refreshing replaces the whole value.
type SessionUser struct {
	ID       int64            `json:"id"`
	Email    string           `json:"email"`
	Name     string           `json:"name"`
	Status   string           `json:"status"`
	Snapshot *access.Snapshot `json:"-"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive")
)

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
