package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/novahq/nova-admin/internal/access"
	"github.com/novahq/nova-admin/internal/core/events"
	"golang.org/x/crypto/bcrypt"
)

// Service authenticates credentials and resolves session snapshots.
type Service struct {
	repo           RepositoryAPI
	tokenGenerator TokenGeneratorAPI
	bus            *events.EventBus
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI, bus *events.EventBus, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		bus:            bus,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

// Authenticate validates credentials and returns tokens. Inactive users
// cannot log in; pending users can, with the resolver keeping them
// read-only.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	storedHash, userID, status, err := s.repo.GetPasswordForEmail(dto.Email)
	if err != nil {
		return AuthTokens{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, ErrInvalidCredentials
	}

	if status == string(access.StatusInactive) {
		return AuthTokens{}, ErrUserInactive
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(userID, dto.Email)
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(userID, dto.Email)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshTokens validates a refresh token and rotates both tokens.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return AuthTokens{}, err
	}

	newRefreshToken, err := s.tokenGenerator.GenerateRefreshToken(claims.UserID, claims.Email)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateAccessToken(tokenString)
}

// ResolveSession builds the authorization snapshot for a user. The
// system-locked check runs first: with zero superuser rows in the store,
// every session resolves to the locked state no matter who asks.
func (s *Service) ResolveSession(userID int64) (*SessionUser, error) {
	superusers, err := s.repo.CountSuperusers()
	if err != nil {
		s.logger.Error("failed to count superusers", "error", err)
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	if superusers == 0 {
		return &SessionUser{Snapshot: access.SystemLocked()}, nil
	}

	data, err := s.repo.GetSnapshotData(userID)
	if err != nil {
		s.logger.Error("failed to load snapshot data", "user_id", userID, "error", err)
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	snapshot := access.Resolve(
		data.User.ID,
		access.Status(data.User.Status),
		data.User.IsSuperuser,
		data.Groups,
		data.DirectKeys,
		data.Channels,
	)

	if s.bus != nil {
		_ = s.bus.Publish(context.Background(), events.NewSnapshotRefreshedEvent(data.User.ID, string(snapshot.State)))
	}

	return &SessionUser{
		ID:       data.User.ID,
		Email:    data.User.Email,
		Name:     data.User.Name,
		Status:   data.User.Status,
		Snapshot: snapshot,
	}, nil
}

// SessionForToken resolves the session for an optional bearer token: the
// locked state pre-empts everything, a missing or invalid token resolves
// unauthenticated, and a valid one resolves the full snapshot.
func (s *Service) SessionForToken(tokenString string) (*SessionUser, error) {
	superusers, err := s.repo.CountSuperusers()
	if err != nil {
		return nil, fmt.Errorf("session for token: %w", err)
	}
	if superusers == 0 {
		return &SessionUser{Snapshot: access.SystemLocked()}, nil
	}

	if tokenString == "" {
		return &SessionUser{Snapshot: access.Unauthenticated()}, nil
	}

	claims, err := s.tokenGenerator.ValidateAccessToken(tokenString)
	if err != nil {
		return &SessionUser{Snapshot: access.Unauthenticated()}, nil
	}

	return s.ResolveSession(claims.UserID)
}

func (s *Service) HashPassword(password string) (string, error) {
	return HashPassword(password, s.bcryptCost)
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID int64, email string) (string, error) {
	return j.generate(userID, email, j.AccessTokenSecret, j.AccessTokenTTL)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(userID int64, email string) (string, error) {
	return j.generate(userID, email, j.RefreshTokenSecret, j.RefreshTokenTTL)
}

func (j *JWTTokenGenerator) generate(userID int64, email string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (j *JWTTokenGenerator) ValidateAccessToken(tokenString string) (*Claims, error) {
	return j.validate(tokenString, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return j.validate(tokenString, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) validate(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
