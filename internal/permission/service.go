package permission

import (
	"log/slog"
	"time"

	"github.com/novahq/nova-admin/internal"
	"github.com/novahq/nova-admin/internal/access"
	permissionDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/permission"
)

// Entry is a catalog row with its canonical key string alongside the
// triple, so the UI never rebuilds keys by hand.
type Entry struct {
	ID          int64     `json:"id"`
	Key         string    `json:"key"`
	App         string    `json:"app"`
	Resource    string    `json:"resource"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type RepositoryAPI interface {
	GetAll() ([]*permissionDatamodel.Permission, error)
	GetByKey(key access.Key) (*permissionDatamodel.Permission, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func fromDataModel(p *permissionDatamodel.Permission) Entry {
	return Entry{
		ID:          p.ID,
		Key:         access.NewKey(p.AppKey, p.Resource, p.Action).String(),
		App:         p.AppKey,
		Resource:    p.Resource,
		Action:      p.Action,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}

func (s *Service) GetAll() ([]Entry, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list permissions", "error", err)
		return nil, internal.NewInternalError("failed to list permissions", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, fromDataModel(row))
	}
	return entries, nil
}

func (s *Service) GetByKey(keyStr string) (*Entry, error) {
	key, err := access.ParseKey(keyStr)
	if err != nil {
		return nil, internal.NewValidationError("permission key must be app.resource.action", internal.ErrCodeInvalidKey)
	}

	row, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, internal.ErrPermissionNotFound
	}

	entry := fromDataModel(row)
	return &entry, nil
}
