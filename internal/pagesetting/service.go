package pagesetting

import (
	"log/slog"
	"strings"
	"time"

	"github.com/novahq/nova-admin/internal"
	pageDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/page"
)

// Setting is a presentation toggle. It only affects menus and routing on
// the dashboard; authorization decisions never consult it.
type Setting struct {
	AppKey    string    `json:"app_key"`
	PageKey   string    `json:"page_key"`
	IsVisible bool      `json:"is_visible"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpsertSettingDTO struct {
	AppKey    string `json:"app_key"`
	PageKey   string `json:"page_key"`
	IsVisible bool   `json:"is_visible"`
}

func (d *UpsertSettingDTO) Validate() error {
	if strings.TrimSpace(d.AppKey) == "" || strings.TrimSpace(d.PageKey) == "" {
		return internal.NewValidationError("app_key and page_key are required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type RepositoryAPI interface {
	GetAll() ([]*pageDatamodel.PageSetting, error)
	Upsert(appKey, pageKey string, isVisible bool) (*pageDatamodel.PageSetting, error)
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

func fromDataModel(p *pageDatamodel.PageSetting) Setting {
	return Setting{
		AppKey:    p.AppKey,
		PageKey:   p.PageKey,
		IsVisible: p.IsVisible,
		UpdatedAt: p.UpdatedAt,
	}
}

func (s *Service) GetAll() ([]Setting, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list page settings", "error", err)
		return nil, internal.NewInternalError("failed to list page settings", err)
	}

	settings := make([]Setting, 0, len(rows))
	for _, row := range rows {
		settings = append(settings, fromDataModel(row))
	}
	return settings, nil
}

func (s *Service) Upsert(dto *UpsertSettingDTO) (*Setting, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.Upsert(dto.AppKey, dto.PageKey, dto.IsVisible)
	if err != nil {
		s.logger.Error("failed to upsert page setting", "app_key", dto.AppKey, "page_key", dto.PageKey, "error", err)
		return nil, internal.NewInternalError("failed to upsert page setting", err)
	}

	s.logger.Info("page setting updated", "app_key", dto.AppKey, "page_key", dto.PageKey, "is_visible", dto.IsVisible)
	setting := fromDataModel(row)
	return &setting, nil
}
