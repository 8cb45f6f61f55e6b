package channel

import (
	"log/slog"

	"github.com/novahq/nova-admin/internal"
	channelDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/channel"
)

type RepositoryAPI interface {
	GetAll() ([]*channelDatamodel.Channel, error)
	GetByID(id string) (*channelDatamodel.Channel, error)
	Create(c *channelDatamodel.Channel) error
	Delete(id string) error
	GetAccess(channelID string) ([]*channelDatamodel.ChannelAccess, error)
	UpsertAccess(channelID string, userID int64, canWrite bool) error
	RemoveAccess(channelID string, userID int64) error
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

func (s *Service) GetAll() ([]*Channel, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list channels", "error", err)
		return nil, internal.NewInternalError("failed to list channels", err)
	}

	channels := make([]*Channel, 0, len(rows))
	for _, row := range rows {
		channels = append(channels, FromDataModel(row))
	}
	return channels, nil
}

func (s *Service) GetByID(id string) (*Channel, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(dto *CreateChannelDTO) (*Channel, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByID(dto.ID); err == nil && existing != nil {
		return nil, internal.NewConflictError("a channel with this id already exists", internal.ErrCodeValidationFailed)
	}

	row := &channelDatamodel.Channel{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create channel", "channel_id", dto.ID, "error", err)
		return nil, internal.NewInternalError("failed to create channel", err)
	}

	s.logger.Info("channel created", "channel_id", row.ID, "name", row.Name)
	return FromDataModel(row), nil
}

func (s *Service) Delete(id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete channel", "channel_id", id, "error", err)
		return internal.NewInternalError("failed to delete channel", err)
	}
	s.logger.Info("channel deleted", "channel_id", id)
	return nil
}

func (s *Service) GetAccess(channelID string) ([]AccessEntry, error) {
	if _, err := s.repo.GetByID(channelID); err != nil {
		return nil, err
	}

	rows, err := s.repo.GetAccess(channelID)
	if err != nil {
		return nil, internal.NewInternalError("failed to list channel access", err)
	}

	entries := make([]AccessEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, AccessFromDataModel(row))
	}
	return entries, nil
}

// UpsertAccess sets a user's write capability on a channel. An existing
// entry is updated in place; the change shows up on the user's next
// snapshot resolution.
func (s *Service) UpsertAccess(channelID string, dto *UpsertAccessDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(channelID); err != nil {
		return err
	}

	if err := s.repo.UpsertAccess(channelID, dto.UserID, dto.CanWrite); err != nil {
		s.logger.Error("failed to upsert channel access", "channel_id", channelID, "user_id", dto.UserID, "error", err)
		return internal.NewInternalError("failed to upsert channel access", err)
	}

	s.logger.Info("channel access updated", "channel_id", channelID, "user_id", dto.UserID, "can_write", dto.CanWrite)
	return nil
}

func (s *Service) RemoveAccess(channelID string, userID int64) error {
	if _, err := s.repo.GetByID(channelID); err != nil {
		return err
	}
	if err := s.repo.RemoveAccess(channelID, userID); err != nil {
		s.logger.Error("failed to remove channel access", "channel_id", channelID, "user_id", userID, "error", err)
		return internal.NewInternalError("failed to remove channel access", err)
	}
	return nil
}
