package group

import (
	"log/slog"

	"github.com/novahq/nova-admin/internal"
	"github.com/novahq/nova-admin/internal/access"
	groupDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/group"
)

type RepositoryAPI interface {
	GetAll() ([]*groupDatamodel.Group, error)
	GetByID(id int64) (*groupDatamodel.Group, error)
	Create(g *groupDatamodel.Group) error
	Update(g *groupDatamodel.Group) error
	Delete(id int64) error
	CountMembers(groupID int64) (int64, error)
	GetMembers(groupID int64) ([]Member, error)
	AddMember(groupID, userID int64) error
	RemoveMember(groupID, userID int64) error
	GetPermissionKeys(groupID int64) ([]string, error)
	FindPermissionID(key access.Key) (int64, error)
	GrantPermission(groupID, permissionID int64, grantedBy *int64) error
	RevokePermission(groupID, permissionID int64) error
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

func (s *Service) GetAll() ([]*Group, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list groups", "error", err)
		return nil, internal.NewInternalError("failed to list groups", err)
	}

	groups := make([]*Group, 0, len(rows))
	for _, row := range rows {
		g := FromDataModel(row)
		if count, err := s.repo.CountMembers(row.ID); err == nil {
			g.MemberCount = count
		}
		if keys, err := s.repo.GetPermissionKeys(row.ID); err == nil {
			g.PermissionKeys = keys
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func (s *Service) GetByID(id int64) (*Group, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	g := FromDataModel(row)
	count, err := s.repo.CountMembers(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to count members", err)
	}
	g.MemberCount = count

	keys, err := s.repo.GetPermissionKeys(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load group permissions", err)
	}
	g.PermissionKeys = keys

	return g, nil
}

func (s *Service) Create(dto *CreateGroupDTO) (*Group, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := &groupDatamodel.Group{
		Name:        dto.Name,
		Description: dto.Description,
		Color:       dto.Color,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create group", "name", dto.Name, "error", err)
		return nil, internal.NewInternalError("failed to create group", err)
	}

	s.logger.Info("group created", "group_id", row.ID, "name", row.Name)
	return FromDataModel(row), nil
}

// Update edits a group. System groups keep their name: description and
// color may change, a rename is refused.
func (s *Service) Update(id int64, dto *UpdateGroupDTO) (*Group, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil && *dto.Name != row.Name {
		if row.IsSystem {
			return nil, internal.ErrSystemGroup
		}
		row.Name = *dto.Name
	}
	if dto.Description != nil {
		row.Description = *dto.Description
	}
	if dto.Color != nil {
		row.Color = *dto.Color
	}

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to update group", "group_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update group", err)
	}
	return FromDataModel(row), nil
}

func (s *Service) Delete(id int64) error {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if row.IsSystem {
		return internal.ErrSystemGroup
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete group", "group_id", id, "error", err)
		return internal.NewInternalError("failed to delete group", err)
	}

	s.logger.Info("group deleted", "group_id", id, "name", row.Name)
	return nil
}

func (s *Service) GetMembers(groupID int64) ([]Member, error) {
	if _, err := s.repo.GetByID(groupID); err != nil {
		return nil, err
	}
	return s.repo.GetMembers(groupID)
}

func (s *Service) AddMember(groupID, userID int64) error {
	if _, err := s.repo.GetByID(groupID); err != nil {
		return err
	}
	if err := s.repo.AddMember(groupID, userID); err != nil {
		s.logger.Error("failed to add member", "group_id", groupID, "user_id", userID, "error", err)
		return internal.NewInternalError("failed to add member", err)
	}
	s.logger.Info("member added", "group_id", groupID, "user_id", userID)
	return nil
}

func (s *Service) RemoveMember(groupID, userID int64) error {
	if _, err := s.repo.GetByID(groupID); err != nil {
		return err
	}
	if err := s.repo.RemoveMember(groupID, userID); err != nil {
		s.logger.Error("failed to remove member", "group_id", groupID, "user_id", userID, "error", err)
		return internal.NewInternalError("failed to remove member", err)
	}
	s.logger.Info("member removed", "group_id", groupID, "user_id", userID)
	return nil
}

func (s *Service) GrantPermission(groupID int64, permissionKey string, grantedBy *int64) error {
	key, err := access.ParseKey(permissionKey)
	if err != nil {
		return internal.NewValidationError("permission key must be app.resource.action", internal.ErrCodeInvalidKey)
	}

	if _, err := s.repo.GetByID(groupID); err != nil {
		return err
	}

	permID, err := s.repo.FindPermissionID(key)
	if err != nil {
		return internal.ErrPermissionNotFound
	}

	if err := s.repo.GrantPermission(groupID, permID, grantedBy); err != nil {
		s.logger.Error("failed to grant group permission", "group_id", groupID, "key", permissionKey, "error", err)
		return internal.NewInternalError("failed to grant permission", err)
	}

	s.logger.Info("group permission granted", "group_id", groupID, "key", permissionKey)
	return nil
}

func (s *Service) RevokePermission(groupID int64, permissionKey string) error {
	key, err := access.ParseKey(permissionKey)
	if err != nil {
		return internal.NewValidationError("permission key must be app.resource.action", internal.ErrCodeInvalidKey)
	}

	permID, err := s.repo.FindPermissionID(key)
	if err != nil {
		return internal.ErrPermissionNotFound
	}

	if err := s.repo.RevokePermission(groupID, permID); err != nil {
		s.logger.Error("failed to revoke group permission", "group_id", groupID, "key", permissionKey, "error", err)
		return internal.NewInternalError("failed to revoke permission", err)
	}

	s.logger.Info("group permission revoked", "group_id", groupID, "key", permissionKey)
	return nil
}
