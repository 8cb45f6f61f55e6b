package user

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/novahq/nova-admin/internal"
	"github.com/novahq/nova-admin/internal/access"
	userDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	GetAll(limit, offset int) ([]*userDatamodel.User, error)
	GetByID(id int64) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	Create(u *userDatamodel.User) error
	Update(u *userDatamodel.User) error
	Delete(id int64) error
	GetPermissionKeys(userID int64) ([]string, error)
	FindPermissionID(key access.Key) (int64, error)
	GrantPermission(userID, permissionID int64, grantedBy *int64) error
	RevokePermission(userID, permissionID int64) error
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) GetAll(limit, offset int) ([]*User, error) {
	rows, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}

	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromDataModel(row))
	}
	return users, nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	keys, err := s.repo.GetPermissionKeys(id)
	if err != nil {
		s.logger.Error("failed to load direct permissions", "user_id", id, "error", err)
		return nil, internal.NewInternalError("failed to load permissions", err)
	}

	return FromDataModelWithPermissions(row, keys), nil
}

// Create provisions a new account. New users start pending unless the DTO
// says otherwise; pending accounts can log in but stay read-only until
// activated.
func (s *Service) Create(dto *CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, internal.ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	status := dto.Status
	if status == "" {
		status = userDatamodel.StatusPending
	}

	row := &userDatamodel.User{
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: string(hash),
		Status:       status,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create user", "email", dto.Email, "error", err)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", row.ID, "email", row.Email, "status", row.Status)
	return FromDataModel(row), nil
}

func (s *Service) Update(id int64, dto *UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		row.Name = *dto.Name
	}
	if dto.Email != nil {
		row.Email = *dto.Email
	}

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to update user", "user_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update user", err)
	}
	return FromDataModel(row), nil
}

// UpdateStatus moves a user between active, pending and inactive. The
// change takes effect on the next snapshot resolution.
func (s *Service) UpdateStatus(id int64, status string) (*User, error) {
	if !IsValidStatus(status) {
		return nil, internal.NewValidationError("status must be active, pending or inactive", internal.ErrCodeInvalidStatus)
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	row.Status = status
	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to update user status", "user_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update user", err)
	}

	s.logger.Info("user status changed", "user_id", id, "status", status)
	return FromDataModel(row), nil
}

// SetSuperuser toggles the superuser flag. Demoting the last superuser
// locks the whole system, so the caller sees that reflected on their next
// session resolution rather than being blocked here.
func (s *Service) SetSuperuser(id int64, isSuperuser bool) (*User, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	row.IsSuperuser = isSuperuser
	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to update superuser flag", "user_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update user", err)
	}

	s.logger.Info("superuser flag changed", "user_id", id, "is_superuser", isSuperuser)
	return FromDataModel(row), nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "user_id", id, "error", err)
		return internal.NewInternalError("failed to delete user", err)
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// GrantPermission attaches a direct permission to the user, recording who
// granted it. The key must name an existing catalog entry.
func (s *Service) GrantPermission(userID int64, permissionKey string, grantedBy *int64) error {
	key, err := access.ParseKey(permissionKey)
	if err != nil {
		return internal.NewValidationError("permission key must be app.resource.action", internal.ErrCodeInvalidKey)
	}

	if _, err := s.repo.GetByID(userID); err != nil {
		return err
	}

	permID, err := s.repo.FindPermissionID(key)
	if err != nil {
		return internal.ErrPermissionNotFound
	}

	if err := s.repo.GrantPermission(userID, permID, grantedBy); err != nil {
		s.logger.Error("failed to grant permission", "user_id", userID, "key", permissionKey, "error", err)
		return internal.NewInternalError("failed to grant permission", err)
	}

	s.logger.Info("permission granted", "user_id", userID, "key", permissionKey)
	return nil
}

func (s *Service) RevokePermission(userID int64, permissionKey string) error {
	key, err := access.ParseKey(permissionKey)
	if err != nil {
		return internal.NewValidationError("permission key must be app.resource.action", internal.ErrCodeInvalidKey)
	}

	permID, err := s.repo.FindPermissionID(key)
	if err != nil {
		return internal.ErrPermissionNotFound
	}

	if err := s.repo.RevokePermission(userID, permID); err != nil {
		s.logger.Error("failed to revoke permission", "user_id", userID, "key", permissionKey, "error", err)
		return internal.NewInternalError("failed to revoke permission", err)
	}

	s.logger.Info("permission revoked", "user_id", userID, "key", permissionKey)
	return nil
}

func (s *Service) GetPermissions(userID int64) ([]string, error) {
	return s.repo.GetPermissionKeys(userID)
}
