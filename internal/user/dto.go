package user

import (
	"strings"

	"github.com/novahq/nova-admin/internal"
)

type CreateUserDTO struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Status   string `json:"status,omitempty"`
}

func (d *CreateUserDTO) Validate() error {
	if strings.TrimSpace(d.Email) == "" || !strings.Contains(d.Email, "@") {
		return internal.NewValidationError("a valid email is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(d.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if len(d.Password) < 8 {
		return internal.NewValidationError("password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	if d.Status != "" && !IsValidStatus(d.Status) {
		return internal.NewValidationError("status must be active, pending or inactive", internal.ErrCodeInvalidStatus)
	}
	return nil
}

type UpdateUserDTO struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (d *UpdateUserDTO) Validate() error {
	if d.Name == nil && d.Email == nil {
		return internal.NewValidationError("nothing to update", internal.ErrCodeValidationFailed)
	}
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return internal.NewValidationError("name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if d.Email != nil && !strings.Contains(*d.Email, "@") {
		return internal.NewValidationError("a valid email is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (d *UpdateStatusDTO) Validate() error {
	if !IsValidStatus(d.Status) {
		return internal.NewValidationError("status must be active, pending or inactive", internal.ErrCodeInvalidStatus)
	}
	return nil
}

type SetSuperuserDTO struct {
	IsSuperuser bool `json:"is_superuser"`
}

type GrantPermissionDTO struct {
	PermissionKey string `json:"permission_key"`
}

func (d *GrantPermissionDTO) Validate() error {
	if strings.TrimSpace(d.PermissionKey) == "" {
		return internal.NewValidationError("permission_key is required", internal.ErrCodeInvalidKey)
	}
	return nil
}
