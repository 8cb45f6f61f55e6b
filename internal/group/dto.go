package group

import (
	"strings"

	"github.com/novahq/nova-admin/internal"
)

type CreateGroupDTO struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

func (d *CreateGroupDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateGroupDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}

func (d *UpdateGroupDTO) Validate() error {
	if d.Name == nil && d.Description == nil && d.Color == nil {
		return internal.NewValidationError("nothing to update", internal.ErrCodeValidationFailed)
	}
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return internal.NewValidationError("name cannot be empty", internal.ErrCodeValidationFailed)
	}
	return nil
}

type MemberDTO struct {
	UserID int64 `json:"user_id"`
}

func (d *MemberDTO) Validate() error {
	if d.UserID == 0 {
		return internal.NewValidationError("user_id is required", internal.ErrCodeValidationFailed)
	}
	return nil
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
