package user

import (
	"time"

	userDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/user"
)

// User is the admin-facing view of an account. The password hash never
// leaves the service layer.
type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	IsSuperuser bool      `json:"is_superuser"`
	Permissions []string  `json:"permissions,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Status:      u.Status,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func FromDataModelWithPermissions(u *userDatamodel.User, permissions []string) *User {
	domainUser := FromDataModel(u)
	domainUser.Permissions = permissions
	return domainUser
}

func IsValidStatus(status string) bool {
	switch status {
	case userDatamodel.StatusActive, userDatamodel.StatusPending, userDatamodel.StatusInactive:
		return true
	}
	return false
}
