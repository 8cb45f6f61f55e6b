package group

import (
	"time"

	groupDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/group"
)

// Group is the admin-facing view of a permission group. System groups are
// seeded at provisioning time and cannot be renamed or deleted.
type Group struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Color          string    `json:"color"`
	IsSystem       bool      `json:"is_system"`
	MemberCount    int64     `json:"member_count"`
	PermissionKeys []string  `json:"permission_keys,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Member is a user row as it appears on the group membership screen.
type Member struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

func FromDataModel(g *groupDatamodel.Group) *Group {
	return &Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Color:       g.Color,
		IsSystem:    g.IsSystem,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}
