package user

import "time"

const (
	StatusActive   = "active"
	StatusPending  = "pending"
	StatusInactive = "inactive"
)

type User struct {
	ID           int64     `gorm:"primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	Name         string    `gorm:"column:name;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Status       string    `gorm:"column:status;default:pending"`
	IsSuperuser  bool      `gorm:"column:is_superuser;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `gorm:"column:updated_at;default:now()"`
}

type UserGroup struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_user_group"`
	GroupID   int64     `gorm:"column:group_id;not null;uniqueIndex:idx_user_group"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

// UserPermission is a direct grant, bypassing group membership.
type UserPermission struct {
	ID           int64     `gorm:"primaryKey"`
	UserID       int64     `gorm:"column:user_id;not null;uniqueIndex:idx_user_perm"`
	PermissionID int64     `gorm:"column:permission_id;not null;uniqueIndex:idx_user_perm"`
	GrantedBy    *int64    `gorm:"column:granted_by"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
}
