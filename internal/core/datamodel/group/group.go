package group

import "time"

type Group struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	Color       string    `gorm:"column:color"`
	IsSystem    bool      `gorm:"column:is_system;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:now()"`
}

type GroupPermission struct {
	ID           int64     `gorm:"primaryKey"`
	GroupID      int64     `gorm:"column:group_id;not null;uniqueIndex:idx_group_perm"`
	PermissionID int64     `gorm:"column:permission_id;not null;uniqueIndex:idx_group_perm"`
	GrantedBy    *int64    `gorm:"column:granted_by"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
}
