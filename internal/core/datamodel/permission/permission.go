package permission

import "time"

// Permission is an immutable catalog entry keyed by the app/resource/action
// triple. The resolver never reads this table; it exists for labels and for
// grant bookkeeping.
type Permission struct {
	ID          int64     `gorm:"primaryKey"`
	AppKey      string    `gorm:"column:app_key;not null;uniqueIndex:idx_perm_key"`
	Resource    string    `gorm:"column:resource;not null;uniqueIndex:idx_perm_key"`
	Action      string    `gorm:"column:action;not null;uniqueIndex:idx_perm_key"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
}
