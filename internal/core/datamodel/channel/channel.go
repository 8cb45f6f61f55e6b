package channel

import "time"

type Channel struct {
	ID          string    `gorm:"primaryKey;column:id"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
}

// ChannelAccess is a per-user write capability, independent of the
// permission graph.
type ChannelAccess struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_channel_access"`
	ChannelID string    `gorm:"column:channel_id;not null;uniqueIndex:idx_channel_access"`
	CanWrite  bool      `gorm:"column:can_write;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (ChannelAccess) TableName() string {
	return "channel_access"
}
