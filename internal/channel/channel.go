package channel

import (
	"time"

	channelDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/channel"
)

// Channel is a named destination users may hold a write capability for.
// Channel write access lives outside the permission graph: it is an exact
// per-user, per-channel lookup.
type Channel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// AccessEntry is one user's capability on one channel.
type AccessEntry struct {
	UserID    int64     `json:"user_id"`
	ChannelID string    `json:"channel_id"`
	CanWrite  bool      `json:"can_write"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromDataModel(c *channelDatamodel.Channel) *Channel {
	return &Channel{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

func AccessFromDataModel(a *channelDatamodel.ChannelAccess) AccessEntry {
	return AccessEntry{
		UserID:    a.UserID,
		ChannelID: a.ChannelID,
		CanWrite:  a.CanWrite,
		UpdatedAt: a.UpdatedAt,
	}
}
