package channel

import (
	"regexp"
	"strings"

	"github.com/novahq/nova-admin/internal"
)

var channelIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

type CreateChannelDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (d *CreateChannelDTO) Validate() error {
	if !channelIDPattern.MatchString(d.ID) {
		return internal.NewValidationError("channel id must be a lowercase slug", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(d.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpsertAccessDTO struct {
	UserID   int64 `json:"user_id"`
	CanWrite bool  `json:"can_write"`
}

func (d *UpsertAccessDTO) Validate() error {
	if d.UserID == 0 {
		return internal.NewValidationError("user_id is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
