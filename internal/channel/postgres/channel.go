package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/novahq/nova-admin/internal"
	channelDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/channel"
)

type ChannelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

func (r *ChannelRepository) GetAll() ([]*channelDatamodel.Channel, error) {
	var channels []*channelDatamodel.Channel
	err := r.db.Order("id ASC").Find(&channels).Error
	return channels, err
}

func (r *ChannelRepository) GetByID(id string) (*channelDatamodel.Channel, error) {
	var c channelDatamodel.Channel
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrChannelNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ChannelRepository) Create(c *channelDatamodel.Channel) error {
	c.CreatedAt = time.Now()
	return r.db.Create(c).Error
}

func (r *ChannelRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("channel_id = ?", id).Delete(&channelDatamodel.ChannelAccess{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&channelDatamodel.Channel{}).Error
	})
}

func (r *ChannelRepository) GetAccess(channelID string) ([]*channelDatamodel.ChannelAccess, error) {
	var entries []*channelDatamodel.ChannelAccess
	err := r.db.Where("channel_id = ?", channelID).Order("user_id ASC").Find(&entries).Error
	return entries, err
}

func (r *ChannelRepository) UpsertAccess(channelID string, userID int64, canWrite bool) error {
	var existing channelDatamodel.ChannelAccess
	err := r.db.Where("channel_id = ? AND user_id = ?", channelID, userID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		now := time.Now()
		return r.db.Create(&channelDatamodel.ChannelAccess{
			UserID:    userID,
			ChannelID: channelID,
			CanWrite:  canWrite,
			CreatedAt: now,
			UpdatedAt: now,
		}).Error
	}
	if err != nil {
		return err
	}

	existing.CanWrite = canWrite
	existing.UpdatedAt = time.Now()
	return r.db.Save(&existing).Error
}

func (r *ChannelRepository) RemoveAccess(channelID string, userID int64) error {
	return r.db.Where("channel_id = ? AND user_id = ?", channelID, userID).
		Delete(&channelDatamodel.ChannelAccess{}).Error
}
