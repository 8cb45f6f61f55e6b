package postgres

import (
	"time"

	"gorm.io/gorm"

	pageDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/page"
)

type PageSettingRepository struct {
	db *gorm.DB
}

func NewPageSettingRepository(db *gorm.DB) *PageSettingRepository {
	return &PageSettingRepository{db: db}
}

func (r *PageSettingRepository) GetAll() ([]*pageDatamodel.PageSetting, error) {
	var settings []*pageDatamodel.PageSetting
	err := r.db.Order("app_key, page_key").Find(&settings).Error
	return settings, err
}

func (r *PageSettingRepository) Upsert(appKey, pageKey string, isVisible bool) (*pageDatamodel.PageSetting, error) {
	var existing pageDatamodel.PageSetting
	err := r.db.Where("app_key = ? AND page_key = ?", appKey, pageKey).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		setting := &pageDatamodel.PageSetting{
			AppKey:    appKey,
			PageKey:   pageKey,
			IsVisible: isVisible,
			UpdatedAt: time.Now(),
		}
		if err := r.db.Create(setting).Error; err != nil {
			return nil, err
		}
		return setting, nil
	}
	if err != nil {
		return nil, err
	}

	existing.IsVisible = isVisible
	existing.UpdatedAt = time.Now()
	if err := r.db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}
