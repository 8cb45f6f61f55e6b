package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/novahq/nova-admin/internal"
	weatherDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/weather"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) GetAll() ([]*weatherDatamodel.Location, error) {
	var locations []*weatherDatamodel.Location
	err := r.db.Order("id ASC").Find(&locations).Error
	return locations, err
}

func (r *LocationRepository) GetByID(id int64) (*weatherDatamodel.Location, error) {
	var l weatherDatamodel.Location
	err := r.db.Where("id = ?", id).First(&l).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrLocationNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *LocationRepository) GetByProviderID(providerID string) (*weatherDatamodel.Location, error) {
	var l weatherDatamodel.Location
	err := r.db.Where("provider_id = ?", providerID).First(&l).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrLocationNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *LocationRepository) Create(l *weatherDatamodel.Location) error {
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now
	return r.db.Create(l).Error
}

func (r *LocationRepository) Update(l *weatherDatamodel.Location) error {
	l.UpdatedAt = time.Now()
	return r.db.Save(l).Error
}

func (r *LocationRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&weatherDatamodel.Location{}).Error
}
