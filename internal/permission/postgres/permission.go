package postgres

import (
	"gorm.io/gorm"

	"github.com/novahq/nova-admin/internal"
	"github.com/novahq/nova-admin/internal/access"
	permissionDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/permission"
)

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) GetAll() ([]*permissionDatamodel.Permission, error) {
	var perms []*permissionDatamodel.Permission
	err := r.db.Order("app_key, resource, action").Find(&perms).Error
	return perms, err
}

func (r *PermissionRepository) GetByKey(key access.Key) (*permissionDatamodel.Permission, error) {
	var p permissionDatamodel.Permission
	err := r.db.Where("app_key = ? AND resource = ? AND action = ?", key.App, key.Resource, key.Action).
		First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrPermissionNotFound
		}
		return nil, err
	}
	return &p, nil
}
