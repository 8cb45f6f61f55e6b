package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/novahq/nova-admin/internal"
	"github.com/novahq/nova-admin/internal/access"
	userDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetAll(limit, offset int) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Order("id ASC").Limit(limit).Offset(offset).Find(&users).Error
	return users, err
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(u *userDatamodel.User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	return r.db.Create(u).Error
}

func (r *UserRepository) Update(u *userDatamodel.User) error {
	u.UpdatedAt = time.Now()
	return r.db.Save(u).Error
}

// Delete removes the user and its membership and grant rows. Hard delete:
// the admin surface has no notion of archived accounts.
func (r *UserRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&userDatamodel.UserGroup{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&userDatamodel.UserPermission{}).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM channel_access WHERE user_id = ?`, id).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&userDatamodel.User{}).Error
	})
}

func (r *UserRepository) GetPermissionKeys(userID int64) ([]string, error) {
	query := `SELECT p.app_key || '.' || p.resource || '.' || p.action
	          FROM permissions p
	          JOIN user_permissions up ON up.permission_id = p.id
	          WHERE up.user_id = ?
	          ORDER BY p.id`

	rows, err := r.db.Raw(query, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (r *UserRepository) FindPermissionID(key access.Key) (int64, error) {
	var id int64
	row := r.db.Raw(`SELECT id FROM permissions WHERE app_key = ? AND resource = ? AND action = ?`,
		key.App, key.Resource, key.Action).Row()
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *UserRepository) GrantPermission(userID, permissionID int64, grantedBy *int64) error {
	grant := &userDatamodel.UserPermission{
		UserID:       userID,
		PermissionID: permissionID,
		GrantedBy:    grantedBy,
		CreatedAt:    time.Now(),
	}
	// Re-granting an existing permission is a no-op, not an error.
	err := r.db.Create(grant).Error
	if err != nil && r.db.Where("user_id = ? AND permission_id = ?", userID, permissionID).
		First(&userDatamodel.UserPermission{}).Error == nil {
		return nil
	}
	return err
}

func (r *UserRepository) RevokePermission(userID, permissionID int64) error {
	return r.db.Where("user_id = ? AND permission_id = ?", userID, permissionID).
		Delete(&userDatamodel.UserPermission{}).Error
}
