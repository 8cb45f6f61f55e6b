package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/novahq/nova-admin/internal"
	"github.com/novahq/nova-admin/internal/access"
	groupDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/group"
	userDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/user"
	"github.com/novahq/nova-admin/internal/group"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) GetAll() ([]*groupDatamodel.Group, error) {
	var groups []*groupDatamodel.Group
	err := r.db.Order("id ASC").Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) GetByID(id int64) (*groupDatamodel.Group, error) {
	var g groupDatamodel.Group
	err := r.db.Where("id = ?", id).First(&g).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrGroupNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) Create(g *groupDatamodel.Group) error {
	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now
	return r.db.Create(g).Error
}

func (r *GroupRepository) Update(g *groupDatamodel.Group) error {
	g.UpdatedAt = time.Now()
	return r.db.Save(g).Error
}

// Delete removes the group, its memberships and its grants in one
// transaction.
func (r *GroupRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&userDatamodel.UserGroup{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", id).Delete(&groupDatamodel.GroupPermission{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&groupDatamodel.Group{}).Error
	})
}

func (r *GroupRepository) CountMembers(groupID int64) (int64, error) {
	var count int64
	err := r.db.Model(&userDatamodel.UserGroup{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}

func (r *GroupRepository) GetMembers(groupID int64) ([]group.Member, error) {
	query := `SELECT u.id, u.email, u.name, u.status
	          FROM users u
	          JOIN user_groups ug ON ug.user_id = u.id
	          WHERE ug.group_id = ?
	          ORDER BY u.id`

	rows, err := r.db.Raw(query, groupID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []group.Member
	for rows.Next() {
		var m group.Member
		if err := rows.Scan(&m.UserID, &m.Email, &m.Name, &m.Status); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *GroupRepository) AddMember(groupID, userID int64) error {
	membership := &userDatamodel.UserGroup{
		GroupID:   groupID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	// Adding an existing member is a no-op.
	err := r.db.Create(membership).Error
	if err != nil && r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&userDatamodel.UserGroup{}).Error == nil {
		return nil
	}
	return err
}

func (r *GroupRepository) RemoveMember(groupID, userID int64) error {
	return r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&userDatamodel.UserGroup{}).Error
}

func (r *GroupRepository) GetPermissionKeys(groupID int64) ([]string, error) {
	query := `SELECT p.app_key || '.' || p.resource || '.' || p.action
	          FROM permissions p
	          JOIN group_permissions gp ON gp.permission_id = p.id
	          WHERE gp.group_id = ?
	          ORDER BY p.id`

	rows, err := r.db.Raw(query, groupID).Rows()
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

func (r *GroupRepository) FindPermissionID(key access.Key) (int64, error) {
	var id int64
	row := r.db.Raw(`SELECT id FROM permissions WHERE app_key = ? AND resource = ? AND action = ?`,
		key.App, key.Resource, key.Action).Row()
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *GroupRepository) GrantPermission(groupID, permissionID int64, grantedBy *int64) error {
	grant := &groupDatamodel.GroupPermission{
		GroupID:      groupID,
		PermissionID: permissionID,
		GrantedBy:    grantedBy,
		CreatedAt:    time.Now(),
	}
	err := r.db.Create(grant).Error
	if err != nil && r.db.Where("group_id = ? AND permission_id = ?", groupID, permissionID).
		First(&groupDatamodel.GroupPermission{}).Error == nil {
		return nil
	}
	return err
}

func (r *GroupRepository) RevokePermission(groupID, permissionID int64) error {
	return r.db.Where("group_id = ? AND permission_id = ?", groupID, permissionID).
		Delete(&groupDatamodel.GroupPermission{}).Error
}
