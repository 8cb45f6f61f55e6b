package postgres

import (
	"database/sql"
	"fmt"

	"github.com/novahq/nova-admin/internal/access"
	"github.com/novahq/nova-admin/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetPasswordForEmail(email string) (string, int64, string, error) {
	var passwordHash, status string
	var userID int64
	query := `SELECT id, password_hash, status FROM users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash, &status); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, "", fmt.Errorf("user not found")
		}
		return "", 0, "", err
	}
	return passwordHash, userID, status, nil
}

func (r *Repository) CountSuperusers() (int64, error) {
	var count int64
	row := r.db.Raw(`SELECT COUNT(*) FROM users WHERE is_superuser = true`).Row()
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// GetSnapshotData loads everything one session snapshot needs in a single
// pass: the user row, group memberships with their permission keys, direct
// grants, and channel access entries.
func (r *Repository) GetSnapshotData(userID int64) (*auth.SnapshotData, error) {
	var data auth.SnapshotData

	row := r.db.Raw(`SELECT id, email, name, status, is_superuser FROM users WHERE id = ?`, userID).Row()
	if err := row.Scan(&data.User.ID, &data.User.Email, &data.User.Name, &data.User.Status, &data.User.IsSuperuser); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}

	groups, err := r.loadGroupGrants(userID)
	if err != nil {
		return nil, err
	}
	data.Groups = groups

	directKeys, err := r.loadDirectKeys(userID)
	if err != nil {
		return nil, err
	}
	data.DirectKeys = directKeys

	channels, err := r.loadChannelGrants(userID)
	if err != nil {
		return nil, err
	}
	data.Channels = channels

	return &data, nil
}

func (r *Repository) loadGroupGrants(userID int64) ([]access.GroupGrant, error) {
	query := `SELECT g.id, g.name,
	                 p.app_key || '.' || p.resource || '.' || p.action AS perm_key
	          FROM groups g
	          JOIN user_groups ug ON ug.group_id = g.id
	          LEFT JOIN group_permissions gp ON gp.group_id = g.id
	          LEFT JOIN permissions p ON p.id = gp.permission_id
	          WHERE ug.user_id = ?
	          ORDER BY g.id`

	rows, err := r.db.Raw(query, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []access.GroupGrant
	byID := make(map[int64]int)
	for rows.Next() {
		var groupID int64
		var name string
		var key sql.NullString
		if err := rows.Scan(&groupID, &name, &key); err != nil {
			return nil, err
		}

		idx, ok := byID[groupID]
		if !ok {
			grants = append(grants, access.GroupGrant{ID: groupID, Name: name})
			idx = len(grants) - 1
			byID[groupID] = idx
		}
		if key.Valid {
			grants[idx].PermissionKeys = append(grants[idx].PermissionKeys, key.String)
		}
	}
	return grants, rows.Err()
}

func (r *Repository) loadDirectKeys(userID int64) ([]string, error) {
	query := `SELECT p.app_key || '.' || p.resource || '.' || p.action
	          FROM permissions p
	          JOIN user_permissions up ON up.permission_id = p.id
	          WHERE up.user_id = ?`

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

func (r *Repository) loadChannelGrants(userID int64) ([]access.ChannelGrant, error) {
	query := `SELECT channel_id, can_write FROM channel_access WHERE user_id = ?`

	rows, err := r.db.Raw(query, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []access.ChannelGrant
	for rows.Next() {
		var g access.ChannelGrant
		if err := rows.Scan(&g.ChannelID, &g.CanWrite); err != nil {
			return nil, err
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}
