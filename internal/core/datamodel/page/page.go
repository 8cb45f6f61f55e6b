package page

import "time"

// PageSetting is a presentation toggle consulted by menus and routing,
// never by authorization.
type PageSetting struct {
	ID        int64     `gorm:"primaryKey"`
	AppKey    string    `gorm:"column:app_key;not null;uniqueIndex:idx_page_setting"`
	PageKey   string    `gorm:"column:page_key;not null;uniqueIndex:idx_page_setting"`
	IsVisible bool      `gorm:"column:is_visible;default:true"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}
