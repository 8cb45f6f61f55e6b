package weather

import (
	"time"

	"github.com/novahq/nova-admin/internal/override"
)

// Location is a monitored weather location. The display fields are
// override-capable: each column stores either a bare JSON scalar or the
// override wrapper, matching the dashboard's wire format.
type Location struct {
	ID          int64                   `gorm:"primaryKey"`
	ProviderID  string                  `gorm:"column:provider_id;uniqueIndex;not null"`
	Name        override.Field[string]  `gorm:"column:name;serializer:json"`
	Temperature override.Field[float64] `gorm:"column:temperature;serializer:json"`
	Humidity    override.Field[float64] `gorm:"column:humidity;serializer:json"`
	WindSpeed   override.Field[float64] `gorm:"column:wind_speed;serializer:json"`
	Condition   override.Field[string]  `gorm:"column:condition;serializer:json"`
	FetchedAt   time.Time               `gorm:"column:fetched_at"`
	CreatedAt   time.Time               `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time               `gorm:"column:updated_at;default:now()"`
}

func (Location) TableName() string {
	return "weather_locations"
}
