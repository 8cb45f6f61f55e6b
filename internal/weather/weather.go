package weather

import (
	"time"

	weatherDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/weather"
	"github.com/novahq/nova-admin/internal/override"
)

// Field names accepted by the override endpoints.
const (
	FieldName        = "name"
	FieldTemperature = "temperature"
	FieldHumidity    = "humidity"
	FieldWindSpeed   = "wind_speed"
	FieldCondition   = "condition"
)

// LocationResponse is the wire view of a monitored location. Each display
// field marshals as a bare scalar when untouched or as the override wrapper
// when a user has edited it.
type LocationResponse struct {
	ID          int64                   `json:"id"`
	ProviderID  string                  `json:"provider_id"`
	Name        override.Field[string]  `json:"name"`
	Temperature override.Field[float64] `json:"temperature"`
	Humidity    override.Field[float64] `json:"humidity"`
	WindSpeed   override.Field[float64] `json:"wind_speed"`
	Condition   override.Field[string]  `json:"condition"`
	FetchedAt   time.Time               `json:"fetched_at"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

func FromDataModel(l *weatherDatamodel.Location) *LocationResponse {
	return &LocationResponse{
		ID:          l.ID,
		ProviderID:  l.ProviderID,
		Name:        l.Name,
		Temperature: l.Temperature,
		Humidity:    l.Humidity,
		WindSpeed:   l.WindSpeed,
		Condition:   l.Condition,
		FetchedAt:   l.FetchedAt,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
