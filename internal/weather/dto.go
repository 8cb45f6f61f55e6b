package weather

import (
	"encoding/json"
	"strings"

	"github.com/novahq/nova-admin/internal"
)

type CreateLocationDTO struct {
	ProviderID string `json:"provider_id"`
}

func (d *CreateLocationDTO) Validate() error {
	if strings.TrimSpace(d.ProviderID) == "" {
		return internal.NewValidationError("provider_id is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

// OverrideFieldDTO carries one field edit. Value stays raw until the
// service knows which concrete type the named field holds.
type OverrideFieldDTO struct {
	Field  string          `json:"field"`
	Value  json.RawMessage `json:"value"`
	Reason string          `json:"reason,omitempty"`
}

func (d *OverrideFieldDTO) Validate() error {
	if !isOverridableField(d.Field) {
		return internal.NewValidationError("field must be one of name, temperature, humidity, wind_speed, condition", internal.ErrCodeInvalidField)
	}
	if len(d.Value) == 0 {
		return internal.NewValidationError("value is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type RevertFieldDTO struct {
	Field string `json:"field"`
}

func (d *RevertFieldDTO) Validate() error {
	if !isOverridableField(d.Field) {
		return internal.NewValidationError("field must be one of name, temperature, humidity, wind_speed, condition", internal.ErrCodeInvalidField)
	}
	return nil
}

func isOverridableField(field string) bool {
	switch field {
	case FieldName, FieldTemperature, FieldHumidity, FieldWindSpeed, FieldCondition:
		return true
	}
	return false
}
