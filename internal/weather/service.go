package weather

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/novahq/nova-admin/internal"
	weatherDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/weather"
	"github.com/novahq/nova-admin/internal/core/events"
	"github.com/novahq/nova-admin/internal/override"
)

type RepositoryAPI interface {
	GetAll() ([]*weatherDatamodel.Location, error)
	GetByID(id int64) (*weatherDatamodel.Location, error)
	GetByProviderID(providerID string) (*weatherDatamodel.Location, error)
	Create(l *weatherDatamodel.Location) error
	Update(l *weatherDatamodel.Location) error
	Delete(id int64) error
}

type Service struct {
	repo     RepositoryAPI
	provider ProviderAPI
	bus      *events.EventBus
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, provider ProviderAPI, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		bus:      bus,
		logger:   logger,
	}
}

func (s *Service) GetAll() ([]*LocationResponse, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list locations", "error", err)
		return nil, internal.NewInternalError("failed to list locations", err)
	}

	locations := make([]*LocationResponse, 0, len(rows))
	for _, row := range rows {
		locations = append(locations, FromDataModel(row))
	}
	return locations, nil
}

func (s *Service) GetByID(id int64) (*LocationResponse, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

// Create registers a provider location and stores its first reading. Every
// field starts as a plain scalar.
func (s *Service) Create(ctx context.Context, dto *CreateLocationDTO) (*LocationResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByProviderID(dto.ProviderID); err == nil && existing != nil {
		return nil, internal.NewConflictError("this location is already monitored", internal.ErrCodeValidationFailed)
	}

	reading, err := s.provider.Fetch(ctx, dto.ProviderID)
	if err != nil {
		return nil, err
	}

	row := &weatherDatamodel.Location{
		ProviderID:  dto.ProviderID,
		Name:        override.Plain(reading.Name),
		Temperature: override.Plain(reading.Temperature),
		Humidity:    override.Plain(reading.Humidity),
		WindSpeed:   override.Plain(reading.WindSpeed),
		Condition:   override.Plain(reading.Condition),
		FetchedAt:   time.Now(),
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create location", "provider_id", dto.ProviderID, "error", err)
		return nil, internal.NewInternalError("failed to create location", err)
	}

	s.logger.Info("location created", "location_id", row.ID, "provider_id", row.ProviderID)
	return FromDataModel(row), nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete location", "location_id", id, "error", err)
		return internal.NewInternalError("failed to delete location", err)
	}
	s.logger.Info("location deleted", "location_id", id)
	return nil
}

// OverrideField replaces one display field with a user-supplied value,
// keeping the provider value as the original and stamping the audit trail.
func (s *Service) OverrideField(ctx context.Context, id int64, dto *OverrideFieldDTO, userID int64) (*LocationResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	switch dto.Field {
	case FieldName:
		var v string
		if err := json.Unmarshal(dto.Value, &v); err != nil {
			return nil, internal.NewValidationError("name requires a string value", internal.ErrCodeInvalidField)
		}
		row.Name = override.NewOverride(row.Name.Original(), v, userID, dto.Reason)
	case FieldTemperature:
		var v float64
		if err := json.Unmarshal(dto.Value, &v); err != nil {
			return nil, internal.NewValidationError("temperature requires a numeric value", internal.ErrCodeInvalidField)
		}
		row.Temperature = override.NewOverride(row.Temperature.Original(), v, userID, dto.Reason)
	case FieldHumidity:
		var v float64
		if err := json.Unmarshal(dto.Value, &v); err != nil {
			return nil, internal.NewValidationError("humidity requires a numeric value", internal.ErrCodeInvalidField)
		}
		row.Humidity = override.NewOverride(row.Humidity.Original(), v, userID, dto.Reason)
	case FieldWindSpeed:
		var v float64
		if err := json.Unmarshal(dto.Value, &v); err != nil {
			return nil, internal.NewValidationError("wind_speed requires a numeric value", internal.ErrCodeInvalidField)
		}
		row.WindSpeed = override.NewOverride(row.WindSpeed.Original(), v, userID, dto.Reason)
	case FieldCondition:
		var v string
		if err := json.Unmarshal(dto.Value, &v); err != nil {
			return nil, internal.NewValidationError("condition requires a string value", internal.ErrCodeInvalidField)
		}
		row.Condition = override.NewOverride(row.Condition.Original(), v, userID, dto.Reason)
	}

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to persist override", "location_id", id, "field", dto.Field, "error", err)
		return nil, internal.NewInternalError("failed to persist override", err)
	}

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewOverrideCreatedEvent(id, dto.Field, userID, dto.Reason))
	}

	s.logger.Info("field overridden", "location_id", id, "field", dto.Field, "user_id", userID)
	return FromDataModel(row), nil
}

// RevertField collapses an override back to the provider value. The stored
// column returns to the canonical bare-scalar form.
func (s *Service) RevertField(ctx context.Context, id int64, field string, userID int64) (*LocationResponse, error) {
	if !isOverridableField(field) {
		return nil, internal.NewValidationError("field must be one of name, temperature, humidity, wind_speed, condition", internal.ErrCodeInvalidField)
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	switch field {
	case FieldName:
		row.Name = row.Name.Revert()
	case FieldTemperature:
		row.Temperature = row.Temperature.Revert()
	case FieldHumidity:
		row.Humidity = row.Humidity.Revert()
	case FieldWindSpeed:
		row.WindSpeed = row.WindSpeed.Revert()
	case FieldCondition:
		row.Condition = row.Condition.Revert()
	}

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to persist revert", "location_id", id, "field", field, "error", err)
		return nil, internal.NewInternalError("failed to persist revert", err)
	}

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewOverrideRevertedEvent(id, field, userID))
	}

	s.logger.Info("override reverted", "location_id", id, "field", field, "user_id", userID)
	return FromDataModel(row), nil
}

// Refresh re-fetches provider data for one location. Fresh readings rebase
// the originals; user overrides stay in place.
func (s *Service) Refresh(ctx context.Context, id int64) (*LocationResponse, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	reading, err := s.provider.Fetch(ctx, row.ProviderID)
	if err != nil {
		return nil, err
	}

	row.Name = row.Name.Rebase(reading.Name)
	row.Temperature = row.Temperature.Rebase(reading.Temperature)
	row.Humidity = row.Humidity.Rebase(reading.Humidity)
	row.WindSpeed = row.WindSpeed.Rebase(reading.WindSpeed)
	row.Condition = row.Condition.Rebase(reading.Condition)
	row.FetchedAt = time.Now()

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to persist refresh", "location_id", id, "error", err)
		return nil, internal.NewInternalError("failed to persist refresh", err)
	}

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewLocationRefreshedEvent(id, row.ProviderID))
	}

	return FromDataModel(row), nil
}

// RefreshAll walks every monitored location; one provider failure does not
// stop the sweep. The background poller calls this on its interval.
func (s *Service) RefreshAll(ctx context.Context) error {
	rows, err := s.repo.GetAll()
	if err != nil {
		return internal.NewInternalError("failed to list locations", err)
	}

	for _, row := range rows {
		if _, err := s.Refresh(ctx, row.ID); err != nil {
			s.logger.Warn("refresh failed for location", "location_id", row.ID, "provider_id", row.ProviderID, "error", err)
		}
	}
	return nil
}
