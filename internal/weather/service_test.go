package weather

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/novahq/nova-admin/internal"
	weatherDatamodel "github.com/novahq/nova-admin/internal/core/datamodel/weather"
	"github.com/novahq/nova-admin/internal/override"
)

func TestWeather(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Weather Module Suite")
}

type mockRepository struct {
	locations map[int64]*weatherDatamodel.Location
	nextID    int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		locations: map[int64]*weatherDatamodel.Location{
			1: {
				ID:          1,
				ProviderID:  "osl",
				Name:        override.Plain("Oslo"),
				Temperature: override.Plain(4.5),
				Humidity:    override.Plain(80.0),
				WindSpeed:   override.Plain(3.2),
				Condition:   override.Plain("cloudy"),
			},
		},
		nextID: 1,
	}
}

func (m *mockRepository) GetAll() ([]*weatherDatamodel.Location, error) {
	var out []*weatherDatamodel.Location
	for _, l := range m.locations {
		out = append(out, l)
	}
	return out, nil
}

func (m *mockRepository) GetByID(id int64) (*weatherDatamodel.Location, error) {
	if l, ok := m.locations[id]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, internal.ErrLocationNotFound
}

func (m *mockRepository) GetByProviderID(providerID string) (*weatherDatamodel.Location, error) {
	for _, l := range m.locations {
		if l.ProviderID == providerID {
			copied := *l
			return &copied, nil
		}
	}
	return nil, internal.ErrLocationNotFound
}

func (m *mockRepository) Create(l *weatherDatamodel.Location) error {
	m.nextID++
	l.ID = m.nextID
	m.locations[l.ID] = l
	return nil
}

func (m *mockRepository) Update(l *weatherDatamodel.Location) error {
	m.locations[l.ID] = l
	return nil
}

func (m *mockRepository) Delete(id int64) error {
	delete(m.locations, id)
	return nil
}

type mockProvider struct {
	readings map[string]*Reading
	fails    bool
}

func (m *mockProvider) Fetch(ctx context.Context, providerID string) (*Reading, error) {
	if m.fails {
		return nil, internal.NewExternalError("weather provider unavailable", errors.New("connection refused"))
	}
	if r, ok := m.readings[providerID]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, internal.NewExternalError("unknown location", nil)
}

var _ = ginkgo.Describe("WeatherService", func() {
	var (
		service  *Service
		mockRepo *mockRepository
		provider *mockProvider
		ctx      context.Context
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockRepository()
		provider = &mockProvider{
			readings: map[string]*Reading{
				"osl": {Name: "Oslo", Temperature: 6.1, Humidity: 75, WindSpeed: 4.0, Condition: "rain"},
				"bgo": {Name: "Bergen", Temperature: 8.3, Humidity: 90, WindSpeed: 7.5, Condition: "rain"},
			},
		}
		service = NewService(mockRepo, provider, nil, slog.Default())
		ctx = context.Background()
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should store the first reading as plain fields", func() {
			loc, err := service.Create(ctx, &CreateLocationDTO{ProviderID: "bgo"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(loc.Name.Value()).To(gomega.Equal("Bergen"))
			gomega.Expect(loc.Name.IsOverridden()).To(gomega.BeFalse())
			gomega.Expect(loc.Temperature.Value()).To(gomega.Equal(8.3))
		})

		ginkgo.It("should reject a duplicate provider id", func() {
			_, err := service.Create(ctx, &CreateLocationDTO{ProviderID: "osl"})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should surface provider failures as external errors", func() {
			provider.fails = true
			_, err := service.Create(ctx, &CreateLocationDTO{ProviderID: "trd"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeExternal))
		})
	})

	ginkgo.Describe("OverrideField", func() {
		ginkgo.It("should keep the provider value as original and expose the edit", func() {
			loc, err := service.OverrideField(ctx, 1, &OverrideFieldDTO{
				Field:  FieldTemperature,
				Value:  json.RawMessage(`-2.0`),
				Reason: "sensor drift at this site",
			}, 42)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(loc.Temperature.IsOverridden()).To(gomega.BeTrue())
			gomega.Expect(loc.Temperature.Value()).To(gomega.Equal(-2.0))
			gomega.Expect(loc.Temperature.Original()).To(gomega.Equal(4.5))

			audit, ok := loc.Temperature.Audit()
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(audit.OverriddenBy).To(gomega.Equal(int64(42)))
			gomega.Expect(audit.Reason).To(gomega.Equal("sensor drift at this site"))
			gomega.Expect(audit.OverriddenAt).ToNot(gomega.BeNil())
		})

		ginkgo.It("should leave untouched fields plain", func() {
			loc, err := service.OverrideField(ctx, 1, &OverrideFieldDTO{
				Field: FieldName,
				Value: json.RawMessage(`"Oslo Sentrum"`),
			}, 42)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(loc.Name.IsOverridden()).To(gomega.BeTrue())
			gomega.Expect(loc.Condition.IsOverridden()).To(gomega.BeFalse())
		})

		ginkgo.It("should reject a type mismatch for numeric fields", func() {
			_, err := service.OverrideField(ctx, 1, &OverrideFieldDTO{
				Field: FieldTemperature,
				Value: json.RawMessage(`"warm"`),
			}, 42)
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should reject an unknown field name", func() {
			_, err := service.OverrideField(ctx, 1, &OverrideFieldDTO{
				Field: "pressure",
				Value: json.RawMessage(`1013`),
			}, 42)
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("RevertField", func() {
		ginkgo.It("should collapse the override back to the provider value", func() {
			_, err := service.OverrideField(ctx, 1, &OverrideFieldDTO{
				Field: FieldTemperature,
				Value: json.RawMessage(`-2.0`),
			}, 42)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			loc, err := service.RevertField(ctx, 1, FieldTemperature, 42)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(loc.Temperature.IsOverridden()).To(gomega.BeFalse())
			gomega.Expect(loc.Temperature.Value()).To(gomega.Equal(4.5))

			_, hasAudit := loc.Temperature.Audit()
			gomega.Expect(hasAudit).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("Refresh", func() {
		ginkgo.It("should rebase plain fields to the fresh reading", func() {
			loc, err := service.Refresh(ctx, 1)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(loc.Temperature.Value()).To(gomega.Equal(6.1))
			gomega.Expect(loc.Condition.Value()).To(gomega.Equal("rain"))
		})

		ginkgo.It("should preserve overrides while updating their originals", func() {
			_, err := service.OverrideField(ctx, 1, &OverrideFieldDTO{
				Field:  FieldTemperature,
				Value:  json.RawMessage(`-2.0`),
				Reason: "sensor drift",
			}, 42)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			loc, err := service.Refresh(ctx, 1)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(loc.Temperature.IsOverridden()).To(gomega.BeTrue())
			gomega.Expect(loc.Temperature.Value()).To(gomega.Equal(-2.0))
			gomega.Expect(loc.Temperature.Original()).To(gomega.Equal(6.1))
		})

		ginkgo.It("should surface provider failures without touching stored data", func() {
			provider.fails = true
			_, err := service.Refresh(ctx, 1)
			gomega.Expect(err).To(gomega.HaveOccurred())

			loc, err := service.GetByID(1)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(loc.Temperature.Value()).To(gomega.Equal(4.5))
		})
	})

	ginkgo.Describe("RefreshAll", func() {
		ginkgo.It("should keep sweeping past per-location failures", func() {
			_, err := service.Create(ctx, &CreateLocationDTO{ProviderID: "bgo"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			delete(provider.readings, "osl")
			gomega.Expect(service.RefreshAll(ctx)).To(gomega.Succeed())
		})
	})
})
