package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/novahq/nova-admin/internal"
)

// Reading is one fresh observation from the upstream weather provider.
type Reading struct {
	Name        string  `json:"name"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Condition   string  `json:"condition"`
}

type ProviderAPI interface {
	Fetch(ctx context.Context, providerID string) (*Reading, error)
}

// HTTPProvider is a thin JSON client for the upstream weather API. Provider
// failures surface as external errors so callers can distinguish them from
// our own faults.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

func NewHTTPProvider(cfg internal.WeatherConfig, logger *slog.Logger) *HTTPProvider {
	return &HTTPProvider{
		baseURL: cfg.ProviderURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.RequestTimeout},
		logger:  logger,
	}
}

func (p *HTTPProvider) Fetch(ctx context.Context, providerID string) (*Reading, error) {
	endpoint := fmt.Sprintf("%s/v1/current?location=%s", p.baseURL, url.QueryEscape(providerID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, internal.NewExternalError("failed to build provider request", err)
	}
	if p.apiKey != "" {
		req.Header.Set("X-Api-Key", p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Error("weather provider request failed", "provider_id", providerID, "error", err)
		return nil, internal.NewExternalError("weather provider unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.Error("weather provider returned non-200", "provider_id", providerID, "status", resp.StatusCode)
		return nil, internal.NewExternalError(fmt.Sprintf("weather provider returned status %d", resp.StatusCode), nil)
	}

	var reading Reading
	if err := json.NewDecoder(resp.Body).Decode(&reading); err != nil {
		return nil, internal.NewExternalError("failed to decode provider response", err)
	}
	return &reading, nil
}
