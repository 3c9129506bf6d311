package servicecatalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// Client клиент каталога доп. услуг
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetService получает активную услугу по ID
func (c *Client) GetService(ctx context.Context, serviceID int64) (*domain.ExtraService, error) {
	url := fmt.Sprintf("%s/internal/services/%d", c.baseURL, serviceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("ServiceCatalog unavailable, service_id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, serviceID)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var service Service
	if err := json.NewDecoder(resp.Body).Decode(&service); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	// Неактивная услуга для бронирования не существует
	if !service.IsActive {
		return nil, fmt.Errorf("%w: id=%d is inactive", ErrServiceNotFound, serviceID)
	}

	return &domain.ExtraService{ID: service.ID, Name: service.Name, Price: service.Price}, nil
}

// GetServices получает несколько услуг. Повторяющиеся ID запрашиваются один раз.
func (c *Client) GetServices(ctx context.Context, ids []int64) (map[int64]domain.ExtraService, error) {
	services := make(map[int64]domain.ExtraService, len(ids))

	for _, id := range ids {
		if _, ok := services[id]; ok {
			continue
		}
		service, err := c.GetService(ctx, id)
		if err != nil {
			return nil, err
		}
		services[id] = *service
	}

	c.log.Info("ServiceCatalog: fetched %d services", len(services))
	return services, nil
}
