package userservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/infra/storage"
)

// Client читает профили мастеров и клиентов из user service.
// Реализует те же методы поиска профилей, что и драйверы хранилища.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает клиента, timeout ограничивает каждый запрос
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetProvider возвращает профиль мастера по id
func (c *Client) GetProvider(ctx context.Context, id string) (*domain.Profile, error) {
	return c.getProfile(ctx, "providers", id, domain.RoleProvider)
}

// GetCustomer возвращает профиль клиента по id
func (c *Client) GetCustomer(ctx context.Context, id string) (*domain.Profile, error) {
	return c.getProfile(ctx, "customers", id, domain.RoleCustomer)
}

func (c *Client) getProfile(ctx context.Context, collection, id string, role domain.Role) (*domain.Profile, error) {
	endpoint := fmt.Sprintf("%s/internal/%s/%s", c.baseURL, collection, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, storage.ErrProfileNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.log.Error("getProfile: user service answered %d for %s id=%s", resp.StatusCode, collection, id)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var doc Profile
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	// документ из другой коллекции не дает роль
	if domain.Role(doc.Role) != role {
		c.log.Warn("getProfile: %s id=%s has role=%q", collection, id, doc.Role)
		return nil, storage.ErrProfileNotFound
	}

	return &domain.Profile{ID: doc.ID, Role: role, Name: doc.Name}, nil
}
