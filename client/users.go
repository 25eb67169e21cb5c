// Package client talks to the users API of a running quote-desk server.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"quote-desk/domain"
)

// PlaceholderUsers is shown when the users API cannot be reached.
var PlaceholderUsers = []domain.User{
	{ID: 1, Name: "John Doe", Email: "john.doe@example.com", Phone: "+1234567890", Status: "active", Policies: 3, JoinDate: "2024-01-15"},
	{ID: 2, Name: "Jane Smith", Email: "jane.smith@example.com", Phone: "+1987654321", Status: "inactive", Policies: 1, JoinDate: "2023-11-22"},
	{ID: 3, Name: "Alice Johnson", Email: "alice.johnson@example.com", Phone: "+1122334455", Status: "active", Policies: 2, JoinDate: "2024-03-10"},
}

// UsersResult carries the users list. Degraded is set when the list is the
// placeholder dataset; Err then holds the reason.
type UsersResult struct {
	Users    []domain.User
	Degraded bool
	Err      string
}

type UsersClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewUsersClient(baseURL string, logger *zap.Logger) *UsersClient {
	return &UsersClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// List fetches users. Backend failures are not returned as errors: the
// placeholder dataset comes back marked Degraded. An empty list also shows
// the placeholders, without the error.
func (c *UsersClient) List(ctx context.Context) UsersResult {
	users, err := c.fetch(ctx)
	if err != nil {
		c.logger.Warn("users API unavailable, using placeholder data", zap.Error(err))
		return UsersResult{
			Users:    append([]domain.User(nil), PlaceholderUsers...),
			Degraded: true,
			Err:      err.Error(),
		}
	}
	if len(users) == 0 {
		return UsersResult{
			Users:    append([]domain.User(nil), PlaceholderUsers...),
			Degraded: true,
		}
	}
	return UsersResult{Users: users}
}

func (c *UsersClient) fetch(ctx context.Context) ([]domain.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/users", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("users API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var users []domain.User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}
