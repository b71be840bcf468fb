package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/lukec11/steve/internal/metrics"
)

// ErrProfileNotFound means Mojang has no account for the username.
var ErrProfileNotFound = errors.New("profile not found")

// MojangClient resolves usernames to account UUIDs via the Mojang
// profile API.
type MojangClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewMojangClient creates a Mojang API client.
func NewMojangClient(baseURL string, timeout time.Duration) *MojangClient {
	return &MojangClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// profileResponse is the API's profile document. The id field is an
// undashed UUID.
type profileResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UUID looks up the account UUID for username.
func (c *MojangClient) UUID(ctx context.Context, username string) (uuid.UUID, error) {
	start := time.Now()
	defer func() {
		metrics.MojangLatency.Observe(time.Since(start).Seconds())
	}()

	reqURL := fmt.Sprintf("%s/users/profiles/minecraft/%s", c.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return uuid.Nil, fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusNoContent:
		// Older API versions answer 204 for unknown names.
		return uuid.Nil, ErrProfileNotFound
	default:
		return uuid.Nil, fmt.Errorf("profile API returned status %d", resp.StatusCode)
	}

	var profile profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return uuid.Nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	id, err := uuid.Parse(profile.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid profile id %q: %w", profile.ID, err)
	}
	return id, nil
}
