package identity_client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"backend/internal/models"
)

// ErrTokenRejected indicates the identity service refused the
// credential. Any other error is a transport or protocol failure.
var ErrTokenRejected = errors.New("token rejected by identity service")

// Client is a client for the identity verification service API. The
// service's verdict is trusted unconditionally.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// VerifyRequest represents a token verification request.
type VerifyRequest struct {
	Token string `json:"token"`
}

// VerifyResponse represents a verified identity.
type VerifyResponse struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
}

// NewClient creates a new identity service client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// VerifyToken submits a bearer credential for verification and returns
// the verified identity, or ErrTokenRejected when the service refuses it.
func (c *Client) VerifyToken(ctx context.Context, token string) (*models.Identity, error) {
	reqBody := VerifyRequest{
		Token: token,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/v1/tokens/verify", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrTokenRejected
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("identity service returned status %d: %s", resp.StatusCode, string(body))
	}

	var result VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &models.Identity{UID: result.UID, Email: result.Email}, nil
}
