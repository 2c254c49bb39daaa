// Package client is a typed HTTP client for the Cyber Kittens API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cyberkittens/cyberkittens-go/internal/model"
)

// DefaultBaseURL is where a locally started API listens.
const DefaultBaseURL = "http://localhost:8080"

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	Status  int
	Name    string
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Name, e.Status, e.Message)
}

// Client calls the API. Token, when set, is sent as a bearer token.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// New creates a Client for baseURL.
func New(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Register creates an account and returns its token.
func (c *Client) Register(ctx context.Context, username, password string) (model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.do(ctx, http.MethodPost, "/register", model.CredentialsRequest{Username: username, Password: password}, &out)
	return out, err
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, username, password string) (model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.do(ctx, http.MethodPost, "/login", model.CredentialsRequest{Username: username, Password: password}, &out)
	return out, err
}

// GetKitten fetches one of the caller's kittens.
func (c *Client) GetKitten(ctx context.Context, id int64) (model.KittenResponse, error) {
	var out model.KittenResponse
	err := c.do(ctx, http.MethodGet, kittenPath(id), nil, &out)
	return out, err
}

// CreateKitten creates a kitten owned by the caller.
func (c *Client) CreateKitten(ctx context.Context, req model.CreateKittenRequest) (model.CreatedKittenResponse, error) {
	var out model.CreatedKittenResponse
	err := c.do(ctx, http.MethodPost, "/kittens", req, &out)
	return out, err
}

// DeleteKitten removes one of the caller's kittens.
func (c *Client) DeleteKitten(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, kittenPath(id), nil, nil)
}

func kittenPath(id int64) string {
	return "/kittens/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func decodeAPIError(status int, data []byte) error {
	apiErr := &APIError{Status: status}

	var env model.ErrorResponse
	if err := json.Unmarshal(data, &env); err == nil && (env.Message != "" || env.Error != "") {
		apiErr.Name = env.Name
		apiErr.Message = env.Message
		if apiErr.Message == "" {
			apiErr.Message = env.Error
		}
		apiErr.Fields = env.Fields
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(data))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
