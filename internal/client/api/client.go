// Package api is a typed HTTP client for the gophsocial REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

var (
	// ErrUnavailable is returned when the server cannot be reached.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized is returned for a missing, invalid or expired token.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError carries the field-keyed messages of a rejected request.
type APIError struct {
	Status int
	Fields map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

type Follower struct {
	User string    `json:"user"`
	Date time.Time `json:"date"`
}

type User struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Avatar    string     `json:"avatar"`
	Followers []Follower `json:"followers"`
	Date      time.Time  `json:"date"`
}

type CurrentUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var u User
	if err := c.do(ctx, http.MethodPost, "/api/users/register", "", body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login returns the token exactly as issued, including its "Bearer " prefix.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/users/login", "", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *Client) Current(ctx context.Context, token string) (*CurrentUser, error) {
	var u CurrentUser
	if err := c.do(ctx, http.MethodGet, "/api/users/current", token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), "", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Follow(ctx context.Context, token, id string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPost, "/api/users/follow/"+url.PathEscape(id), token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Unfollow(ctx context.Context, token, id string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPost, "/api/users/unfollow/"+url.PathEscape(id), token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Ping checks the server's /healthz endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", "", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr.Fields)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
