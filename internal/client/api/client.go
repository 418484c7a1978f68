// Package api implements the HTTP client for the notekeeper backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/client/config"
)

// Note is a note as returned by the server.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	OwnerID   int64     `json:"owner_id"`
}

// NotePatch carries the fields of a partial note update. A nil field is
// omitted from the request body and left unchanged on the server.
type NotePatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type noteBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type tokenBody struct {
	AccessToken string `json:"access_token"`
}

type messageBody struct {
	Message string `json:"message"`
}

// Client talks to the notekeeper HTTP API. It remembers the access token
// obtained by Login and sends it with every note request.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	accessToken string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    cfg.ServerEndpointAddr,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// LoggedIn reports whether a Login succeeded earlier in this session.
func (c *Client) LoggedIn() bool {
	return c.accessToken != ""
}

// Logout forgets the access token.
func (c *Client) Logout() {
	c.accessToken = ""
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var m messageBody
		if err := json.Unmarshal(data, &m); err != nil || m.Message == "" {
			m.Message = resp.Status
		}
		return &APIError{StatusCode: resp.StatusCode, Message: m.Message}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Register creates an account. It does not log the user in.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", credentials{Username: username, Password: password}, nil)
}

// Login authenticates and stores the returned access token on the client.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var tb tokenBody
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", credentials{Username: username, Password: password}, &tb); err != nil {
		return err
	}
	c.accessToken = tb.AccessToken
	return nil
}

func (c *Client) CreateNote(ctx context.Context, title, content string) (*Note, error) {
	var n Note
	if err := c.do(ctx, http.MethodPost, "/api/notes", noteBody{Title: title, Content: content}, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	var notes []Note
	if err := c.do(ctx, http.MethodGet, "/api/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) GetNote(ctx context.Context, id int64) (*Note, error) {
	var n Note
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/notes/%d", id), nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) UpdateNote(ctx context.Context, id int64, patch NotePatch) (*Note, error) {
	var n Note
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/notes/%d", id), patch, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/notes/%d", id), nil, nil)
}
