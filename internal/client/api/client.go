// Package api is the HTTP client for the task server. Response codes are
// mapped back onto the shared sentinel errors so callers can react to a 401
// the same way everywhere.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"taskdeck/internal/common"
	"taskdeck/internal/domain/model"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// SetToken installs the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TaskUpdate is a partial update; nil fields are omitted from the request.
type TaskUpdate struct {
	Name     *string `json:"name,omitempty"`
	Complete *bool   `json:"complete,omitempty"`
}

func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	var resp struct {
		Message string `json:"message"`
		ID      string `json:"id"`
	}
	err := c.do(ctx, http.MethodPost, "/register", credentials{username, password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/login", credentials{username, password}, &resp)
	if err != nil {
		return "", err
	}
	c.token = resp.Token
	return resp.Token, nil
}

func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, name string) (*model.Task, error) {
	body := struct {
		Name string `json:"name"`
	}{Name: name}
	var task model.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, update TaskUpdate) (*model.Task, error) {
	var task model.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+id, update, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func errorFromResponse(resp *http.Response) error {
	var body common.ErrorResponse
	message := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		message = body.Error
	}

	var sentinel error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = common.ErrBadRequest
	case http.StatusUnauthorized:
		sentinel = common.ErrUnauthorized
	case http.StatusNotFound:
		sentinel = common.ErrNotFound
	case http.StatusConflict:
		sentinel = common.ErrConflict
	default:
		sentinel = common.ErrInternalServer
	}
	return fmt.Errorf("%s: %w", message, sentinel)
}
