package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// Client talks to the task API. Every method returns a Result and never an
// error, so callers only branch on Success.
type Client struct {
	baseURL    string
	httpClient *http.Client
	language   string
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLanguage sets the Accept-Language sent with every request.
func WithLanguage(language string) Option {
	return func(c *Client) {
		c.language = language
	}
}

// New returns a client for the API rooted at baseURL, for example
// http://localhost:8080/api/v1.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) GetAllTasks(ctx context.Context) Result[[]Task] {
	var envelope struct {
		Success bool       `json:"success"`
		Data    []taskJSON `json:"data"`
		Error   string     `json:"error"`
	}
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &envelope); err != nil {
		return fail[[]Task](err)
	}
	if !envelope.Success {
		if envelope.Error == "" {
			return fail[[]Task](errors.New("Unknown error"))
		}
		return fail[[]Task](errors.New(envelope.Error))
	}

	tasks := make([]Task, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		task, err := raw.toTask()
		if err != nil {
			return fail[[]Task](err)
		}
		tasks = append(tasks, task)
	}
	return ok(tasks)
}

func (c *Client) GetTask(ctx context.Context, id string) Result[Task] {
	return c.taskRequest(ctx, http.MethodGet, "/task/"+url.PathEscape(id), nil)
}

func (c *Client) CreateTask(ctx context.Context, draft TaskDraft) Result[Task] {
	return c.taskRequest(ctx, http.MethodPost, "/task", draft)
}

// UpdateTask replaces the stored task with task.
func (c *Client) UpdateTask(ctx context.Context, task Task) Result[Task] {
	return c.taskRequest(ctx, http.MethodPut, "/task/"+url.PathEscape(task.ID), newUpdateTaskRequest(task))
}

func (c *Client) DeleteTask(ctx context.Context, id string) Result[DeleteResult] {
	var result DeleteResult
	if err := c.do(ctx, http.MethodDelete, "/task/"+url.PathEscape(id), nil, &result); err != nil {
		return fail[DeleteResult](err)
	}
	return ok(result)
}

func (c *Client) CreateUser(ctx context.Context, draft UserDraft) Result[User] {
	var user User
	if err := c.do(ctx, http.MethodPost, "/user", draft, &user); err != nil {
		return fail[User](err)
	}
	return ok(user)
}

func (c *Client) GetUser(ctx context.Context, id string) Result[User] {
	var user User
	if err := c.do(ctx, http.MethodGet, "/user/"+url.PathEscape(id), nil, &user); err != nil {
		return fail[User](err)
	}
	return ok(user)
}

func (c *Client) taskRequest(ctx context.Context, method, path string, body interface{}) Result[Task] {
	var raw taskJSON
	if err := c.do(ctx, method, path, body, &raw); err != nil {
		return fail[Task](err)
	}
	task, err := raw.toTask()
	if err != nil {
		return fail[Task](err)
	}
	return ok(task)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		zap.L().Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, data []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Error.Message != "" {
		apiErr.Message = body.Error.Message
		apiErr.Fields = body.Error.Fields
		return apiErr
	}

	apiErr.Message = fmt.Sprintf("%d %s", status, http.StatusText(status))
	return apiErr
}
