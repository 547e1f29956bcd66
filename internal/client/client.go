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

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
)

// APIError 是服务端返回的失败响应
type APIError struct {
	StatusCode int
	Message    string
	// 400 响应中能解析出字段错误时不为空
	Validation *domain.ValidationError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	if e.Validation != nil {
		return e.Validation
	}
	if e.StatusCode == http.StatusNotFound {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client 调用员工接口，不做任何重试
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) List(ctx context.Context) ([]*domain.Employee, error) {
	employees := make([]*domain.Employee, 0)
	if err := c.do(ctx, http.MethodGet, "/employees", nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (c *Client) Get(ctx context.Context, id string) (*domain.Employee, error) {
	employee := &domain.Employee{}
	if err := c.do(ctx, http.MethodGet, "/employees/"+url.PathEscape(id), nil, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (c *Client) Create(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error) {
	employee := &domain.Employee{}
	if err := c.do(ctx, http.MethodPost, "/employees", in, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (c *Client) Update(ctx context.Context, id string, in domain.EmployeeInput) (*domain.Employee, error) {
	employee := &domain.Employee{}
	if err := c.do(ctx, http.MethodPut, "/employees/"+url.PathEscape(id), in, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/employees/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, dst any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("invalid response from %s %s: %w", method, path, err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: env.Message}
		if resp.StatusCode == http.StatusBadRequest {
			apiErr.Validation, _ = domain.ParseValidationError(env.Message)
		}
		return apiErr
	}

	if dst == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, dst)
}
