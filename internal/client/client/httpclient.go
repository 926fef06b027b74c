package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/teacherlms/internal/client/models"
	"github.com/dmitrijs2005/teacherlms/internal/common"
	"github.com/dmitrijs2005/teacherlms/internal/logging"
)

const maxResponseBytes = 8 << 20

type HTTPClient struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	log            logging.Logger
	onUnauthorized func(ctx context.Context)
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.httpClient.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithUnauthorizedHook registers fn to run whenever the server answers 401.
func WithUnauthorizedHook(fn func(ctx context.Context)) Option {
	return func(c *HTTPClient) { c.onUnauthorized = fn }
}

func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
		log:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	AccessToken string      `json:"access_token"`
	Token       string      `json:"token"`
	User        models.User `json:"user"`
}

type categoriesResponse struct {
	Categories []models.Category `json:"categories"`
}

type categoryResponse struct {
	Category models.Category `json:"category"`
}

type contentListResponse struct {
	Content []models.Content `json:"content"`
}

type contentResponse struct {
	Content models.Content `json:"content"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (string, models.User, error) {
	var resp authResponse
	req := loginRequest{Email: email, Password: string(password)}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return "", models.User{}, err
	}

	token := resp.AccessToken
	if token == "" {
		token = resp.Token
	}
	if token == "" {
		return "", models.User{}, fmt.Errorf("login response without token")
	}
	return token, resp.User, nil
}

func (c *HTTPClient) Verify(ctx context.Context) (models.User, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodGet, "/auth/verify", nil, &resp); err != nil {
		return models.User{}, err
	}
	return resp.User, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	var resp categoriesResponse
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func (c *HTTPClient) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	var resp categoryResponse
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/categories", body, &resp); err != nil {
		return models.Category{}, err
	}
	return resp.Category, nil
}

func (c *HTTPClient) GetCategory(ctx context.Context, id string) (models.Category, error) {
	var resp categoryResponse
	if err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(id), nil, &resp); err != nil {
		return models.Category{}, err
	}
	return resp.Category, nil
}

func (c *HTTPClient) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) ListContent(ctx context.Context, categoryID string) ([]models.Content, error) {
	var resp contentListResponse
	path := "/categories/" + url.PathEscape(categoryID) + "/content"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Content, nil
}

func (c *HTTPClient) CreateContent(ctx context.Context, categoryID string, nc models.NewContent) (models.Content, error) {
	var resp contentResponse
	path := "/categories/" + url.PathEscape(categoryID) + "/content"
	if err := c.do(ctx, http.MethodPost, path, nc, &resp); err != nil {
		return models.Content{}, err
	}
	return resp.Content, nil
}

func (c *HTTPClient) DeleteContent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/content/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	requestID := uuid.NewString()
	ctx = logging.WithRequestID(ctx, requestID)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	req.Header.Set(common.RequestIDHeaderName, requestID)

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
		}
	}

	log := c.log.With("method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Warn(ctx, "request failed", "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	log.Debug(ctx, "response", "status", resp.StatusCode, "bytes", len(data))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	msg := errorMessage(data)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
		}
		return ErrUnauthorized
	case http.StatusForbidden, http.StatusNotFound:
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrNotFound, msg)
		}
		return ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	return &APIError{Status: resp.StatusCode, Message: msg}
}

func errorMessage(data []byte) string {
	var e errorResponse
	if err := json.Unmarshal(data, &e); err == nil {
		if e.Error != "" {
			return e.Error
		}
		return e.Message
	}
	return ""
}
