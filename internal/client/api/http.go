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
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/recipes/internal/client/models"
	"github.com/dmitrijs2005/recipes/internal/logging"
	"github.com/google/uuid"
)

const (
	// SessionCookieName is the cookie the server reads the session from.
	SessionCookieName = "session_id"
	RequestIDHeader   = "X-Request-ID"

	DefaultBaseURL = "http://localhost:8080/api/v1"
	DefaultTimeout = 10 * time.Second

	maxErrorBody = 64 << 10
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	creds   CredentialSource
	logger  logging.Logger
	newID   func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client, e.g. for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.logger = l }
}

// WithRequestIDs overrides the X-Request-ID generator.
func WithRequestIDs(f func() string) Option {
	return func(h *HTTPClient) { h.newID = f }
}

// NewHTTPClient returns a client for the API rooted at baseURL. creds may be
// nil, in which case no session cookie is sent.
func NewHTTPClient(baseURL string, timeout time.Duration, creds CredentialSource, opts ...Option) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
		logger:  logging.Nop(),
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *HTTPClient) SignUp(ctx context.Context, email, login, password string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/signup", signUpRequest{Email: email, Login: login, Password: password}, nil)
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (SignInResult, error) {
	var resp signInResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/signin", signInRequest{Email: email, Password: password}, &resp); err != nil {
		return SignInResult{}, err
	}
	return SignInResult{Login: resp.Login, SessionID: resp.SessionID}, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *HTTPClient) IntegrationToken(ctx context.Context) (string, error) {
	var resp tokenResponse
	if err := c.doJSON(ctx, http.MethodGet, "/auth/tgtoken", nil, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, login string) (models.UserProfile, error) {
	var resp userResponse
	if err := c.doJSON(ctx, http.MethodGet, userPath(login), nil, &resp); err != nil {
		return models.UserProfile{}, err
	}
	if resp.User == nil {
		return models.UserProfile{}, &StatusError{Status: http.StatusNotFound, Message: "empty user payload", Err: ErrNotFound}
	}
	return resp.User.model(), nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, login string, form models.EditForm) error {
	body, contentType, err := userForm(form)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, userPath(login), body, contentType, nil)
}

func (c *HTTPClient) ChangePassword(ctx context.Context, login, password string) error {
	return c.doJSON(ctx, http.MethodPut, userPath(login)+"/password", passwordRequest{Password: password}, nil)
}

func (c *HTTPClient) Subscribe(ctx context.Context, login string) error {
	return c.doJSON(ctx, http.MethodPost, userPath(login)+"/subscribe", nil, nil)
}

func (c *HTTPClient) Unsubscribe(ctx context.Context, login string) error {
	return c.doJSON(ctx, http.MethodPost, userPath(login)+"/unsubscribe", nil, nil)
}

func (c *HTTPClient) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var resp recipesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/recipe", nil, &resp); err != nil {
		return nil, err
	}
	return recipeModels(resp.Recipes), nil
}

func (c *HTTPClient) SearchRecipes(ctx context.Context, filter models.RecipeFilter) ([]models.Recipe, error) {
	var resp recipesResponse
	if err := c.doJSON(ctx, http.MethodPost, "/recipe", newFilterRequest(filter), &resp); err != nil {
		return nil, err
	}
	return recipeModels(resp.Recipes), nil
}

func (c *HTTPClient) GetRecipe(ctx context.Context, id int) (models.RecipeDetail, error) {
	var resp recipeInfoResponse
	if err := c.doJSON(ctx, http.MethodGet, recipePath(id), nil, &resp); err != nil {
		return models.RecipeDetail{}, err
	}
	if resp.Info == nil {
		return models.RecipeDetail{}, &StatusError{Status: http.StatusNotFound, Message: "empty recipe payload", Err: ErrNotFound}
	}
	return resp.Info.model(), nil
}

func (c *HTTPClient) CreateRecipe(ctx context.Context, login string, draft models.RecipeDraft) error {
	body, contentType, err := recipeForm(draft)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, userPath(login)+"/recipe", body, contentType, nil)
}

func (c *HTTPClient) UpdateRecipe(ctx context.Context, login string, id int, draft models.RecipeDraft) error {
	body, contentType, err := recipeForm(draft)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, userRecipePath(login, id), body, contentType, nil)
}

func (c *HTTPClient) DeleteRecipe(ctx context.Context, login string, id int) error {
	return c.doJSON(ctx, http.MethodDelete, userRecipePath(login, id), nil, nil)
}

func (c *HTTPClient) LikeRecipe(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodPost, recipePath(id)+"/like", nil, nil)
}

func (c *HTTPClient) UnlikeRecipe(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodPost, recipePath(id)+"/unlike", nil, nil)
}

func userPath(login string) string {
	return "/user/" + url.PathEscape(login)
}

func recipePath(id int) string {
	return "/recipe/" + strconv.Itoa(id)
}

func userRecipePath(login string, id int) string {
	return userPath(login) + "/recipe/" + strconv.Itoa(id)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, out)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}

	requestID := c.newID()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.creds != nil {
		if id, ok := c.creds.SessionID(ctx); ok {
			req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: id})
		}
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "err", err)
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(started),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return c.statusError(resp, requestID)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) statusError(resp *http.Response, requestID string) error {
	se := &StatusError{
		Status:    resp.StatusCode,
		RequestID: requestID,
		Err:       statusSentinel(resp.StatusCode),
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
		se.Message = eb.Error
	} else {
		se.Message = strings.TrimSpace(string(raw))
	}
	return se
}
