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

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/models"
	"github.com/google/uuid"
)

const (
	loginFailedMessage    = "login failed"
	registerFailedMessage = "registration failed"

	maxResponseBody = 4 << 20
)

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient returns a client for the API rooted at baseURL. A zero
// timeout leaves requests unbounded.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

// response is a fully read HTTP response.
type response struct {
	status int
	body   []byte
}

func (r response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// do performs a single request. A non-nil error means the request never
// produced a response and wraps ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, token string, body any) (response, error) {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return response{}, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return response{}, fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", common.ContentTypeJSON)
	if body != nil {
		req.Header.Set("Content-Type", common.ContentTypeJSON)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	log := c.logger.With("request_id", requestID, "method", method, "path", path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return response{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		log.Warn(ctx, "reading response failed", "status", resp.StatusCode, "error", err)
		return response{}, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(start))
	return response{status: resp.StatusCode, body: b}, nil
}

// bodyMessage pulls a human-readable message out of an error body,
// checking the named fields in order.
func bodyMessage(body []byte, fields ...string) string {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return ""
	}
	for _, f := range fields {
		if s, ok := m[f].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func authError(resp response, err error, fallback string) *AuthError {
	if err != nil {
		return &AuthError{Message: fallback, Err: err}
	}
	msg := bodyMessage(resp.body, "error", "message")
	if msg == "" {
		msg = fallback
	}
	ae := &AuthError{Status: resp.status, Message: msg}
	if resp.status == http.StatusUnauthorized || resp.status == http.StatusForbidden {
		ae.Err = ErrUnauthorized
	}
	return ae
}

func apiError(resp response) *APIError {
	if resp.status == http.StatusUnauthorized {
		return &APIError{Status: resp.status, Message: ErrSessionExpired.Error()}
	}
	msg := bodyMessage(resp.body, "message", "error")
	if msg == "" {
		msg = fmt.Sprintf("API call failed: %d", resp.status)
	}
	return &APIError{Status: resp.status, Message: msg}
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error) {
	resp, err := c.do(ctx, http.MethodPost, loginPath, nil, "", creds)
	if err != nil || !resp.ok() {
		return nil, authError(resp, err, loginFailedMessage)
	}

	var res models.AuthResult
	if err := json.Unmarshal(resp.body, &res); err != nil {
		return nil, &AuthError{Status: resp.status, Message: loginFailedMessage, Err: fmt.Errorf("decode login response: %w", err)}
	}
	if res.Token == "" {
		return nil, &AuthError{Status: resp.status, Message: loginFailedMessage, Err: errors.New("login response carries no token")}
	}
	return &res, nil
}

func (c *HTTPClient) Register(ctx context.Context, profile models.Profile) (*models.RegisterResult, error) {
	resp, err := c.do(ctx, http.MethodPost, registerPath, nil, "", profile)
	if err != nil || !resp.ok() {
		return nil, authError(resp, err, registerFailedMessage)
	}

	var res models.RegisterResult
	if len(resp.body) > 0 {
		if err := json.Unmarshal(resp.body, &res); err != nil {
			return nil, &AuthError{Status: resp.status, Message: registerFailedMessage, Err: fmt.Errorf("decode register response: %w", err)}
		}
	}
	return &res, nil
}

// callJSON runs a diary call and decodes a 2xx body into out (when out
// is non-nil).
func (c *HTTPClient) callJSON(ctx context.Context, method, path string, query url.Values, token string, body, out any) error {
	resp, err := c.do(ctx, method, path, query, token, body)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return apiError(resp)
	}
	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) ListDiaries(ctx context.Context, token string, authorID int64) ([]models.Diary, error) {
	var diaries []models.Diary
	if err := c.callJSON(ctx, http.MethodGet, authorDiariesPath(authorID), nil, token, nil, &diaries); err != nil {
		return nil, err
	}
	return diaries, nil
}

func (c *HTTPClient) SearchDiaries(ctx context.Context, token string, filter models.SearchFilter) ([]models.Diary, error) {
	var diaries []models.Diary
	if err := c.callJSON(ctx, http.MethodGet, searchPath, BuildSearchQuery(filter), token, nil, &diaries); err != nil {
		return nil, err
	}
	return diaries, nil
}

func (c *HTTPClient) CreateDiary(ctx context.Context, token string, authorID int64, in models.DiaryInput) (*models.Diary, error) {
	if in.Tags == nil {
		in.Tags = []string{}
	}
	q := url.Values{}
	q.Set("authorId", fmt.Sprint(authorID))

	var d models.Diary
	if err := c.callJSON(ctx, http.MethodPost, diariesPath, q, token, in, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *HTTPClient) UpdateDiary(ctx context.Context, token string, id int64, patch models.DiaryPatch) (*models.Diary, error) {
	var d models.Diary
	if err := c.callJSON(ctx, http.MethodPut, diaryPath(id), nil, token, patch, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *HTTPClient) DeleteDiary(ctx context.Context, token string, id int64) error {
	return c.callJSON(ctx, http.MethodDelete, diaryPath(id), nil, token, nil, nil)
}
