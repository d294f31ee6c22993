/**
* Name: 			client.go
* Description: 		계정 서버(/v1) REST 클라이언트
* Workflow: 		JSON 요청 생성, Bearer 토큰 첨부, 상태 코드/메시지 해석
 */
package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"siack/internal/models"

	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// 2xx 이외의 응답
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded %d", e.Status)
	}
	return fmt.Sprintf("server responded %d: %s", e.Status, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0 for transport failures.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// Client talks to the account API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
	inviteCode string
	timeout    time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithTimeout bounds every request. It applies to a copy of the http.Client,
// regardless of where WithHTTPClient appears in the options.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithInviteCode sends code with registration requests on servers that require one.
func WithInviteCode(code string) Option {
	return func(c *Client) { c.inviteCode = code }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.APIResponse, error) {
	var resp models.APIResponse
	if err := c.do(ctx, http.MethodPost, "/v1/user/register", "", req, &resp, c.withInvite); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	body := models.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/v1/user/login", "", body, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &StatusError{Status: http.StatusBadGateway, Message: "login response carried no token"}
	}
	return &resp, nil
}

// CheckDuplicate asks the server whether value is free for field and returns the raw status.
// Transport failures return status 0 and the error.
func (c *Client) CheckDuplicate(ctx context.Context, field models.Field, value string) (int, error) {
	q := url.Values{}
	q.Set("value", value)
	path := fmt.Sprintf("/v1/user/check-%s?%s", field, q.Encode())

	err := c.do(ctx, http.MethodGet, path, "", nil, nil)
	if err == nil {
		return http.StatusOK, nil
	}
	if status := StatusOf(err); status != 0 {
		return status, nil
	}
	return 0, err
}

// FetchProfile loads the profile bound to token.
func (c *Client) FetchProfile(ctx context.Context, token string) (*models.UserProfile, error) {
	var resp models.UserInfoResponse
	if err := c.do(ctx, http.MethodGet, "/v1/userinfo/", token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.StatusCode != 0 && resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Status: resp.StatusCode, Message: resp.Message}
	}
	return &resp.UserProfile, nil
}

// ModifyProfile submits the changed subset of profile fields.
// A non-2xx reply returns a *StatusError carrying the server message.
func (c *Client) ModifyProfile(ctx context.Context, token string, req models.ModifyRequest) (*models.APIResponse, error) {
	var resp models.APIResponse
	if err := c.do(ctx, http.MethodPost, "/v1/userinfo/modify", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadProfileImage uploads content under name and makes it the caller's profile image.
func (c *Client) UploadProfileImage(ctx context.Context, token, name string, content io.Reader) (*models.FileUploadResponse, error) {
	name = filepath.Base(name)
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(name)))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var resp models.FileUploadResponse
	if err := c.send(ctx, http.MethodPost, "/v1/files/write", token, &buf, w.FormDataContentType(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ReadFile downloads a file previously returned by UploadProfileImage.
func (c *Client) ReadFile(ctx context.Context, token, path string) ([]byte, error) {
	q := url.Values{}
	q.Set("path", path)
	var resp models.FileResponse
	if err := c.do(ctx, http.MethodGet, "/v1/files/read?"+q.Encode(), token, nil, &resp); err != nil {
		return nil, err
	}
	data, err := base64.StdEncoding.DecodeString(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("decode file content: %w", err)
	}
	return data, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func (c *Client) withInvite(req *http.Request) {
	if c.inviteCode != "" {
		req.Header.Set("X-Invite-Code", c.inviteCode)
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any, edits ...func(*http.Request)) error {
	if in == nil {
		return c.send(ctx, method, path, token, nil, "", out, edits...)
	}
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.send(ctx, method, path, token, bytes.NewReader(data), "application/json", out, edits...)
}

func (c *Client) send(ctx context.Context, method, path, token string, body io.Reader, contentType string, out any, edits ...func(*http.Request)) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, edit := range edits {
		edit(req)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	c.log.Debug("request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr models.APIResponse
		_ = json.Unmarshal(raw, &apiErr)
		return &StatusError{Status: resp.StatusCode, Message: apiErr.Message}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
