package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"onboard/internal/onboarding"
)

const (
	defaultRequestTimeout = 30 * time.Second

	loginPath        = "/auth/login"
	registerPath     = "/auth/register"
	logoutPath       = "/auth/logout"
	currentUserPath  = "/auth/me"
	updateStatusPath = "/auth/me/status"
	uploadResumePath = "/resume/upload"
)

// HTTPDoer abstracts the HTTP client so tests can inject fakes.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// TokenProvider supplies the bearer token for authenticated requests.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Client calls the onboarding portal API.
type Client struct {
	baseURL string
	http    HTTPDoer
	tokens  TokenProvider
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithTokenProvider attaches the session token source used for
// authenticated endpoints.
func WithTokenProvider(provider TokenProvider) Option {
	return func(c *Client) {
		c.tokens = provider
	}
}

// NewClient constructs a portal client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: defaultRequestTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Login exchanges credentials for a session token and user record.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var auth AuthResponse
	if err := c.postJSON(ctx, loginPath, creds, &auth, false); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &auth, nil
}

// Register creates an account and returns the initial session.
func (c *Client) Register(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var auth AuthResponse
	if err := c.postJSON(ctx, registerPath, creds, &auth, false); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &auth, nil
}

// Logout invalidates the server-side session. Local teardown is the
// caller's responsibility.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.postJSON(ctx, logoutPath, struct{}{}, nil, true); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// CurrentUser fetches the authoritative user record.
func (c *Client) CurrentUser(ctx context.Context) (*UserRecord, error) {
	request, err := c.newRequest(ctx, http.MethodGet, currentUserPath, nil, true)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	var record UserRecord
	if err := c.do(request, &record); err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return &record, nil
}

// UpdateStatus asks the server to advance the candidate's onboarding status.
// The operation is idempotent from the caller's perspective: repeating a
// transition to a status the record already reached is acknowledged without
// effect, so retrying after an ambiguous failure is safe.
func (c *Client) UpdateStatus(ctx context.Context, status onboarding.Status) (*UserRecord, error) {
	if !onboarding.IsKnown(status) {
		return nil, fmt.Errorf("update status: unknown status %q", status)
	}
	var resp statusUpdateResponse
	if err := c.postJSON(ctx, updateStatusPath, statusUpdateRequest{Status: status}, &resp, true); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	return &resp.User, nil
}

// UploadResume transmits resume content as a multipart POST and returns the
// server's candidate projection.
func (c *Client) UploadResume(ctx context.Context, filename string, content io.Reader) (*UploadResult, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	field, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("upload resume: create file field: %w", err)
	}
	if _, err := io.Copy(field, content); err != nil {
		return nil, fmt.Errorf("upload resume: copy content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("upload resume: close multipart writer: %w", err)
	}

	request, err := c.newRequest(ctx, http.MethodPost, uploadResumePath, body, true)
	if err != nil {
		return nil, fmt.Errorf("upload resume: %w", err)
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())

	var resp uploadResponse
	if err := c.do(request, &resp); err != nil {
		return nil, fmt.Errorf("upload resume: %w", err)
	}
	return &resp.Candidate, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any, authenticated bool) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	request, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(encoded), authenticated)
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	return c.do(request, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, authenticated bool) (*http.Request, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("portal base URL not configured")
	}
	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if authenticated {
		if c.tokens == nil {
			return nil, ErrUnauthorized
		}
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(token) == "" {
			return nil, ErrUnauthorized
		}
		request.Header.Set("Authorization", "Bearer "+token)
	}
	return request, nil
}

func (c *Client) do(request *http.Request, out any) error {
	resp, err := c.http.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, payload)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrTransport, err)
	}
	return nil
}

// decodeError classifies a non-2xx response. Bodies carrying the portal's
// structured {"detail": "..."} shape become APIError values; anything else is
// a transport-level failure with no interpretable body.
func decodeError(statusCode int, payload []byte) error {
	var body struct {
		Detail string `json:"detail"`
	}
	detail := ""
	if err := json.Unmarshal(payload, &body); err == nil {
		detail = strings.TrimSpace(body.Detail)
	}
	apiErr := &APIError{StatusCode: statusCode, Detail: detail}
	if detail == "" {
		return fmt.Errorf("%w: %w", ErrTransport, apiErr)
	}
	if statusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %w: %w", ErrServer, ErrUnauthorized, apiErr)
	}
	return fmt.Errorf("%w: %w", ErrServer, apiErr)
}
