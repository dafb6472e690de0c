package session

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// Client implements AuthService against the REST API of a shig instance.
type Client struct {
	baseURL string
	http    *http.Client
	logger  Logger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying http client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithClientLogger overrides the client logger.
func WithClientLogger(logger Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient targets the instance at baseURL, e.g. "https://stream.shig.de".
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
		logger:  defLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tokenResponse struct {
	JWT string `json:"jwt"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var token tokenResponse
	if err := c.post(ctx, "/api/auth/login", creds, &token); err != nil {
		return nil, err
	}
	if token.JWT == "" {
		return nil, ErrAuthenticationFailed
	}
	return &AuthResult{Token: token.JWT}, nil
}

// RegisterAccount creates a new account; the instance sends the
// verification mail.
func (c *Client) RegisterAccount(ctx context.Context, account Account) error {
	return c.post(ctx, "/api/auth/register", account, nil)
}

// RequestPasswordReset asks the instance to mail a reset link.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	return c.post(ctx, "/api/auth/forgotPassword", payload, nil)
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not encode request payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "auth request failed")
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode >= http.StatusOK && res.StatusCode < http.StatusMultipleChoices:
		// fallthrough to decode
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return ErrAuthenticationFailed
	case res.StatusCode == http.StatusConflict:
		return ErrAccountConflict
	default:
		return goerrors.New("unexpected auth service response", goerrors.CategoryOperation).
			WithMetadata(map[string]any{"status": res.StatusCode, "path": path})
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not decode auth response")
	}
	return nil
}
