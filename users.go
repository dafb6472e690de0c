package session

import (
	"context"
	"encoding/json"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// StaticUserDirectory serves a fixed identity list, for kiosk builds and
// tests.
type StaticUserDirectory []User

// ListUsers satisfies UserDirectory.
func (d StaticUserDirectory) ListUsers(_ context.Context) ([]User, error) {
	out := make([]User, len(d))
	copy(out, d)
	return out, nil
}

// HTTPUserDirectory fetches the identity list from a shig instance. The
// session service already degrades any failure here to an empty list.
type HTTPUserDirectory struct {
	baseURL string
	client  *http.Client
}

// NewHTTPUserDirectory targets baseURL, e.g. "https://stream.shig.de".
func NewHTTPUserDirectory(baseURL string, client *http.Client) *HTTPUserDirectory {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPUserDirectory{baseURL: baseURL, client: client}
}

// ListUsers satisfies UserDirectory.
func (d *HTTPUserDirectory) ListUsers(ctx context.Context) ([]User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/api/users", nil)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not build user list request")
	}
	req.Header.Set("Accept", "application/json")

	res, err := d.client.Do(req)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "user list request failed")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, goerrors.New("unexpected user list response", goerrors.CategoryOperation).
			WithMetadata(map[string]any{"status": res.StatusCode})
	}

	var users []User
	if err := json.NewDecoder(res.Body).Decode(&users); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not decode user list")
	}
	return users, nil
}
