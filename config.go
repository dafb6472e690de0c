package session

// DefaultStorageKey is the record key used when no storage key is configured.
// It matches the localStorage key of the original web client.
const DefaultStorageKey = "shig.session"

const (
	// LoginRoute is the route a denied navigation redirects to.
	LoginRoute = "/login"
	// DefaultLandingRoute is where a successful login lands when no
	// rejected route was remembered.
	DefaultLandingRoute = "/dashboard"
)

// SimpleConfig is a plain struct implementation of Config.
type SimpleConfig struct {
	SigningKey      string
	TokenExpiration int
	Issuer          string
	Audience        []string
	StorageKey      string
	LoginPath       string
	DefaultPath     string
}

func (c SimpleConfig) GetSigningKey() string { return c.SigningKey }

// GetTokenExpiration returns the token lifetime in hours.
func (c SimpleConfig) GetTokenExpiration() int { return c.TokenExpiration }

func (c SimpleConfig) GetIssuer() string { return c.Issuer }

func (c SimpleConfig) GetAudience() []string { return c.Audience }

func (c SimpleConfig) GetStorageKey() string {
	if c.StorageKey == "" {
		return DefaultStorageKey
	}
	return c.StorageKey
}

func (c SimpleConfig) GetLoginRoute() string {
	if c.LoginPath == "" {
		return LoginRoute
	}
	return c.LoginPath
}

func (c SimpleConfig) GetDefaultRoute() string {
	if c.DefaultPath == "" {
		return DefaultLandingRoute
	}
	return c.DefaultPath
}
