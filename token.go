package session

import (
	"context"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// SessionClaims is the claim set carried by shig session tokens.
type SessionClaims struct {
	UUID string   `json:"uuid,omitempty"`
	Name string   `json:"name,omitempty"`
	Role UserRole `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenService mints and inspects locally signed HS256 session tokens. Guest
// tokens for name-only logins come from here; tokens minted by a remote shig
// instance go through a JWKSValidator instead.
type TokenService struct {
	signingKey []byte
	expiration time.Duration
	issuer     string
	audience   []string
}

// NewTokenService builds a service from Config. A zero token expiration
// defaults to 24 hours.
func NewTokenService(cfg Config) *TokenService {
	expiration := 24 * time.Hour
	if cfg.GetTokenExpiration() > 0 {
		expiration = time.Duration(cfg.GetTokenExpiration()) * time.Hour
	}
	return &TokenService{
		signingKey: []byte(cfg.GetSigningKey()),
		expiration: expiration,
		issuer:     cfg.GetIssuer(),
		audience:   cfg.GetAudience(),
	}
}

// Mint signs a token for the given display name and role.
func (t *TokenService) Mint(name string, role UserRole) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UUID: uuid.NewString(),
		Name: name,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   name,
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings(t.audience),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "could not sign session token")
	}
	return signed, nil
}

// Inspect parses and verifies a token minted by this service.
func (t *TokenService) Inspect(tokenString string) (*SessionClaims, error) {
	claims := new(SessionClaims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenMalformed
		}
		return t.signingKey, nil
	})
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryAuth, "could not parse session token").
			WithCode(goerrors.CodeUnauthorized)
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// JWKSValidator inspects tokens signed by a remote shig identity service,
// resolving keys from its JWK Set endpoint.
type JWKSValidator struct {
	jwks *keyfunc.JWKS
}

// NewJWKSValidator fetches the JWK Set from jwksURL. The context bounds the
// initial fetch and any background refresh.
func NewJWKSValidator(ctx context.Context, jwksURL string) (*JWKSValidator, error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:             ctx,
		RefreshInterval: time.Hour,
	})
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not fetch JWK set")
	}
	return &JWKSValidator{jwks: jwks}, nil
}

// Inspect satisfies TokenInspector.
func (v *JWKSValidator) Inspect(tokenString string) (*SessionClaims, error) {
	claims := new(SessionClaims)
	token, err := jwt.ParseWithClaims(tokenString, claims, v.jwks.Keyfunc)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryAuth, "could not validate session token").
			WithCode(goerrors.CodeUnauthorized)
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
