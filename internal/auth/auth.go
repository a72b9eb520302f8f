// Package auth extracts the caller's identity from bearer tokens issued by
// the external identity provider. Tokens are verified here, never minted.
package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rotisserie/eris"
)

// ErrUnauthenticated is the single failure for every absent or invalid
// identity. Profile fetch, profile update and interview submission all
// reject with this same error.
var ErrUnauthenticated = eris.New("auth: unauthenticated")

// Identity is the authenticated caller.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Verifier turns a raw bearer token into an identity.
type Verifier interface {
	Verify(token string) (Identity, error)
}

// TokenVerifier verifies HMAC-signed tokens carrying an email claim.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier creates a verifier for the given shared secret.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

func (v *TokenVerifier) Verify(token string) (Identity, error) {
	if token == "" || len(v.secret) == 0 {
		return Identity{}, ErrUnauthenticated
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return Identity{}, ErrUnauthenticated
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrUnauthenticated
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return Identity{}, ErrUnauthenticated
	}
	name, _ := claims["name"].(string)

	return Identity{Email: email, Name: name}, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
