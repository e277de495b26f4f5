package devserver

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shelterhub/internal/idgen"
	"shelterhub/internal/shelterapi"
)

var (
	errInvalidAccessToken  = errors.New("invalid access token")
	errInvalidRefreshToken = errors.New("invalid refresh token")
)

// tokenIssuer mints short-lived JWT access tokens and rotating single-use
// refresh tokens, mirroring the production auth contract.
type tokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration

	mu      sync.Mutex
	refresh map[string]refreshEntry // token -> owner
}

type refreshEntry struct {
	userID    string
	expiresAt time.Time
}

func newTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *tokenIssuer {
	return &tokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		refresh:    make(map[string]refreshEntry),
	}
}

// IssuePair mints a fresh token pair for userID.
func (t *tokenIssuer) IssuePair(userID string) (*shelterapi.TokenPair, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.accessTTL)),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken := idgen.New()
	t.mu.Lock()
	t.refresh[refreshToken] = refreshEntry{
		userID:    userID,
		expiresAt: now.Add(t.refreshTTL),
	}
	t.mu.Unlock()

	return &shelterapi.TokenPair{
		AccessToken:  access,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(t.accessTTL.Seconds()),
	}, nil
}

// Rotate consumes a refresh token and issues a new pair. A token can be
// used only once; reuse and expiry both fail.
func (t *tokenIssuer) Rotate(refreshToken string) (*shelterapi.TokenPair, error) {
	t.mu.Lock()
	entry, ok := t.refresh[refreshToken]
	if ok {
		delete(t.refresh, refreshToken)
	}
	t.mu.Unlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, errInvalidRefreshToken
	}

	return t.IssuePair(entry.userID)
}

// Revoke drops every refresh token owned by userID.
func (t *tokenIssuer) Revoke(userID string) {
	t.mu.Lock()
	for token, entry := range t.refresh {
		if entry.userID == userID {
			delete(t.refresh, token)
		}
	}
	t.mu.Unlock()
}

// Verify parses an access token and returns the owning user id.
func (t *tokenIssuer) Verify(accessToken string) (string, error) {
	parsed, err := jwt.ParseWithClaims(accessToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", errInvalidAccessToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errInvalidAccessToken
	}

	return claims.Subject, nil
}
