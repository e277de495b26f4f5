package shelterapi

import (
	"context"
	"net/http"
	"time"
)

// TokenPair is the credential pair returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// User is the authenticated user's profile.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Membership links the user to one organization.
type Membership struct {
	OrganizationID   string `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
	Role             string `json:"role"`
}

// Account is the response of the who-am-I endpoint.
type Account struct {
	User        User         `json:"user"`
	Memberships []Membership `json:"memberships"`
}

// Login exchanges credentials for a token pair and persists it. The call is
// unauthenticated; a stale stored token is neither attached nor refreshed.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	req := loginRequest{Email: email, Password: password}

	var pair TokenPair
	status, body, err := c.send(ctx, http.MethodPost, "/auth/login", req, false)
	if err != nil {
		return nil, err
	}
	if err := decodeResponse(status, body, &pair); err != nil {
		return nil, err
	}

	if err := c.storeTokens(ctx, &pair); err != nil {
		return nil, err
	}

	c.logger.Info("logged in", "email", email)
	return &pair, nil
}

// Logout invalidates the session server-side on a best-effort basis and
// always deletes the local token pair. It never fails: a dead backend must
// not keep a user logged in.
func (c *Client) Logout(ctx context.Context) {
	if err := c.request(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		c.logger.Debug("server-side logout failed", "error", err)
	}
	c.clearTokens(ctx)
	c.logger.Info("logged out")
}

// Me returns the current user's profile and organization memberships.
func (c *Client) Me(ctx context.Context) (*Account, error) {
	var account Account
	if err := c.Get(ctx, "/auth/me", &account); err != nil {
		return nil, err
	}
	return &account, nil
}
