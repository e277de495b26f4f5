package shelterapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"shelterhub/internal/credstore"
)

// awaitRefresh makes sure exactly one refresh call is in flight and blocks
// until it settles. The caller that finds no refresh running performs it;
// everyone else appends a waiter and receives the shared outcome. Waiters
// are notified in enqueue order after the queue has been detached, so the
// queue is never drained partially.
func (c *Client) awaitRefresh(ctx context.Context) error {
	c.refreshMu.Lock()
	if c.refreshing {
		waiter := make(chan error, 1)
		c.waiters = append(c.waiters, waiter)
		c.refreshMu.Unlock()

		select {
		case err := <-waiter:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.refreshing = true
	c.refreshMu.Unlock()

	err := c.refreshTokens(ctx)

	c.refreshMu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.refreshing = false
	c.refreshMu.Unlock()

	// Buffered channels keep the drain non-blocking even for waiters that
	// already gave up on their context.
	for _, waiter := range waiters {
		waiter <- err
	}

	return err
}

// refreshTokens exchanges the stored refresh token for a new pair. Any
// failure is terminal for the session: both tokens are cleared and the
// error carries ErrUnauthenticated.
func (c *Client) refreshTokens(ctx context.Context) error {
	refreshToken, err := c.creds.Get(ctx, credstore.KeyRefreshToken)
	if err != nil || refreshToken == "" {
		if err != nil && !errors.Is(err, credstore.ErrNotFound) {
			c.logger.Error("failed to read refresh token", "error", err)
		}
		c.clearTokens(ctx)
		return fmt.Errorf("%w: %w", ErrUnauthenticated, ErrNoRefreshToken)
	}

	req := refreshRequest{RefreshToken: refreshToken}

	var pair TokenPair
	status, body, err := c.send(ctx, http.MethodPost, "/auth/refresh", req, false)
	if err == nil {
		err = decodeResponse(status, body, &pair)
	}
	if err != nil {
		c.logger.Warn("token refresh failed", "error", err)
		c.clearTokens(ctx)
		if IsUnauthenticated(err) {
			return err
		}
		return fmt.Errorf("%w: refresh failed: %w", ErrUnauthenticated, err)
	}

	if err := c.storeTokens(ctx, &pair); err != nil {
		c.clearTokens(ctx)
		return fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	c.logger.Debug("access token refreshed")
	return nil
}

// storeTokens persists a token pair wholesale; the previous pair is
// replaced and must not be reused afterwards.
func (c *Client) storeTokens(ctx context.Context, pair *TokenPair) error {
	if err := c.creds.Set(ctx, credstore.KeyAccessToken, pair.AccessToken); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	if err := c.creds.Set(ctx, credstore.KeyRefreshToken, pair.RefreshToken); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// clearTokens deletes both tokens unconditionally. Deletion failures are
// logged, not propagated: a session that cannot be cleared locally must
// still be treated as gone.
func (c *Client) clearTokens(ctx context.Context) {
	if err := c.creds.Delete(ctx, credstore.KeyAccessToken); err != nil {
		c.logger.Error("failed to delete access token", "error", err)
	}
	if err := c.creds.Delete(ctx, credstore.KeyRefreshToken); err != nil {
		c.logger.Error("failed to delete refresh token", "error", err)
	}
}
