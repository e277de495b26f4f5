// Package session tracks the logged-in user and the selected organization
// across restarts. The organization id is persisted through the credential
// store and threaded into the API client as a per-request header.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"shelterhub/internal/credstore"
	"shelterhub/internal/shelterapi"
)

var (
	// ErrNotLoggedIn is returned when no valid session could be restored.
	ErrNotLoggedIn = errors.New("session: not logged in")

	// ErrNotAMember is returned when an organization outside the user's
	// memberships is selected.
	ErrNotAMember = errors.New("session: not a member of this organization")
)

// Session holds the current user, their memberships and the selected
// organization. The selected organization is always one of the membership
// ids, or empty.
type Session struct {
	client *shelterapi.Client
	creds  credstore.Store
	logger *slog.Logger

	mu          sync.RWMutex
	user        *shelterapi.User
	memberships []shelterapi.Membership
	orgID       string
}

// New creates a session holder on top of an API client.
func New(client *shelterapi.Client, creds credstore.Store, logger *slog.Logger) *Session {
	return &Session{
		client: client,
		creds:  creds,
		logger: logger.With("component", "session"),
	}
}

// Restore validates the stored access token against the who-am-I endpoint
// and re-applies the persisted organization selection. A persisted id the
// user is no longer a member of is dropped in favor of the first membership.
func (s *Session) Restore(ctx context.Context) error {
	account, err := s.client.Me(ctx)
	if err != nil {
		if shelterapi.IsUnauthenticated(err) {
			return fmt.Errorf("%w: %w", ErrNotLoggedIn, err)
		}
		return err
	}

	orgID, err := s.creds.Get(ctx, credstore.KeyOrganizationID)
	if err != nil && !errors.Is(err, credstore.ErrNotFound) {
		return fmt.Errorf("failed to read organization selection: %w", err)
	}

	if orgID != "" && !isMember(account.Memberships, orgID) {
		s.logger.Warn("stored organization no longer in memberships, resetting",
			"organization_id", orgID,
		)
		orgID = ""
	}
	if orgID == "" && len(account.Memberships) > 0 {
		orgID = account.Memberships[0].OrganizationID
	}

	s.mu.Lock()
	s.user = &account.User
	s.memberships = account.Memberships
	s.orgID = orgID
	s.mu.Unlock()

	s.client.SetOrganization(orgID)
	if orgID != "" {
		if err := s.creds.Set(ctx, credstore.KeyOrganizationID, orgID); err != nil {
			s.logger.Error("failed to persist organization selection", "error", err)
		}
	}

	s.logger.Info("session restored",
		"user_id", account.User.ID,
		"organization_id", orgID,
		"memberships", len(account.Memberships),
	)
	return nil
}

// Login authenticates, then restores the session state from the backend.
func (s *Session) Login(ctx context.Context, email, password string) error {
	if _, err := s.client.Login(ctx, email, password); err != nil {
		return err
	}
	return s.Restore(ctx)
}

// Logout clears the session and all persisted credentials, including the
// organization selection.
func (s *Session) Logout(ctx context.Context) {
	s.client.Logout(ctx)

	if err := s.creds.Delete(ctx, credstore.KeyOrganizationID); err != nil {
		s.logger.Error("failed to delete organization selection", "error", err)
	}

	s.mu.Lock()
	s.user = nil
	s.memberships = nil
	s.orgID = ""
	s.mu.Unlock()

	s.client.SetOrganization("")
}

// SelectOrganization switches the active organization. The id must be one
// of the user's memberships.
func (s *Session) SelectOrganization(ctx context.Context, orgID string) error {
	s.mu.Lock()
	if !isMember(s.memberships, orgID) {
		s.mu.Unlock()
		return ErrNotAMember
	}
	s.orgID = orgID
	s.mu.Unlock()

	s.client.SetOrganization(orgID)
	if err := s.creds.Set(ctx, credstore.KeyOrganizationID, orgID); err != nil {
		s.logger.Error("failed to persist organization selection", "error", err)
	}

	s.logger.Info("organization selected", "organization_id", orgID)
	return nil
}

// User returns the restored user profile, or nil before Restore.
func (s *Session) User() *shelterapi.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Memberships returns the user's organization memberships.
func (s *Session) Memberships() []shelterapi.Membership {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.memberships
}

// OrganizationID returns the currently selected organization id.
func (s *Session) OrganizationID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orgID
}

func isMember(memberships []shelterapi.Membership, orgID string) bool {
	for _, m := range memberships {
		if m.OrganizationID == orgID {
			return true
		}
	}
	return false
}
