package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelterhub/internal/credstore"
	"shelterhub/internal/shelterapi"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func accountHandler(t *testing.T, memberships []shelterapi.Membership) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer A1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(shelterapi.Account{
			User:        shelterapi.User{ID: "usr_1", Email: "staff@shelter.example", Name: "Staff"},
			Memberships: memberships,
		})
	}
}

func newSession(t *testing.T, serverURL string) (*Session, *credstore.MemoryStore) {
	t.Helper()
	store := credstore.NewMemoryStore()
	client := shelterapi.New(serverURL, store, testLogger())
	return New(client, store, testLogger()), store
}

func TestSession_Restore_DefaultsToFirstMembership(t *testing.T) {
	memberships := []shelterapi.Membership{
		{OrganizationID: "org_1", OrganizationName: "Paws North", Role: "admin"},
		{OrganizationID: "org_2", OrganizationName: "Paws South", Role: "staff"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", accountHandler(t, memberships))
	server := httptest.NewServer(mux)
	defer server.Close()

	sess, store := newSession(t, server.URL)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, credstore.KeyAccessToken, "A1"))

	require.NoError(t, sess.Restore(ctx))

	assert.Equal(t, "usr_1", sess.User().ID)
	assert.Equal(t, "org_1", sess.OrganizationID())

	persisted, err := store.Get(ctx, credstore.KeyOrganizationID)
	require.NoError(t, err)
	assert.Equal(t, "org_1", persisted)
}

func TestSession_Restore_KeepsPersistedSelection(t *testing.T) {
	memberships := []shelterapi.Membership{
		{OrganizationID: "org_1"},
		{OrganizationID: "org_2"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", accountHandler(t, memberships))
	server := httptest.NewServer(mux)
	defer server.Close()

	sess, store := newSession(t, server.URL)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, credstore.KeyAccessToken, "A1"))
	require.NoError(t, store.Set(ctx, credstore.KeyOrganizationID, "org_2"))

	require.NoError(t, sess.Restore(ctx))
	assert.Equal(t, "org_2", sess.OrganizationID())
}

func TestSession_Restore_DropsStaleSelection(t *testing.T) {
	memberships := []shelterapi.Membership{
		{OrganizationID: "org_1"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", accountHandler(t, memberships))
	server := httptest.NewServer(mux)
	defer server.Close()

	sess, store := newSession(t, server.URL)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, credstore.KeyAccessToken, "A1"))
	require.NoError(t, store.Set(ctx, credstore.KeyOrganizationID, "org_gone"))

	require.NoError(t, sess.Restore(ctx))
	assert.Equal(t, "org_1", sess.OrganizationID())
}

func TestSession_Restore_NotLoggedIn(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	sess, _ := newSession(t, server.URL)

	err := sess.Restore(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestSession_SelectOrganization(t *testing.T) {
	memberships := []shelterapi.Membership{
		{OrganizationID: "org_1"},
		{OrganizationID: "org_2"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", accountHandler(t, memberships))
	server := httptest.NewServer(mux)
	defer server.Close()

	sess, store := newSession(t, server.URL)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, credstore.KeyAccessToken, "A1"))
	require.NoError(t, sess.Restore(ctx))

	require.NoError(t, sess.SelectOrganization(ctx, "org_2"))
	assert.Equal(t, "org_2", sess.OrganizationID())

	persisted, err := store.Get(ctx, credstore.KeyOrganizationID)
	require.NoError(t, err)
	assert.Equal(t, "org_2", persisted)

	assert.ErrorIs(t, sess.SelectOrganization(ctx, "org_nope"), ErrNotAMember)
	assert.Equal(t, "org_2", sess.OrganizationID())
}

func TestSession_Logout_ClearsEverything(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", accountHandler(t, []shelterapi.Membership{{OrganizationID: "org_1"}}))
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		// Server-side invalidation failing must not matter.
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	sess, store := newSession(t, server.URL)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, credstore.KeyAccessToken, "A1"))
	require.NoError(t, store.Set(ctx, credstore.KeyRefreshToken, "R1"))
	require.NoError(t, sess.Restore(ctx))

	sess.Logout(ctx)

	assert.Nil(t, sess.User())
	assert.Empty(t, sess.OrganizationID())

	for _, key := range []string{credstore.KeyAccessToken, credstore.KeyRefreshToken, credstore.KeyOrganizationID} {
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, credstore.ErrNotFound, key)
	}
}
