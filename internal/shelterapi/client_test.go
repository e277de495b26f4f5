package shelterapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelterhub/internal/credstore"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestClient(t *testing.T, serverURL string) (*Client, *credstore.MemoryStore) {
	t.Helper()
	store := credstore.NewMemoryStore()
	client := New(serverURL, store, testLogger())
	return client, store
}

func seedTokens(t *testing.T, store credstore.Store, access, refresh string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, credstore.KeyAccessToken, access))
	require.NoError(t, store.Set(ctx, credstore.KeyRefreshToken, refresh))
}

func writeTokenPair(w http.ResponseWriter, access, refresh string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    900,
	})
}

// tokenState tracks which access token the fake backend currently accepts.
type tokenState struct {
	mu     sync.Mutex
	access string
}

func (s *tokenState) current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access
}

func (s *tokenState) rotate(access string) {
	s.mu.Lock()
	s.access = access
	s.mu.Unlock()
}

// Given N concurrent requests that each observe a 401 while no refresh has
// completed, exactly one refresh call must be made.
func TestClient_SingleFlightRefresh(t *testing.T) {
	const concurrency = 10

	state := &tokenState{access: "A2"}
	var refreshCalls int32
	var unauthorized int32

	// The refresh response is held back until every request has been served
	// its 401, so all of them are guaranteed to observe the in-flight
	// refresh rather than a freshly rotated token.
	allRejected := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/animals", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+state.current() {
			w.WriteHeader(http.StatusUnauthorized)
			if atomic.AddInt32(&unauthorized, 1) == concurrency {
				close(allRejected)
			}
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		<-allRejected
		writeTokenPair(w, "A2", "R2")
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client, store := newTestClient(t, server.URL)
	seedTokens(t, store, "A1", "R1")

	var wg sync.WaitGroup
	errs := make([]error, concurrency)
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.ListAnimals(context.Background(), AnimalFilter{})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "request %d", i)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))

	access, err := store.Get(context.Background(), credstore.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "A2", access)
}

// A request that still gets a 401 after the refreshed token was applied must
// fail rather than trigger another refresh.
func TestClient_ExactlyOnceRetry(t *testing.T) {
	var animalCalls, refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/animals", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&animalCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "token rejected"}`))
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		writeTokenPair(w, "A2", "R2")
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client, store := newTestClient(t, server.URL)
	seedTokens(t, store, "A1", "R1")

	_, err := client.ListAnimals(context.Background(), AnimalFilter{})
	require.Error(t, err)
	assert.True(t, IsUnauthenticated(err))

	assert.Equal(t, int32(2), atomic.LoadInt32(&animalCalls), "original + exactly one retry")
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
}

// Requests queued behind an in-flight refresh are each resent exactly once
// with the new access token after the refresh succeeds.
func TestClient_QueueDrainOnSuccess(t *testing.T) {
	state := &tokenState{access: "A2"}
	var unauthorized int32
	allRejected := make(chan struct{})

	paths := []string{"/animals", "/kennels", "/tasks"}
	hits := make(map[string]*int32, len(paths))

	mux := http.NewServeMux()
	for _, path := range paths {
		counter := new(int32)
		hits[path] = counter
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+state.current() {
				w.WriteHeader(http.StatusUnauthorized)
				if atomic.AddInt32(&unauthorized, 1) == int32(len(paths)) {
					close(allRejected)
				}
				return
			}
			atomic.AddInt32(counter, 1)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[]`))
		})
	}
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		<-allRejected
		writeTokenPair(w, "A2", "R2")
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client, store := newTestClient(t, server.URL)
	seedTokens(t, store, "A1", "R1")

	var wg sync.WaitGroup
	errs := make([]error, len(paths))
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			errs[i] = client.Get(context.Background(), path, nil)
		}(i, path)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "request %s", paths[i])
	}
	for _, path := range paths {
		assert.Equal(t, int32(1), atomic.LoadInt32(hits[path]),
			"%s must be replayed exactly once with the new token", path)
	}
}

// When the refresh itself fails, the triggering request and every queued
// request are rejected as unauthenticated and the stored pair is cleared.
func TestClient_AllFailOnRefreshFailure(t *testing.T) {
	const concurrency = 5

	var unauthorized int32
	allRejected := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/animals", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		if n := atomic.AddInt32(&unauthorized, 1); n == concurrency {
			close(allRejected)
		}
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		<-allRejected
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "refresh token revoked"}`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client, store := newTestClient(t, server.URL)
	seedTokens(t, store, "A1", "R1")

	var wg sync.WaitGroup
	errs := make([]error, concurrency)
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.ListAnimals(context.Background(), AnimalFilter{})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.Error(t, err, "request %d", i)
		assert.True(t, IsUnauthenticated(err), "request %d: %v", i, err)
	}

	ctx := context.Background()
	_, err := store.Get(ctx, credstore.KeyAccessToken)
	assert.ErrorIs(t, err, credstore.ErrNotFound)
	_, err = store.Get(ctx, credstore.KeyRefreshToken)
	assert.ErrorIs(t, err, credstore.ErrNotFound)
}

// A refresh attempted without a stored refresh token fails the same way.
func TestClient_RefreshWithoutRefreshToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/animals", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client, store := newTestClient(t, server.URL)
	require.NoError(t, store.Set(context.Background(), credstore.KeyAccessToken, "A1"))

	_, err := client.ListAnimals(context.Background(), AnimalFilter{})
	require.Error(t, err)
	assert.True(t, IsUnauthenticated(err))
	assert.ErrorIs(t, err, ErrNoRefreshToken)

	_, err = store.Get(context.Background(), credstore.KeyAccessToken)
	assert.ErrorIs(t, err, credstore.ErrNotFound)
}

// Non-401 failures are returned to the caller unchanged and never trigger
// the refresh protocol.
func TestClient_NoRefreshOnServerError(t *testing.T) {
	var refreshCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/animals", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "database unavailable", "code": "DB_DOWN"}`))
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		writeTokenPair(w, "A2", "R2")
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client, store := newTestClient(t, server.URL)
	seedTokens(t, store, "A1", "R1")

	_, err := client.ListAnimals(context.Background(), AnimalFilter{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "database unavailable", apiErr.Message)
	assert.Equal(t, "DB_DOWN", apiErr.Code)
	assert.False(t, IsUnauthenticated(err))

	assert.Equal(t, int32(0), atomic.LoadInt32(&refreshCalls))
}

// Transport-level failures are surfaced directly and never trigger refresh.
func TestClient_TransportErrorDoesNotRefresh(t *testing.T) {
	client, store := newTestClient(t, "http://localhost:1")
	seedTokens(t, store, "A1", "R1")

	_, err := client.ListAnimals(context.Background(), AnimalFilter{})
	require.Error(t, err)
	assert.False(t, IsUnauthenticated(err))

	// The pair survives a transport failure untouched.
	access, getErr := store.Get(context.Background(), credstore.KeyAccessToken)
	require.NoError(t, getErr)
	assert.Equal(t, "A1", access)
}

// The end-to-end scenario: login stores A1/R1, a 401 rotates the pair via
// R1, the original request is replayed with A2 and the stored state ends up
// as A2/R2.
func TestClient_RefreshScenario(t *testing.T) {
	state := &tokenState{access: "A1"}
	var refreshSeen string
	var successAuth string

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeTokenPair(w, "A1", "R1")
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		refreshSeen = req.RefreshToken
		state.rotate("A2")
		writeTokenPair(w, "A2", "R2")
	})
	mux.HandleFunc("/animals", func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth != "Bearer "+state.current() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		successAuth = auth
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client, store := newTestClient(t, server.URL)
	ctx := context.Background()

	pair, err := client.Login(ctx, "staff@shelter.example", "secret")
	require.NoError(t, err)
	assert.Equal(t, "A1", pair.AccessToken)
	assert.Equal(t, "R1", pair.RefreshToken)

	// Server rotates the accepted token out from under the client.
	state.rotate("A2")

	_, err = client.ListAnimals(ctx, AnimalFilter{})
	require.NoError(t, err)

	assert.Equal(t, "R1", refreshSeen)
	assert.Equal(t, "Bearer A2", successAuth)

	access, err := store.Get(ctx, credstore.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "A2", access)
	refresh, err := store.Get(ctx, credstore.KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "R2", refresh)
}

func TestClient_OrganizationHeader(t *testing.T) {
	var seenOrg string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenOrg = r.Header.Get("X-Organization-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, store := newTestClient(t, server.URL)
	seedTokens(t, store, "A1", "R1")

	ctx := context.Background()

	_, err := client.ListKennels(ctx)
	require.NoError(t, err)
	assert.Empty(t, seenOrg, "no header before an organization is selected")

	client.SetOrganization("org_42")
	_, err = client.ListKennels(ctx)
	require.NoError(t, err)
	assert.Equal(t, "org_42", seenOrg)
}

func TestClient_RequestIDHeader(t *testing.T) {
	seen := make(map[string]bool)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		assert.NotEmpty(t, id)
		seen[id] = true
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, store := newTestClient(t, server.URL)
	seedTokens(t, store, "A1", "R1")

	ctx := context.Background()
	_, err := client.ListKennels(ctx)
	require.NoError(t, err)
	_, err = client.ListKennels(ctx)
	require.NoError(t, err)

	assert.Len(t, seen, 2, "each request carries a fresh id")
}
