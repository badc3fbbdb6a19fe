package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/alumnet/internal/client/client"
	"github.com/dmitrijs2005/alumnet/internal/client/credstore"
	"github.com/dmitrijs2005/alumnet/internal/client/localdb"
	"github.com/dmitrijs2005/alumnet/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/alumnet/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authLog struct {
	mu      sync.Mutex
	headers map[string]string
}

func (a *authLog) record(path, header string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.headers[path] = header
}

func (a *authLog) get(path string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.headers[path]
}

func newAPI(t *testing.T) (*httptest.Server, *authLog) {
	t.Helper()
	log := &authLog{headers: map[string]string{}}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		log.record(r.URL.Path, r.Header.Get("Authorization"))
		var body struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Email != "a@b.com" || body.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"t1","user":{"id":"1","first_name":"A"}}`))
	})
	mux.HandleFunc("GET /api/jobs", func(w http.ResponseWriter, r *http.Request) {
		log.record(r.URL.Path, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"jobs":[]}`))
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		log.record(r.URL.Path, r.Header.Get("Authorization"))
		if r.Header.Get("Authorization") != "Bearer t1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid token"}`))
			return
		}
		_, _ = w.Write([]byte(`{"user":{"id":"1","first_name":"A"}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, log
}

func TestLoginScenario_SubsequentRequestsCarryBearer(t *testing.T) {
	srv, log := newAPI(t)
	ctx := context.Background()

	db, err := localdb.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store := credstore.New(metadata.NewSQLiteRepository(db))

	cred := &client.Credential{}
	api := client.NewHTTPClient(srv.URL, time.Second, cred)
	m := session.New(api, store, cred)

	require.NoError(t, m.Bootstrap(ctx))
	require.Equal(t, session.Anonymous, m.State())

	id, err := m.Login(ctx, "a@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "A", id.FirstName)
	assert.Equal(t, session.Authenticated, m.State())
	assert.Empty(t, log.get("/api/auth/login"), "login itself goes out without a credential")

	_, err = api.Jobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer t1", log.get("/api/jobs"))

	tok, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", tok)

	// a fresh process over the same store resolves the same user
	cred2 := &client.Credential{}
	m2 := session.New(client.NewHTTPClient(srv.URL, time.Second, cred2), store, cred2)
	require.NoError(t, m2.Bootstrap(ctx))
	restored, ok := m2.Identity()
	require.True(t, ok)
	assert.Equal(t, id, restored)

	require.NoError(t, m2.Logout(ctx))
	_, err = api.Jobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer t1", log.get("/api/jobs"), "first manager's credential slot is independent")

	tok, err = store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestBootstrap_RejectedTokenAgainstRealAPI(t *testing.T) {
	srv, _ := newAPI(t)
	ctx := context.Background()

	db, err := localdb.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store := credstore.New(metadata.NewSQLiteRepository(db))
	require.NoError(t, store.SetToken(ctx, "expired"))

	cred := &client.Credential{}
	m := session.New(client.NewHTTPClient(srv.URL, time.Second, cred), store, cred)
	require.NoError(t, m.Bootstrap(ctx))

	assert.Equal(t, session.Anonymous, m.State())
	tok, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}
