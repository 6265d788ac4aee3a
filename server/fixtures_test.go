package server_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/gcn-portal/circulars"
	"github.com/jrsteele09/gcn-portal/internal/config"
	"github.com/jrsteele09/gcn-portal/server"
	"github.com/jrsteele09/gcn-portal/server/authflowrepo"
	"github.com/jrsteele09/gcn-portal/sessions"
	"github.com/jrsteele09/gcn-portal/users"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:3333"

type testConfig struct {
	config.Config
	env      string
	origin   string
	issuer   string
	features string
}

func (c testConfig) GetEnv() string           { return c.env }
func (c testConfig) IsProduction() bool       { return c.env == config.EnvProduction }
func (c testConfig) GetOrigin() string        { return c.origin }
func (c testConfig) GetOIDCIssuer() string    { return c.issuer }
func (c testConfig) GetOIDCClientID() string  { return "test-client" }
func (c testConfig) GetFeatures() string      { return c.features }
func (c testConfig) GetSessionSecret() string { return "test-secret" }
func (c testConfig) GetSessionMaxAge() time.Duration {
	return time.Hour
}

func newTestConfig() testConfig {
	return testConfig{Config: config.New(), env: config.EnvDevelopment, origin: testOrigin}
}

type fakeIdentityProvider struct {
	mu    sync.Mutex
	err   error
	saved []users.Profile
}

func (f *fakeIdentityProvider) UpdateProfile(_ context.Context, _ string, p users.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, p)
	return f.err
}

type fakeRegistrar struct {
	err error
}

func (f *fakeRegistrar) Register(context.Context, circulars.Circular) error {
	return f.err
}

type fakeLinker struct{}

func (fakeLinker) DOI(id int) string { return "10.0000/gcn." + strconv.Itoa(id) }
func (fakeLinker) HandleURL(id int) string {
	return "https://doi.org/10.0000/gcn." + strconv.Itoa(id)
}

type testServer struct {
	*server.Server
	sessions  *sessions.CookieStore
	idp       *fakeIdentityProvider
	circulars *circulars.Service
	repo      circulars.Repo
	authFlows *authflowrepo.CacheRepo
}

type serverOption func(*serverOptions)

type serverOptions struct {
	repo      circulars.Repo
	registrar circulars.Registrar
}

func withRepo(repo circulars.Repo) serverOption {
	return func(o *serverOptions) { o.repo = repo }
}

func withRegistrar(registrar circulars.Registrar) serverOption {
	return func(o *serverOptions) { o.registrar = registrar }
}

func newTestServer(t *testing.T, cfg testConfig, opts ...serverOption) *testServer {
	t.Helper()

	o := serverOptions{
		repo:      circulars.NewInMemoryRepo(40000),
		registrar: &fakeRegistrar{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	store, err := sessions.NewCookieStore(cfg)
	require.NoError(t, err)

	idp := &fakeIdentityProvider{}
	service := circulars.NewService(o.repo, o.registrar)
	authFlows := authflowrepo.NewCacheRepo(time.Minute)

	s, err := server.New(cfg, server.Services{
		Sessions:  store,
		Circulars: service,
		DOIs:      fakeLinker{},
		Profiles:  users.NewEditor(idp),
		AuthFlows: authFlows,
	})
	require.NoError(t, err)

	return &testServer{
		Server:    s,
		sessions:  store,
		idp:       idp,
		circulars: service,
		repo:      o.repo,
		authFlows: authFlows,
	}
}

func testUser() *users.User {
	return &users.User{
		Sub:         "sub-1",
		Email:       "alice@example.com",
		GivenName:   "Alice",
		FamilyName:  "Smith",
		Affiliation: "NASA",
	}
}

// sessionCookie returns a cookie carrying a session for user.
func (ts *testServer) sessionCookie(t *testing.T, user *users.User) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, ts.sessions.Commit(rec, &sessions.Session{User: user, AccessToken: "access-token"}))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) get(t *testing.T, target string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return ts.do(req)
}

func (ts *testServer) postForm(t *testing.T, target, form string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return ts.do(req)
}

// captureLogs redirects the global logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = previous })
	return &buf
}

func countErrorLogs(buf *bytes.Buffer) int {
	return strings.Count(buf.String(), `"level":"error"`)
}
