package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/quayside/entraportal/internal/config"
	"github.com/quayside/entraportal/provider"
	"github.com/quayside/entraportal/server"
	"github.com/quayside/entraportal/server/authflow"
	"github.com/quayside/entraportal/sessions"
)

const (
	testSessionSecret = "0123456789abcdef0123456789abcdef"
	testAppName       = "Entra Portal"
	testAuthURL       = "https://login.microsoftonline.com/tenant-789/oauth2/v2.0/authorize?state=x"
	testSubject       = "sub-abc-123"
	testUserName      = "Jane Doe"
	testUserEmail     = "jane.doe@example.com"
)

// fakeRelyingParty stands in for the OIDC provider so handler tests run
// without network access.
type fakeRelyingParty struct {
	authURL       string
	authErr       error
	token         *oauth2.Token
	exchangeErr   error
	identity      provider.Identity
	verifyErr     error
	endSessionURL string

	lastState         string
	lastNonce         string
	lastCodeChallenge string
	lastCode          string
	lastCodeVerifier  string
}

var _ server.RelyingParty = (*fakeRelyingParty)(nil)

func (f *fakeRelyingParty) AuthCodeURL(_ context.Context, state, nonce, codeChallenge string) (string, error) {
	f.lastState = state
	f.lastNonce = nonce
	f.lastCodeChallenge = codeChallenge
	return f.authURL, f.authErr
}

func (f *fakeRelyingParty) Exchange(_ context.Context, code, codeVerifier string) (*oauth2.Token, error) {
	f.lastCode = code
	f.lastCodeVerifier = codeVerifier
	return f.token, f.exchangeErr
}

func (f *fakeRelyingParty) Verify(_ context.Context, _ string) (provider.Identity, error) {
	return f.identity, f.verifyErr
}

func (f *fakeRelyingParty) EndSessionURL(_ context.Context, _ string) (string, error) {
	return f.endSessionURL, nil
}

// testFixture holds all test dependencies
type testFixture struct {
	server   *server.Server
	rp       *fakeRelyingParty
	sessions *sessions.InMemoryRepo
	flows    *authflow.InMemoryRepo
	cookies  *sessions.CookieCodec
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	t.Setenv("AZURE_CLIENT_ID", "client-123")
	t.Setenv("AZURE_CLIENT_SECRET", "secret-456")
	t.Setenv("AZURE_TENANT_ID", "tenant-789")
	t.Setenv("SESSION_SECRET", testSessionSecret)
	t.Setenv("ENV", "TEST")

	c, err := config.New()
	require.NoError(t, err)

	rp := &fakeRelyingParty{authURL: testAuthURL}
	sessionRepo := sessions.NewInMemoryRepo()
	flowRepo := authflow.NewInMemoryRepo()

	srv, err := server.New(c, rp, sessionRepo, flowRepo)
	require.NoError(t, err)

	return &testFixture{
		server:   srv,
		rp:       rp,
		sessions: sessionRepo,
		flows:    flowRepo,
		cookies:  sessions.NewCookieCodec([]byte(testSessionSecret), testAppName),
	}
}

// signIn seeds a live session and returns the signed cookie for it
func (f *testFixture) signIn(t *testing.T) *http.Cookie {
	t.Helper()

	session := sessions.Session{
		ID:        "session-1",
		UserID:    testSubject,
		Email:     testUserEmail,
		Name:      testUserName,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.sessions.Upsert(context.Background(), session))

	value, err := f.cookies.Encode(session)
	require.NoError(t, err)
	return &http.Cookie{Name: "portal_session", Value: value}
}

func (f *testFixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.server.ServeHTTP(w, req)
	return w
}
