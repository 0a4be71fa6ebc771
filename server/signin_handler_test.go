package server_test

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignInHandler(t *testing.T) {
	t.Run("redirects to the identity provider", func(t *testing.T) {
		f := setupTestFixture(t)

		w := f.do(httptest.NewRequest(http.MethodGet, "/auth/signin", nil))

		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, testAuthURL, w.Header().Get("Location"))
		require.NotEmpty(t, f.rp.lastState)
		require.NotEmpty(t, f.rp.lastNonce)
	})

	t.Run("stores the flow state for the callback", func(t *testing.T) {
		f := setupTestFixture(t)

		f.do(httptest.NewRequest(http.MethodGet, "/auth/signin?return_to=/profile", nil))

		flowState, err := f.flows.Get(f.rp.lastState)
		require.NoError(t, err)
		require.Equal(t, f.rp.lastNonce, flowState.Nonce)
		require.Equal(t, "/profile", flowState.ReturnURL)

		// The challenge sent to the provider must be the S256 hash of
		// the stored verifier
		hash := sha256.Sum256([]byte(flowState.CodeVerifier))
		require.Equal(t, base64.RawURLEncoding.EncodeToString(hash[:]), f.rp.lastCodeChallenge)
	})

	t.Run("absolute return_to is dropped", func(t *testing.T) {
		f := setupTestFixture(t)

		f.do(httptest.NewRequest(http.MethodGet, "/auth/signin?return_to=https%3A%2F%2Fevil.example.com%2F", nil))

		flowState, err := f.flows.Get(f.rp.lastState)
		require.NoError(t, err)
		require.Empty(t, flowState.ReturnURL)
	})

	t.Run("schemeless double-slash return_to is dropped", func(t *testing.T) {
		f := setupTestFixture(t)

		f.do(httptest.NewRequest(http.MethodGet, "/auth/signin?return_to=%2F%2Fevil.example.com", nil))

		flowState, err := f.flows.Get(f.rp.lastState)
		require.NoError(t, err)
		require.Empty(t, flowState.ReturnURL)
	})

	t.Run("already signed in goes straight to the dashboard", func(t *testing.T) {
		f := setupTestFixture(t)
		cookie := f.signIn(t)

		req := httptest.NewRequest(http.MethodGet, "/auth/signin", nil)
		req.AddCookie(cookie)
		w := f.do(req)

		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/dashboard", w.Header().Get("Location"))
	})

	t.Run("provider failure surfaces as bad gateway", func(t *testing.T) {
		f := setupTestFixture(t)
		f.rp.authErr = errors.New("discovery failed")

		w := f.do(httptest.NewRequest(http.MethodGet, "/auth/signin", nil))

		require.Equal(t, http.StatusBadGateway, w.Code)
	})
}
