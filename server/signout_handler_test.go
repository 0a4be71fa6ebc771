package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/quayside/entraportal/internal/errors"
)

func TestSignOutHandler(t *testing.T) {
	t.Run("deletes the session and clears the cookie", func(t *testing.T) {
		f := setupTestFixture(t)
		cookie := f.signIn(t)

		req := httptest.NewRequest(http.MethodGet, "/auth/signout", nil)
		req.AddCookie(cookie)
		w := f.do(req)

		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/", w.Header().Get("Location"))

		_, err := f.sessions.Get(context.Background(), "session-1")
		require.ErrorIs(t, err, apperrors.ErrSessionNotFound)

		var cleared bool
		for _, c := range w.Result().Cookies() {
			if c.Name == "portal_session" && c.MaxAge < 0 {
				cleared = true
			}
		}
		require.True(t, cleared, "expected the session cookie to be cleared")
	})

	t.Run("redirects to the provider end session endpoint when advertised", func(t *testing.T) {
		f := setupTestFixture(t)
		f.rp.endSessionURL = "https://login.microsoftonline.com/tenant-789/oauth2/v2.0/logout?post_logout_redirect_uri=http%3A%2F%2Flocalhost%3A8080%2F"
		cookie := f.signIn(t)

		req := httptest.NewRequest(http.MethodGet, "/auth/signout", nil)
		req.AddCookie(cookie)
		w := f.do(req)

		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, f.rp.endSessionURL, w.Header().Get("Location"))
	})

	t.Run("signing out without a session still redirects home", func(t *testing.T) {
		f := setupTestFixture(t)

		w := f.do(httptest.NewRequest(http.MethodGet, "/auth/signout", nil))

		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/", w.Header().Get("Location"))
	})
}
