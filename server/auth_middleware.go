package server

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/quayside/entraportal/sessions"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySession stores the current session
	ContextKeySession ContextKey = "session"
	// ContextKeyUserID stores the authenticated user ID
	ContextKeyUserID ContextKey = "user_id"
)

// SessionInterceptor runs in front of the router. It resolves the
// session cookie for every request and, for protected paths, redirects
// to the sign-in route when no valid session is found. Excluded paths
// pass through with whatever session (or none) the cookie resolves to,
// so public pages can still display the signed-in user.
func (s *Server) SessionInterceptor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.resolveSession(w, r)
		if ok {
			r = r.WithContext(withSession(r.Context(), session))
		}

		if !ok && s.protector.Protected(r.URL.Path) {
			http.Redirect(w, r, signInURL(r), http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// resolveSession validates the cookie and loads the session it names.
// Expired sessions are deleted server-side on sight.
func (s *Server) resolveSession(w http.ResponseWriter, r *http.Request) (sessions.Session, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return sessions.Session{}, false
	}

	sessionID, _, err := s.cookies.Decode(cookie.Value)
	if err != nil {
		s.ClearSessionCookie(w, r)
		return sessions.Session{}, false
	}

	session, err := s.sessions.Get(r.Context(), sessionID)
	if err != nil {
		s.ClearSessionCookie(w, r)
		return sessions.Session{}, false
	}

	if session.Expired(time.Now()) {
		if err := s.sessions.Delete(r.Context(), sessionID); err != nil {
			s.logger.Err(err).Str("session_id", sessionID).Msg("Failed to delete expired session")
		}
		s.ClearSessionCookie(w, r)
		return sessions.Session{}, false
	}

	return session, true
}

// signInURL builds the redirect target for an unauthenticated request,
// preserving the original URL so the callback can return the user there.
func signInURL(r *http.Request) string {
	returnTo := r.URL.Path
	if r.URL.RawQuery != "" {
		returnTo += "?" + r.URL.RawQuery
	}
	return RouteSignIn + "?return_to=" + url.QueryEscape(returnTo)
}

func withSession(ctx context.Context, session sessions.Session) context.Context {
	ctx = context.WithValue(ctx, ContextKeySession, session)
	return context.WithValue(ctx, ContextKeyUserID, session.UserID)
}

// CurrentSession returns the session the interceptor attached to the
// request context, if any.
func CurrentSession(ctx context.Context) (sessions.Session, bool) {
	session, ok := ctx.Value(ContextKeySession).(sessions.Session)
	return session, ok
}

// CurrentUserID returns the authenticated user's identifier (the ID
// token's subject claim), or the empty string.
func CurrentUserID(ctx context.Context) string {
	userID, _ := ctx.Value(ContextKeyUserID).(string)
	return userID
}
