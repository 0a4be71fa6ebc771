package server

import (
	"net/http"
	"time"

	"github.com/quayside/entraportal/server/authflow"
)

// SignInHandler starts the sign-in flow: it records the flow state
// (PKCE verifier, nonce, return URL) against a fresh state parameter
// and redirects the browser to the identity provider.
func (s *Server) SignInHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Already signed in - nothing to do
		if _, ok := CurrentSession(r.Context()); ok {
			http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
			return
		}

		state := generateRandomString(32)
		nonce := generateRandomString(32)
		codeVerifier := generateRandomString(32)

		flowState := &authflow.State{
			CodeVerifier: codeVerifier,
			Nonce:        nonce,
			ReturnURL:    sanitizeReturnURL(r.URL.Query().Get("return_to")),
			CreatedAt:    time.Now(),
		}
		if err := s.flows.Upsert(state, flowState); err != nil {
			s.logger.Err(err).Msg("Failed to store sign-in flow state")
			http.Error(w, "Failed to start sign-in", http.StatusInternalServerError)
			return
		}

		authURL, err := s.rp.AuthCodeURL(r.Context(), state, nonce, generateCodeChallenge(codeVerifier))
		if err != nil {
			s.logger.Err(err).Msg("Failed to build authorization URL")
			http.Error(w, "Identity provider unavailable", http.StatusBadGateway)
			return
		}

		http.Redirect(w, r, authURL, http.StatusSeeOther)
	}
}
