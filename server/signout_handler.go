package server

import "net/http"

// SignOutHandler tears down the local session and sends the browser to
// the provider's front-channel logout so the IdP session ends too.
func (s *Server) SignOutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session, ok := CurrentSession(r.Context()); ok {
			if err := s.sessions.Delete(r.Context(), session.ID); err != nil {
				s.logger.Err(err).Str("session_id", session.ID).Msg("Failed to delete session")
			}
		}
		s.ClearSessionCookie(w, r)

		endSessionURL, err := s.rp.EndSessionURL(r.Context(), s.config.GetBaseURL()+RouteIndex)
		if err != nil {
			s.logger.Err(err).Msg("Failed to resolve end session endpoint")
		}
		if endSessionURL == "" {
			http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, endSessionURL, http.StatusSeeOther)
	}
}
