package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/quayside/entraportal/sessions"
)

// CallbackHandler finishes the sign-in flow after the identity provider
// redirects back: it validates state and nonce, exchanges the code, and
// creates the session the rest of the portal runs on.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Parse form to support both GET (query params) and POST (form_post response mode)
		// r.FormValue works for both query params and POST form data
		state := r.FormValue("state")
		code := r.FormValue("code")
		errorParam := r.FormValue("error")
		errorDesc := r.FormValue("error_description")

		// Check for authorization errors reported by the provider
		if errorParam != "" {
			http.Error(w, fmt.Sprintf("Authorization failed: %s - %s", errorParam, errorDesc), http.StatusBadRequest)
			return
		}

		if code == "" || state == "" {
			http.Error(w, "Missing code or state parameter", http.StatusBadRequest)
			return
		}

		flowState, err := s.flows.Get(state)
		if err != nil || flowState == nil {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}

		// State is single-use; clean it up before anything else
		if err := s.flows.Delete(state); err != nil {
			http.Error(w, "Invalid state parameter", http.StatusInternalServerError)
			return
		}

		// Exchange authorization code for tokens using the stored PKCE verifier
		oauth2Token, err := s.rp.Exchange(r.Context(), code, flowState.CodeVerifier)
		if err != nil {
			s.logger.Err(err).Msg("Token exchange failed")
			http.Error(w, "Token exchange failed", http.StatusBadGateway)
			return
		}

		// Extract the ID token and verify it
		rawIDToken, ok := oauth2Token.Extra("id_token").(string)
		if !ok {
			http.Error(w, "No ID token in response", http.StatusBadGateway)
			return
		}

		identity, err := s.rp.Verify(r.Context(), rawIDToken)
		if err != nil {
			s.logger.Err(err).Msg("ID token verification failed")
			http.Error(w, "ID token verification failed", http.StatusUnauthorized)
			return
		}

		// Validate nonce to prevent replay attacks
		if identity.Nonce != flowState.Nonce {
			http.Error(w, "Invalid nonce", http.StatusUnauthorized)
			return
		}

		// Create the session, keyed on the token's subject claim
		now := time.Now()
		session := sessions.Session{
			ID:           uuid.NewString(),
			UserID:       identity.UserID,
			Email:        identity.Email,
			Name:         identity.Name,
			RefreshToken: oauth2Token.RefreshToken,
			AccessToken:  oauth2Token.AccessToken,
			TokenExpiry:  oauth2Token.Expiry,
			ExpiresAt:    now.Add(s.config.GetSessionTTL()),
			CreatedAt:    now,
		}

		if err := s.sessions.Upsert(r.Context(), session); err != nil {
			s.logger.Err(err).Msg("Failed to create session")
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}

		cookieValue, err := s.cookies.Encode(session)
		if err != nil {
			s.logger.Err(err).Msg("Failed to sign session cookie")
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}
		s.SetSessionCookie(w, r, cookieValue, session.ExpiresAt)

		// Redirect to original destination or the dashboard
		returnURL := flowState.ReturnURL
		if returnURL == "" || returnURL == "/" {
			returnURL = RouteDashboard
		}
		http.Redirect(w, r, returnURL, http.StatusSeeOther)
	}
}
