package server

import (
	"net/http"

	"github.com/quayside/entraportal/sessions"
)

const contentTypeHTML = "text/html; charset=utf-8"

// pageData is passed to every page template
type pageData struct {
	AppName  string
	SignedIn bool
	Session  sessions.Session
}

func (s *Server) pageData(r *http.Request) pageData {
	session, ok := CurrentSession(r.Context())
	return pageData{
		AppName:  s.config.GetAppName(),
		SignedIn: ok,
		Session:  session,
	}
}

// IndexHandler renders the home page. It is public; signed-in visitors
// see their name and a link to the dashboard.
func (s *Server) IndexHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("index.html")
	if err != nil {
		panic("Failed to parse index template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, s.pageData(r)); err != nil {
			s.logger.Err(err).Msg("Failed to render index template")
		}
	}
}

// DashboardHandler renders the dashboard for the signed-in user
func (s *Server) DashboardHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("dashboard.html")
	if err != nil {
		panic("Failed to parse dashboard template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, s.pageData(r)); err != nil {
			s.logger.Err(err).Msg("Failed to render dashboard template")
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	}
}

// ProfileHandler renders the signed-in user's identity details
func (s *Server) ProfileHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("profile.html")
	if err != nil {
		panic("Failed to parse profile template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, s.pageData(r)); err != nil {
			s.logger.Err(err).Msg("Failed to render profile template")
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	}
}
