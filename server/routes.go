package server

import "net/http"

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.IndexHandler(), s.PageMiddleware()...))

	// Sign-in flow
	s.RegisterRouteHandler("GET "+RouteSignIn, ChainMiddleware(s.SignInHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.CallbackHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteCallback, ChainMiddleware(s.CallbackHandler(), s.PageMiddleware()...)) // For form_post response mode
	s.RegisterRouteHandler("GET "+RouteSignOut, ChainMiddleware(s.SignOutHandler(), s.PageMiddleware()...))

	// Protected pages (session enforced by the interceptor)
	s.RegisterRouteHandler("GET "+RouteDashboard, ChainMiddleware(s.DashboardHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteProfile, ChainMiddleware(s.ProfileHandler(), s.PageMiddleware()...))

	// API routes
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))

	// Static assets
	s.RegisterRouteHandler("GET "+RouteStatic, ChainMiddleware(
		s.staticHandler(),
		s.CacheMiddleware,
		s.CompressionMiddleware,
	))
}

func (s *Server) staticHandler() http.HandlerFunc {
	fileServer := http.StripPrefix("/static", s.fileServer)
	return func(w http.ResponseWriter, r *http.Request) {
		fileServer.ServeHTTP(w, r)
	}
}
