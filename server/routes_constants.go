package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Public pages
	RouteIndex = "/"

	// Auth Routes - Sign-in flow
	RouteSignIn   = "/auth/signin"
	RouteCallback = "/auth/callback"
	RouteSignOut  = "/auth/signout"

	// Protected pages
	RouteDashboard = "/dashboard"
	RouteProfile   = "/profile"

	// API Routes
	RouteHealth = "/api/health"

	// Static Asset Routes
	RouteStatic = "/static/"
)
