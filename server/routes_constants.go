package server

// Route path constants
const (
	RouteIndex = "/"

	// Auth
	RouteLogin    = "/login"
	RouteCallback = "/callback"
	RouteLogout   = "/logout"

	// User profile
	RouteUser = "/user"

	// Circulars
	RouteCirculars     = "/circulars"
	RouteCircularNew   = "/circulars/new"
	RouteCircular      = "/circulars/{id}"
	RouteStaticPrefix  = "/static/"
	RouteStaticPattern = "/static/{file...}"
)
