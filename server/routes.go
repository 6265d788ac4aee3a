package server

import "net/http"

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.page(s.IndexHandler()), s.HTMLMiddleWare()...))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.page(s.LoginHandler()), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.page(s.OAuthCallbackHandler()), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// PROFILE
	s.RegisterRouteHandler("GET "+RouteUser, ChainMiddleware(s.page(s.ProfileGetHandler()), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteUser, ChainMiddleware(s.page(s.ProfilePostHandler()), s.HTMLMiddleWare()...))

	// CIRCULARS
	s.RegisterRouteHandler("GET "+RouteCirculars, ChainMiddleware(s.page(s.CircularsListHandler()), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteCirculars, ChainMiddleware(s.page(s.CircularPostHandler()), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteCircularNew, ChainMiddleware(s.page(s.CircularNewHandler()), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteCircular, ChainMiddleware(s.page(s.CircularGetHandler()), s.HTMLMiddleWare()...))

	s.RegisterRouteHandler("GET "+RouteStaticPattern, ChainMiddleware(s.serveFileHandler(), s.CacheMiddleware))

	// Everything else renders the not found page inside the document shell.
	s.RegisterRouteHandler("/", ChainMiddleware(s.page(s.NotFoundHandler()), s.HTMLMiddleWare()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	static := http.StripPrefix(RouteStaticPrefix, s.fileServer)
	return func(w http.ResponseWriter, r *http.Request) {
		static.ServeHTTP(w, r)
	}
}
