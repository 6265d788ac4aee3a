package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"sync"

	"github.com/jrsteele09/gcn-portal/circulars"
	"github.com/jrsteele09/gcn-portal/features"
	"github.com/jrsteele09/gcn-portal/internal/config"
	"github.com/jrsteele09/gcn-portal/server/authflowrepo"
	"github.com/jrsteele09/gcn-portal/sessions"
	"github.com/jrsteele09/gcn-portal/users"
	"github.com/rs/zerolog/log"
)

// SessionStore reads and writes the session cookie.
type SessionStore interface {
	Get(r *http.Request) (*sessions.Session, error)
	User(r *http.Request) (*users.User, error)
	Commit(w http.ResponseWriter, sess *sessions.Session) error
	Destroy(w http.ResponseWriter)
}

// DOILinker formats DOIs for display.
type DOILinker interface {
	DOI(circularID int) string
	HandleURL(circularID int) string
}

// Services are the collaborators the server delegates to.
type Services struct {
	Sessions  SessionStore
	Circulars *circulars.Service
	DOIs      DOILinker
	Profiles  *users.Editor
	AuthFlows authflowrepo.Repo
}

type Server struct {
	env        string // Environment (e.g., "DEV", "PROD")
	mux        *http.ServeMux
	routes     []string
	fileServer http.Handler
	config     config.Config
	features   features.Set
	pages      map[string]*template.Template
	services   Services

	oidc     *OidcConfig
	oidcLock sync.Mutex
}

func New(cfg config.Config, services Services) (*Server, error) {
	if services.Sessions == nil || services.Circulars == nil || services.DOIs == nil || services.Profiles == nil || services.AuthFlows == nil {
		return nil, fmt.Errorf("[Server New] all services are required")
	}

	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}

	s := &Server{
		env:        cfg.GetEnv(),
		mux:        http.NewServeMux(),
		config:     cfg,
		features:   features.Parse(cfg.GetFeatures()),
		pages:      pages,
		services:   services,
		fileServer: FileServerHandler(),
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != config.EnvDevelopment {
		return
	}
	for _, route := range s.routes {
		method, path, found := strings.Cut(route, " ")
		if !found {
			method, path = "*", route
		}
		log.Debug().Str("method", method).Str("path", path).Msg("Route")
	}
}

// Features returns the feature flags the server was configured with.
func (s *Server) Features() features.Set {
	return s.features
}

// Warm resolves the identity provider's OIDC discovery document so the first
// login does not pay for it. It is a no-op when login is not configured.
func (s *Server) Warm(ctx context.Context) error {
	if s.config.GetOIDCIssuer() == "" {
		return nil
	}
	_, err := s.getOidcConfig(ctx)
	return err
}
