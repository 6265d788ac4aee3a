package server

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/jrsteele09/gcn-portal/features"
	"github.com/jrsteele09/gcn-portal/internal/config"
	"github.com/rs/zerolog"
)

// ProductionHostname is the only host search engines may index.
const ProductionHostname = "gcn.nasa.gov"

// RootData is available to every page rendered inside the document shell.
type RootData struct {
	AppName          string
	Origin           string
	Email            string
	Name             string
	IDP              string
	Features         features.Set
	RecaptchaSiteKey string
	NoIndex          bool
	DevBanner        bool
}

// LoggedIn reports whether the request carried a valid session.
func (d RootData) LoggedIn() bool {
	return d.Email != ""
}

// Page describes what a page handler wants rendered.
type Page struct {
	Template string
	Title    string
	Status   int
	Data     any
}

// PageHandler produces a page, or an error to be presented by the error
// boundary. A nil page with a nil error means the handler already responded.
type PageHandler func(w http.ResponseWriter, r *http.Request) (*Page, error)

type document struct {
	Root  RootData
	Title string
	Page  any
}

func (s *Server) page(h PageHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := h(w, r)
		if err != nil {
			s.renderError(w, r, err, true)
			return
		}
		if p == nil {
			return
		}
		if err := s.render(w, r, p); err != nil {
			s.renderError(w, r, err, true)
		}
	}
}

// rootData loads the data shared by every page. A missing or unreadable
// session only means nobody is logged in.
func (s *Server) rootData(r *http.Request) RootData {
	origin := s.config.GetOrigin()
	root := RootData{
		AppName:          s.config.GetAppName(),
		Origin:           origin,
		Features:         features.FromContext(r.Context()),
		RecaptchaSiteKey: s.config.GetRecaptchaSiteKey(),
		NoIndex:          hostname(origin) != ProductionHostname,
		DevBanner:        s.config.GetEnv() != config.EnvProduction,
	}
	if user, err := s.services.Sessions.User(r); err == nil {
		root.Email = user.Email
		root.Name = user.Name()
		root.IDP = user.IDP
	}
	return root
}

func hostname(origin string) string {
	u, err := url.Parse(origin)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, p *Page) error {
	tmpl, ok := s.pages[p.Template]
	if !ok {
		panic("unknown page template " + p.Template)
	}

	var buf bytes.Buffer
	doc := document{Root: s.rootData(r), Title: p.Title, Page: p.Data}
	if err := tmpl.ExecuteTemplate(&buf, layoutTemplate, doc); err != nil {
		return err
	}

	status := p.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("client went away while writing page")
	}
	return nil
}
