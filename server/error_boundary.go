package server

import (
	"fmt"
	"net/http"
	"net/url"

	apperrors "github.com/jrsteele09/gcn-portal/internal/errors"
	"github.com/rs/zerolog"
)

// ErrorKind selects which error page is shown.
type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindUnauthorized
	KindNotFound
)

// PresentableError is a page failure classified for display.
type PresentableError struct {
	Kind ErrorKind
	// Status is the HTTP status of the response.
	Status int
	// FromStatus is set when the failure carried its own HTTP status.
	FromStatus bool
	Err        error
}

// Present classifies err. Failures carrying status 403 or 404 get their
// dedicated pages, any other status is shown as unexpected with that status,
// and failures without a status are unexpected with status 500.
func Present(err error) PresentableError {
	var statusErr *apperrors.StatusError
	if apperrors.As(err, &statusErr) {
		switch statusErr.Status {
		case http.StatusForbidden:
			return PresentableError{Kind: KindUnauthorized, Status: http.StatusForbidden, FromStatus: true, Err: err}
		case http.StatusNotFound:
			return PresentableError{Kind: KindNotFound, Status: http.StatusNotFound, FromStatus: true, Err: err}
		default:
			return PresentableError{Kind: KindUnexpected, Status: statusErr.Status, FromStatus: true, Err: err}
		}
	}
	return PresentableError{Kind: KindUnexpected, Status: http.StatusInternalServerError, Err: err}
}

type unauthorizedData struct {
	LoginURL string
}

type unexpectedData struct {
	StatusText string
}

// LoginURL returns the login link that brings the user back to the page
// they requested.
func (s *Server) LoginURL(r *http.Request) string {
	return RouteLogin + "?redirect=" + url.QueryEscape(s.config.GetOrigin()+r.URL.RequestURI())
}

// renderError shows the error page for err. Failures without an HTTP status
// are logged here when logUnknown is set; callers that already logged pass
// false.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error, logUnknown bool) {
	pe := Present(err)
	if !pe.FromStatus && logUnknown {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Unexpected error")
	}

	page := &Page{Status: pe.Status}
	switch pe.Kind {
	case KindUnauthorized:
		page.Template = TemplateUnauthorized
		page.Title = "Unauthorized"
		page.Data = unauthorizedData{LoginURL: s.LoginURL(r)}
	case KindNotFound:
		page.Template = TemplateNotFound
		page.Title = "Page Not Found"
	default:
		page.Template = TemplateUnexpected
		page.Title = "Unexpected Error"
		data := unexpectedData{}
		if pe.FromStatus {
			data.StatusText = fmt.Sprintf("HTTP %d", pe.Status)
		}
		page.Data = data
	}

	if renderErr := s.render(w, r, page); renderErr != nil {
		zerolog.Ctx(r.Context()).Error().Err(renderErr).Msg("failed to render error page")
		http.Error(w, http.StatusText(pe.Status), pe.Status)
	}
}
