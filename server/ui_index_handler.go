package server

import (
	"net/http"

	"github.com/jrsteele09/gcn-portal/circulars"
	apperrors "github.com/jrsteele09/gcn-portal/internal/errors"
	"github.com/jrsteele09/gcn-portal/users"
)

const latestCircularsOnIndex = 5

var formatSubmitter = users.FormatAuthor

type indexPage struct {
	Latest []circulars.Circular
}

func (s *Server) IndexHandler() PageHandler {
	return func(w http.ResponseWriter, r *http.Request) (*Page, error) {
		latest, err := s.services.Circulars.List(r.Context(), 0, latestCircularsOnIndex)
		if err != nil {
			return nil, err
		}
		return &Page{Template: TemplateIndex, Data: indexPage{Latest: latest}}, nil
	}
}

func (s *Server) NotFoundHandler() PageHandler {
	return func(w http.ResponseWriter, r *http.Request) (*Page, error) {
		return nil, apperrors.NotFound(r.URL.Path)
	}
}
