package server

import (
	"math"
	"net/http"
	"strconv"

	"github.com/jrsteele09/gcn-portal/circulars"
	apperrors "github.com/jrsteele09/gcn-portal/internal/errors"
)

// CircularsPageSize is the number of Circulars listed per page.
const CircularsPageSize = 100

type circularsPage struct {
	Circulars []circulars.Circular
	NextPage  int
	PrevPage  int
}

type circularPage struct {
	Circular  circulars.Circular
	DOI       string
	HandleURL string
}

type circularNewPage struct {
	Submitter string
	Subject   string
	Body      string
	Error     string
}

func (s *Server) CircularsListHandler() PageHandler {
	return func(w http.ResponseWriter, r *http.Request) (*Page, error) {
		page := 1
		if raw := r.URL.Query().Get("page"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > math.MaxInt/CircularsPageSize {
				return nil, apperrors.WithStatus(http.StatusBadRequest, apperrors.ErrInvalidInput)
			}
			page = n
		}

		list, err := s.services.Circulars.List(r.Context(), (page-1)*CircularsPageSize, CircularsPageSize+1)
		if err != nil {
			return nil, err
		}

		data := circularsPage{Circulars: list}
		if len(list) > CircularsPageSize {
			data.Circulars = list[:CircularsPageSize]
			data.NextPage = page + 1
		}
		if page > 1 {
			data.PrevPage = page - 1
		}
		return &Page{Template: TemplateCirculars, Title: "GCN Circulars", Data: data}, nil
	}
}

func (s *Server) CircularGetHandler() PageHandler {
	return func(w http.ResponseWriter, r *http.Request) (*Page, error) {
		id, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			return nil, apperrors.NotFound("circular " + r.PathValue("id"))
		}

		circular, err := s.services.Circulars.Get(r.Context(), id)
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("circular " + strconv.Itoa(id))
		} else if err != nil {
			return nil, err
		}

		return &Page{
			Template: TemplateCircular,
			Title:    "GCN Circular " + strconv.Itoa(id),
			Data: circularPage{
				Circular:  circular,
				DOI:       s.services.DOIs.DOI(id),
				HandleURL: s.services.DOIs.HandleURL(id),
			},
		}, nil
	}
}

func (s *Server) CircularNewHandler() PageHandler {
	return func(w http.ResponseWriter, r *http.Request) (*Page, error) {
		user, err := s.services.Sessions.User(r)
		if err != nil {
			return nil, apperrors.Unauthorized()
		}
		return &Page{
			Template: TemplateCircularNew,
			Title:    "New GCN Circular",
			Data:     circularNewPage{Submitter: formatSubmitter(user.Name(), user.Affiliation, user.Email)},
		}, nil
	}
}

func (s *Server) CircularPostHandler() PageHandler {
	return func(w http.ResponseWriter, r *http.Request) (*Page, error) {
		user, err := s.services.Sessions.User(r)
		if err != nil {
			return nil, apperrors.Unauthorized()
		}
		if err := r.ParseForm(); err != nil {
			return nil, apperrors.WithStatus(http.StatusBadRequest, err)
		}

		submission := circulars.Submission{
			Subject: r.PostForm.Get("subject"),
			Body:    r.PostForm.Get("body"),
		}
		circular, err := s.services.Circulars.Publish(r.Context(), user, submission)
		if apperrors.Is(err, apperrors.ErrInvalidInput) {
			return &Page{
				Template: TemplateCircularNew,
				Title:    "New GCN Circular",
				Status:   http.StatusBadRequest,
				Data: circularNewPage{
					Submitter: formatSubmitter(user.Name(), user.Affiliation, user.Email),
					Subject:   submission.Subject,
					Body:      submission.Body,
					Error:     "Subject and body are required.",
				},
			}, nil
		} else if err != nil {
			return nil, err
		}

		redirectSuccess(w, r, RouteCirculars+"/"+strconv.Itoa(circular.CircularID))
		return nil, nil
	}
}
