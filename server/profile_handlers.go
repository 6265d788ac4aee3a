package server

import (
	"net/http"

	apperrors "github.com/jrsteele09/gcn-portal/internal/errors"
	"github.com/jrsteele09/gcn-portal/sessions"
	"github.com/jrsteele09/gcn-portal/users"
	"golang.org/x/sync/errgroup"
)

// profilePage is the data behind the profile editor.
type profilePage struct {
	Email   string
	IDP     string
	Profile users.Profile
	Preview users.Preview
	Saved   bool
	Warning string
}

func newProfilePage(user *users.User) profilePage {
	p := user.Profile()
	return profilePage{
		Email:   user.Email,
		IDP:     user.IDP,
		Profile: p,
		Preview: users.NewPreview(p, user.Email),
	}
}

func (s *Server) ProfileGetHandler() PageHandler {
	return func(w http.ResponseWriter, r *http.Request) (*Page, error) {
		user, err := s.services.Sessions.User(r)
		if err != nil {
			return nil, apperrors.Unauthorized()
		}
		return &Page{Template: TemplateProfile, Title: "Profile", Data: newProfilePage(user)}, nil
	}
}

// ProfilePostHandler saves the profile to the identity provider and the
// session. The session cookie is rewritten whether or not the identity
// provider accepted the change.
func (s *Server) ProfilePostHandler() PageHandler {
	return func(w http.ResponseWriter, r *http.Request) (*Page, error) {
		var sess *sessions.Session
		var g errgroup.Group
		g.Go(func() error {
			var err error
			sess, err = s.services.Sessions.Get(r)
			if err != nil || sess.User == nil {
				return apperrors.Unauthorized()
			}
			return nil
		})
		g.Go(func() error {
			if err := r.ParseForm(); err != nil {
				return apperrors.WithStatus(http.StatusBadRequest, err)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		profile := users.Profile{
			GivenName:   r.PostForm.Get("givenName"),
			MiddleName:  r.PostForm.Get("middleName"),
			FamilyName:  r.PostForm.Get("familyName"),
			Affiliation: r.PostForm.Get("affiliation"),
		}

		result, err := s.services.Profiles.Save(r.Context(), sess.AccessToken, sess.User, profile)
		if err != nil {
			return nil, err
		}
		if err := s.services.Sessions.Commit(w, sess); err != nil {
			return nil, err
		}

		page := newProfilePage(sess.User)
		page.Saved = result.Persisted
		page.Warning = result.Warning
		return &Page{Template: TemplateProfile, Title: "Profile", Data: page}, nil
	}
}
