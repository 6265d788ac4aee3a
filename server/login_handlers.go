package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/gcn-portal/internal/errors"
	"github.com/jrsteele09/gcn-portal/server/authflowrepo"
	"golang.org/x/oauth2"
)

// LoginHandler starts an authorization code flow with PKCE and sends the
// user to the identity provider.
func (s *Server) LoginHandler() PageHandler {
	return func(w http.ResponseWriter, r *http.Request) (*Page, error) {
		oidcConfig, err := s.getOidcConfig(r.Context())
		if err != nil {
			return nil, apperrors.WithStatus(http.StatusServiceUnavailable, fmt.Errorf("login unavailable: %w", err))
		}

		state := uuid.NewString()
		nonce := uuid.NewString()
		verifier := oauth2.GenerateVerifier()

		err = s.services.AuthFlows.Upsert(state, &authflowrepo.AuthFlowState{
			CodeVerifier: verifier,
			Nonce:        nonce,
			ReturnURL:    safeReturnURL(s.config.GetOrigin(), r.URL.Query().Get("redirect")),
			CreatedAt:    time.Now(),
		})
		if err != nil {
			return nil, apperrors.Wrapf(err, "failed to store auth flow state")
		}

		authURL := oidcConfig.OAuth2Config.AuthCodeURL(state, oidc.Nonce(nonce), oauth2.S256ChallengeOption(verifier))
		http.Redirect(w, r, authURL, http.StatusFound)
		return nil, nil
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.services.Sessions.Destroy(w)
		redirectSuccess(w, r, RouteIndex)
	}
}
