package server

import (
	"fmt"
	"net/http"

	apperrors "github.com/jrsteele09/gcn-portal/internal/errors"
	"github.com/jrsteele09/gcn-portal/sessions"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

func (s *Server) OAuthCallbackHandler() PageHandler {
	return func(w http.ResponseWriter, r *http.Request) (*Page, error) {
		state := r.FormValue("state")
		code := r.FormValue("code")

		if errorParam := r.FormValue("error"); errorParam != "" {
			return nil, apperrors.WithStatus(http.StatusBadRequest,
				fmt.Errorf("authorization failed: %s - %s", errorParam, r.FormValue("error_description")))
		}
		if code == "" || state == "" {
			return nil, apperrors.WithStatus(http.StatusBadRequest, fmt.Errorf("missing code or state parameter: %w", apperrors.ErrInvalidInput))
		}

		authState, err := s.services.AuthFlows.Get(state)
		if err != nil {
			return nil, apperrors.WithStatus(http.StatusBadRequest, fmt.Errorf("invalid state parameter: %w", err))
		}
		// States are single use
		if err := s.services.AuthFlows.Delete(state); err != nil {
			return nil, apperrors.Wrapf(err, "failed to delete auth flow state")
		}

		oidcConfig, err := s.getOidcConfig(r.Context())
		if err != nil {
			return nil, err
		}

		oauth2Token, err := oidcConfig.OAuth2Config.Exchange(r.Context(), code, oauth2.VerifierOption(authState.CodeVerifier))
		if err != nil {
			return nil, apperrors.Wrapf(err, "token exchange failed")
		}

		rawIDToken, ok := oauth2Token.Extra("id_token").(string)
		if !ok {
			return nil, fmt.Errorf("no ID token in token response")
		}

		idToken, err := oidcConfig.OidcVerifier.Verify(r.Context(), rawIDToken)
		if err != nil {
			return nil, apperrors.Wrapf(err, "ID token verification failed")
		}

		var claims idTokenClaims
		if err := idToken.Claims(&claims); err != nil {
			return nil, apperrors.Wrapf(err, "failed to extract claims")
		}

		// Validate nonce to prevent replay attacks
		if claims.Nonce != authState.Nonce {
			return nil, apperrors.WithStatus(http.StatusBadRequest, fmt.Errorf("invalid nonce"))
		}

		user := claims.user()
		if err := s.services.Sessions.Commit(w, &sessions.Session{User: user, AccessToken: oauth2Token.AccessToken}); err != nil {
			return nil, err
		}

		zerolog.Ctx(r.Context()).Info().Str("email", user.Email).Str("idp", user.IDP).Msg("User logged in")
		redirectSuccess(w, r, authState.ReturnURL)
		return nil, nil
	}
}
