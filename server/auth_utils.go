package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/gcn-portal/users"
	"golang.org/x/oauth2"
)

// ScopeCognitoAdmin lets the access token update the user's own attributes.
const ScopeCognitoAdmin = "aws.cognito.signin.user.admin"

type OidcConfig struct {
	OidcProvider *oidc.Provider
	OAuth2Config *oauth2.Config
	OidcVerifier *oidc.IDTokenVerifier
}

// idTokenClaims are the ID token claims mirrored into the session user.
type idTokenClaims struct {
	Nonce       string   `json:"nonce"`
	Sub         string   `json:"sub"`
	Email       string   `json:"email"`
	GivenName   string   `json:"given_name"`
	MiddleName  string   `json:"middle_name"`
	FamilyName  string   `json:"family_name"`
	Affiliation string   `json:"custom:affiliation"`
	Groups      []string `json:"cognito:groups"`
	Identities  []struct {
		ProviderName string `json:"providerName"`
	} `json:"identities"`
}

func (c idTokenClaims) user() *users.User {
	u := &users.User{
		Sub:         c.Sub,
		Email:       c.Email,
		GivenName:   c.GivenName,
		MiddleName:  c.MiddleName,
		FamilyName:  c.FamilyName,
		Affiliation: c.Affiliation,
		Groups:      c.Groups,
	}
	if len(c.Identities) > 0 {
		u.IDP = c.Identities[0].ProviderName
	}
	return u
}

func (s *Server) getOidcConfig(ctx context.Context) (*OidcConfig, error) {
	s.oidcLock.Lock()
	defer s.oidcLock.Unlock()
	if s.oidc != nil {
		return s.oidc, nil
	}

	issuer := s.config.GetOIDCIssuer()
	if issuer == "" {
		return nil, fmt.Errorf("OIDC issuer is not configured")
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	clientID := s.config.GetOIDCClientID()
	s.oidc = &OidcConfig{
		OidcProvider: provider,
		OAuth2Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: s.config.GetOIDCClientSecret(),
			Endpoint:     provider.Endpoint(),
			RedirectURL:  s.config.GetOrigin() + RouteCallback,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email", ScopeCognitoAdmin},
		},
		OidcVerifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}
	return s.oidc, nil
}

// safeReturnURL reduces a post-login destination to a path on this site.
// Anything pointing elsewhere becomes the home page.
func safeReturnURL(origin, raw string) string {
	if raw == "" {
		return RouteIndex
	}
	u, err := url.Parse(raw)
	if err != nil {
		return RouteIndex
	}
	if u.Scheme != "" || u.Host != "" {
		o, err := url.Parse(origin)
		if err != nil || u.Scheme != o.Scheme || u.Host != o.Host {
			return RouteIndex
		}
	}
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return RouteIndex
	}
	return u.RequestURI()
}

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
