// Package oidctest runs an in-process OpenID Connect provider that issues
// ID tokens shaped like the ones Cognito's hosted UI returns.
package oidctest

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RouteWellKnown = "/.well-known/openid-configuration"
	RouteJWKS      = "/.well-known/jwks.json"
	RouteAuthorize = "/oauth2/authorize"
	RouteToken     = "/oauth2/token"

	contentTypeJSON = "application/json; charset=utf-8"
)

// Identity is the account that signs in at the provider.
type Identity struct {
	Sub          string
	Email        string
	GivenName    string
	MiddleName   string
	FamilyName   string
	Affiliation  string
	Groups       []string
	ProviderName string // federated identity provider, empty for native accounts
}

type grant struct {
	clientID      string
	redirectURI   string
	nonce         string
	codeChallenge string
}

// Provider is a running OIDC provider. It is closed when the test ends.
type Provider struct {
	ClientID    string
	AccessToken string
	Identity    Identity

	server *httptest.Server
	keys   *KeyPair

	mu     sync.Mutex
	grants map[string]grant
}

func NewProvider(t testing.TB, clientID string, identity Identity) *Provider {
	t.Helper()

	keys, err := GenerateRSAKeyPair(uuid.NewString())
	if err != nil {
		t.Fatalf("oidctest: %v", err)
	}

	p := &Provider{
		ClientID:    clientID,
		AccessToken: "access-" + uuid.NewString(),
		Identity:    identity,
		keys:        keys,
		grants:      make(map[string]grant),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+RouteWellKnown, p.wellKnown)
	mux.HandleFunc("GET "+RouteJWKS, p.jwks)
	mux.HandleFunc("GET "+RouteAuthorize, p.authorize)
	mux.HandleFunc("POST "+RouteToken, p.token)
	p.server = httptest.NewServer(mux)
	t.Cleanup(p.server.Close)

	return p
}

// Issuer is the provider's issuer URL.
func (p *Provider) Issuer() string {
	return p.server.URL
}

// Authorize plays the user's browser at the provider: it requests authURL and
// returns the redirect back to the relying party without following it.
func (p *Provider) Authorize(authURL string) (*url.URL, error) {
	client := p.server.Client()
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := client.Get(authURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		return nil, fmt.Errorf("authorize returned status %d", resp.StatusCode)
	}
	return url.Parse(resp.Header.Get("Location"))
}

func (p *Provider) wellKnown(w http.ResponseWriter, _ *http.Request) {
	baseURL := p.Issuer()
	writeJSON(w, http.StatusOK, map[string]any{
		"issuer":                                baseURL,
		"authorization_endpoint":                baseURL + RouteAuthorize,
		"token_endpoint":                        baseURL + RouteToken,
		"jwks_uri":                              baseURL + RouteJWKS,
		"response_types_supported":              []string{"code"},
		"subject_types_supported":               []string{"public"},
		"id_token_signing_alg_values_supported": []string{RS256},
		"code_challenge_methods_supported":      []string{"S256"},
	})
}

func (p *Provider) jwks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, p.keys.JWKS())
}

func (p *Provider) authorize(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("response_type") != "code" || q.Get("client_id") != p.ClientID {
		http.Error(w, "invalid authorization request", http.StatusBadRequest)
		return
	}
	if q.Get("code_challenge_method") != "S256" || q.Get("code_challenge") == "" {
		http.Error(w, "PKCE with S256 is required", http.StatusBadRequest)
		return
	}

	redirectURI, err := url.Parse(q.Get("redirect_uri"))
	if err != nil || !redirectURI.IsAbs() {
		http.Error(w, "invalid redirect_uri", http.StatusBadRequest)
		return
	}

	code := uuid.NewString()
	p.mu.Lock()
	p.grants[code] = grant{
		clientID:      p.ClientID,
		redirectURI:   redirectURI.String(),
		nonce:         q.Get("nonce"),
		codeChallenge: q.Get("code_challenge"),
	}
	p.mu.Unlock()

	params := redirectURI.Query()
	params.Set("code", code)
	params.Set("state", q.Get("state"))
	redirectURI.RawQuery = params.Encode()
	http.Redirect(w, r, redirectURI.String(), http.StatusFound)
}

func (p *Provider) token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSONError(w, "invalid_request", "Failed to parse form data", http.StatusBadRequest)
		return
	}

	clientID, _, ok := r.BasicAuth()
	if !ok {
		clientID = r.PostForm.Get("client_id")
	}

	code := r.PostForm.Get("code")
	p.mu.Lock()
	g, found := p.grants[code]
	delete(p.grants, code)
	p.mu.Unlock()

	switch {
	case r.PostForm.Get("grant_type") != "authorization_code":
		writeJSONError(w, "unsupported_grant_type", "only authorization_code is supported", http.StatusBadRequest)
		return
	case !found:
		writeJSONError(w, "invalid_grant", "unknown or used code", http.StatusBadRequest)
		return
	case clientID != g.clientID:
		writeJSONError(w, "invalid_client", "client mismatch", http.StatusUnauthorized)
		return
	case r.PostForm.Get("redirect_uri") != g.redirectURI:
		writeJSONError(w, "invalid_grant", "redirect_uri mismatch", http.StatusBadRequest)
		return
	case s256(r.PostForm.Get("code_verifier")) != g.codeChallenge:
		writeJSONError(w, "invalid_grant", "PKCE verification failed", http.StatusBadRequest)
		return
	}

	idToken, err := p.keys.Sign(p.idTokenClaims(g.nonce))
	if err != nil {
		writeJSONError(w, "server_error", err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": p.AccessToken,
		"id_token":     idToken,
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
}

func (p *Provider) idTokenClaims(nonce string) jwt.MapClaims {
	now := time.Now()
	id := p.Identity
	claims := jwt.MapClaims{
		"iss":                p.Issuer(),
		"aud":                p.ClientID,
		"sub":                id.Sub,
		"email":              id.Email,
		"token_use":          "id",
		"iat":                now.Unix(),
		"exp":                now.Add(time.Hour).Unix(),
		"given_name":         id.GivenName,
		"middle_name":        id.MiddleName,
		"family_name":        id.FamilyName,
		"custom:affiliation": id.Affiliation,
	}
	if nonce != "" {
		claims["nonce"] = nonce
	}
	if len(id.Groups) > 0 {
		claims["cognito:groups"] = id.Groups
	}
	if id.ProviderName != "" {
		claims["identities"] = []map[string]any{{"providerName": id.ProviderName}}
	}
	return claims
}

func s256(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes an OAuth2 error response
func writeJSONError(w http.ResponseWriter, errorCode, description string, statusCode int) {
	writeJSON(w, statusCode, map[string]string{
		"error":             errorCode,
		"error_description": description,
	})
}
