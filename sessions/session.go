// Package sessions keeps the logged in user in a signed cookie.
//
// The cookie holds an HS256 JWT whose claims carry a snapshot of the user's
// profile and the identity provider access token. Nothing is stored
// server-side.
package sessions

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/gcn-portal/internal/errors"
	"github.com/jrsteele09/gcn-portal/users"
	"golang.org/x/crypto/hkdf"
)

// CookieName is the name of the session cookie.
const CookieName = "__session"

const hkdfInfo = "gcn-portal session cookie v1"

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Session is the decoded content of the session cookie.
type Session struct {
	User        *users.User
	AccessToken string
}

type sessionClaims struct {
	User        *users.User `json:"user,omitempty"`
	AccessToken string      `json:"accessToken,omitempty"`
	jwt.RegisteredClaims
}

// Config supplies the signing secret and cookie attributes.
type Config interface {
	GetSessionSecret() string
	GetSessionMaxAge() time.Duration
	GetOrigin() string
}

// CookieStore encodes and decodes sessions. It is safe for concurrent use.
type CookieStore struct {
	key    []byte
	maxAge time.Duration
	secure bool
}

// NewCookieStore derives the signing key from the configured secret.
func NewCookieStore(cfg Config) (*CookieStore, error) {
	key, err := DeriveKey(cfg.GetSessionSecret())
	if err != nil {
		return nil, err
	}

	secure := false
	if origin, err := url.Parse(cfg.GetOrigin()); err == nil {
		secure = origin.Scheme == "https"
	}

	return &CookieStore{
		key:    key,
		maxAge: cfg.GetSessionMaxAge(),
		secure: secure,
	}, nil
}

// DeriveKey expands secret into a 256-bit HMAC key.
func DeriveKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret: %w", apperrors.ErrConfigMissing)
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive session key: %w", err)
	}
	return key, nil
}

// Get decodes the session cookie on r. It returns ErrNoSession when there is
// no cookie and ErrInvalidSession when the cookie is forged or expired.
func (s *CookieStore) Get(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, apperrors.ErrNoSession
	}

	var claims sessionClaims
	_, err = jwt.ParseWithClaims(cookie.Value, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(NowTimeFunc), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidSession, err)
	}

	return &Session{User: claims.User, AccessToken: claims.AccessToken}, nil
}

// User returns the logged in user, or ErrUnauthenticated.
func (s *CookieStore) User(r *http.Request) (*users.User, error) {
	sess, err := s.Get(r)
	if err != nil || sess.User == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return sess.User, nil
}

// Commit serializes sess into a fresh Set-Cookie header.
func (s *CookieStore) Commit(w http.ResponseWriter, sess *Session) error {
	now := NowTimeFunc()
	claims := sessionClaims{
		User:        sess.User,
		AccessToken: sess.AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.maxAge)),
		},
	}

	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}

	http.SetCookie(w, s.cookie(value, int(s.maxAge.Seconds())))
	return nil
}

// Destroy expires the session cookie.
func (s *CookieStore) Destroy(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie("", -1))
}

func (s *CookieStore) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
