package server

import (
	"errors"
	"net/http"
	"testing"

	apperrors "github.com/jrsteele09/gcn-portal/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestSafeReturnURL(t *testing.T) {
	origin := "https://gcn.nasa.gov"
	tests := []struct {
		raw  string
		want string
	}{
		{"", "/"},
		{"https://gcn.nasa.gov/user", "/user"},
		{"https://gcn.nasa.gov/circulars?page=2", "/circulars?page=2"},
		{"/circulars/new", "/circulars/new"},
		{"https://evil.example.com/user", "/"},
		{"http://gcn.nasa.gov/user", "/"},
		{"//evil.example.com/user", "/"},
		{"javascript:alert(1)", "/"},
		{"user", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			require.Equal(t, tt.want, safeReturnURL(origin, tt.raw))
		})
	}
}

func TestPresent(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		kind       ErrorKind
		status     int
		fromStatus bool
	}{
		{"unauthorized", apperrors.Unauthorized(), KindUnauthorized, http.StatusForbidden, true},
		{"not found", apperrors.NotFound("circular 1"), KindNotFound, http.StatusNotFound, true},
		{"other status", apperrors.WithStatus(http.StatusTeapot, errors.New("short and stout")), KindUnexpected, http.StatusTeapot, true},
		{"wrapped status", apperrors.Wrapf(apperrors.NotFound("x"), "loading"), KindNotFound, http.StatusNotFound, true},
		{"plain", errors.New("boom"), KindUnexpected, http.StatusInternalServerError, false},
		{"sentinel without status", apperrors.ErrNotFound, KindUnexpected, http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe := Present(tt.err)
			require.Equal(t, tt.kind, pe.Kind)
			require.Equal(t, tt.status, pe.Status)
			require.Equal(t, tt.fromStatus, pe.FromStatus)
		})
	}
}

func TestParsePages(t *testing.T) {
	pages, err := parsePages()
	require.NoError(t, err)
	require.Len(t, pages, len(pageTemplates))
}
