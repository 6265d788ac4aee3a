package users_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/jrsteele09/gcn-portal/internal/errors"
	"github.com/jrsteele09/gcn-portal/users"
	"github.com/stretchr/testify/require"
)

type fakeIdentityProvider struct {
	calls       int
	accessToken string
	profile     users.Profile
	err         error
}

func (f *fakeIdentityProvider) UpdateProfile(_ context.Context, accessToken string, p users.Profile) error {
	f.calls++
	f.accessToken = accessToken
	f.profile = p
	return f.err
}

func TestEditorSave(t *testing.T) {
	submitted := users.Profile{GivenName: "Mai", MiddleName: "L.", FamilyName: "Gu", Affiliation: "DESY"}

	tests := []struct {
		name      string
		idpErr    error
		persisted bool
	}{
		{name: "identity provider accepts", persisted: true},
		{name: "account cannot persist", idpErr: fmt.Errorf("expired: %w", apperrors.ErrIdentityUnavailable)},
		{name: "identity provider broken", idpErr: fmt.Errorf("%w: boom", apperrors.ErrIdentityUpdate)},
		{name: "unclassified error", idpErr: errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idp := &fakeIdentityProvider{err: tt.idpErr}
			user := &users.User{Email: "mai@example.com", IDP: "Google", GivenName: "Old", Affiliation: "Old Org"}

			result, err := users.NewEditor(idp).Save(context.Background(), "access-token", user, submitted)
			require.NoError(t, err)

			require.Equal(t, 1, idp.calls)
			require.Equal(t, "access-token", idp.accessToken)
			require.Equal(t, submitted, idp.profile)

			require.Equal(t, tt.persisted, result.Persisted)
			if tt.persisted {
				require.Empty(t, result.Warning)
			} else {
				require.Equal(t, users.NotPersistedWarning, result.Warning)
			}

			// The session copy always follows the submission.
			require.Equal(t, submitted, user.Profile())
			require.Equal(t, "mai@example.com", user.Email)
			require.Equal(t, "Google", user.IDP)
		})
	}
}

func TestEditorSaveWithoutUser(t *testing.T) {
	idp := &fakeIdentityProvider{}
	_, err := users.NewEditor(idp).Save(context.Background(), "", nil, users.Profile{})
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	require.Zero(t, idp.calls)
}
