package users

import (
	"context"

	apperrors "github.com/jrsteele09/gcn-portal/internal/errors"
	"github.com/rs/zerolog"
)

// IdentityProvider is the authoritative store of user attributes.
type IdentityProvider interface {
	UpdateProfile(ctx context.Context, accessToken string, p Profile) error
}

// NotPersistedWarning is shown when the identity provider did not accept a
// profile change and the new values live only in the session.
const NotPersistedWarning = "Your name and affiliation were updated for this session, but could not be saved permanently."

// SaveResult reports the outcome of a profile save.
type SaveResult struct {
	Persisted bool   // identity provider accepted the change
	Warning   string // non-empty when the change was not persisted
}

// Editor reconciles the identity provider with the session's copy of a user.
//
// The identity provider write is best effort. Whatever it returns, the
// session copy is updated to the submitted values, so the session always
// reflects the last save.
type Editor struct {
	idp IdentityProvider
}

func NewEditor(idp IdentityProvider) *Editor {
	return &Editor{idp: idp}
}

// Save writes p to the identity provider and then onto user.
func (e *Editor) Save(ctx context.Context, accessToken string, user *User, p Profile) (SaveResult, error) {
	if user == nil {
		return SaveResult{}, apperrors.ErrUnauthenticated
	}

	result := SaveResult{Persisted: true}
	if err := e.idp.UpdateProfile(ctx, accessToken, p); err != nil {
		logger := zerolog.Ctx(ctx)
		if apperrors.Is(err, apperrors.ErrIdentityUnavailable) {
			logger.Warn().Err(err).Str("email", user.Email).Msg("Identity provider rejected update, not saving name and affiliation permanently")
		} else {
			logger.Error().Err(err).Str("email", user.Email).Msg("Identity provider update failed, not saving name and affiliation permanently")
		}
		result = SaveResult{Persisted: false, Warning: NotPersistedWarning}
	}

	user.ApplyProfile(p)
	return result, nil
}
