package authflowrepo

import (
	"errors"
	"time"

	apperrors "github.com/jrsteele09/gcn-portal/internal/errors"
	"github.com/patrickmn/go-cache"
)

// DefaultTTL is how long a user has to complete a login.
const DefaultTTL = 10 * time.Minute

// CacheRepo keeps auth flow states in memory and forgets them after a TTL.
type CacheRepo struct {
	states *cache.Cache
}

// NewCacheRepo creates a repository whose entries expire after ttl.
func NewCacheRepo(ttl time.Duration) *CacheRepo {
	return &CacheRepo{
		states: cache.New(ttl, 2*ttl),
	}
}

// Upsert stores or updates an auth flow state
func (r *CacheRepo) Upsert(state string, authState *AuthFlowState) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	if authState == nil {
		return errors.New("authState cannot be nil")
	}

	// Store a copy to prevent external modifications
	stored := *authState
	r.states.SetDefault(state, stored)
	return nil
}

// Get retrieves an auth flow state by state parameter
func (r *CacheRepo) Get(state string) (*AuthFlowState, error) {
	if state == "" {
		return nil, errors.New("state cannot be empty")
	}

	v, found := r.states.Get(state)
	if !found {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "auth flow state")
	}

	authState := v.(AuthFlowState)
	return &authState, nil
}

// Delete removes an auth flow state
func (r *CacheRepo) Delete(state string) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}

	r.states.Delete(state)
	return nil
}
