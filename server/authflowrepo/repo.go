// Package authflowrepo holds the state of in-flight OIDC logins between the
// redirect to the identity provider and its callback.
package authflowrepo

import "time"

type AuthFlowState struct {
	CodeVerifier string
	Nonce        string
	ReturnURL    string
	CreatedAt    time.Time
}

type Repo interface {
	Upsert(state string, authState *AuthFlowState) error
	Get(state string) (*AuthFlowState, error)
	Delete(state string) error
}
