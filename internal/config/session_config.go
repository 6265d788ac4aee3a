package config

import "time"

const sessionSecretVar = "SESSION_SECRET"

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetSessionSecret() string {
	return withDevDefault(sessionSecretVar, "development-only-session-secret")
}

func (Session) GetSessionMaxAge() time.Duration {
	return 7 * 24 * time.Hour
}
