package config

import (
	"time"

	apperrors "github.com/jrsteele09/gcn-portal/internal/errors"
)

type Config interface {
	EnvConfig
	DataCiteConfig
	CognitoConfig
	SessionConfig
	Validate() error
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	IsProduction() bool
	GetOrigin() string
	GetLogLevel() string
	GetRecaptchaSiteKey() string
	GetFeatures() string
}

type DataCiteConfig interface {
	GetOrigin() string
	GetDataCiteAPIURL() string
	GetDataCitePrefix() string
	GetDataCiteHandleURL() string
	GetDataCiteRepositoryID() (string, error)
	GetDataCitePassword() (string, error)
}

type CognitoConfig interface {
	GetCognitoRegion() string
	GetCognitoUserPoolID() string
	GetCognitoEndpoint() string
	GetOIDCIssuer() string
	GetOIDCClientID() string
	GetOIDCClientSecret() string
}

type SessionConfig interface {
	GetSessionSecret() string
	GetSessionMaxAge() time.Duration
}

type mainConfig struct {
	EnvVars
	DataCite
	Cognito
	Session
}

func New() Config {
	return mainConfig{}
}

// requiredInProduction lists every variable that has a development fallback
// but must be set explicitly when ENV=PROD.
var requiredInProduction = []string{
	originVar,
	dataCiteAPIURLVar,
	dataCitePrefixVar,
	dataCiteHandleURLVar,
	dataCiteRepositoryIDVar,
	dataCitePasswordVar,
	recaptchaSiteKeyVar,
	cognitoUserPoolIDVar,
	oidcClientIDVar,
	sessionSecretVar,
}

// Validate reports every required production value that is unset.
func (c mainConfig) Validate() error {
	var errs []error
	for _, name := range requiredInProduction {
		if _, err := GetEnvOrDieInProduction(name); err != nil {
			errs = append(errs, err)
		}
	}
	return apperrors.Join(errs...)
}
