package config

import (
	"fmt"
	"os"
	"strings"

	apperrors "github.com/jrsteele09/gcn-portal/internal/errors"
)

const (
	portEnvVar          = "PORT"
	appNameVar          = "APP_NAME"
	envVar              = "ENV"
	originVar           = "ORIGIN"
	logLevelVar         = "LOG_LEVEL"
	recaptchaSiteKeyVar = "RECAPTCHA_SITE_KEY"
	featuresVar         = "GCN_FEATURES"

	// EnvProduction is the value of ENV for production deployments.
	EnvProduction = "PROD"
	// EnvDevelopment is the default value of ENV.
	EnvDevelopment = "DEV"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "3333")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "GCN")
}

func (EnvVars) GetEnv() string {
	return currentEnv()
}

func (EnvVars) IsProduction() bool {
	return isProduction()
}

// GetOrigin returns the public origin of the site, e.g. "https://gcn.nasa.gov".
func (EnvVars) GetOrigin() string {
	origin, _ := GetEnvOrDieInProduction(originVar)
	if origin == "" {
		origin = "http://localhost:3333"
	}
	return strings.TrimSuffix(origin, "/")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

func (EnvVars) GetRecaptchaSiteKey() string {
	key, _ := GetEnvOrDieInProduction(recaptchaSiteKeyVar)
	return key
}

// GetFeatures returns the raw comma-separated feature flag list.
func (EnvVars) GetFeatures() string {
	return GetEnv(featuresVar, "")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvOrDie returns the value of envVar or ErrConfigMissing if it is unset.
func GetEnvOrDie(envVar string) (string, error) {
	value := os.Getenv(envVar)
	if value == "" {
		return "", fmt.Errorf("environment variable %s: %w", envVar, apperrors.ErrConfigMissing)
	}
	return value, nil
}

// GetEnvOrDieInProduction behaves like GetEnvOrDie in production. Elsewhere
// an unset variable yields "" so the caller can apply a development default.
func GetEnvOrDieInProduction(envVar string) (string, error) {
	value, err := GetEnvOrDie(envVar)
	if err != nil && !isProduction() {
		return "", nil
	}
	return value, err
}

func currentEnv() string {
	env := os.Getenv(envVar)
	if env == "" {
		return EnvDevelopment
	}
	return strings.ToUpper(env)
}

func isProduction() bool {
	return currentEnv() == EnvProduction
}
