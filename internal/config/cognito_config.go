package config

import "fmt"

const (
	cognitoRegionVar     = "COGNITO_REGION"
	cognitoUserPoolIDVar = "COGNITO_USER_POOL_ID"
	cognitoEndpointVar   = "COGNITO_ENDPOINT"
	oidcClientIDVar      = "OIDC_CLIENT_ID"
	oidcClientSecretVar  = "OIDC_CLIENT_SECRET"
)

type Cognito struct{}

var _ CognitoConfig = Cognito{}

func (Cognito) GetCognitoRegion() string {
	return GetEnv(cognitoRegionVar, "us-east-1")
}

// GetCognitoUserPoolID returns "" when no user pool is configured, in which
// case login is unavailable and profile changes stay in the session only.
func (Cognito) GetCognitoUserPoolID() string {
	id, _ := GetEnvOrDieInProduction(cognitoUserPoolIDVar)
	return id
}

// GetCognitoEndpoint overrides the identity provider endpoint (local emulators).
func (Cognito) GetCognitoEndpoint() string {
	return GetEnv(cognitoEndpointVar, "")
}

func (c Cognito) GetOIDCIssuer() string {
	poolID := c.GetCognitoUserPoolID()
	if poolID == "" {
		return ""
	}
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", c.GetCognitoRegion(), poolID)
}

func (Cognito) GetOIDCClientID() string {
	id, _ := GetEnvOrDieInProduction(oidcClientIDVar)
	return id
}

func (Cognito) GetOIDCClientSecret() string {
	return GetEnv(oidcClientSecretVar, "")
}
