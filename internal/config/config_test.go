package config_test

import (
	"testing"

	"github.com/jrsteele09/gcn-portal/internal/config"
	apperrors "github.com/jrsteele09/gcn-portal/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestGetEnvOrDieInProduction(t *testing.T) {
	t.Run("development falls back to empty", func(t *testing.T) {
		t.Setenv("ENV", "DEV")
		t.Setenv("DATACITE_PREFIX", "")
		value, err := config.GetEnvOrDieInProduction("DATACITE_PREFIX")
		require.NoError(t, err)
		require.Empty(t, value)
	})

	t.Run("production requires value", func(t *testing.T) {
		t.Setenv("ENV", "prod")
		t.Setenv("DATACITE_PREFIX", "")
		_, err := config.GetEnvOrDieInProduction("DATACITE_PREFIX")
		require.ErrorIs(t, err, apperrors.ErrConfigMissing)
		require.Contains(t, err.Error(), "DATACITE_PREFIX")
	})

	t.Run("set value is returned", func(t *testing.T) {
		t.Setenv("ENV", "PROD")
		t.Setenv("DATACITE_PREFIX", "10.1234")
		value, err := config.GetEnvOrDieInProduction("DATACITE_PREFIX")
		require.NoError(t, err)
		require.Equal(t, "10.1234", value)
	})
}

func TestDataCiteDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("DATACITE_API_URL", "")
	t.Setenv("DATACITE_PREFIX", "")
	t.Setenv("DATACITE_HANDLE_URL", "")
	t.Setenv("DATACITE_REPOSITORY_ID", "")

	c := config.New()
	require.Equal(t, "https://api.test.datacite.org", c.GetDataCiteAPIURL())
	require.Equal(t, "10.xxxxx", c.GetDataCitePrefix())
	require.Equal(t, "https://handle.stage.datacite.org", c.GetDataCiteHandleURL())

	_, err := c.GetDataCiteRepositoryID()
	require.ErrorIs(t, err, apperrors.ErrConfigMissing)
}

func TestValidate(t *testing.T) {
	t.Run("development never fails", func(t *testing.T) {
		t.Setenv("ENV", "DEV")
		t.Setenv("ORIGIN", "")
		require.NoError(t, config.New().Validate())
	})

	t.Run("production reports every missing value", func(t *testing.T) {
		t.Setenv("ENV", "PROD")
		t.Setenv("ORIGIN", "https://gcn.nasa.gov")
		t.Setenv("DATACITE_PASSWORD", "")
		t.Setenv("SESSION_SECRET", "")

		err := config.New().Validate()
		require.ErrorIs(t, err, apperrors.ErrConfigMissing)
		require.Contains(t, err.Error(), "DATACITE_PASSWORD")
		require.Contains(t, err.Error(), "SESSION_SECRET")
		require.NotContains(t, err.Error(), "ORIGIN")
	})
}

func TestGetPortAndOrigin(t *testing.T) {
	t.Setenv("ENV", "DEV")
	t.Setenv("PORT", "8080")
	t.Setenv("ORIGIN", "https://gcn.example.org/")

	c := config.New()
	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, "https://gcn.example.org", c.GetOrigin())
}

func TestOIDCIssuer(t *testing.T) {
	t.Setenv("ENV", "DEV")
	t.Setenv("COGNITO_REGION", "us-east-1")

	t.Setenv("COGNITO_USER_POOL_ID", "")
	require.Empty(t, config.New().GetOIDCIssuer())

	t.Setenv("COGNITO_USER_POOL_ID", "us-east-1_abc")
	require.Equal(t, "https://cognito-idp.us-east-1.amazonaws.com/us-east-1_abc", config.New().GetOIDCIssuer())
}
