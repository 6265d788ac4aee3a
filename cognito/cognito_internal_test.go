package cognito

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/stretchr/testify/require"
)

type poolConfig struct{}

func (poolConfig) GetCognitoRegion() string     { return "eu-west-2" }
func (poolConfig) GetCognitoUserPoolID() string { return "eu-west-2_pool" }
func (poolConfig) GetCognitoEndpoint() string   { return "http://127.0.0.1:9229" }
func (poolConfig) GetOIDCIssuer() string        { return "" }
func (poolConfig) GetOIDCClientID() string      { return "" }
func (poolConfig) GetOIDCClientSecret() string  { return "" }

func TestNewAppliesRegionAndEndpoint(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newCognitoClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newCognitoClientFromConfig = origNew
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		require.Equal(t, "eu-west-2", lo.Region)
		return aws.Config{Region: lo.Region}, nil
	}

	var endpoint string
	newCognitoClientFromConfig = func(cfg aws.Config, optFns ...func(*cognitoidentityprovider.Options)) API {
		var o cognitoidentityprovider.Options
		for _, fn := range optFns {
			fn(&o)
		}
		endpoint = aws.ToString(o.BaseEndpoint)
		return cognitoidentityprovider.NewFromConfig(cfg, optFns...)
	}

	client, err := New(context.Background(), poolConfig{})
	require.NoError(t, err)
	require.NotNil(t, client.api)
	require.Equal(t, "http://127.0.0.1:9229", endpoint)
}
