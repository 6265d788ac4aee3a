// Package cognito updates user attributes in an Amazon Cognito user pool.
package cognito

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/jrsteele09/gcn-portal/internal/config"
	apperrors "github.com/jrsteele09/gcn-portal/internal/errors"
	"github.com/jrsteele09/gcn-portal/users"
)

// Attribute names in the user pool schema.
const (
	AttrGivenName   = "given_name"
	AttrMiddleName  = "middle_name"
	AttrFamilyName  = "family_name"
	AttrAffiliation = "custom:affiliation"
)

// API is the subset of the Cognito client used here.
type API interface {
	UpdateUserAttributes(ctx context.Context, params *cognitoidentityprovider.UpdateUserAttributesInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.UpdateUserAttributesOutput, error)
}

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newCognitoClientFromConfig = func(cfg aws.Config, optFns ...func(*cognitoidentityprovider.Options)) API {
		return cognitoidentityprovider.NewFromConfig(cfg, optFns...)
	}
)

// tolerableCodes are failures meaning the account or session cannot write
// attributes at all, as opposed to a broken request.
var tolerableCodes = map[string]struct{}{
	"ExpiredTokenException":       {},
	"NotAuthorizedException":      {},
	"UnrecognizedClientException": {},
}

// Client is safe for concurrent use. The zero value has no user pool and
// reports ErrIdentityUnavailable for every update.
type Client struct {
	api API
}

var _ users.IdentityProvider = (*Client)(nil)

// New builds a client for the configured user pool. When no user pool is
// configured it returns a Client that cannot persist changes.
func New(ctx context.Context, cfg config.CognitoConfig) (*Client, error) {
	if cfg.GetCognitoUserPoolID() == "" {
		return &Client{}, nil
	}

	// UpdateUserAttributes is authorized by the user's access token, so no
	// AWS credentials are needed.
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.GetCognitoRegion()),
		awsconfig.WithCredentialsProvider(aws.AnonymousCredentials{}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	api := newCognitoClientFromConfig(awsCfg, func(o *cognitoidentityprovider.Options) {
		if endpoint := cfg.GetCognitoEndpoint(); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return &Client{api: api}, nil
}

// NewWithAPI wraps an existing API implementation.
func NewWithAPI(api API) *Client {
	return &Client{api: api}
}

// UpdateProfile writes the editable profile attributes for the user who owns
// accessToken. Failures that mean the account cannot persist changes wrap
// ErrIdentityUnavailable; all others wrap ErrIdentityUpdate.
func (c *Client) UpdateProfile(ctx context.Context, accessToken string, p users.Profile) error {
	if c.api == nil {
		return fmt.Errorf("no user pool configured: %w", apperrors.ErrIdentityUnavailable)
	}
	if accessToken == "" {
		return fmt.Errorf("no access token in session: %w", apperrors.ErrIdentityUnavailable)
	}

	_, err := c.api.UpdateUserAttributes(ctx, &cognitoidentityprovider.UpdateUserAttributesInput{
		AccessToken: aws.String(accessToken),
		UserAttributes: []types.AttributeType{
			{Name: aws.String(AttrGivenName), Value: aws.String(p.GivenName)},
			{Name: aws.String(AttrMiddleName), Value: aws.String(p.MiddleName)},
			{Name: aws.String(AttrFamilyName), Value: aws.String(p.FamilyName)},
			{Name: aws.String(AttrAffiliation), Value: aws.String(p.Affiliation)},
		},
	})
	if err != nil {
		return classify(err)
	}
	return nil
}

func classify(err error) error {
	var apiErr smithy.APIError
	if apperrors.As(err, &apiErr) {
		if _, ok := tolerableCodes[apiErr.ErrorCode()]; ok {
			return fmt.Errorf("cognito %s: %w: %w", apiErr.ErrorCode(), apperrors.ErrIdentityUnavailable, err)
		}
	}
	return fmt.Errorf("%w: %w", apperrors.ErrIdentityUpdate, err)
}
