package cognito

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/taskmgmt/task-management-api/config"
	"github.com/taskmgmt/task-management-api/internal/apperr"
	"github.com/taskmgmt/task-management-api/internal/metrics"
)

// API is the subset of the Cognito user pool client this package calls.
type API interface {
	AdminInitiateAuth(ctx context.Context, in *cip.AdminInitiateAuthInput, optFns ...func(*cip.Options)) (*cip.AdminInitiateAuthOutput, error)
	AdminRespondToAuthChallenge(ctx context.Context, in *cip.AdminRespondToAuthChallengeInput, optFns ...func(*cip.Options)) (*cip.AdminRespondToAuthChallengeOutput, error)
	ListUsers(ctx context.Context, in *cip.ListUsersInput, optFns ...func(*cip.Options)) (*cip.ListUsersOutput, error)
	AdminDeleteUser(ctx context.Context, in *cip.AdminDeleteUserInput, optFns ...func(*cip.Options)) (*cip.AdminDeleteUserOutput, error)
	AdminUserGlobalSignOut(ctx context.Context, in *cip.AdminUserGlobalSignOutInput, optFns ...func(*cip.Options)) (*cip.AdminUserGlobalSignOutOutput, error)
}

// Client exchanges credentials for ID tokens and administers pool users.
type Client struct {
	api          API
	userPoolID   string
	clientID     string
	clientSecret string
}

func New(api API, cfg config.CognitoConfig) *Client {
	return &Client{
		api:          api,
		userPoolID:   cfg.UserPoolID,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}
}

// NewFromConfig builds the SDK client from the default AWS credential chain.
func NewFromConfig(ctx context.Context, cfg config.CognitoConfig) (*Client, error) {
	awsConf, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return New(cip.NewFromConfig(awsConf), cfg), nil
}

// SignIn authenticates with ADMIN_USER_PASSWORD_AUTH and returns the ID token.
// Accounts that must change their password fail with PASSWORD_CHANGE_REQUIRED.
func (c *Client) SignIn(ctx context.Context, username, password string) (string, error) {
	out, err := c.initiateAuth(ctx, username, password)
	if err != nil {
		return "", err
	}

	if out.ChallengeName == types.ChallengeNameTypeNewPasswordRequired {
		return "", apperr.PasswordChangeRequired()
	}
	if out.AuthenticationResult != nil && aws.ToString(out.AuthenticationResult.IdToken) != "" {
		return aws.ToString(out.AuthenticationResult.IdToken), nil
	}
	return "", apperr.AuthenticationFailed("Authentication failed")
}

// ForcePasswordChange completes the NEW_PASSWORD_REQUIRED challenge and
// returns the ID token issued afterwards.
func (c *Client) ForcePasswordChange(ctx context.Context, username, password, newPassword string) (string, error) {
	out, err := c.initiateAuth(ctx, username, password)
	if err != nil {
		return "", err
	}
	if out.ChallengeName != types.ChallengeNameTypeNewPasswordRequired {
		return "", apperr.AuthenticationFailed("Password change is not required for this user")
	}

	hash, err := c.secretHash(username)
	if err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := c.api.AdminRespondToAuthChallenge(ctx, &cip.AdminRespondToAuthChallengeInput{
		UserPoolId:    aws.String(c.userPoolID),
		ClientId:      aws.String(c.clientID),
		ChallengeName: types.ChallengeNameTypeNewPasswordRequired,
		Session:       out.Session,
		ChallengeResponses: map[string]string{
			"USERNAME":     username,
			"NEW_PASSWORD": newPassword,
			"SECRET_HASH":  hash,
		},
	})
	metrics.ObserveIdentityProvider("respond_to_auth_challenge", start, err)
	if err != nil {
		return "", mapError(err)
	}

	if resp.AuthenticationResult == nil || aws.ToString(resp.AuthenticationResult.IdToken) == "" {
		return "", apperr.AuthenticationFailed("Failed to complete password change")
	}
	return aws.ToString(resp.AuthenticationResult.IdToken), nil
}

// GlobalSignOut invalidates every refresh token of the user.
func (c *Client) GlobalSignOut(ctx context.Context, username string) error {
	start := time.Now()
	_, err := c.api.AdminUserGlobalSignOut(ctx, &cip.AdminUserGlobalSignOutInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(username),
	})
	metrics.ObserveIdentityProvider("global_sign_out", start, err)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (c *Client) initiateAuth(ctx context.Context, username, password string) (*cip.AdminInitiateAuthOutput, error) {
	hash, err := c.secretHash(username)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := c.api.AdminInitiateAuth(ctx, &cip.AdminInitiateAuthInput{
		UserPoolId: aws.String(c.userPoolID),
		ClientId:   aws.String(c.clientID),
		AuthFlow:   types.AuthFlowTypeAdminUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME":    username,
			"PASSWORD":    password,
			"SECRET_HASH": hash,
		},
	})
	metrics.ObserveIdentityProvider("initiate_auth", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (c *Client) secretHash(username string) (string, error) {
	hash, err := SecretHash(username, c.clientID, c.clientSecret)
	if err != nil {
		return "", apperr.Internal("Failed to compute secret hash", err)
	}
	return hash, nil
}
