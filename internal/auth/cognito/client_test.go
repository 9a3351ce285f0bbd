package cognito

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmgmt/task-management-api/config"
	"github.com/taskmgmt/task-management-api/internal/apperr"
)

type fakeAPI struct {
	initiate    func(*cip.AdminInitiateAuthInput) (*cip.AdminInitiateAuthOutput, error)
	respond     func(*cip.AdminRespondToAuthChallengeInput) (*cip.AdminRespondToAuthChallengeOutput, error)
	listUsers   func(*cip.ListUsersInput) (*cip.ListUsersOutput, error)
	deleted     []string
	signedOut   []string
	initiateIn  *cip.AdminInitiateAuthInput
	listUsersIn []*cip.ListUsersInput
}

func (f *fakeAPI) AdminInitiateAuth(_ context.Context, in *cip.AdminInitiateAuthInput, _ ...func(*cip.Options)) (*cip.AdminInitiateAuthOutput, error) {
	f.initiateIn = in
	return f.initiate(in)
}

func (f *fakeAPI) AdminRespondToAuthChallenge(_ context.Context, in *cip.AdminRespondToAuthChallengeInput, _ ...func(*cip.Options)) (*cip.AdminRespondToAuthChallengeOutput, error) {
	return f.respond(in)
}

func (f *fakeAPI) ListUsers(_ context.Context, in *cip.ListUsersInput, _ ...func(*cip.Options)) (*cip.ListUsersOutput, error) {
	f.listUsersIn = append(f.listUsersIn, in)
	return f.listUsers(in)
}

func (f *fakeAPI) AdminDeleteUser(_ context.Context, in *cip.AdminDeleteUserInput, _ ...func(*cip.Options)) (*cip.AdminDeleteUserOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Username))
	return &cip.AdminDeleteUserOutput{}, nil
}

func (f *fakeAPI) AdminUserGlobalSignOut(_ context.Context, in *cip.AdminUserGlobalSignOutInput, _ ...func(*cip.Options)) (*cip.AdminUserGlobalSignOutOutput, error) {
	f.signedOut = append(f.signedOut, aws.ToString(in.Username))
	return &cip.AdminUserGlobalSignOutOutput{}, nil
}

var testCfg = config.CognitoConfig{
	Region:       "eu-north-1",
	UserPoolID:   "eu-north-1_pool",
	ClientID:     "client",
	ClientSecret: "secret",
}

func tokenResult(token string) *types.AuthenticationResultType {
	return &types.AuthenticationResultType{IdToken: aws.String(token)}
}

func TestSecretHash(t *testing.T) {
	// echo -n "aliceclient" | openssl dgst -sha256 -hmac secret -binary | base64
	got, err := SecretHash("alice", "client", "secret")
	require.NoError(t, err)
	assert.Equal(t, "RTsve+FQ659UKyESgvLg9GYmZEL+QjzQsW/OjL77/b0=", got)

	_, err = SecretHash("alice", "client", "")
	assert.Error(t, err)
}

func TestSignInSuccess(t *testing.T) {
	api := &fakeAPI{initiate: func(*cip.AdminInitiateAuthInput) (*cip.AdminInitiateAuthOutput, error) {
		return &cip.AdminInitiateAuthOutput{AuthenticationResult: tokenResult("id-token")}, nil
	}}
	c := New(api, testCfg)

	token, err := c.SignIn(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "id-token", token)

	in := api.initiateIn
	assert.Equal(t, types.AuthFlowTypeAdminUserPasswordAuth, in.AuthFlow)
	assert.Equal(t, "alice", in.AuthParameters["USERNAME"])
	assert.Equal(t, "pw", in.AuthParameters["PASSWORD"])
	want, _ := SecretHash("alice", "client", "secret")
	assert.Equal(t, want, in.AuthParameters["SECRET_HASH"])
}

func TestSignInNewPasswordRequired(t *testing.T) {
	api := &fakeAPI{initiate: func(*cip.AdminInitiateAuthInput) (*cip.AdminInitiateAuthOutput, error) {
		return &cip.AdminInitiateAuthOutput{
			ChallengeName: types.ChallengeNameTypeNewPasswordRequired,
			Session:       aws.String("session"),
		}, nil
	}}

	_, err := New(api, testCfg).SignIn(context.Background(), "alice", "pw")
	assert.True(t, apperr.HasCode(err, apperr.CodePasswordChangeRequired))
}

func TestSignInNoResult(t *testing.T) {
	api := &fakeAPI{initiate: func(*cip.AdminInitiateAuthInput) (*cip.AdminInitiateAuthOutput, error) {
		return &cip.AdminInitiateAuthOutput{}, nil
	}}

	_, err := New(api, testCfg).SignIn(context.Background(), "alice", "pw")
	assert.True(t, apperr.HasCode(err, apperr.CodeAuthenticationFailed))
}

func TestSignInMissingSecret(t *testing.T) {
	cfg := testCfg
	cfg.ClientSecret = ""
	api := &fakeAPI{}

	_, err := New(api, cfg).SignIn(context.Background(), "alice", "pw")
	assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
	assert.Nil(t, api.initiateIn)
}

func TestSignInProviderErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   apperr.ErrorCode
		wantStatus int
	}{
		{"bad password", &smithy.GenericAPIError{Code: "NotAuthorizedException", Message: "Incorrect username or password.", Fault: smithy.FaultClient}, apperr.CodeAuthenticationFailed, http.StatusUnauthorized},
		{"unknown user", &smithy.GenericAPIError{Code: "UserNotFoundException", Fault: smithy.FaultClient}, apperr.CodeAuthenticationFailed, http.StatusUnauthorized},
		{"other client fault", &smithy.GenericAPIError{Code: "InvalidParameterException", Message: "bad param", Fault: smithy.FaultClient}, apperr.CodeExternalService, http.StatusUnauthorized},
		{"server fault", &smithy.GenericAPIError{Code: "InternalErrorException", Fault: smithy.FaultServer}, apperr.CodeExternalService, http.StatusBadGateway},
		{"transport", errors.New("dial tcp: timeout"), apperr.CodeExternalService, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{initiate: func(*cip.AdminInitiateAuthInput) (*cip.AdminInitiateAuthOutput, error) {
				return nil, tt.err
			}}
			_, err := New(api, testCfg).SignIn(context.Background(), "alice", "pw")

			appErr, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, tt.wantStatus, appErr.HTTPStatus())
		})
	}
}

func TestForcePasswordChange(t *testing.T) {
	var respondIn *cip.AdminRespondToAuthChallengeInput
	api := &fakeAPI{
		initiate: func(*cip.AdminInitiateAuthInput) (*cip.AdminInitiateAuthOutput, error) {
			return &cip.AdminInitiateAuthOutput{
				ChallengeName: types.ChallengeNameTypeNewPasswordRequired,
				Session:       aws.String("session-1"),
			}, nil
		},
		respond: func(in *cip.AdminRespondToAuthChallengeInput) (*cip.AdminRespondToAuthChallengeOutput, error) {
			respondIn = in
			return &cip.AdminRespondToAuthChallengeOutput{AuthenticationResult: tokenResult("new-token")}, nil
		},
	}

	token, err := New(api, testCfg).ForcePasswordChange(context.Background(), "alice", "old", "new")
	require.NoError(t, err)
	assert.Equal(t, "new-token", token)
	assert.Equal(t, "session-1", aws.ToString(respondIn.Session))
	assert.Equal(t, "new", respondIn.ChallengeResponses["NEW_PASSWORD"])
	assert.Equal(t, "alice", respondIn.ChallengeResponses["USERNAME"])
	assert.NotEmpty(t, respondIn.ChallengeResponses["SECRET_HASH"])
}

func TestForcePasswordChangeWithoutChallenge(t *testing.T) {
	api := &fakeAPI{initiate: func(*cip.AdminInitiateAuthInput) (*cip.AdminInitiateAuthOutput, error) {
		return &cip.AdminInitiateAuthOutput{AuthenticationResult: tokenResult("id-token")}, nil
	}}

	_, err := New(api, testCfg).ForcePasswordChange(context.Background(), "alice", "old", "new")
	assert.True(t, apperr.HasCode(err, apperr.CodeAuthenticationFailed))
}

func TestForcePasswordChangeNoToken(t *testing.T) {
	api := &fakeAPI{
		initiate: func(*cip.AdminInitiateAuthInput) (*cip.AdminInitiateAuthOutput, error) {
			return &cip.AdminInitiateAuthOutput{ChallengeName: types.ChallengeNameTypeNewPasswordRequired}, nil
		},
		respond: func(*cip.AdminRespondToAuthChallengeInput) (*cip.AdminRespondToAuthChallengeOutput, error) {
			return &cip.AdminRespondToAuthChallengeOutput{}, nil
		},
	}

	_, err := New(api, testCfg).ForcePasswordChange(context.Background(), "alice", "old", "new")
	assert.True(t, apperr.HasCode(err, apperr.CodeAuthenticationFailed))
}

func poolUser(sub, username string) types.UserType {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return types.UserType{
		Username:       aws.String(username),
		Enabled:        true,
		UserStatus:     types.UserStatusTypeConfirmed,
		UserCreateDate: &created,
		Attributes: []types.AttributeType{
			{Name: aws.String("sub"), Value: aws.String(sub)},
			{Name: aws.String("email"), Value: aws.String(username + "@example.com")},
		},
	}
}

func TestListUsersPaginates(t *testing.T) {
	api := &fakeAPI{listUsers: func(in *cip.ListUsersInput) (*cip.ListUsersOutput, error) {
		if in.PaginationToken == nil {
			return &cip.ListUsersOutput{Users: []types.UserType{poolUser("s1", "alice")}, PaginationToken: aws.String("next")}, nil
		}
		return &cip.ListUsersOutput{Users: []types.UserType{poolUser("s2", "bob")}}, nil
	}}

	users, err := New(api, testCfg).ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "s1", users[0].Sub)
	assert.Equal(t, "alice@example.com", users[0].Email)
	assert.Equal(t, "CONFIRMED", users[0].Status)
	assert.True(t, users[0].Enabled)
	assert.Equal(t, "bob", users[1].Username)
}

func TestGetUserBySubAndDelete(t *testing.T) {
	api := &fakeAPI{listUsers: func(in *cip.ListUsersInput) (*cip.ListUsersOutput, error) {
		if aws.ToString(in.Filter) == `sub = "s1"` {
			return &cip.ListUsersOutput{Users: []types.UserType{poolUser("s1", "alice")}}, nil
		}
		return &cip.ListUsersOutput{}, nil
	}}
	c := New(api, testCfg)

	u, err := c.GetUserBySub(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, int32(1), aws.ToInt32(api.listUsersIn[0].Limit))

	_, err = c.GetUserBySub(context.Background(), "missing")
	assert.True(t, apperr.HasCode(err, apperr.CodeUserNotFound))

	require.NoError(t, c.DeleteUser(context.Background(), "s1"))
	assert.Equal(t, []string{"alice"}, api.deleted)

	assert.True(t, apperr.HasCode(c.DeleteUser(context.Background(), "missing"), apperr.CodeUserNotFound))
}

func TestGetUserBySubRejectsUnsafeFilterValues(t *testing.T) {
	api := &fakeAPI{listUsers: func(*cip.ListUsersInput) (*cip.ListUsersOutput, error) {
		return &cip.ListUsersOutput{}, nil
	}}
	c := New(api, testCfg)

	for _, sub := range []string{"", `a" or sub ^= "`, `a\\b`, "a\nb", "\u00e9\x01"} {
		_, err := c.GetUserBySub(context.Background(), sub)
		assert.True(t, apperr.HasCode(err, apperr.CodeInvalidRequest), "%q", sub)
	}
	assert.Empty(t, api.listUsersIn)

	_, err := c.GetUserBySub(context.Background(), "caf\u00e9")
	assert.True(t, apperr.HasCode(err, apperr.CodeUserNotFound))
	require.Len(t, api.listUsersIn, 1)
	assert.Equal(t, "sub = \"caf\u00e9\"", aws.ToString(api.listUsersIn[0].Filter))
}

func TestGlobalSignOut(t *testing.T) {
	api := &fakeAPI{}
	require.NoError(t, New(api, testCfg).GlobalSignOut(context.Background(), "alice"))
	assert.Equal(t, []string{"alice"}, api.signedOut)
}
