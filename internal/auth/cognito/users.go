package cognito

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/taskmgmt/task-management-api/internal/apperr"
	"github.com/taskmgmt/task-management-api/internal/metrics"
)

// User is a user pool account as seen by the admin endpoints.
type User struct {
	Sub       string
	Username  string
	Email     string
	Status    string
	Enabled   bool
	CreatedAt time.Time
}

var ErrUserNotFound = apperr.NotFound(apperr.CodeUserNotFound, "User not found")

// ListUsers pages through the whole user pool.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var (
		out   []User
		token *string
	)
	for {
		start := time.Now()
		resp, err := c.api.ListUsers(ctx, &cip.ListUsersInput{
			UserPoolId:      aws.String(c.userPoolID),
			PaginationToken: token,
		})
		metrics.ObserveIdentityProvider("list_users", start, err)
		if err != nil {
			return nil, mapError(err)
		}
		for _, u := range resp.Users {
			out = append(out, toUser(u))
		}
		if aws.ToString(resp.PaginationToken) == "" {
			break
		}
		token = resp.PaginationToken
	}
	if out == nil {
		out = []User{}
	}
	return out, nil
}

// GetUserBySub looks a user up by the sub attribute. Ids that cannot be
// embedded in a ListUsers filter literal are rejected before the call.
func (c *Client) GetUserBySub(ctx context.Context, sub string) (*User, error) {
	if !validFilterValue(sub) {
		return nil, apperr.InvalidRequest("Invalid user id")
	}

	start := time.Now()
	resp, err := c.api.ListUsers(ctx, &cip.ListUsersInput{
		UserPoolId: aws.String(c.userPoolID),
		Filter:     aws.String(`sub = "` + sub + `"`),
		Limit:      aws.Int32(1),
	})
	metrics.ObserveIdentityProvider("get_user", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	if len(resp.Users) == 0 {
		return nil, ErrUserNotFound
	}
	u := toUser(resp.Users[0])
	return &u, nil
}

// DeleteUser removes the account with the given sub.
func (c *Client) DeleteUser(ctx context.Context, sub string) error {
	u, err := c.GetUserBySub(ctx, sub)
	if err != nil {
		return err
	}

	start := time.Now()
	_, err = c.api.AdminDeleteUser(ctx, &cip.AdminDeleteUserInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(u.Username),
	})
	metrics.ObserveIdentityProvider("delete_user", start, err)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func toUser(u types.UserType) User {
	out := User{
		Username: aws.ToString(u.Username),
		Status:   string(u.UserStatus),
		Enabled:  u.Enabled,
	}
	if u.UserCreateDate != nil {
		out.CreatedAt = *u.UserCreateDate
	}
	for _, a := range u.Attributes {
		switch aws.ToString(a.Name) {
		case "sub":
			out.Sub = aws.ToString(a.Value)
		case "email":
			out.Email = aws.ToString(a.Value)
		}
	}
	return out
}

// validFilterValue reports whether v can sit between the double quotes of a
// ListUsers filter without escaping.
func validFilterValue(v string) bool {
	if v == "" {
		return false
	}
	return !strings.ContainsFunc(v, func(r rune) bool {
		return r == '"' || r == '\\' || unicode.IsControl(r)
	})
}
