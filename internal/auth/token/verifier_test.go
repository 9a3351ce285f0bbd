package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmgmt/task-management-api/internal/apperr"
)

const (
	testIssuer   = "https://cognito-idp.eu-north-1.amazonaws.com/eu-north-1_pool"
	testAudience = "client"
)

var testKey = []byte("test-signing-key")

func newTestVerifier() *Verifier {
	return NewVerifier(func(*jwt.Token) (interface{}, error) { return testKey, nil }, testIssuer, testAudience, "HS256")
}

func sign(t *testing.T, c Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(testKey)
	require.NoError(t, err)
	return s
}

func validClaims() Claims {
	now := time.Now()
	return Claims{
		TokenUse: "id",
		Username: "alice",
		Groups:   []string{"admin"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "sub-1",
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestVerifyValid(t *testing.T) {
	claims, err := newTestVerifier().Verify(sign(t, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "sub-1", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, []string{"admin"}, claims.Groups)
}

func TestVerifyRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Claims)
	}{
		{"expired", func(c *Claims) { c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute)) }},
		{"wrong issuer", func(c *Claims) { c.Issuer = "https://evil.example" }},
		{"wrong audience", func(c *Claims) { c.Audience = jwt.ClaimStrings{"other"} }},
		{"access token", func(c *Claims) { c.TokenUse = "access" }},
		{"no subject", func(c *Claims) { c.Subject = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validClaims()
			tt.mutate(&c)
			_, err := newTestVerifier().Verify(sign(t, c))
			assert.True(t, apperr.HasCode(err, apperr.CodeInvalidToken))
		})
	}
}

func TestVerifyRejectsUnexpectedAlgorithm(t *testing.T) {
	v := NewVerifier(func(*jwt.Token) (interface{}, error) { return testKey, nil }, testIssuer, testAudience)
	_, err := v.Verify(sign(t, validClaims()))
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidToken))
}

func TestVerifyGarbage(t *testing.T) {
	_, err := newTestVerifier().Verify("not.a.jwt")
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidToken))
}

func TestRoles(t *testing.T) {
	assert.Equal(t, []string{RoleUser}, Roles(nil))
	assert.Equal(t, []string{RoleUser, RoleAdmin, "ROLE_EDITORS"}, Roles([]string{"admin", "editors", "Admin", " "}))
}
