package cognito

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

var errMissingSecret = errors.New("client secret is not configured")

// SecretHash is base64(HMAC-SHA256(key=clientSecret, msg=username+clientID)),
// the value the user pool expects for app clients that have a secret.
func SecretHash(username, clientID, clientSecret string) (string, error) {
	if clientSecret == "" {
		return "", errMissingSecret
	}
	mac := hmac.New(sha256.New, []byte(clientSecret))
	mac.Write([]byte(username + clientID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}
