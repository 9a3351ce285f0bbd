package revocation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "auth:revoked:" // auth:revoked:{sub} -> unix milliseconds of the last logout

// Store remembers when a subject last logged out. Tokens issued at or before
// that instant are no longer accepted.
type Store interface {
	Revoke(ctx context.Context, subject string, at time.Time) error
	RevokedAt(ctx context.Context, subject string) (time.Time, bool, error)
}

// RedisStore keeps one marker per subject. The marker expires after ttl,
// which should match the lifetime of issued tokens.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Revoke(ctx context.Context, subject string, at time.Time) error {
	if err := s.client.Set(ctx, keyPrefix+subject, at.UnixMilli(), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store revocation: %w", err)
	}
	return nil
}

func (s *RedisStore) RevokedAt(ctx context.Context, subject string) (time.Time, bool, error) {
	val, err := s.client.Get(ctx, keyPrefix+subject).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read revocation: %w", err)
	}
	ms, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("corrupt revocation marker %q: %w", val, err)
	}
	return time.UnixMilli(ms), true, nil
}

// NoopStore is used when no Redis is configured; logout then only signs the
// user out at the identity provider.
type NoopStore struct{}

func (NoopStore) Revoke(context.Context, string, time.Time) error { return nil }

func (NoopStore) RevokedAt(context.Context, string) (time.Time, bool, error) {
	return time.Time{}, false, nil
}

// IsRevoked reports whether a token for subject issued at issuedAt predates
// the subject's last logout. Token iat has whole-second resolution, so a
// token whose iat falls in the same second as the logout is accepted;
// otherwise signing in again right after logging out would be rejected
// until the marker expires.
func IsRevoked(ctx context.Context, s Store, subject string, issuedAt time.Time) (bool, error) {
	at, ok, err := s.RevokedAt(ctx, subject)
	if err != nil || !ok {
		return false, err
	}
	return issuedAt.Unix() < at.Unix(), nil
}
