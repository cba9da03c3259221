// Package ephemeral defines the TTL-backed key/value contract used for
// one-time codes, resend guards and pending login sessions. Sessions must
// live here rather than in process memory so they survive restarts and scale
// across instances.
package ephemeral

import (
	"context"
	"fmt"
	"time"
)

// Store is a key/value store with per-key TTL. Get returns
// sentinel.ErrNotFound (possibly wrapped) when the key is absent or expired.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Key builders. Keeping them here makes the full ephemeral keyspace visible
// in one place.

// VerifyKey holds a one-time code for a channel+address pair.
func VerifyKey(channel, address string) string {
	return fmt.Sprintf("verify:%s:%s", channel, address)
}

// GuardKey blocks code resends for its TTL.
func GuardKey(channel, address string) string {
	return fmt.Sprintf("guard:%s:%s", channel, address)
}

// SessionKey holds a pending federated login session.
func SessionKey(sid string) string {
	return fmt.Sprintf("session:%s", sid)
}
