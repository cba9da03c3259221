// Package linkbridge carries identity claims proven by a federated provider
// across the signup gap. A callback that cannot be resolved to a voter yet
// (no proven email) parks its claims in a short-lived login session; the
// login flow that completes signup consumes them.
package linkbridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"votegate/internal/ephemeral"
	"votegate/internal/voter/models"
	dErrors "votegate/pkg/domain-errors"
	"votegate/pkg/platform/sentinel"
)

// SessionTTL bounds how long a pending identity survives. Long enough to
// request and type a phone code, short enough not to accumulate.
const SessionTTL = time.Hour

// Bridge stores and resolves pending login sessions in the ephemeral store.
// Sessions live outside process memory so they survive restarts and scale
// across instances.
type Bridge struct {
	store  ephemeral.Store
	logger *slog.Logger
}

// Option configures a Bridge.
type Option func(*Bridge)

func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// New constructs a Bridge over the given ephemeral store.
func New(store ephemeral.Store, opts ...Option) (*Bridge, error) {
	if store == nil {
		return nil, fmt.Errorf("ephemeral store is required")
	}
	b := &Bridge{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Begin parks the proven claims under a fresh random session id and returns
// the id for the caller to hand to the principal.
func (b *Bridge) Begin(ctx context.Context, session models.LoginSession) (string, error) {
	sid := uuid.NewString()

	payload, err := json.Marshal(session)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnknown, "encode login session")
	}
	if err := b.store.SetWithTTL(ctx, ephemeral.SessionKey(sid), string(payload), SessionTTL); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnknown, "store login session")
	}
	return sid, nil
}

// Resolve returns the pending session for sid, or nil when it is absent or
// expired. Resolution never mutates the session; expiry is the store's TTL
// alone, and callers copy any federated identifiers onto the voter they are
// creating or updating.
func (b *Bridge) Resolve(ctx context.Context, sid string) (*models.LoginSession, error) {
	if sid == "" {
		return nil, nil
	}

	payload, err := b.store.Get(ctx, ephemeral.SessionKey(sid))
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnknown, "load login session")
	}

	var session models.LoginSession
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		// A corrupt session is treated as absent; the principal restarts the
		// federated flow.
		b.logger.Warn("discarding undecodable login session", "sid", sid)
		return nil, nil
	}
	return &session, nil
}
