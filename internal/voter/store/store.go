// Package store persists voter records. It exposes the document-store
// contract the services rely on: lookups by identifier/email/phone, insert
// with identifier assignment, and full-document replace.
package store

import (
	"context"

	"votegate/internal/voter/models"
)

// VoterStore is the record-store contract. Find methods return
// sentinel.ErrNotFound (possibly wrapped) when no record matches; Insert
// returns sentinel.ErrConflict when the email or phone is already claimed.
//
// Replace is a whole-document overwrite keyed by the voter's identifier; it
// returns sentinel.ErrConflict when the update would claim another voter's
// email or phone.
// There is no optimistic concurrency field: a race between two concurrent
// replaces of one record resolves last-writer-wins, which is accepted for
// this core (the only contended write is the idempotent hash migration).
type VoterStore interface {
	FindByID(ctx context.Context, id string) (*models.Voter, error)
	FindByEmail(ctx context.Context, email string) (*models.Voter, error)
	FindByPhone(ctx context.Context, phone string) (*models.Voter, error)
	Insert(ctx context.Context, voter *models.Voter) (string, error)
	Replace(ctx context.Context, voter *models.Voter) error
}
