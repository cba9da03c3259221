package service

import (
	"context"

	"votegate/internal/voter/models"
	"votegate/internal/voter/password"
	dErrors "votegate/pkg/domain-errors"
)

// verifyPassword checks the supplied password against the voter's stored
// credential and, when the record still carries the legacy scheme, migrates
// it in place: the hash is rewritten under the modern scheme and the stored
// salt is cleared. Migration is not optional and not deferred; a login that
// verified against a legacy hash only succeeds once the upgraded record is
// persisted.
//
// The pending login session, when present, is folded into the same write so
// a password login can complete a federated link without a second store
// round-trip.
func (s *Service) verifyPassword(ctx context.Context, voter *models.Voter, supplied string, session *models.LoginSession) error {
	if !voter.HasPassword() {
		return dErrors.New(dErrors.CodeLoginMethodNotSupported, "account has no password; use a verification code")
	}

	if voter.LegacySalt != "" {
		if !password.VerifyLegacy(supplied, voter.LegacySalt, voter.PasswordHashed) {
			return dErrors.New(dErrors.CodeIncorrectPassword, "incorrect password")
		}

		upgraded, err := password.HashModern(supplied, s.argonParams)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnknown, "rehash password")
		}
		voter.PasswordHashed = upgraded
		voter.LegacySalt = ""
		mergeSession(voter, session)

		if err := s.voters.Replace(ctx, voter); err != nil {
			// The password was right, but a login that cannot persist the
			// upgraded hash would leave the legacy credential live. Fail the
			// attempt; the next one retries the migration.
			return dErrors.Wrap(err, dErrors.CodeUnknown, "persist migrated credential")
		}
		s.logger.Info("migrated legacy password hash", "voter_id", voter.ID)
		if s.metrics != nil {
			s.metrics.HashMigrated()
		}
		return nil
	}

	if !password.VerifyModern(supplied, voter.PasswordHashed) {
		return dErrors.New(dErrors.CodeIncorrectPassword, "incorrect password")
	}

	if mergeSession(voter, session) {
		if err := s.voters.Replace(ctx, voter); err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnknown, "persist linked identity")
		}
	}
	return nil
}
