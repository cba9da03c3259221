package service

import (
	"context"
	"errors"
	"time"

	"votegate/internal/voter/models"
	"votegate/internal/voter/password"
	dErrors "votegate/pkg/domain-errors"
	"votegate/pkg/platform/audit"
	"votegate/pkg/platform/sentinel"
)

// UpdateEmail binds a new email to the voter. The new address must be proven
// with a one-time code sent to it; on success it is stored verified.
func (s *Service) UpdateEmail(ctx context.Context, voterID, email, code string) error {
	ctx, span := s.tracer.Start(ctx, "voter.UpdateEmail")
	defer span.End()

	if err := s.codes.Consume(ctx, models.ChannelEmail, email, code); err != nil {
		return err
	}

	voter, err := s.findByID(ctx, voterID)
	if err != nil {
		return err
	}
	voter.Email = email
	voter.EmailVerified = true
	return s.replace(ctx, voter)
}

// UpdatePhone binds a new phone number to the voter, proven by a code sent
// to that number.
func (s *Service) UpdatePhone(ctx context.Context, voterID, phone, code string) error {
	ctx, span := s.tracer.Start(ctx, "voter.UpdatePhone")
	defer span.End()

	if err := s.codes.Consume(ctx, models.ChannelPhone, phone, code); err != nil {
		return err
	}

	voter, err := s.findByID(ctx, voterID)
	if err != nil {
		return err
	}
	voter.Phone = phone
	voter.PhoneVerified = true
	return s.replace(ctx, voter)
}

// UpdatePassword replaces the voter's password. Changing a password always
// requires proof of the current one, regardless of which scheme stored it.
// A passwordless account cannot set one here; it has no credential to prove.
func (s *Service) UpdatePassword(ctx context.Context, voterID, oldPassword, newPassword string) error {
	ctx, span := s.tracer.Start(ctx, "voter.UpdatePassword")
	defer span.End()

	voter, err := s.findByID(ctx, voterID)
	if err != nil {
		return err
	}
	if !voter.HasPassword() {
		return dErrors.New(dErrors.CodeLoginMethodNotSupported, "account has no password")
	}
	if oldPassword == "" {
		return dErrors.New(dErrors.CodeIncorrectPassword, "current password is required")
	}

	var ok bool
	if voter.LegacySalt != "" {
		ok = password.VerifyLegacy(oldPassword, voter.LegacySalt, voter.PasswordHashed)
	} else {
		ok = password.VerifyModern(oldPassword, voter.PasswordHashed)
	}
	if !ok {
		return dErrors.New(dErrors.CodeIncorrectPassword, "incorrect password")
	}

	hashed, err := password.HashModern(newPassword, s.argonParams)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnknown, "hash password")
	}
	voter.PasswordHashed = hashed
	voter.LegacySalt = ""
	return s.replace(ctx, voter)
}

// UpdateNickname sets the display name.
func (s *Service) UpdateNickname(ctx context.Context, voterID, nickname string) error {
	ctx, span := s.tracer.Start(ctx, "voter.UpdateNickname")
	defer span.End()

	voter, err := s.findByID(ctx, voterID)
	if err != nil {
		return err
	}
	voter.Nickname = nickname
	return s.replace(ctx, voter)
}

// RemoveVoter soft-deletes the record. Contact fields and credentials are
// cleared so the address and number free up immediately; the row itself
// stays for the activity trail.
func (s *Service) RemoveVoter(ctx context.Context, voterID string, meta models.RequestMeta) error {
	ctx, span := s.tracer.Start(ctx, "voter.RemoveVoter")
	defer span.End()

	voter, err := s.findByID(ctx, voterID)
	if err != nil {
		return err
	}

	removed := audit.Event{
		Action:               audit.ActionVoterRemoved,
		Timestamp:            time.Now().UTC(),
		VoterID:              voter.ID,
		Email:                voter.Email,
		Phone:                voter.Phone,
		RequesterIP:          meta.UserIP,
		RequesterFingerprint: meta.AdditionalFingerprint,
	}

	voter.Removed = true
	voter.Email = ""
	voter.EmailVerified = false
	voter.Phone = ""
	voter.PhoneVerified = false
	voter.PasswordHashed = ""
	voter.LegacySalt = ""
	if err := s.replace(ctx, voter); err != nil {
		return err
	}

	s.logger.Info("voter removed", "voter_id", voter.ID)
	s.record(removed)
	return nil
}

// replace persists a whole-document update, translating store errors.
func (s *Service) replace(ctx context.Context, voter *models.Voter) error {
	err := s.voters.Replace(ctx, voter)
	if errors.Is(err, sentinel.ErrConflict) {
		return dErrors.Wrap(err, dErrors.CodeUserAlreadyExists, "contact address already registered")
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnknown, "persist voter")
	}
	return nil
}
