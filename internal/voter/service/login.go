package service

import (
	"context"
	"errors"
	"time"

	"votegate/internal/voter/models"
	dErrors "votegate/pkg/domain-errors"
	"votegate/pkg/platform/audit"
	"votegate/pkg/platform/sentinel"
)

// Login method labels for metrics and the activity log.
const (
	methodPassword  = "password"
	methodEmailCode = "email_code"
	methodPhoneCode = "phone_code"
	methodFederated = "federated"
)

// LoginEmailPassword authenticates an existing voter by email and password.
// It never creates a record. A voter whose credential still carries the
// legacy scheme is migrated to the modern one as part of the successful
// attempt.
func (s *Service) LoginEmailPassword(ctx context.Context, email, supplied string, meta models.RequestMeta, sid string) (*models.LoginResult, error) {
	ctx, span := s.tracer.Start(ctx, "voter.LoginEmailPassword")
	defer span.End()

	voter, err := s.findByEmail(ctx, email)
	if err != nil {
		s.observeLogin(methodPassword, "failure")
		return nil, err
	}

	session, err := s.bridge.Resolve(ctx, sid)
	if err != nil {
		s.observeLogin(methodPassword, "failure")
		return nil, err
	}

	if err := s.verifyPassword(ctx, voter, supplied, session); err != nil {
		s.observeLogin(methodPassword, "failure")
		return nil, err
	}

	return s.completeLogin(voter, methodPassword, meta)
}

// LoginEmailCode authenticates by email and one-time code. When no voter
// owns the email yet, proof of code possession doubles as signup: a fresh
// passwordless record is created with the email marked verified.
func (s *Service) LoginEmailCode(ctx context.Context, email, code, nickname string, meta models.RequestMeta, sid string) (*models.LoginResult, error) {
	ctx, span := s.tracer.Start(ctx, "voter.LoginEmailCode")
	defer span.End()

	return s.loginWithCode(ctx, models.ChannelEmail, email, code, nickname, meta, sid, methodEmailCode)
}

// LoginPhoneCode authenticates by phone and one-time code, creating the
// voter on first use like LoginEmailCode. When the request carries a pending
// federated session id, the proven third-party identity is linked in the
// same write; this is how a federated signup without an email completes.
func (s *Service) LoginPhoneCode(ctx context.Context, phone, code, nickname string, meta models.RequestMeta, sid string) (*models.LoginResult, error) {
	ctx, span := s.tracer.Start(ctx, "voter.LoginPhoneCode")
	defer span.End()

	return s.loginWithCode(ctx, models.ChannelPhone, phone, code, nickname, meta, sid, methodPhoneCode)
}

func (s *Service) loginWithCode(ctx context.Context, channel models.Channel, address, code, nickname string, meta models.RequestMeta, sid, method string) (*models.LoginResult, error) {
	if err := s.codes.Consume(ctx, channel, address, code); err != nil {
		s.observeLogin(method, "failure")
		return nil, err
	}

	session, err := s.bridge.Resolve(ctx, sid)
	if err != nil {
		s.observeLogin(method, "failure")
		return nil, err
	}

	voter, err := s.findByChannel(ctx, channel, address)
	switch {
	case err == nil:
		// Both updates apply before the write; the session merge must not be
		// skipped when the verified flag alone already triggers it.
		verified := s.markChannelVerified(voter, channel)
		merged := mergeSession(voter, session)
		if verified || merged {
			if err := s.voters.Replace(ctx, voter); err != nil {
				s.observeLogin(method, "failure")
				return nil, dErrors.Wrap(err, dErrors.CodeUnknown, "persist voter")
			}
		}
	case dErrors.HasCode(err, dErrors.CodeUserNotFound):
		voter, err = s.signupWithCode(ctx, channel, address, nickname, meta, session)
		if err != nil {
			s.observeLogin(method, "failure")
			return nil, err
		}
	default:
		s.observeLogin(method, "failure")
		return nil, err
	}

	return s.completeLogin(voter, method, meta)
}

// signupWithCode creates a passwordless voter whose contact channel is
// already proven by the consumed code.
func (s *Service) signupWithCode(ctx context.Context, channel models.Channel, address, nickname string, meta models.RequestMeta, session *models.LoginSession) (*models.Voter, error) {
	voter := &models.Voter{
		Nickname:  nickname,
		SignupIP:  meta.UserIP,
		CreatedAt: time.Now().UTC(),
	}
	s.markChannelVerified(voter, channel)
	switch channel {
	case models.ChannelEmail:
		voter.Email = address
	case models.ChannelPhone:
		voter.Phone = address
	}
	mergeSession(voter, session)

	id, err := s.voters.Insert(ctx, voter)
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Wrap(err, dErrors.CodeUserAlreadyExists, "contact address already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnknown, "create voter")
	}
	voter.ID = id

	s.logger.Info("voter created", "voter_id", id, "channel", channel)
	if s.metrics != nil {
		s.metrics.VoterCreated()
	}
	s.record(audit.Event{
		Action:               audit.ActionVoterCreated,
		Timestamp:            time.Now().UTC(),
		VoterID:              voter.ID,
		Email:                voter.Email,
		Phone:                voter.Phone,
		RequesterIP:          meta.UserIP,
		RequesterFingerprint: meta.AdditionalFingerprint,
	})
	return voter, nil
}

// markChannelVerified flips the verified flag for the proven channel.
// Returns true when the flag actually changed.
func (s *Service) markChannelVerified(voter *models.Voter, channel models.Channel) bool {
	switch channel {
	case models.ChannelEmail:
		if !voter.EmailVerified {
			voter.EmailVerified = true
			return true
		}
	case models.ChannelPhone:
		if !voter.PhoneVerified {
			voter.PhoneVerified = true
			return true
		}
	}
	return false
}

// completeLogin issues the token pair and records the login.
func (s *Service) completeLogin(voter *models.Voter, method string, meta models.RequestMeta) (*models.LoginResult, error) {
	result, err := s.loginResult(voter)
	if err != nil {
		s.observeLogin(method, "failure")
		return nil, err
	}

	s.observeLogin(method, "success")
	s.record(audit.Event{
		Action:               audit.ActionVoterLogin,
		Timestamp:            time.Now().UTC(),
		VoterID:              voter.ID,
		Email:                voter.Email,
		Phone:                voter.Phone,
		Method:               method,
		RequesterIP:          meta.UserIP,
		RequesterFingerprint: meta.AdditionalFingerprint,
	})
	return result, nil
}

func (s *Service) findByEmail(ctx context.Context, email string) (*models.Voter, error) {
	return s.findByChannel(ctx, models.ChannelEmail, email)
}

// findByChannel looks a voter up by contact address, translating store
// errors to domain codes. Removed records fail as not found.
func (s *Service) findByChannel(ctx context.Context, channel models.Channel, address string) (*models.Voter, error) {
	var (
		voter *models.Voter
		err   error
	)
	switch channel {
	case models.ChannelEmail:
		voter, err = s.voters.FindByEmail(ctx, address)
	case models.ChannelPhone:
		voter, err = s.voters.FindByPhone(ctx, address)
	default:
		return nil, dErrors.Newf(dErrors.CodeUnknown, "unknown channel %q", channel)
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeUserNotFound, "no voter for this address")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnknown, "look up voter")
	}
	if voter.Removed {
		return nil, dErrors.New(dErrors.CodeUserNotFound, "no voter for this address")
	}
	return voter, nil
}

// findByID resolves a voter identifier from a verified session token.
func (s *Service) findByID(ctx context.Context, id string) (*models.Voter, error) {
	voter, err := s.voters.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeUserNotFound, "no such voter")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnknown, "look up voter")
	}
	if voter.Removed {
		return nil, dErrors.New(dErrors.CodeUserNotFound, "no such voter")
	}
	return voter, nil
}
