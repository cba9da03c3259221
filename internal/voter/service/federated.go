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

// Provider names a federated identity provider.
type Provider string

const (
	ProviderTHBWiki Provider = "thbwiki"
	ProviderQQ      Provider = "qq"
)

// FederatedIdentity is what a provider callback proved: a stable uid, and
// optionally a verified email and a display name.
type FederatedIdentity struct {
	UID      string
	Email    string
	Nickname string
}

// FederatedCallback completes a third-party login.
//
// When the provider supplied a verified email, the identity resolves
// directly: the voter owning that email is linked to the uid (created first
// if none exists) and logged in. Without an email there is nothing to
// resolve against, so the proven uid is parked in a pending login session
// and the call fails with RedirectToSignup carrying the session id; a
// phone-code login that presents the session id finishes the link.
func (s *Service) FederatedCallback(ctx context.Context, provider Provider, identity FederatedIdentity, meta models.RequestMeta) (*models.LoginResult, error) {
	ctx, span := s.tracer.Start(ctx, "voter.FederatedCallback")
	defer span.End()

	if identity.UID == "" {
		s.observeLogin(methodFederated, "failure")
		return nil, dErrors.New(dErrors.CodeAuthorizationFailed, "provider returned no uid")
	}

	session := models.LoginSession{SignupIP: meta.UserIP}
	switch provider {
	case ProviderTHBWiki:
		session.THBWikiUID = identity.UID
	case ProviderQQ:
		session.QQOpenID = identity.UID
	default:
		s.observeLogin(methodFederated, "failure")
		return nil, dErrors.Newf(dErrors.CodeLoginMethodNotSupported, "unknown provider %q", provider)
	}

	if identity.Email == "" {
		sid, err := s.bridge.Begin(ctx, session)
		if err != nil {
			s.observeLogin(methodFederated, "failure")
			return nil, err
		}
		s.observeLogin(methodFederated, "redirect")
		return nil, dErrors.NewRedirectToSignup(sid, identity.Nickname)
	}

	voter, err := s.findByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		if mergeSession(voter, &session) {
			if err := s.replace(ctx, voter); err != nil {
				s.observeLogin(methodFederated, "failure")
				return nil, err
			}
		}
	case dErrors.HasCode(err, dErrors.CodeUserNotFound):
		voter, err = s.signupFederated(ctx, identity, session, meta)
		if err != nil {
			s.observeLogin(methodFederated, "failure")
			return nil, err
		}
	default:
		s.observeLogin(methodFederated, "failure")
		return nil, err
	}

	return s.completeLogin(voter, methodFederated, meta)
}

// signupFederated creates a voter from a provider identity that carries a
// verified email.
func (s *Service) signupFederated(ctx context.Context, identity FederatedIdentity, session models.LoginSession, meta models.RequestMeta) (*models.Voter, error) {
	voter := &models.Voter{
		Email:         identity.Email,
		EmailVerified: true,
		Nickname:      identity.Nickname,
		SignupIP:      meta.UserIP,
		CreatedAt:     time.Now().UTC(),
	}
	mergeSession(voter, &session)

	id, err := s.voters.Insert(ctx, voter)
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Wrap(err, dErrors.CodeUserAlreadyExists, "email already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnknown, "create voter")
	}
	voter.ID = id

	s.logger.Info("voter created", "voter_id", id, "method", methodFederated)
	if s.metrics != nil {
		s.metrics.VoterCreated()
	}
	s.record(audit.Event{
		Action:               audit.ActionVoterCreated,
		Timestamp:            time.Now().UTC(),
		VoterID:              voter.ID,
		Email:                voter.Email,
		Method:               methodFederated,
		RequesterIP:          meta.UserIP,
		RequesterFingerprint: meta.AdditionalFingerprint,
	})
	return voter, nil
}
