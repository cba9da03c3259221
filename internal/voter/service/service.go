// Package service implements the caller-facing operations of the voter
// identity core: password and one-time-code logins, account updates, the
// federated callback, and token issuance on success. Every operation is a
// stateless, bounded sequence of store round-trips; retries belong to
// callers.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"votegate/internal/voter/models"
	"votegate/internal/voter/password"
	"votegate/internal/voter/store"
	"votegate/pkg/platform/audit"
)

// CodeService issues and validates one-time codes. Satisfied by
// *verifycode.Service.
type CodeService interface {
	Send(ctx context.Context, channel models.Channel, address string, meta models.RequestMeta) error
	Consume(ctx context.Context, channel models.Channel, address, code string) error
}

// SessionBridge parks and resolves pending federated identities. Satisfied
// by *linkbridge.Bridge.
type SessionBridge interface {
	Begin(ctx context.Context, session models.LoginSession) (string, error)
	Resolve(ctx context.Context, sid string) (*models.LoginSession, error)
}

// TokenIssuer signs the two token kinds for a verified voter. Satisfied by
// *token.Issuer.
type TokenIssuer interface {
	IssueVoteToken(voter *models.Voter, voteYear int) (string, error)
	IssueSessionToken(voter *models.Voter) (string, error)
}

// Recorder receives activity events. Satisfied by *audit.Recorder.
type Recorder interface {
	Record(event audit.Event)
}

// Metrics observes login outcomes. Satisfied by *metrics.Metrics.
type Metrics interface {
	ObserveLogin(method, outcome string)
	VoterCreated()
	HashMigrated()
}

// Service wires the voter store and the verification collaborators into the
// caller-facing operations. It holds no mutable state of its own.
type Service struct {
	voters store.VoterStore
	codes  CodeService
	bridge SessionBridge
	issuer TokenIssuer

	voteYear    int
	argonParams password.Argon2Params

	recorder Recorder
	metrics  Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(s *Service) {
		s.recorder = recorder
	}
}

func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithArgon2Params overrides the modern-scheme hashing cost.
func WithArgon2Params(p password.Argon2Params) Option {
	return func(s *Service) {
		s.argonParams = p
	}
}

// New constructs the voter service. The store, code service, bridge and
// issuer are all required.
func New(voters store.VoterStore, codes CodeService, bridge SessionBridge, issuer TokenIssuer, voteYear int, opts ...Option) (*Service, error) {
	if voters == nil {
		return nil, fmt.Errorf("voter store is required")
	}
	if codes == nil {
		return nil, fmt.Errorf("code service is required")
	}
	if bridge == nil {
		return nil, fmt.Errorf("session bridge is required")
	}
	if issuer == nil {
		return nil, fmt.Errorf("token issuer is required")
	}

	svc := &Service{
		voters:      voters,
		codes:       codes,
		bridge:      bridge,
		issuer:      issuer,
		voteYear:    voteYear,
		argonParams: password.DefaultArgon2Params(),
		logger:      slog.Default(),
		tracer:      otel.Tracer("votegate/internal/voter/service"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// loginResult issues both tokens for a verified voter. A voter with no
// verified channel cannot log in at all: the vote token is part of every
// login payload and its eligibility check fails first.
func (s *Service) loginResult(voter *models.Voter) (*models.LoginResult, error) {
	voteToken, err := s.issuer.IssueVoteToken(voter, s.voteYear)
	if err != nil {
		return nil, err
	}
	sessionToken, err := s.issuer.IssueSessionToken(voter)
	if err != nil {
		return nil, err
	}
	return &models.LoginResult{
		Voter:        voter.Project(),
		VoteToken:    voteToken,
		SessionToken: sessionToken,
	}, nil
}

func (s *Service) observeLogin(method, outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveLogin(method, outcome)
	}
}

func (s *Service) record(event audit.Event) {
	if s.recorder != nil {
		s.recorder.Record(event)
	}
}

// mergeSession copies federated identifiers from a pending login session
// onto the voter. Returns true when anything changed.
func mergeSession(voter *models.Voter, session *models.LoginSession) bool {
	if session == nil {
		return false
	}
	changed := false
	if session.THBWikiUID != "" && voter.THBWikiUID != session.THBWikiUID {
		voter.THBWikiUID = session.THBWikiUID
		changed = true
	}
	if session.QQOpenID != "" && voter.QQOpenID != session.QQOpenID {
		voter.QQOpenID = session.QQOpenID
		changed = true
	}
	return changed
}
