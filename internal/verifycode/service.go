// Package verifycode issues and validates the one-time codes that prove
// access to an email address or phone number.
package verifycode

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"votegate/internal/comm"
	"votegate/internal/ephemeral"
	"votegate/internal/voter/models"
	dErrors "votegate/pkg/domain-errors"
	"votegate/pkg/platform/audit"
	"votegate/pkg/platform/sentinel"
)

const (
	// CodeTTL bounds how long an issued code stays valid.
	CodeTTL = time.Hour
	// GuardTTL is the minimum interval between two sends to one address.
	GuardTTL = time.Minute
)

// Recorder receives activity events. Satisfied by *audit.Recorder.
type Recorder interface {
	Record(event audit.Event)
}

// Metrics counts issued codes. Satisfied by *metrics.Metrics.
type Metrics interface {
	CodeIssued(channel string)
}

// Service implements the one-time code protocol: rate-limited issuance into
// the ephemeral store, delegated delivery, and indistinguishable-failure
// validation.
type Service struct {
	store    ephemeral.Store
	sender   comm.Sender
	recorder Recorder
	logger   *slog.Logger
	metrics  Metrics
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

// New constructs the code service. Store and sender are required.
func New(store ephemeral.Store, sender comm.Sender, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("ephemeral store is required")
	}
	if sender == nil {
		return nil, fmt.Errorf("sender is required")
	}

	svc := &Service{
		store:  store,
		sender: sender,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Send issues a fresh code for the channel+address pair and hands it to the
// delivery collaborator. A resend inside the guard interval fails with
// TooFrequent.
//
// The guard check and the writes are not atomic: two racing sends can both
// pass the check and issue two valid codes. Accepted for a low-value rate
// limit.
func (s *Service) Send(ctx context.Context, channel models.Channel, address string, meta models.RequestMeta) error {
	_, err := s.store.Get(ctx, ephemeral.GuardKey(string(channel), address))
	switch {
	case err == nil:
		return dErrors.New(dErrors.CodeTooFrequent, "code was sent recently, wait before retrying")
	case !errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeUnknown, "guard lookup failed")
	}

	code, err := generateCode()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnknown, "code generation failed")
	}

	if err := s.store.SetWithTTL(ctx, ephemeral.VerifyKey(string(channel), address), code, CodeTTL); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnknown, "code store failed")
	}

	if err := s.deliver(ctx, channel, address, code); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnknown, "code delivery failed")
	}

	// The guard starts only once something was actually sent; a delivery
	// outage must not lock the address out of retries.
	if err := s.store.SetWithTTL(ctx, ephemeral.GuardKey(string(channel), address), "1", GuardTTL); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnknown, "guard store failed")
	}

	s.record(channel, address, meta)
	if s.metrics != nil {
		s.metrics.CodeIssued(string(channel))
	}
	return nil
}

// Consume validates a supplied code. A missing, expired or mismatched code
// all fail with IncorrectVerifyCode so callers cannot distinguish expiry. The code
// is not deleted on success: within its TTL it is a proof-of-access check,
// not a nonce.
func (s *Service) Consume(ctx context.Context, channel models.Channel, address, code string) error {
	expected, err := s.store.Get(ctx, ephemeral.VerifyKey(string(channel), address))
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeIncorrectVerifyCode, "verification code is invalid")
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnknown, "code lookup failed")
	}
	if code == "" || expected != code {
		return dErrors.New(dErrors.CodeIncorrectVerifyCode, "verification code is invalid")
	}
	return nil
}

func (s *Service) deliver(ctx context.Context, channel models.Channel, address, code string) error {
	switch channel {
	case models.ChannelEmail:
		return s.sender.SendEmailCode(ctx, address, code)
	case models.ChannelPhone:
		return s.sender.SendSMSCode(ctx, address, code)
	default:
		return fmt.Errorf("unknown channel %q", channel)
	}
}

func (s *Service) record(channel models.Channel, address string, meta models.RequestMeta) {
	if s.recorder == nil {
		return
	}
	event := audit.Event{
		RequesterIP:          meta.UserIP,
		RequesterFingerprint: meta.AdditionalFingerprint,
	}
	if channel == models.ChannelEmail {
		event.Action = audit.ActionSendEmail
		event.Email = address
	} else {
		event.Action = audit.ActionSendSMS
		event.Phone = address
	}
	s.recorder.Record(event)
}

// generateCode draws a uniformly random 6-digit code, zero-padded.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
