package verifycode

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"votegate/internal/ephemeral"
	"votegate/internal/voter/models"
	dErrors "votegate/pkg/domain-errors"
	"votegate/pkg/platform/audit"
)

type capturingSender struct {
	emails map[string]string
	sms    map[string]string
	err    error
}

func newCapturingSender() *capturingSender {
	return &capturingSender{emails: map[string]string{}, sms: map[string]string{}}
}

func (c *capturingSender) SendEmailCode(_ context.Context, email, code string) error {
	if c.err != nil {
		return c.err
	}
	c.emails[email] = code
	return nil
}

func (c *capturingSender) SendSMSCode(_ context.Context, phone, code string) error {
	if c.err != nil {
		return c.err
	}
	c.sms[phone] = code
	return nil
}

type recordedEvents struct {
	events []audit.Event
}

func (r *recordedEvents) Record(event audit.Event) {
	r.events = append(r.events, event)
}

type ServiceSuite struct {
	suite.Suite
	now      time.Time
	store    *ephemeral.InMemoryStore
	sender   *capturingSender
	recorder *recordedEvents
	service  *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.store = ephemeral.NewInMemoryStore(ephemeral.WithClock(func() time.Time { return s.now }))
	s.sender = newCapturingSender()
	s.recorder = &recordedEvents{}

	var err error
	s.service, err = New(s.store, s.sender, WithRecorder(s.recorder))
	s.Require().NoError(err)
}

func (s *ServiceSuite) meta() models.RequestMeta {
	return models.RequestMeta{UserIP: "203.0.113.7"}
}

func (s *ServiceSuite) TestNew() {
	s.Run("nil store returns error", func() {
		_, err := New(nil, s.sender)
		s.Error(err)
	})

	s.Run("nil sender returns error", func() {
		_, err := New(s.store, nil)
		s.Error(err)
	})
}

func (s *ServiceSuite) TestSendGeneratesSixDigitCode() {
	ctx := context.Background()

	s.Require().NoError(s.service.Send(ctx, models.ChannelEmail, "a@x.com", s.meta()))

	stored, err := s.store.Get(ctx, ephemeral.VerifyKey("email", "a@x.com"))
	s.Require().NoError(err)
	s.Regexp(regexp.MustCompile(`^\d{6}$`), stored)
	s.Equal(stored, s.sender.emails["a@x.com"], "delivered code matches stored code")
}

func (s *ServiceSuite) TestSendRateLimit() {
	ctx := context.Background()

	s.Require().NoError(s.service.Send(ctx, models.ChannelPhone, "555", s.meta()))

	s.Run("second send within a minute fails TooFrequent", func() {
		s.now = s.now.Add(30 * time.Second)
		err := s.service.Send(ctx, models.ChannelPhone, "555", s.meta())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeTooFrequent))
	})

	s.Run("send after the guard interval succeeds", func() {
		s.now = s.now.Add(31 * time.Second)
		s.Require().NoError(s.service.Send(ctx, models.ChannelPhone, "555", s.meta()))
	})

	s.Run("other addresses are unaffected", func() {
		s.Require().NoError(s.service.Send(ctx, models.ChannelPhone, "556", s.meta()))
	})
}

func (s *ServiceSuite) TestSendDeliveryFailure() {
	ctx := context.Background()
	s.sender.err = errors.New("smtp unreachable")

	err := s.service.Send(ctx, models.ChannelEmail, "a@x.com", s.meta())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnknown))

	s.Run("failed delivery does not start the guard", func() {
		s.sender.err = nil
		s.Require().NoError(s.service.Send(ctx, models.ChannelEmail, "a@x.com", s.meta()),
			"an immediate retry after an outage must go through")
	})
}

func (s *ServiceSuite) TestSendRecordsActivity() {
	ctx := context.Background()

	s.Require().NoError(s.service.Send(ctx, models.ChannelEmail, "a@x.com", s.meta()))
	s.Require().NoError(s.service.Send(ctx, models.ChannelPhone, "555", s.meta()))

	s.Require().Len(s.recorder.events, 2)
	s.Equal(audit.ActionSendEmail, s.recorder.events[0].Action)
	s.Equal("a@x.com", s.recorder.events[0].Email)
	s.Equal("203.0.113.7", s.recorder.events[0].RequesterIP)
	s.Equal(audit.ActionSendSMS, s.recorder.events[1].Action)
	s.Equal("555", s.recorder.events[1].Phone)
}

func (s *ServiceSuite) TestConsume() {
	ctx := context.Background()

	s.Require().NoError(s.service.Send(ctx, models.ChannelEmail, "a@x.com", s.meta()))
	code := s.sender.emails["a@x.com"]

	s.Run("correct code succeeds", func() {
		s.Require().NoError(s.service.Consume(ctx, models.ChannelEmail, "a@x.com", code))
	})

	s.Run("correct code succeeds repeatedly within the TTL", func() {
		s.now = s.now.Add(30 * time.Minute)
		s.Require().NoError(s.service.Consume(ctx, models.ChannelEmail, "a@x.com", code))
		s.Require().NoError(s.service.Consume(ctx, models.ChannelEmail, "a@x.com", code))
	})

	s.Run("wrong code fails IncorrectVerifyCode", func() {
		err := s.service.Consume(ctx, models.ChannelEmail, "a@x.com", "000000x")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeIncorrectVerifyCode))
	})

	s.Run("missing code is indistinguishable from a wrong one", func() {
		err := s.service.Consume(ctx, models.ChannelEmail, "nobody@x.com", code)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeIncorrectVerifyCode))
	})

	s.Run("expired code fails IncorrectVerifyCode", func() {
		s.now = s.now.Add(CodeTTL)
		err := s.service.Consume(ctx, models.ChannelEmail, "a@x.com", code)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeIncorrectVerifyCode))
	})
}
