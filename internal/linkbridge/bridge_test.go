package linkbridge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"votegate/internal/ephemeral"
	"votegate/internal/voter/models"
)

type BridgeSuite struct {
	suite.Suite
	now    time.Time
	store  *ephemeral.InMemoryStore
	bridge *Bridge
}

func TestBridgeSuite(t *testing.T) {
	suite.Run(t, new(BridgeSuite))
}

func (s *BridgeSuite) SetupTest() {
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.store = ephemeral.NewInMemoryStore(ephemeral.WithClock(func() time.Time { return s.now }))

	var err error
	s.bridge, err = New(s.store)
	s.Require().NoError(err)
}

func (s *BridgeSuite) TestBeginAndResolve() {
	ctx := context.Background()

	sid, err := s.bridge.Begin(ctx, models.LoginSession{THBWikiUID: "U1", SignupIP: "203.0.113.7"})
	s.Require().NoError(err)
	s.NotEmpty(sid)

	session, err := s.bridge.Resolve(ctx, sid)
	s.Require().NoError(err)
	s.Require().NotNil(session)
	s.Equal("U1", session.THBWikiUID)
	s.Equal("203.0.113.7", session.SignupIP)
}

func (s *BridgeSuite) TestResolveDoesNotConsume() {
	ctx := context.Background()

	sid, err := s.bridge.Begin(ctx, models.LoginSession{QQOpenID: "qq-1"})
	s.Require().NoError(err)

	for range 3 {
		session, err := s.bridge.Resolve(ctx, sid)
		s.Require().NoError(err)
		s.Require().NotNil(session)
		s.Equal("qq-1", session.QQOpenID)
	}
}

func (s *BridgeSuite) TestResolveUnknownOrEmpty() {
	ctx := context.Background()

	session, err := s.bridge.Resolve(ctx, "unknown-sid")
	s.Require().NoError(err)
	s.Nil(session)

	session, err = s.bridge.Resolve(ctx, "")
	s.Require().NoError(err)
	s.Nil(session)
}

func (s *BridgeSuite) TestSessionExpires() {
	ctx := context.Background()

	sid, err := s.bridge.Begin(ctx, models.LoginSession{THBWikiUID: "U1"})
	s.Require().NoError(err)

	s.now = s.now.Add(SessionTTL + time.Second)
	session, err := s.bridge.Resolve(ctx, sid)
	s.Require().NoError(err)
	s.Nil(session)
}

func (s *BridgeSuite) TestSessionIDsAreUnique() {
	ctx := context.Background()

	a, err := s.bridge.Begin(ctx, models.LoginSession{})
	s.Require().NoError(err)
	b, err := s.bridge.Begin(ctx, models.LoginSession{})
	s.Require().NoError(err)
	s.NotEqual(a, b)
}
