package ephemeral

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"votegate/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	now   time.Time
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.store = NewInMemoryStore(WithClock(func() time.Time { return s.now }))
}

func (s *InMemoryStoreSuite) TestGetSet() {
	ctx := context.Background()

	s.Run("missing key returns ErrNotFound", func() {
		_, err := s.store.Get(ctx, "verify:email:a@x.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("set then get returns value", func() {
		s.Require().NoError(s.store.SetWithTTL(ctx, "verify:email:a@x.com", "042517", time.Hour))

		val, err := s.store.Get(ctx, "verify:email:a@x.com")
		s.Require().NoError(err)
		s.Equal("042517", val)
	})

	s.Run("overwrite replaces value and TTL", func() {
		s.Require().NoError(s.store.SetWithTTL(ctx, "k", "one", time.Minute))
		s.Require().NoError(s.store.SetWithTTL(ctx, "k", "two", time.Hour))

		s.now = s.now.Add(30 * time.Minute)
		val, err := s.store.Get(ctx, "k")
		s.Require().NoError(err)
		s.Equal("two", val)
	})
}

func (s *InMemoryStoreSuite) TestExpiry() {
	ctx := context.Background()

	s.Require().NoError(s.store.SetWithTTL(ctx, "guard:sms:123", "1", time.Minute))

	s.now = s.now.Add(59 * time.Second)
	_, err := s.store.Get(ctx, "guard:sms:123")
	s.Require().NoError(err)

	s.now = s.now.Add(2 * time.Second)
	_, err = s.store.Get(ctx, "guard:sms:123")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestDelete() {
	ctx := context.Background()

	s.Require().NoError(s.store.SetWithTTL(ctx, "session:abc", "{}", time.Hour))
	s.Require().NoError(s.store.Delete(ctx, "session:abc"))

	_, err := s.store.Get(ctx, "session:abc")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestKeyBuilders() {
	s.Equal("verify:email:a@x.com", VerifyKey("email", "a@x.com"))
	s.Equal("guard:phone:555", GuardKey("phone", "555"))
	s.Equal("session:sid-1", SessionKey("sid-1"))
}
