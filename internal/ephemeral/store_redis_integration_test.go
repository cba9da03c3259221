//go:build integration

package ephemeral

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"votegate/pkg/platform/sentinel"
	"votegate/pkg/testutil/containers"
)

type RedisStoreIntegrationSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *RedisStore
}

func TestRedisStoreIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreIntegrationSuite))
}

func (s *RedisStoreIntegrationSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = NewRedisStore(s.redis.Client)
}

func (s *RedisStoreIntegrationSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreIntegrationSuite) TestSetAndGet() {
	ctx := context.Background()

	s.Require().NoError(s.store.SetWithTTL(ctx, VerifyKey("email", "a@x.com"), "123456", time.Hour))

	value, err := s.store.Get(ctx, VerifyKey("email", "a@x.com"))
	s.Require().NoError(err)
	s.Equal("123456", value)
}

func (s *RedisStoreIntegrationSuite) TestGetMissing() {
	_, err := s.store.Get(context.Background(), VerifyKey("email", "nobody@x.com"))
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *RedisStoreIntegrationSuite) TestExpiry() {
	ctx := context.Background()

	s.Require().NoError(s.store.SetWithTTL(ctx, GuardKey("email", "a@x.com"), "1", 500*time.Millisecond))

	_, err := s.store.Get(ctx, GuardKey("email", "a@x.com"))
	s.Require().NoError(err)

	time.Sleep(700 * time.Millisecond)
	_, err = s.store.Get(ctx, GuardKey("email", "a@x.com"))
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *RedisStoreIntegrationSuite) TestOverwriteResetsValue() {
	ctx := context.Background()

	s.Require().NoError(s.store.SetWithTTL(ctx, VerifyKey("phone", "555"), "111111", time.Hour))
	s.Require().NoError(s.store.SetWithTTL(ctx, VerifyKey("phone", "555"), "222222", time.Hour))

	value, err := s.store.Get(ctx, VerifyKey("phone", "555"))
	s.Require().NoError(err)
	s.Equal("222222", value)
}

func (s *RedisStoreIntegrationSuite) TestDelete() {
	ctx := context.Background()

	s.Require().NoError(s.store.SetWithTTL(ctx, SessionKey("sid-1"), "{}", time.Hour))
	s.Require().NoError(s.store.Delete(ctx, SessionKey("sid-1")))

	_, err := s.store.Get(ctx, SessionKey("sid-1"))
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *RedisStoreIntegrationSuite) TestDeleteMissingIsNoop() {
	s.NoError(s.store.Delete(context.Background(), SessionKey("never-existed")))
}
