package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"votegate/internal/voter/models"
	"votegate/pkg/platform/sentinel"
)

type InMemoryVoterStoreSuite struct {
	suite.Suite
	store *InMemoryVoterStore
}

func TestInMemoryVoterStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryVoterStoreSuite))
}

func (s *InMemoryVoterStoreSuite) SetupTest() {
	s.store = NewInMemory()
}

func (s *InMemoryVoterStoreSuite) TestInsertAssignsIdentifier() {
	ctx := context.Background()

	voter := &models.Voter{Email: "jane@example.com", EmailVerified: true}
	id, err := s.store.Insert(ctx, voter)
	s.Require().NoError(err)
	s.NotEmpty(id)
	s.Equal(id, voter.ID)

	found, err := s.store.FindByID(ctx, id)
	s.Require().NoError(err)
	s.Equal("jane@example.com", found.Email)
}

func (s *InMemoryVoterStoreSuite) TestLookups() {
	ctx := context.Background()

	_, err := s.store.Insert(ctx, &models.Voter{Email: "a@x.com", Phone: "555"})
	s.Require().NoError(err)

	s.Run("by email", func() {
		found, err := s.store.FindByEmail(ctx, "a@x.com")
		s.Require().NoError(err)
		s.Equal("555", found.Phone)
	})

	s.Run("by phone", func() {
		found, err := s.store.FindByPhone(ctx, "555")
		s.Require().NoError(err)
		s.Equal("a@x.com", found.Email)
	})

	s.Run("missing email returns ErrNotFound", func() {
		_, err := s.store.FindByEmail(ctx, "b@x.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("empty address never matches", func() {
		_, err := s.store.FindByEmail(ctx, "")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
		_, err = s.store.FindByPhone(ctx, "")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryVoterStoreSuite) TestInsertConflicts() {
	ctx := context.Background()

	_, err := s.store.Insert(ctx, &models.Voter{Email: "a@x.com"})
	s.Require().NoError(err)

	_, err = s.store.Insert(ctx, &models.Voter{Email: "a@x.com"})
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *InMemoryVoterStoreSuite) TestReplace() {
	ctx := context.Background()

	voter := &models.Voter{Email: "a@x.com", LegacySalt: "s0lt", PasswordHashed: "old"}
	_, err := s.store.Insert(ctx, voter)
	s.Require().NoError(err)

	voter.LegacySalt = ""
	voter.PasswordHashed = "$argon2id$new"
	s.Require().NoError(s.store.Replace(ctx, voter))

	found, err := s.store.FindByEmail(ctx, "a@x.com")
	s.Require().NoError(err)
	s.Empty(found.LegacySalt)
	s.Equal("$argon2id$new", found.PasswordHashed)
}

func (s *InMemoryVoterStoreSuite) TestReplaceConflict() {
	ctx := context.Background()

	_, err := s.store.Insert(ctx, &models.Voter{Email: "a@x.com"})
	s.Require().NoError(err)

	other := &models.Voter{Email: "b@x.com"}
	_, err = s.store.Insert(ctx, other)
	s.Require().NoError(err)

	other.Email = "a@x.com"
	s.Require().ErrorIs(s.store.Replace(ctx, other), sentinel.ErrConflict)
}

func (s *InMemoryVoterStoreSuite) TestReplaceUnknownVoter() {
	err := s.store.Replace(context.Background(), &models.Voter{ID: "missing"})
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryVoterStoreSuite) TestReturnsCopies() {
	ctx := context.Background()

	voter := &models.Voter{Email: "a@x.com"}
	id, err := s.store.Insert(ctx, voter)
	s.Require().NoError(err)

	found, err := s.store.FindByID(ctx, id)
	s.Require().NoError(err)
	found.Email = "mutated@x.com"

	again, err := s.store.FindByID(ctx, id)
	s.Require().NoError(err)
	s.Equal("a@x.com", again.Email)
}
