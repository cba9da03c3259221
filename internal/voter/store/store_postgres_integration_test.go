//go:build integration

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"votegate/internal/voter/models"
	"votegate/pkg/platform/sentinel"
	"votegate/pkg/testutil/containers"
)

type PostgresVoterStoreIntegrationSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *PostgresVoterStore
}

func TestPostgresVoterStoreIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresVoterStoreIntegrationSuite))
}

func (s *PostgresVoterStoreIntegrationSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = NewPostgres(s.pg.Pool)
	s.Require().NoError(s.store.Migrate(context.Background()))
}

func (s *PostgresVoterStoreIntegrationSuite) SetupTest() {
	_, err := s.pg.Pool.Exec(context.Background(), "TRUNCATE voters")
	s.Require().NoError(err)
}

func (s *PostgresVoterStoreIntegrationSuite) TestInsertAndFind() {
	ctx := context.Background()

	voter := &models.Voter{
		Email:         "a@x.com",
		EmailVerified: true,
		Nickname:      "Alice",
		SignupIP:      "203.0.113.7",
		CreatedAt:     time.Now().UTC().Truncate(time.Millisecond),
	}
	id, err := s.store.Insert(ctx, voter)
	s.Require().NoError(err)
	s.NotEmpty(id)

	byID, err := s.store.FindByID(ctx, id)
	s.Require().NoError(err)
	s.Equal("a@x.com", byID.Email)
	s.Equal("Alice", byID.Nickname)
	s.True(byID.EmailVerified)

	byEmail, err := s.store.FindByEmail(ctx, "a@x.com")
	s.Require().NoError(err)
	s.Equal(id, byEmail.ID)
}

func (s *PostgresVoterStoreIntegrationSuite) TestFindMissing() {
	ctx := context.Background()

	_, err := s.store.FindByEmail(ctx, "nobody@x.com")
	s.True(errors.Is(err, sentinel.ErrNotFound))

	_, err = s.store.FindByID(ctx, "00000000-0000-0000-0000-000000000000")
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *PostgresVoterStoreIntegrationSuite) TestInsertDuplicateEmail() {
	ctx := context.Background()

	_, err := s.store.Insert(ctx, &models.Voter{Email: "dup@x.com"})
	s.Require().NoError(err)

	_, err = s.store.Insert(ctx, &models.Voter{Email: "dup@x.com"})
	s.True(errors.Is(err, sentinel.ErrConflict))
}

func (s *PostgresVoterStoreIntegrationSuite) TestInsertDuplicatePhone() {
	ctx := context.Background()

	_, err := s.store.Insert(ctx, &models.Voter{Phone: "13800000001"})
	s.Require().NoError(err)

	_, err = s.store.Insert(ctx, &models.Voter{Phone: "13800000001"})
	s.True(errors.Is(err, sentinel.ErrConflict))
}

func (s *PostgresVoterStoreIntegrationSuite) TestReplace() {
	ctx := context.Background()

	voter := &models.Voter{Email: "old@x.com", LegacySalt: "salt", PasswordHashed: "$2a$..."}
	id, err := s.store.Insert(ctx, voter)
	s.Require().NoError(err)

	voter.ID = id
	voter.PasswordHashed = "$argon2id$..."
	voter.LegacySalt = ""
	s.Require().NoError(s.store.Replace(ctx, voter))

	stored, err := s.store.FindByID(ctx, id)
	s.Require().NoError(err)
	s.Empty(stored.LegacySalt)
	s.Equal("$argon2id$...", stored.PasswordHashed)
}

func (s *PostgresVoterStoreIntegrationSuite) TestReplaceClearsContactColumns() {
	ctx := context.Background()

	voter := &models.Voter{Email: "leaving@x.com", EmailVerified: true}
	id, err := s.store.Insert(ctx, voter)
	s.Require().NoError(err)

	voter.ID = id
	voter.Email = ""
	voter.EmailVerified = false
	voter.Removed = true
	s.Require().NoError(s.store.Replace(ctx, voter))

	_, err = s.store.FindByEmail(ctx, "leaving@x.com")
	s.True(errors.Is(err, sentinel.ErrNotFound), "cleared email must be unfindable")

	// The email frees up for a new record.
	_, err = s.store.Insert(ctx, &models.Voter{Email: "leaving@x.com"})
	s.NoError(err)
}

func (s *PostgresVoterStoreIntegrationSuite) TestReplaceConflict() {
	ctx := context.Background()

	_, err := s.store.Insert(ctx, &models.Voter{Email: "a@x.com"})
	s.Require().NoError(err)

	other := &models.Voter{Email: "b@x.com"}
	id, err := s.store.Insert(ctx, other)
	s.Require().NoError(err)

	other.ID = id
	other.Email = "a@x.com"
	s.True(errors.Is(s.store.Replace(ctx, other), sentinel.ErrConflict))
}

func (s *PostgresVoterStoreIntegrationSuite) TestReplaceMissing() {
	err := s.store.Replace(context.Background(), &models.Voter{ID: "00000000-0000-0000-0000-000000000001"})
	s.True(errors.Is(err, sentinel.ErrNotFound))
}
