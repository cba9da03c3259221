package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"votegate/internal/voter/models"
	"votegate/pkg/platform/sentinel"
)

// InMemoryVoterStore keeps voter records in process memory. Used by unit
// tests and local development.
type InMemoryVoterStore struct {
	mu     sync.RWMutex
	voters map[string]models.Voter
}

// NewInMemory constructs an empty in-memory voter store.
func NewInMemory() *InMemoryVoterStore {
	return &InMemoryVoterStore{voters: make(map[string]models.Voter)}
}

func (s *InMemoryVoterStore) FindByID(_ context.Context, id string) (*models.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.voters[id]
	if !ok {
		return nil, fmt.Errorf("voter %s: %w", id, sentinel.ErrNotFound)
	}
	copied := v
	return &copied, nil
}

func (s *InMemoryVoterStore) FindByEmail(_ context.Context, email string) (*models.Voter, error) {
	return s.findBy(func(v models.Voter) bool { return email != "" && v.Email == email })
}

func (s *InMemoryVoterStore) FindByPhone(_ context.Context, phone string) (*models.Voter, error) {
	return s.findBy(func(v models.Voter) bool { return phone != "" && v.Phone == phone })
}

func (s *InMemoryVoterStore) Insert(_ context.Context, voter *models.Voter) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.voters {
		if voter.Email != "" && existing.Email == voter.Email {
			return "", fmt.Errorf("email taken: %w", sentinel.ErrConflict)
		}
		if voter.Phone != "" && existing.Phone == voter.Phone {
			return "", fmt.Errorf("phone taken: %w", sentinel.ErrConflict)
		}
	}

	voter.ID = uuid.NewString()
	s.voters[voter.ID] = *voter
	return voter.ID, nil
}

func (s *InMemoryVoterStore) Replace(_ context.Context, voter *models.Voter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.voters[voter.ID]; !ok {
		return fmt.Errorf("voter %s: %w", voter.ID, sentinel.ErrNotFound)
	}
	for id, existing := range s.voters {
		if id == voter.ID {
			continue
		}
		if voter.Email != "" && existing.Email == voter.Email {
			return fmt.Errorf("email taken: %w", sentinel.ErrConflict)
		}
		if voter.Phone != "" && existing.Phone == voter.Phone {
			return fmt.Errorf("phone taken: %w", sentinel.ErrConflict)
		}
	}
	s.voters[voter.ID] = *voter
	return nil
}

func (s *InMemoryVoterStore) findBy(match func(models.Voter) bool) (*models.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.voters {
		if match(v) {
			copied := v
			return &copied, nil
		}
	}
	return nil, sentinel.ErrNotFound
}
