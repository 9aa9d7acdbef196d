package session

import (
	"context"
	"sync"

	"github.com/getinkd/artist-dashboard-service/models"
	"github.com/sirupsen/logrus"
)

// Persister writes a whole user record to durable storage.
type Persister interface {
	PutUser(ctx context.Context, record models.UserRecord) error
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(ctx context.Context, record models.UserRecord) error

func (f PersisterFunc) PutUser(ctx context.Context, record models.UserRecord) error {
	return f(ctx, record)
}

// Store holds the signed-in user's record. Replacements are write-through:
// the held record only changes once the persister has accepted the new one,
// so readers always see a complete record.
type Store struct {
	mu        sync.RWMutex
	current   *models.UserRecord
	persister Persister
}

func New(record *models.UserRecord, persister Persister) *Store {
	s := &Store{persister: persister}
	if record != nil {
		held := record.Clone()
		s.current = &held
	}
	return s
}

func (s *Store) CurrentUser(ctx context.Context) (*models.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, nil
	}
	out := s.current.Clone()
	return &out, nil
}

func (s *Store) ReplaceCurrentUser(ctx context.Context, record models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	held := record.Clone()
	if s.persister != nil {
		if err := s.persister.PutUser(ctx, held); err != nil {
			logrus.WithError(err).WithField("userId", record.ID).Error("Failed to persist user record")
			return err
		}
	}
	s.current = &held
	return nil
}
