package memory

import (
	"context"
	"sync"

	"github.com/triviawire/scoreboard/internal/model"
	"github.com/triviawire/scoreboard/internal/storage"
)

// Storage is an in-memory implementation of the account storage interface
type Storage struct {
	mu       sync.RWMutex
	accounts map[model.Nickname]*model.Account
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts: make(map[model.Nickname]*model.Account),
	}
}

// Ensure Storage implements the interface
var _ storage.AccountStorage = (*Storage)(nil)

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.Nickname] = account
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, nick model.Nickname) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[nick]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return account, nil
}

func (s *Storage) AccountExists(ctx context.Context, nick model.Nickname) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[nick]
	return ok, nil
}
