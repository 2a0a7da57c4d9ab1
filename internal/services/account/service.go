package account

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/triviawire/scoreboard/internal/dependencies/clock"
	"github.com/triviawire/scoreboard/internal/dependencies/random"
	"github.com/triviawire/scoreboard/internal/model"
	"github.com/triviawire/scoreboard/internal/storage"
)

// Service is the account store: it owns registration and login against the
// persisted accounts. Nothing else reads or writes account storage.
type Service struct {
	storage storage.AccountStorage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	// mu makes the exists-check and the save in Register a single atomic
	// step, so two sessions registering the same nick cannot both succeed.
	mu sync.Mutex
}

// New creates a new account Service
func New(storage storage.AccountStorage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clk,
		random:  rnd,
		logger:  logger,
	}
}

// Register creates an account under nick with a fresh random salt. It fails
// with model.ErrAccountExists if any account already holds the nick.
func (s *Service) Register(ctx context.Context, nick model.Nickname, password string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.storage.AccountExists(ctx, nick)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrAccountExists
	}

	salt := s.random.Bytes(saltLength)
	account := &model.Account{
		Nickname:  nick,
		Salt:      salt,
		Digest:    digest(password, salt),
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("new account registered", slog.String("nick", string(nick)))
	return account, nil
}

// Login verifies nick/password against the stored account. Both an unknown
// nick and a wrong password surface as model.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, nick model.Nickname, password string) (*model.Account, error) {
	account, err := s.storage.GetAccount(ctx, nick)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if !digestsEqual(account.Digest, digest(password, account.Salt)) {
		return nil, model.ErrInvalidCredentials
	}

	return account, nil
}

// Exists reports whether an account is registered under nick.
func (s *Service) Exists(ctx context.Context, nick model.Nickname) (bool, error) {
	return s.storage.AccountExists(ctx, nick)
}
