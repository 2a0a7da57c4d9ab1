package storage

import (
	"context"

	"github.com/triviawire/scoreboard/internal/model"
)

// AccountStorage defines the persistence interface for registered accounts.
// It is the only state that may survive a process restart; everything else
// (connections, game scoreboards) lives and dies with the process.
type AccountStorage interface {
	// SaveAccount stores an account. Uniqueness is enforced by the caller;
	// storage itself performs a plain upsert.
	SaveAccount(ctx context.Context, account *model.Account) error

	// GetAccount returns the account registered under nick, or
	// model.ErrAccountNotFound.
	GetAccount(ctx context.Context, nick model.Nickname) (*model.Account, error)

	// AccountExists reports whether an account is registered under nick.
	AccountExists(ctx context.Context, nick model.Nickname) (bool, error)
}
