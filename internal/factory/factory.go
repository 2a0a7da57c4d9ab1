package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/triviawire/scoreboard/internal/dependencies/clock"
	"github.com/triviawire/scoreboard/internal/dependencies/random"
	"github.com/triviawire/scoreboard/internal/model"
	"github.com/triviawire/scoreboard/internal/server"
	"github.com/triviawire/scoreboard/internal/services/account"
	"github.com/triviawire/scoreboard/internal/services/catalog"
	"github.com/triviawire/scoreboard/internal/storage"
	"github.com/triviawire/scoreboard/internal/storage/memory"
	redisstorage "github.com/triviawire/scoreboard/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.AccountStorage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Accounts *account.Service
	Catalog  *catalog.Catalog
	Server   *server.Server
}

// Config holds configuration for the application factory
type Config struct {
	// GamesPath is the path to the games content file (optional)
	// If empty, Definitions is used as-is
	GamesPath string
	// Definitions supplies game content directly (used when GamesPath is empty)
	Definitions []model.GameDefinition
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the account storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.AccountStorage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Load game content
	defs := cfg.Definitions
	if cfg.GamesPath != "" {
		loaded, err := catalog.LoadDefinitions(cfg.GamesPath)
		if err != nil {
			return nil, err
		}
		defs = loaded
	}

	return newWithDependencies(store, clock.New(), random.New(), defs, logger)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.AccountStorage, clk clock.Clock, rnd random.Random, defs []model.GameDefinition, logger *slog.Logger) (*App, error) {
	cat, err := catalog.New(defs)
	if err != nil {
		return nil, err
	}

	accounts := account.New(store, clk, rnd, logger)
	srv := server.New(accounts, cat, logger)

	return &App{
		Storage:  store,
		Clock:    clk,
		Random:   rnd,
		Accounts: accounts,
		Catalog:  cat,
		Server:   srv,
	}, nil
}
