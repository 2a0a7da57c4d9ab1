package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/triviawire/scoreboard/internal/model"
	"github.com/triviawire/scoreboard/internal/services/account"
	"github.com/triviawire/scoreboard/internal/services/catalog"
	"github.com/triviawire/scoreboard/internal/services/game"
)

// Server composes the account store, the game catalog and the connection
// registry. It is the single coordination point for cross-session state:
// sessions never touch shared collections except through its methods.
type Server struct {
	accounts *account.Service
	catalog  *catalog.Catalog
	logger   *slog.Logger

	// nickMu spans every check-then-claim on the nickname namespace (the
	// union of connected sessions and registered accounts), so two sessions
	// cannot both pass the "is it taken" check for the same name.
	nickMu   sync.Mutex
	sessions map[uuid.UUID]model.Nickname
}

// New creates a new Server
func New(accounts *account.Service, cat *catalog.Catalog, logger *slog.Logger) *Server {
	return &Server{
		accounts: accounts,
		catalog:  cat,
		logger:   logger,
		sessions: make(map[uuid.UUID]model.Nickname),
	}
}

// AddSession registers a newly connected session under its initial nickname
func (s *Server) AddSession(id uuid.UUID, nick model.Nickname) {
	s.nickMu.Lock()
	s.sessions[id] = nick
	s.nickMu.Unlock()

	s.logger.Info("client connected",
		slog.String("session", id.String()),
		slog.String("nick", string(nick)),
	)
}

// RemoveSession deregisters a session. Safe to call for an id that was
// already removed.
func (s *Server) RemoveSession(id uuid.UUID) {
	s.nickMu.Lock()
	_, present := s.sessions[id]
	delete(s.sessions, id)
	remaining := len(s.sessions)
	s.nickMu.Unlock()

	if present {
		s.logger.Info("client disconnected",
			slog.String("session", id.String()),
			slog.Int("clients_remaining", remaining),
		)
	}
}

// SessionCount returns the number of connected sessions
func (s *Server) SessionCount() int {
	s.nickMu.Lock()
	defer s.nickMu.Unlock()
	return len(s.sessions)
}

// IsNicknameTaken reports whether nick is used by any connected session or
// registered account. Callers that intend to claim the name must use
// ClaimNickname instead; this is a point-in-time observation only.
func (s *Server) IsNicknameTaken(ctx context.Context, nick model.Nickname) (bool, error) {
	s.nickMu.Lock()
	defer s.nickMu.Unlock()
	return s.isTakenLocked(ctx, nick, uuid.Nil)
}

// isTakenLocked checks the live-session and registered-account sets as one
// union. exclude skips that session's own entry (a session renaming itself
// must not collide with itself). Callers hold nickMu.
func (s *Server) isTakenLocked(ctx context.Context, nick model.Nickname, exclude uuid.UUID) (bool, error) {
	for id, current := range s.sessions {
		if id != exclude && current == nick {
			return true, nil
		}
	}
	return s.accounts.Exists(ctx, nick)
}

// ClaimNickname atomically checks that nick is unused (live or registered)
// and renames session id to it. Fails with model.ErrNicknameTaken.
func (s *Server) ClaimNickname(ctx context.Context, id uuid.UUID, nick model.Nickname) error {
	s.nickMu.Lock()
	defer s.nickMu.Unlock()

	taken, err := s.isTakenLocked(ctx, nick, id)
	if err != nil {
		return err
	}
	if taken {
		return model.ErrNicknameTaken
	}

	s.sessions[id] = nick
	return nil
}

// Register creates an account for session id under its current nickname.
// The session already holds the nick live, which keeps ClaimNickname away
// from it, and the account service makes the exists-then-save atomic, so
// nickMu is not taken here. Password hashing is slow and must never run
// under the registry lock.
func (s *Server) Register(ctx context.Context, id uuid.UUID, nick model.Nickname, password string) error {
	_, err := s.accounts.Register(ctx, nick, password)
	return err
}

// Login verifies credentials and, on success, atomically moves session id
// onto the account's nickname. It fails with model.ErrNicknameInUse when
// another connected session currently holds the nick, since two live
// sessions must never share a name.
//
// Credential verification is slow (PBKDF2), so it runs outside nickMu; the
// live-session check is done before verifying, to answer the common case
// cheaply, and again while claiming, to close the race with a concurrent
// login to the same account.
func (s *Server) Login(ctx context.Context, id uuid.UUID, nick model.Nickname, password string) error {
	s.nickMu.Lock()
	held := s.heldByOtherLocked(id, nick)
	s.nickMu.Unlock()
	if held {
		return model.ErrNicknameInUse
	}

	if _, err := s.accounts.Login(ctx, nick, password); err != nil {
		return err
	}

	s.nickMu.Lock()
	defer s.nickMu.Unlock()
	if s.heldByOtherLocked(id, nick) {
		return model.ErrNicknameInUse
	}
	s.sessions[id] = nick
	return nil
}

// heldByOtherLocked reports whether a session other than id currently uses
// nick. Callers hold nickMu.
func (s *Server) heldByOtherLocked(id uuid.UUID, nick model.Nickname) bool {
	for other, current := range s.sessions {
		if other != id && current == nick {
			return true
		}
	}
	return false
}

// JoinGame resolves a game by id and ensures nick has a scoreboard entry in
// it. Joining a game the player previously left resumes the old score.
func (s *Server) JoinGame(gameID model.GameID, nick model.Nickname) (*game.Game, error) {
	g, ok := s.catalog.Game(gameID)
	if !ok {
		return nil, model.ErrGameNotFound
	}
	g.AddPlayer(nick)

	s.logger.Info("player joined game",
		slog.String("game", string(gameID)),
		slog.String("nick", string(nick)),
	)
	return g, nil
}

// Game looks up a game in the catalog
func (s *Server) Game(id model.GameID) (*game.Game, bool) {
	return s.catalog.Game(id)
}

// Games returns all games in the catalog
func (s *Server) Games() []*game.Game {
	return s.catalog.Games()
}
