package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/triviawire/scoreboard/internal/model"
	"github.com/triviawire/scoreboard/internal/server"
	"github.com/triviawire/scoreboard/internal/services/game"
	"github.com/triviawire/scoreboard/internal/transport"
)

// Config holds per-server session settings
type Config struct {
	// MOTD is sent to each connection before the command loop starts
	MOTD string
}

// DefaultConfig returns default session settings
func DefaultConfig() Config {
	return Config{
		MOTD: "Welcome",
	}
}

// Session is the server-side state and command loop bound to one client
// connection. It owns the line-based protocol state machine; every
// shared-state operation goes through the server facade.
//
// The nickname starts as the connection's remote address and is freely
// renamable until the session either registers/logs in (nickname becomes
// immutable) or joins a game.
type Session struct {
	id     uuid.UUID
	srv    *server.Server
	r      transport.LineReader
	w      transport.LineWriter
	motd   string
	logger *slog.Logger

	nick     model.Nickname
	loggedIn bool
	game     *game.Game
}

// New creates a Session for an accepted connection. remoteAddr seeds the
// initial nickname.
func New(srv *server.Server, r transport.LineReader, w transport.LineWriter, remoteAddr string, cfg Config, logger *slog.Logger) *Session {
	id := uuid.New()
	return &Session{
		id:     id,
		srv:    srv,
		r:      r,
		w:      w,
		motd:   cfg.MOTD,
		logger: logger.With(slog.String("session", id.String())),
		nick:   model.Nickname(remoteAddr),
	}
}

// Run registers the session, then reads and dispatches one command per line
// until QUIT or stream failure. The session is always deregistered on exit,
// whichever way the loop ends.
func (s *Session) Run(ctx context.Context) {
	s.srv.AddSession(s.id, s.nick)
	defer s.srv.RemoveSession(s.id)

	if s.motd != "" {
		if err := s.w.WriteLine(colorGreen + s.motd + colorReset); err != nil {
			return
		}
	}

	for {
		line, err := s.r.ReadLine()
		if err != nil {
			// End of stream or read failure; fatal to this session only
			return
		}

		quit, err := s.dispatch(ctx, line)
		if err != nil {
			s.logger.Warn("write failed", slog.String("error", err.Error()))
			return
		}
		if quit {
			return
		}
	}
}

// dispatch maps one input line to exactly one command effect. The keyword is
// matched case-insensitively, with or without one leading slash; unknown
// commands fall through without a reply.
func (s *Session) dispatch(ctx context.Context, line string) (quit bool, err error) {
	if line == "" {
		return false, nil
	}

	keyword, rest, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	switch strings.ToUpper(keyword) {
	case "QUIT":
		return true, nil
	case "NICK":
		return false, s.handleNick(ctx, rest)
	case "REGISTER":
		return false, s.handleRegister(ctx, rest)
	case "LOGIN":
		return false, s.handleLogin(ctx, rest)
	case "JOIN":
		return false, s.handleJoin(rest)
	case "LEAVE":
		return false, s.handleLeave()
	case "SHOW":
		return false, s.handleShow(rest)
	case "ANSWER":
		return false, s.handleAnswer(rest)
	default:
		return false, nil
	}
}

func (s *Session) handleNick(ctx context.Context, arg string) error {
	if s.loggedIn {
		return s.sendError("ERROR: Cannot change nick after registering.")
	}
	if s.game != nil {
		return s.sendError("ERROR: Cannot change nick while in a game [[/LEAVE]].")
	}
	if arg == "" {
		return s.sendError("/NICK new nickname")
	}
	nick := model.Nickname(arg)
	if err := nick.Validate(); errors.Is(err, model.ErrInvalidNick) {
		return s.sendError("ERROR: Invalid nick")
	}
	err := s.srv.ClaimNickname(ctx, s.id, nick)
	switch {
	case err == nil:
		s.nick = nick
		return s.sendOK("nick set to %s.", arg)
	case errors.Is(err, model.ErrNicknameTaken):
		return s.sendError("ERROR: nick %s is already taken.", arg)
	default:
		s.logger.Error("nick claim failed", slog.String("error", err.Error()))
		return s.sendError("ERROR: server error, try again.")
	}
}

func (s *Session) handleRegister(ctx context.Context, password string) error {
	if s.loggedIn {
		return s.sendError("ERROR: Already Logged In.")
	}
	if password == "" {
		return s.sendError("/REGISTER password")
	}

	err := s.srv.Register(ctx, s.id, s.nick, password)
	if err != nil {
		if !errors.Is(err, model.ErrAccountExists) {
			s.logger.Error("registration failed", slog.String("error", err.Error()))
		}
		return s.sendError("ERROR: Issue registering nick.")
	}

	s.loggedIn = true
	return s.sendOK("%s Registered.", s.nick)
}

func (s *Session) handleLogin(ctx context.Context, arg string) error {
	if s.loggedIn {
		return s.sendError("ERROR: Already Logged In.")
	}
	nick, password, ok := strings.Cut(arg, " ")
	if !ok || nick == "" || password == "" {
		return s.sendError("/LOGIN nick password")
	}

	err := s.srv.Login(ctx, s.id, model.Nickname(nick), password)
	switch {
	case err == nil:
		s.nick = model.Nickname(nick)
		s.loggedIn = true
		return s.sendOK("Success: Logged in as %s.", nick)
	case errors.Is(err, model.ErrNicknameInUse):
		return s.sendError("ERROR: %s is already connected.", nick)
	case errors.Is(err, model.ErrInvalidCredentials):
		return s.sendError("ERROR: Invalid Account Credentials.")
	default:
		s.logger.Error("login failed", slog.String("error", err.Error()))
		return s.sendError("ERROR: Invalid Account Credentials.")
	}
}

func (s *Session) handleJoin(arg string) error {
	if s.game != nil {
		return s.sendError("You must leave your current game before joining a new one. [[/LEAVE]]")
	}
	if arg == "" {
		return s.sendError("/JOIN gameID")
	}

	g, err := s.srv.JoinGame(model.GameID(arg), s.nick)
	if err != nil {
		return s.sendError("Invalid Game ID")
	}

	s.game = g
	return s.sendOK("Joined %s", arg)
}

func (s *Session) handleLeave() error {
	if s.game == nil {
		return s.sendError("You must join a game to leave a game. [[/JOIN]]")
	}

	// Leaving only clears the session's reference; the scoreboard entry
	// persists so rejoining resumes the same score.
	id := s.game.ID()
	s.game = nil
	return s.sendNotice("Left %s", id)
}

func (s *Session) handleShow(arg string) error {
	if arg == "" {
		return s.showUsage()
	}

	what, gameID, _ := strings.Cut(arg, " ")
	switch strings.ToUpper(what) {
	case "GAMES":
		return s.showGames()
	case "QUESTIONS":
		return s.showQuestions(gameID)
	case "SCOREBOARD":
		return s.showScoreboard(gameID)
	default:
		return s.showUsage()
	}
}

func (s *Session) showUsage() error {
	return s.sendError("/SHOW games, questions, scoreboard (gameID)")
}

func (s *Session) showGames() error {
	var lines []string
	for _, g := range s.srv.Games() {
		lines = append(lines, string(g.ID()))
	}
	return s.sendBlock("Games", lines)
}

func (s *Session) showQuestions(gameID string) error {
	g := s.game
	header := "Questions"
	if gameID != "" {
		var ok bool
		g, ok = s.srv.Game(model.GameID(gameID))
		if !ok {
			return s.sendError("Invalid Game ID")
		}
		header = fmt.Sprintf("Questions (GameID %s)", gameID)
	} else if g == nil {
		return s.sendError("Must be in a game to use /SHOW questions")
	}

	var lines []string
	for _, q := range g.Questions() {
		lines = append(lines, fmt.Sprintf("%s: %s (Points: %d)", q.ID, q.Text, q.Points))
	}
	return s.sendBlock(header, lines)
}

func (s *Session) showScoreboard(gameID string) error {
	g := s.game
	header := "SCOREBOARD"
	if gameID != "" {
		var ok bool
		g, ok = s.srv.Game(model.GameID(gameID))
		if !ok {
			return s.sendError("Invalid Game ID")
		}
		header = fmt.Sprintf("SCOREBOARD (GameID %s)", gameID)
	} else if g == nil {
		return s.sendError("Must be in a game to use /SHOW scoreboard")
	}

	var lines []string
	for _, row := range g.Scores() {
		lines = append(lines, fmt.Sprintf("%s: %d", row.Nickname, row.Score))
	}
	return s.sendBlock(header, lines)
}

func (s *Session) handleAnswer(arg string) error {
	if s.game == nil {
		return s.sendError("You must be in a game to answer questions [[/JOIN]]")
	}
	qidStr, answer, ok := strings.Cut(arg, " ")
	if arg == "" || !ok || answer == "" {
		return s.sendError("/ANSWER questionID answer")
	}

	points, err := s.game.Answer(s.nick, model.QuestionID(qidStr), answer)
	switch {
	case errors.Is(err, model.ErrQuestionNotFound):
		return s.sendError("ERROR: Invalid Question")
	case errors.Is(err, model.ErrAlreadyAnswered):
		return s.sendError("ERROR: Question already answered.")
	}
	if points == 0 {
		return s.sendError("Wrong answer")
	}
	return s.sendOK("Correct! %d points awarded.", points)
}
