package game

import (
	"sync"

	"github.com/triviawire/scoreboard/internal/model"
)

// Game is one live quiz instance: a fixed question set plus the mutable
// roster, scoreboard and answered set shared by every session that joined.
// All mutating methods are safe for concurrent use.
type Game struct {
	id        model.GameID
	questions []model.Question
	byID      map[model.QuestionID]model.Question

	mu       sync.Mutex
	scores   map[model.Nickname]int
	order    []model.Nickname
	answered map[answerKey]struct{}
}

// answerKey records that a player has used their one attempt at a question
type answerKey struct {
	nick model.Nickname
	qid  model.QuestionID
}

// New creates a Game from its authored definition
func New(def model.GameDefinition) *Game {
	byID := make(map[model.QuestionID]model.Question, len(def.Questions))
	for _, q := range def.Questions {
		byID[q.ID] = q
	}
	return &Game{
		id:        def.ID,
		questions: append([]model.Question(nil), def.Questions...),
		byID:      byID,
		scores:    make(map[model.Nickname]int),
		answered:  make(map[answerKey]struct{}),
	}
}

// ID returns the game's stable identifier
func (g *Game) ID() model.GameID {
	return g.id
}

// Questions returns the game's questions in authored order
func (g *Game) Questions() []model.Question {
	return append([]model.Question(nil), g.questions...)
}

// Question looks up a question by id
func (g *Game) Question(id model.QuestionID) (model.Question, bool) {
	q, ok := g.byID[id]
	return q, ok
}

// AddPlayer ensures nick has a scoreboard entry. Idempotent: a player who
// already has an entry keeps their score and join position, so leaving and
// rejoining resumes the same score.
func (g *Game) AddPlayer(nick model.Nickname) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addPlayerLocked(nick)
}

func (g *Game) addPlayerLocked(nick model.Nickname) {
	if _, ok := g.scores[nick]; ok {
		return
	}
	g.scores[nick] = 0
	g.order = append(g.order, nick)
}

// HasAnswered reports whether nick has already used their attempt at the
// question.
func (g *Game) HasAnswered(nick model.Nickname, qid model.QuestionID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.answered[answerKey{nick: nick, qid: qid}]
	return ok
}

// Answer grades nick's submission for a question and returns the points
// awarded (0 for a wrong answer). Unknown questions fail with
// model.ErrQuestionNotFound without consuming anything; a repeated attempt
// fails with model.ErrAlreadyAnswered. The whole exists / not-yet-answered /
// grade / record / score sequence is one critical section, so a (player,
// question) pair is scored at most once no matter how submissions interleave.
//
// A wrong answer still consumes the player's single attempt.
func (g *Game) Answer(nick model.Nickname, qid model.QuestionID, submitted string) (int, error) {
	q, ok := g.byID[qid]
	if !ok {
		return 0, model.ErrQuestionNotFound
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	key := answerKey{nick: nick, qid: qid}
	if _, done := g.answered[key]; done {
		return 0, model.ErrAlreadyAnswered
	}

	g.addPlayerLocked(nick)
	g.answered[key] = struct{}{}

	if !q.Grade(submitted) {
		return 0, nil
	}
	g.scores[nick] += q.Points
	return q.Points, nil
}

// Scores returns the scoreboard in join order (first joined, first listed)
func (g *Game) Scores() []model.PlayerScore {
	g.mu.Lock()
	defer g.mu.Unlock()

	scores := make([]model.PlayerScore, 0, len(g.order))
	for _, nick := range g.order {
		scores = append(scores, model.PlayerScore{Nickname: nick, Score: g.scores[nick]})
	}
	return scores
}
