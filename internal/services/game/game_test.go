package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/triviawire/scoreboard/internal/model"
)

type GameSuite struct {
	suite.Suite
	game *Game
}

func TestGameSuite(t *testing.T) {
	suite.Run(t, new(GameSuite))
}

func (s *GameSuite) SetupTest() {
	s.game = New(model.GameDefinition{
		ID: "G1",
		Questions: []model.Question{
			{ID: "Q1", Text: "Capital of France?", Points: 10, Answer: "Paris"},
			{ID: "Q2", Text: "2+2?", Points: 5, Answer: "4"},
			{ID: "Q3", Text: "Name the ship", Points: 20, Answer: "Erebus", CaseSensitive: true},
		},
	})
}

// answer submits an attempt that must at least be accepted for grading
func (s *GameSuite) answer(nick model.Nickname, qid model.QuestionID, submitted string) int {
	points, err := s.game.Answer(nick, qid, submitted)
	s.Require().NoError(err)
	return points
}

func (s *GameSuite) TestQuestionsInAuthoredOrder() {
	questions := s.game.Questions()
	s.Require().Len(questions, 3)
	s.Equal(model.QuestionID("Q1"), questions[0].ID)
	s.Equal(model.QuestionID("Q3"), questions[2].ID)
}

func (s *GameSuite) TestQuestionLookup() {
	q, ok := s.game.Question("Q2")
	s.True(ok)
	s.Equal(5, q.Points)

	_, ok = s.game.Question("nope")
	s.False(ok)
}

func (s *GameSuite) TestAddPlayerIsIdempotent() {
	s.game.AddPlayer("alice")
	s.Equal(10, s.answer("alice", "Q1", "Paris"))

	// Rejoin must not reset the score or duplicate the row
	s.game.AddPlayer("alice")

	scores := s.game.Scores()
	s.Require().Len(scores, 1)
	s.Equal(model.Nickname("alice"), scores[0].Nickname)
	s.Equal(10, scores[0].Score)
}

func (s *GameSuite) TestScoresInJoinOrder() {
	s.game.AddPlayer("carol")
	s.game.AddPlayer("alice")
	s.game.AddPlayer("bob")

	scores := s.game.Scores()
	s.Require().Len(scores, 3)
	s.Equal(model.Nickname("carol"), scores[0].Nickname)
	s.Equal(model.Nickname("alice"), scores[1].Nickname)
	s.Equal(model.Nickname("bob"), scores[2].Nickname)
}

func (s *GameSuite) TestCorrectAnswerAwardsPoints() {
	s.game.AddPlayer("alice")
	s.Equal(10, s.answer("alice", "Q1", "Paris"))

	scores := s.game.Scores()
	s.Equal(10, scores[0].Score)
	s.True(s.game.HasAnswered("alice", "Q1"))
}

func (s *GameSuite) TestCaseInsensitiveAnswerMatches() {
	s.game.AddPlayer("bob")
	s.Equal(10, s.answer("bob", "Q1", "paris"))
}

func (s *GameSuite) TestCaseSensitiveAnswerMismatchForfeits() {
	s.game.AddPlayer("bob")
	s.Equal(0, s.answer("bob", "Q3", "erebus"))

	// The wrong-case attempt consumed the question; the right answer is
	// no longer gradable
	_, err := s.game.Answer("bob", "Q3", "Erebus")
	s.ErrorIs(err, model.ErrAlreadyAnswered)
	s.Equal(0, s.game.Scores()[0].Score)
}

func (s *GameSuite) TestWrongAnswerConsumesAttempt() {
	s.game.AddPlayer("alice")
	s.Equal(0, s.answer("alice", "Q2", "5"))
	s.True(s.game.HasAnswered("alice", "Q2"))

	_, err := s.game.Answer("alice", "Q2", "4")
	s.ErrorIs(err, model.ErrAlreadyAnswered)
	s.Equal(0, s.game.Scores()[0].Score)
}

func (s *GameSuite) TestRepeatedCorrectAnswerScoresOnce() {
	s.game.AddPlayer("alice")
	s.Equal(10, s.answer("alice", "Q1", "Paris"))

	points, err := s.game.Answer("alice", "Q1", "Paris")
	s.ErrorIs(err, model.ErrAlreadyAnswered)
	s.Equal(0, points)
	s.Equal(10, s.game.Scores()[0].Score)
}

func (s *GameSuite) TestUnknownQuestionFailsWithoutMarking() {
	s.game.AddPlayer("alice")

	_, err := s.game.Answer("alice", "QX", "anything")
	s.ErrorIs(err, model.ErrQuestionNotFound)
	s.False(s.game.HasAnswered("alice", "QX"))
}

func (s *GameSuite) TestAnswersAreIndependentPerPlayer() {
	s.game.AddPlayer("alice")
	s.game.AddPlayer("bob")

	s.Equal(10, s.answer("alice", "Q1", "Paris"))
	s.Equal(10, s.answer("bob", "Q1", "Paris"))

	scores := s.game.Scores()
	s.Equal(10, scores[0].Score)
	s.Equal(10, scores[1].Score)
}

func (s *GameSuite) TestConcurrentAnswersScoreAtMostOnce() {
	s.game.AddPlayer("alice")

	const attempts = 32
	points := make([]int, attempts)
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			points[i], errs[i] = s.game.Answer("alice", "Q1", "Paris")
		}(i)
	}
	wg.Wait()

	// Exactly one attempt is graded; every other one observes the used-up
	// attempt
	awarded := 0
	for i := range points {
		if errs[i] == nil {
			awarded++
			s.Equal(10, points[i])
		} else {
			s.ErrorIs(errs[i], model.ErrAlreadyAnswered)
		}
	}
	s.Equal(1, awarded)
	s.Equal(10, s.game.Scores()[0].Score)
}
