package model

import "strings"

// GameID uniquely identifies a game in the catalog
type GameID string

// QuestionID identifies a question within a game
type QuestionID string

// Question is a single challenge in a game. Read-only once loaded by the
// content provider.
type Question struct {
	ID     QuestionID `json:"id"`
	Text   string     `json:"text"`
	Points int        `json:"points"`
	Answer string     `json:"answer"`

	// CaseSensitive selects the comparison policy for submitted answers.
	CaseSensitive bool `json:"case_sensitive"`
}

// Grade reports whether a submitted answer matches under the question's
// comparison policy.
func (q Question) Grade(submitted string) bool {
	if q.CaseSensitive {
		return submitted == q.Answer
	}
	return strings.EqualFold(submitted, q.Answer)
}

// GameDefinition is the authored content for one game, as supplied by the
// content provider before the server accepts connections.
type GameDefinition struct {
	ID        GameID     `json:"id"`
	Questions []Question `json:"questions"`
}

// PlayerScore is one scoreboard row. Rows are ordered by join order.
type PlayerScore struct {
	Nickname Nickname
	Score    int
}
