package catalog

import (
	"fmt"

	"github.com/triviawire/scoreboard/internal/model"
	"github.com/triviawire/scoreboard/internal/services/game"
)

// Catalog is the fixed set of games known to the server. It is built once
// at startup from the content provider's definitions and never changes, so
// lookups need no locking; the games themselves guard their own state.
type Catalog struct {
	byID  map[model.GameID]*game.Game
	order []*game.Game
}

// New builds a Catalog from game definitions
func New(defs []model.GameDefinition) (*Catalog, error) {
	c := &Catalog{
		byID: make(map[model.GameID]*game.Game, len(defs)),
	}
	for _, def := range defs {
		if err := validate(def); err != nil {
			return nil, err
		}
		if _, dup := c.byID[def.ID]; dup {
			return nil, fmt.Errorf("duplicate game id %q", def.ID)
		}
		g := game.New(def)
		c.byID[def.ID] = g
		c.order = append(c.order, g)
	}
	return c, nil
}

// Game looks a game up by id. Absence is not an error; callers decide how
// to react.
func (c *Catalog) Game(id model.GameID) (*game.Game, bool) {
	g, ok := c.byID[id]
	return g, ok
}

// Games returns all games in content order
func (c *Catalog) Games() []*game.Game {
	return append([]*game.Game(nil), c.order...)
}

func validate(def model.GameDefinition) error {
	if def.ID == "" {
		return fmt.Errorf("game with empty id")
	}
	seen := make(map[model.QuestionID]struct{}, len(def.Questions))
	for _, q := range def.Questions {
		if q.ID == "" {
			return fmt.Errorf("game %q: question with empty id", def.ID)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("game %q: duplicate question id %q", def.ID, q.ID)
		}
		seen[q.ID] = struct{}{}
		if q.Points <= 0 {
			return fmt.Errorf("game %q: question %q has non-positive points", def.ID, q.ID)
		}
	}
	return nil
}
