package factory

import (
	"github.com/triviawire/scoreboard/internal/dependencies/clock"
	"github.com/triviawire/scoreboard/internal/dependencies/random"
	"github.com/triviawire/scoreboard/internal/model"
	"github.com/triviawire/scoreboard/internal/storage/memory"
	"github.com/triviawire/scoreboard/internal/testutil"
)

// NewForTesting creates an App with in-memory storage, real dependencies and
// a discard logger. Content validation errors fail construction the same
// way they do in New.
func NewForTesting(defs []model.GameDefinition) (*App, error) {
	return newWithDependencies(memory.New(), clock.New(), random.New(), defs, testutil.NopLogger())
}
