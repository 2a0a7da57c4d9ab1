package factory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triviawire/scoreboard/internal/model"
)

func testDefs() []model.GameDefinition {
	return []model.GameDefinition{
		{
			ID: "G1",
			Questions: []model.Question{
				{ID: "Q1", Text: "Capital of France?", Points: 10, Answer: "Paris"},
			},
		},
	}
}

func TestMemoryAppEndToEnd(t *testing.T) {
	app, err := New(Config{Definitions: testDefs()})
	require.NoError(t, err)
	ctx := context.Background()

	// Register and log in through the wired services
	_, err = app.Accounts.Register(ctx, "alice", "hunter2")
	require.NoError(t, err)

	_, err = app.Accounts.Login(ctx, "alice", "hunter2")
	require.NoError(t, err)

	// Play through the wired server facade
	g, err := app.Server.JoinGame("G1", "alice")
	require.NoError(t, err)

	points, err := g.Answer("alice", "Q1", "Paris")
	require.NoError(t, err)
	assert.Equal(t, 10, points)

	_, err = g.Answer("alice", "Q1", "Paris")
	assert.ErrorIs(t, err, model.ErrAlreadyAnswered)
}

func TestGamesPathLoading(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.json")
	content := `[{"id": "G9", "questions": [{"id": "Q1", "text": "2+2?", "points": 5, "answer": "4"}]}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	app, err := New(Config{GamesPath: path})
	require.NoError(t, err)

	_, ok := app.Catalog.Game("G9")
	assert.True(t, ok)
}

func TestInvalidStorageType(t *testing.T) {
	_, err := New(Config{StorageType: "cloud", Definitions: testDefs()})
	assert.ErrorContains(t, err, "invalid StorageType")
}

func TestRedisRequiresConfig(t *testing.T) {
	_, err := New(Config{StorageType: StorageTypeRedis, Definitions: testDefs()})
	assert.ErrorContains(t, err, "RedisConfig required")
}

func TestInvalidContentRejected(t *testing.T) {
	_, err := NewForTesting([]model.GameDefinition{{ID: ""}})
	assert.Error(t, err)
}
