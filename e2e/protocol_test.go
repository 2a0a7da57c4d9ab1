package e2e_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triviawire/scoreboard/internal/factory"
	"github.com/triviawire/scoreboard/internal/model"
	"github.com/triviawire/scoreboard/internal/session"
	"github.com/triviawire/scoreboard/internal/testutil"
)

// client drives one live session over in-memory line pipes, standing in for
// a connected TLS peer.
type client struct {
	t    *testing.T
	in   chan string
	out  chan string
	done chan struct{}
}

func (c *client) ReadLine() (string, error) {
	line, ok := <-c.in
	if !ok {
		return "", io.EOF
	}
	return line, nil
}

func (c *client) WriteLine(line string) error {
	c.out <- line
	return nil
}

// send delivers one command line to the session
func (c *client) send(line string) {
	c.t.Helper()
	select {
	case c.in <- line:
	case <-time.After(time.Second):
		c.t.Fatalf("session did not consume input %q", line)
	}
}

// recv returns the session's next reply, stripped of ANSI color codes
func (c *client) recv() string {
	c.t.Helper()
	select {
	case line := <-c.out:
		return decolor(line)
	case <-time.After(time.Second):
		c.t.Fatal("timed out waiting for a reply")
		return ""
	}
}

// recvBlock reads a framed listing and returns its body lines (header
// included, rules dropped)
func (c *client) recvBlock() []string {
	c.t.Helper()
	rule := c.recv()
	require.Equal(c.t, "-----------------", rule)

	var lines []string
	for {
		line := c.recv()
		if line == "-----------------" {
			return lines
		}
		lines = append(lines, line)
	}
}

// disconnect closes the client's input stream, as a dropped connection would
func (c *client) disconnect() {
	c.t.Helper()
	close(c.in)
	select {
	case <-c.done:
	case <-time.After(time.Second):
		c.t.Fatal("session did not exit after stream end")
	}
}

func decolor(line string) string {
	for _, code := range []string{"\x1b[0m", "\x1b[31m", "\x1b[32m", "\x1b[33m", "\x1b[35m"} {
		line = strings.ReplaceAll(line, code, "")
	}
	return line
}

// connect starts a session against the app and consumes the MOTD
func connect(t *testing.T, app *factory.App, addr string) *client {
	t.Helper()
	c := &client{
		t:    t,
		in:   make(chan string),
		out:  make(chan string, 64),
		done: make(chan struct{}),
	}

	sess := session.New(app.Server, c, c, addr, session.Config{MOTD: "Welcome"}, testutil.NopLogger())
	go func() {
		defer close(c.done)
		sess.Run(context.Background())
	}()

	require.Equal(t, "Welcome", c.recv())
	return c
}

func newApp(t *testing.T) *factory.App {
	t.Helper()
	app, err := factory.NewForTesting([]model.GameDefinition{
		{
			ID: "G1",
			Questions: []model.Question{
				{ID: "Q1", Text: "Capital of France?", Points: 10, Answer: "Paris"},
			},
		},
	})
	require.NoError(t, err)
	return app
}

func TestScoringScenario(t *testing.T) {
	app := newApp(t)

	alice := connect(t, app, "10.0.0.1:50001")
	alice.send("NICK alice")
	require.Equal(t, "*** nick set to alice.", alice.recv())
	alice.send("JOIN G1")
	require.Equal(t, "*** Joined G1", alice.recv())
	alice.send("ANSWER Q1 Paris")
	require.Equal(t, "*** Correct! 10 points awarded.", alice.recv())

	// bob's answer is graded under the question's case-insensitive policy
	bob := connect(t, app, "10.0.0.2:50002")
	bob.send("NICK bob")
	require.Equal(t, "*** nick set to bob.", bob.recv())
	bob.send("JOIN G1")
	require.Equal(t, "*** Joined G1", bob.recv())
	bob.send("ANSWER Q1 paris")
	require.Equal(t, "*** Correct! 10 points awarded.", bob.recv())

	// A resubmission never regrades
	bob.send("ANSWER Q1 Paris")
	require.Equal(t, "*** ERROR: Question already answered.", bob.recv())

	// Both sessions observe the same scoreboard, in join order
	bob.send("SHOW SCOREBOARD")
	assert.Equal(t, []string{"**SCOREBOARD**", "alice: 10", "bob: 10"}, bob.recvBlock())
	alice.send("SHOW SCOREBOARD")
	assert.Equal(t, []string{"**SCOREBOARD**", "alice: 10", "bob: 10"}, alice.recvBlock())

	alice.send("QUIT")
	bob.disconnect()
	assert.Eventually(t, func() bool {
		return app.Server.SessionCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestNicknameUniqueAcrossSessionsAndAccounts(t *testing.T) {
	app := newApp(t)

	alice := connect(t, app, "10.0.0.1:50001")
	alice.send("NICK alice")
	require.Equal(t, "*** nick set to alice.", alice.recv())
	alice.send("REGISTER hunter2")
	require.Equal(t, "*** alice Registered.", alice.recv())

	// Taken by a live session and a registered account at once
	other := connect(t, app, "10.0.0.2:50002")
	other.send("NICK alice")
	require.Equal(t, "*** ERROR: nick alice is already taken.", other.recv())

	// Still taken by the account after alice disconnects
	alice.send("QUIT")
	assert.Eventually(t, func() bool {
		return app.Server.SessionCount() == 1
	}, time.Second, 10*time.Millisecond)

	other.send("NICK alice")
	require.Equal(t, "*** ERROR: nick alice is already taken.", other.recv())

	// But logging in with the account's credentials claims it
	other.send("LOGIN alice hunter2")
	require.Equal(t, "*** Success: Logged in as alice.", other.recv())

	other.disconnect()
}

func TestDisconnectDoesNotAffectOtherSessions(t *testing.T) {
	app := newApp(t)

	alice := connect(t, app, "10.0.0.1:50001")
	bob := connect(t, app, "10.0.0.2:50002")

	alice.send("JOIN G1")
	require.Equal(t, "*** Joined G1", alice.recv())

	// alice's stream drops mid-game; bob plays on unaffected
	alice.disconnect()

	bob.send("JOIN G1")
	require.Equal(t, "*** Joined G1", bob.recv())
	bob.send("ANSWER Q1 Paris")
	require.Equal(t, "*** Correct! 10 points awarded.", bob.recv())

	bob.disconnect()
}
