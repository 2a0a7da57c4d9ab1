package redis

import (
	"fmt"

	"github.com/triviawire/scoreboard/internal/model"
)

// Key prefix for all scoreboard data
const keyPrefix = "scoreboard"

// accountKey returns the Redis key for an Account
func accountKey(nick model.Nickname) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, nick)
}
