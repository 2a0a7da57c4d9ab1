package main

import (
	"github.com/triviawire/scoreboard/internal/cli"
)

func main() {
	cli.Execute()
}
