package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scoreboardd",
		Short: "Multi-user trivia scoreboard server",
		Long: `scoreboardd runs a multi-user trivia/quiz service over TLS.

Clients connect with a line-based text protocol, optionally register a
persistent nickname, join a game and answer questions for points. Every
flag can also be set through a SCOREBOARD_* environment variable.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConnectCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newViper returns a Viper instance bound to SCOREBOARD_* environment
// variables, so SCOREBOARD_TLS_CERT backs --tls-cert and so on.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("SCOREBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}
