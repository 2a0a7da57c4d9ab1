package cli

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/triviawire/scoreboard/internal/factory"
	"github.com/triviawire/scoreboard/internal/session"
	redisstorage "github.com/triviawire/scoreboard/internal/storage/redis"
	"github.com/triviawire/scoreboard/internal/transport"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the TLS scoreboard server",
		RunE:  runServe,
	}

	fs := cmd.Flags()
	fs.String("addr", ":9090", "address to listen on (env: SCOREBOARD_ADDR)")
	fs.String("tls-cert", "", "path to TLS certificate (env: SCOREBOARD_TLS_CERT)")
	fs.String("tls-key", "", "path to TLS key (env: SCOREBOARD_TLS_KEY)")
	fs.String("games", "data/games.json", "path to games content file (env: SCOREBOARD_GAMES)")
	fs.String("motd", "Welcome", "message sent to each new connection (env: SCOREBOARD_MOTD)")
	fs.String("storage", factory.StorageTypeMemory, "account storage backend: memory, redis (env: SCOREBOARD_STORAGE)")
	fs.String("redis-url", "redis://localhost:6379", "Redis URL when --storage=redis (env: SCOREBOARD_REDIS_URL)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	v := newViper()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	certFile := v.GetString("tls-cert")
	keyFile := v.GetString("tls-key")
	if certFile == "" || keyFile == "" {
		return errors.New("both --tls-cert and --tls-key must be provided")
	}

	fcfg := factory.Config{
		GamesPath:   v.GetString("games"),
		Logger:      logger,
		StorageType: v.GetString("storage"),
	}
	if fcfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = v.GetString("redis-url")
		fcfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(fcfg)
	if err != nil {
		return err
	}

	ln, err := transport.Listen(transport.Config{
		Addr:     v.GetString("addr"),
		CertFile: certFile,
		KeyFile:  keyFile,
	}, logger)
	if err != nil {
		return err
	}

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessCfg := session.Config{MOTD: v.GetString("motd")}

	logger.Info("server started",
		slog.String("addr", ln.Addr().String()),
		slog.Int("games", len(app.Catalog.Games())),
		slog.String("storage", fcfg.StorageType),
	)

	err = ln.Serve(ctx, func(ctx context.Context, conn net.Conn) {
		sess := session.New(
			app.Server,
			transport.NewLineReader(conn),
			transport.NewLineWriter(conn),
			conn.RemoteAddr().String(),
			sessCfg,
			logger,
		)
		sess.Run(ctx)
	})
	if err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
