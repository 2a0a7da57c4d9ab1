package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"golang.org/x/sync/errgroup"
)

// Config holds TLS listener settings. Missing or unloadable key material is
// a fatal startup error, not a runtime one.
type Config struct {
	Addr     string
	CertFile string
	KeyFile  string
}

// DefaultConfig returns default listener settings
func DefaultConfig() Config {
	return Config{
		Addr: ":9090",
	}
}

// Handler runs one accepted connection. The connection is closed by the
// listener when the handler returns.
type Handler func(ctx context.Context, conn net.Conn)

// Listener accepts TLS connections and runs a handler per connection
type Listener struct {
	ln     net.Listener
	logger *slog.Logger
}

// Listen loads the certificate/key pair and starts listening
func Listen(cfg Config, logger *slog.Logger) (*Listener, error) {
	cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("load TLS key pair: %w", err)
	}

	tlsCfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}

	ln, err := tls.Listen("tcp", cfg.Addr, tlsCfg)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	return &Listener{ln: ln, logger: logger}, nil
}

// Addr returns the listener's bound address
func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}

// Serve accepts connections until ctx is cancelled, running handler in its
// own goroutine per connection. It returns once the accept loop has stopped
// and every handler has finished.
func (l *Listener) Serve(ctx context.Context, handler Handler) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		return l.ln.Close()
	})

	g.Go(func() error {
		for {
			conn, err := l.ln.Accept()
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
					return nil
				}
				return err
			}

			g.Go(func() error {
				defer func() { _ = conn.Close() }()

				// Handlers block in conn reads; closing the conn on
				// cancellation is what unblocks them so Wait can return.
				handlerDone := make(chan struct{})
				defer close(handlerDone)
				go func() {
					select {
					case <-ctx.Done():
						_ = conn.Close()
					case <-handlerDone:
					}
				}()

				handler(ctx, conn)
				return nil
			})
		}
	})

	err := g.Wait()
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}
