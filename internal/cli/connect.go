package cli

import (
	"bufio"
	"crypto/tls"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newConnectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect to a scoreboard server as an interactive client",
		RunE:  runConnect,
	}

	fs := cmd.Flags()
	fs.String("addr", "localhost:9090", "server address (env: SCOREBOARD_ADDR)")
	fs.Bool("insecure", false, "skip TLS certificate verification (env: SCOREBOARD_INSECURE)")

	return cmd
}

func runConnect(cmd *cobra.Command, args []string) error {
	v := newViper()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	conn, err := tls.Dial("tcp", v.GetString("addr"), &tls.Config{
		InsecureSkipVerify: v.GetBool("insecure"),
		MinVersion:         tls.VersionTLS12,
	})
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	// Print server lines until the server closes the stream
	done := make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			fmt.Println(scanner.Text())
		}
	}()

	// Forward stdin lines to the server
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if _, err := fmt.Fprintf(conn, "%s\r\n", scanner.Text()); err != nil {
			break
		}
	}

	_ = conn.CloseWrite()
	<-done
	return scanner.Err()
}
