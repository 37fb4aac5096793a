package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/megagame/internal/games/breakout"
	"github.com/vovakirdan/megagame/internal/platform/tui"
	"github.com/vovakirdan/megagame/internal/platform/web"
	"github.com/vovakirdan/megagame/internal/storage"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
	flagSnapshotHz  int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve remote play over SSH and WebSocket",
	Long: `Start servers that let remote players connect.

SSH: every connection gets its own session with the game picker menu.
WebSocket: every connection to /ws plays its own breakout game; the client
sends JSON commands and receives msgpack world snapshots.

Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.megagame/host_key

Examples:
  megagame serve                           # SSH on :23234
  megagame serve --ssh :2222               # SSH on port 2222
  megagame serve --ssh "" --http :8080     # WebSocket only
  megagame serve --http :8080 --db ./scores.db

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (empty to disable)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "WebSocket server address (empty to disable)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagSnapshotHz, "snapshot-rate", 30, "WebSocket snapshots per second")
}

func runServe(_ *cobra.Command, _ []string) {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		fmt.Fprintln(os.Stderr, "Error: nothing to serve, set --ssh or --http")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	configureGames(logger, store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var servers []func(context.Context) error

	if flagSSHAddr != "" {
		sshServer, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:     flagSSHAddr,
			HostKeyPath: flagHostKey,
			IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
			TickRate:    flagFPS,
		}, store, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("SSH: connect with ssh localhost -p %s\n", portOf(flagSSHAddr))
		servers = append(servers, sshServer.ListenAndServe)
	}

	if flagHTTPAddr != "" {
		webServer := newWebServer(store, logger)
		fmt.Printf("WebSocket: ws://localhost:%s/ws\n", portOf(flagHTTPAddr))
		servers = append(servers, func(ctx context.Context) error {
			return webServer.ListenAndServe(ctx, flagHTTPAddr)
		})
	}
	fmt.Println("Press Ctrl+C to stop")

	if err := serveAll(ctx, servers); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func newWebServer(store *storage.Store, logger *log.Logger) *web.Server {
	opts := []web.Option{
		web.WithLogger(logger.WithPrefix("web")),
		web.WithRates(flagFPS, flagSnapshotHz),
	}
	if store != nil {
		opts = append(opts, web.WithHighScoreStore(store), web.WithScoreRecorder(store))
	}
	return web.NewServer(breakout.LoadConfig(), opts...)
}

// serveAll runs every server until ctx is done. The first failure cancels
// the shared context and stops the rest.
func serveAll(ctx context.Context, servers []func(context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, serve := range servers {
		g.Go(func() error { return serve(ctx) })
	}
	return g.Wait()
}

// portOf returns the port part of a listen address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
