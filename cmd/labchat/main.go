// Command labchat is a terminal chat client for the 3D Lab backend.
//
// Usage:
//
//	LAB_TOKEN=... labchat [flags]
//
// Flags:
//
//	-base-url string   Backend API base URL (default http://localhost:8080/api)
//	-token string      Bearer token (overrides LAB_TOKEN)
//	-account string    Account to log in as (prompts for LAB_PASSWORD env var)
//	-timeout duration  Request timeout for non-streaming calls (default 30s)
//	-v                 Verbose logging to stderr
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
	"github.com/Rvioleck/3D-Lab-Data-Factory/api"
	"github.com/Rvioleck/3D-Lab-Data-Factory/auth"
	"github.com/Rvioleck/3D-Lab-Data-Factory/chat"
	"github.com/Rvioleck/3D-Lab-Data-Factory/tui"
	"github.com/rs/zerolog"
)

const defaultBaseURL = "http://localhost:8080/api"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "labchat: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		baseURL = flag.String("base-url", defaultBaseURL, "Backend API base URL")
		token   = flag.String("token", "", "Bearer token (overrides LAB_TOKEN)")
		account = flag.String("account", "", "Account to log in as (reads LAB_PASSWORD)")
		timeout = flag.Duration("timeout", 30*time.Second, "Request timeout for non-streaming calls")
		verbose = flag.Bool("v", false, "Verbose logging to stderr")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := zerolog.Nop()
	if *verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
	}

	bearer := *token
	if bearer == "" {
		bearer = os.Getenv("LAB_TOKEN")
	}

	client := api.New(*baseURL,
		api.WithToken(bearer),
		api.WithTimeout(*timeout),
		api.WithLogger(logger),
	)

	// Log in explicitly when an account is given; otherwise the token (or
	// the backend's cookie-less anonymous mode) carries the identity.
	if *account != "" {
		authStore := auth.New(client, auth.WithLogger(logger))
		creds := lab.Credentials{Account: *account, Password: os.Getenv("LAB_PASSWORD")}
		if _, err := authStore.Login(ctx, creds); err != nil {
			return fmt.Errorf("login: %w", err)
		}
	}

	store := chat.New(client, chat.WithLogger(logger))
	if err := store.RefreshSessions(ctx); err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}

	model := tui.New(store, lab.DefaultTheme())
	if err := tui.Run(ctx, model); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}
