/*
Package main is the entry point for the YewChat client.

It is responsible for loading configuration, initializing the global logging system,
connecting to the chat server and registering the configured username, serving the
local browser surface, reading messages to send from standard input, and gracefully
handling operating system interrupt signals (SIGINT, SIGTERM).
*/
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"yewchat/internal/app/chat"
	"yewchat/internal/app/view"
	"yewchat/internal/configs"
	"yewchat/internal/handler"
	"yewchat/internal/pkg/errs"
	"yewchat/internal/pkg/logx"
	"yewchat/internal/transport/ws"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Str("server_url", cfg.ServerURL).
		Str("username", cfg.Username).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Refuse to connect without a username to register.
	if err := checkUsername(cfg); err != nil {
		logx.Fatal(err, "Set CHAT_USERNAME to start chatting")
	}

	// Connect to the chat server
	dialCtx, cancelDial := context.WithTimeout(ctx, 10*time.Second)
	channel, err := ws.Dial(dialCtx, cfg.ServerURL, ws.Options{SendQueueSize: cfg.SendQueueSize})
	cancelDial()
	if err != nil {
		logx.Fatal(err, "Could not connect to chat server", "server_url", cfg.ServerURL)
	}

	session, err := chat.NewSession(cfg.Username, channel)
	if err != nil {
		channel.Close()
		logx.Fatal(err, "Failed to create chat session")
	}

	session.OnDirty(feedPrinter(os.Stdout))

	// A failed register only leaves the roster empty.
	_ = session.Start()

	runErr := make(chan error, 1)
	go func() {
		runErr <- session.Run(ctx)
	}()

	// Setup HTTP server and routes
	router, stopRouter := handler.Router(&handler.AppDeps{Session: session, Config: cfg})
	defer stopRouter()

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info("YewChat browser surface starting", "addr", fmt.Sprintf("http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	go readCompose(ctx, os.Stdin, session)

	// Wait for an interrupt signal or for the chat server to hang up.
	select {
	case <-ctx.Done():
		logx.Info("Received shutdown signal. Starting graceful shutdown...")
	case <-session.Done():
		logx.Info("Chat server closed the connection. Shutting down...")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	if err := channel.Close(); err != nil {
		logx.Error(err, "Failed to close chat connection")
	}

	stop()
	if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
		logx.Error(err, "Session loop ended with an error")
	}

	logx.Info("YewChat stopped.")
}

// checkUsername fails with errs.ErrMissingContext when no username is configured.
func checkUsername(cfg *configs.AppConfig) error {
	if cfg.Username == "" {
		return errs.NewError(errs.ErrMissingContext)
	}
	return nil
}

// readCompose submits every line read from r until r is exhausted or ctx is done.
func readCompose(ctx context.Context, r io.Reader, session *chat.Session) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := session.SubmitText(ctx, scanner.Text()); err != nil {
			if errs.HasCode(err, errs.ErrSessionClosed) || ctx.Err() != nil {
				return
			}
			// Already logged by the session; the line is dropped.
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		logx.Error(err, "Failed to read from standard input")
	}
}

// feedPrinter returns an OnDirty subscriber that writes roster changes and new
// messages to w. It runs on the session loop only.
func feedPrinter(w io.Writer) func(chat.State) {
	printed := 0
	lastRoster := "\x00"

	return func(s chat.State) {
		page := view.Project(s)

		names := make([]string, 0, len(page.Roster))
		for _, entry := range page.Roster {
			names = append(names, entry.Name)
		}
		if roster := strings.Join(names, ", "); roster != lastRoster {
			lastRoster = roster
			if page.ActiveCount == 0 {
				fmt.Fprintf(w, "-- %s\n", page.EmptyRoster)
			} else {
				fmt.Fprintf(w, "-- %d online: %s\n", page.ActiveCount, roster)
			}
		}

		for _, m := range page.Messages[printed:] {
			switch m.Kind {
			case view.KindImage:
				fmt.Fprintf(w, "%s: [image] %s\n", m.From, m.Body)
			default:
				fmt.Fprintf(w, "%s: %s\n", m.From, m.Body)
			}
		}
		printed = len(page.Messages)
	}
}
