package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/shotweave/shotweave/internal/api"
	"github.com/shotweave/shotweave/internal/config"
	"github.com/shotweave/shotweave/internal/history"
	"github.com/shotweave/shotweave/internal/logging"
	"github.com/shotweave/shotweave/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Data.Dir, cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging error:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sessionDir, err := session.DefaultDir()
	if err != nil {
		logger.Error("session dir unavailable", zap.Error(err))
		fmt.Fprintln(os.Stderr, "session error:", err)
		os.Exit(1)
	}
	store := session.NewStore(sessionDir)
	store.Subscribe(func(u *session.User) {
		if u == nil {
			logger.Info("session cleared")
			return
		}
		logger.Info("session changed",
			zap.String("username", u.Username),
			zap.String("role", string(u.Role)))
	})
	store.Restore()

	client, err := api.NewClient(api.Config{BaseURL: cfg.Server.BaseURL, Timeout: cfg.Server.Timeout})
	if err != nil {
		logger.Error("client setup failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "client error:", err)
		os.Exit(1)
	}

	// The journal is informational; a broken local db should not keep
	// anyone from working.
	journal, err := history.Open(cfg.Data.Dir)
	if err != nil {
		logger.Warn("journal unavailable", zap.Error(err))
		journal = nil
	} else {
		defer journal.Close()
	}

	logger.Info("starting", zap.String("backend", cfg.Server.BaseURL))

	p := tea.NewProgram(newModel(client, store, journal, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited with error", zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
