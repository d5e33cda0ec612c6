package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/vmunix/slidemerge/internal/config"
	"github.com/vmunix/slidemerge/internal/events"
	"github.com/vmunix/slidemerge/internal/host"
	"github.com/vmunix/slidemerge/internal/host/ooxml"
	"github.com/vmunix/slidemerge/internal/migrations"
)

// newHost builds the presentation host selected by config.
func newHost(c *config.Config) host.Host {
	return ooxml.New(ooxml.Config{Viewer: c.Host.Viewer}, logger.With("component", "host"))
}

// openHistory opens the history database and migrates it.
func openHistory(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	return db, nil
}

// newBus returns an event bus recording to history when it is enabled.
// When the database cannot be opened the bus runs without it.
func newBus(c *config.Config) (*events.Bus, func()) {
	busLog := logger.With("component", "bus")
	if !c.History.Enabled {
		bus := events.NewBus(nil, busLog)
		return bus, func() { _ = bus.Close() }
	}

	db, err := openHistory(c.History.Path)
	if err != nil {
		logger.Warn("history disabled", "path", c.History.Path, "error", err)
		bus := events.NewBus(nil, busLog)
		return bus, func() { _ = bus.Close() }
	}
	bus := events.NewBus(events.NewEventLog(db), busLog)
	return bus, func() {
		_ = bus.Close()
		_ = db.Close()
	}
}

// interruptContext is cancelled on Ctrl-C.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
