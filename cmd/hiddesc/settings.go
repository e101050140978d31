package main

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/gpineda-dev/hiddesc/internal/config"
)

// settingsHolder is the live, reloadable view of internal/config.Settings
// shared across every subcommand invocation: watchSettings updates it in
// the background as the on-disk settings file changes, and subcommands
// read the current value right before they act on it.
type settingsHolder struct {
	mu  sync.RWMutex
	cur config.Settings
}

func newSettingsHolder(initial config.Settings) *settingsHolder {
	return &settingsHolder{cur: initial}
}

func (h *settingsHolder) Get() config.Settings {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cur
}

func (h *settingsHolder) set(s config.Settings) {
	h.mu.Lock()
	h.cur = s
	h.mu.Unlock()
}

// watchSettings starts internal/config's fsnotify-backed Service for the
// lifetime of ctx, registers settingsPath (creating it with hiddesc's
// defaults if absent), and keeps holder in sync with every reload. It
// blocks until the watch loop is ready or ctx is canceled.
func watchSettings(ctx context.Context, log *zap.Logger, holder *settingsHolder, settingsPath string) error {
	svc := config.New(log)
	go func() {
		if err := svc.Start(ctx); err != nil {
			log.Error("config service stopped", zap.Error(err))
		}
	}()

	select {
	case <-svc.Ready():
	case <-ctx.Done():
		return ctx.Err()
	}

	initial, err := svc.Register(settingsPath, config.Default(), func(s config.Settings, err error) {
		if err != nil {
			log.Warn("reload settings failed", zap.String("path", settingsPath), zap.Error(err))
			return
		}
		holder.set(s)
		log.Info("settings reloaded", zap.String("path", settingsPath))
	})
	if err != nil {
		return fmt.Errorf("watch settings at %s: %w", settingsPath, err)
	}
	holder.set(initial)
	return nil
}
