package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/ghodss/yaml"
	"go.uber.org/zap"
)

type subscriber func(event fsnotify.Event)

// Service watches a settings file on disk and notifies subscribers when
// it changes, so a running `hiddesc` command can pick up edited
// defaults without restarting.
type Service struct {
	log *zap.Logger

	watcher     *fsnotify.Watcher
	mu          sync.Mutex
	subscribers []subscriber
	ready       chan struct{}
}

// New returns a Service that logs through log.
func New(log *zap.Logger) *Service {
	return &Service{log: log, ready: make(chan struct{})}
}

// Start runs the watch loop until ctx is canceled.
func (s *Service) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	s.watcher = watcher
	defer s.watcher.Close()
	close(s.ready)
	s.log.Info("config service started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-s.watcher.Events:
			if !ok {
				return nil
			}
			s.mu.Lock()
			for _, sub := range s.subscribers {
				sub(event)
			}
			s.mu.Unlock()
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Error("watcher error", zap.Error(err))
		}
	}
}

// Ready is closed once the watch loop is established.
func (s *Service) Ready() <-chan struct{} { return s.ready }

// Register watches path for changes, invoking fn with the reloaded
// Settings on every write, and returns the settings currently on disk
// (or def if the file does not yet exist).
func (s *Service) Register(path string, def Settings, fn func(Settings, error)) (Settings, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return def, fmt.Errorf("resolve path %s: %w", path, err)
	}
	settings, err := readSettings(absPath, def)
	if os.IsNotExist(err) {
		settings, err = def, writeSettings(absPath, def)
	}
	if err != nil {
		return def, fmt.Errorf("load settings: %w", err)
	}

	if err := s.watcher.Add(filepath.Dir(absPath)); err != nil {
		return def, fmt.Errorf("watch %s: %w", path, err)
	}

	s.mu.Lock()
	s.subscribers = append(s.subscribers, func(event fsnotify.Event) {
		if event.Name == absPath && (event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
			fn(readSettings(absPath, def))
		}
	})
	s.mu.Unlock()

	return settings, nil
}

func writeSettings(path string, settings Settings) error {
	jsonB, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	yamlB, err := yaml.JSONToYAML(jsonB)
	if err != nil {
		return fmt.Errorf("convert settings to yaml: %w", err)
	}
	return os.WriteFile(path, yamlB, 0644)
}

func readSettings(path string, def Settings) (Settings, error) {
	yamlB, err := os.ReadFile(path)
	if err != nil {
		return def, err
	}
	jsonB, err := yaml.YAMLToJSON(yamlB)
	if err != nil {
		return def, fmt.Errorf("convert yaml to json: %w", err)
	}
	if err := json.Unmarshal(jsonB, &def); err != nil {
		return def, fmt.Errorf("unmarshal settings: %w", err)
	}
	return def, nil
}
