package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DynamicConfig holds the settings that can change at runtime without a
// restart: traversal limits and prerequisite policy. Everything else in
// Config needs a redeploy.
type DynamicConfig struct {
	Limits   TraversalLimits `json:"limits"`
	Policies GraphPolicies   `json:"policies"`
	Metadata ConfigMetadata  `json:"metadata"`
}

// TraversalLimits bounds path-finding work.
type TraversalLimits struct {
	MaxPathDepth    int `json:"maxPathDepth"`
	MaxPathResults  int `json:"maxPathResults"`
	DefaultMaxDepth int `json:"defaultMaxDepth"`
}

// GraphPolicies holds runtime-tunable rule flags.
type GraphPolicies struct {
	TransitivePrerequisites bool `json:"transitivePrerequisites"`
}

// ConfigMetadata holds metadata about the configuration
type ConfigMetadata struct {
	Version   string    `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ConfigWatcher watches a JSON configuration file for changes and notifies
// registered handlers with the validated new settings. An invalid file keeps
// the current settings.
type ConfigWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	current  *DynamicConfig
	mu       sync.RWMutex
	onChange []func(*DynamicConfig)
	logger   *zap.Logger
	stopCh   chan struct{}
}

// NewConfigWatcher creates a watcher over the given config file, loading the
// initial settings eagerly so a bad file fails startup rather than the first
// reload.
func NewConfigWatcher(configPath string, logger *zap.Logger) (*ConfigWatcher, error) {
	current, err := loadDynamicConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial config: %w", err)
	}
	if err := validateDynamicConfig(current); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(configPath); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch config file: %w", err)
	}
	// Watch the directory too: editors and config pushes often replace the
	// file with a rename, which drops the watch on the old inode.
	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		logger.Warn("failed to watch config directory", zap.Error(err))
	}

	return &ConfigWatcher{
		path:    configPath,
		watcher: watcher,
		current: current,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}, nil
}

// Start begins watching for configuration changes.
func (w *ConfigWatcher) Start() {
	go w.watchLoop()
	w.logger.Info("configuration watcher started", zap.String("path", w.path))
}

// Stop stops watching for configuration changes.
func (w *ConfigWatcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
	w.logger.Info("configuration watcher stopped")
}

// OnChange registers a callback invoked after each successful reload.
func (w *ConfigWatcher) OnChange(handler func(*DynamicConfig)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, handler)
}

// Current returns the most recently loaded settings.
func (w *ConfigWatcher) Current() *DynamicConfig {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func (w *ConfigWatcher) watchLoop() {
	// Debounce: atomic saves produce several events in quick succession.
	var debounce *time.Timer
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-w.stopCh:
			if debounce != nil {
				debounce.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDelay, w.reload)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", zap.Error(err))
		}
	}
}

func (w *ConfigWatcher) reload() {
	w.logger.Info("configuration file changed, reloading", zap.String("path", w.path))

	next, err := loadDynamicConfig(w.path)
	if err != nil {
		w.logger.Error("failed to reload configuration", zap.Error(err))
		return
	}
	if err := validateDynamicConfig(next); err != nil {
		w.logger.Error("invalid configuration, keeping current", zap.Error(err))
		return
	}

	w.mu.Lock()
	prev := w.current
	w.current = next
	handlers := make([]func(*DynamicConfig), len(w.onChange))
	copy(handlers, w.onChange)
	w.mu.Unlock()

	w.logChanges(prev, next)
	for _, handler := range handlers {
		go handler(next)
	}

	w.logger.Info("configuration reloaded",
		zap.String("version", next.Metadata.Version),
	)
}

func (w *ConfigWatcher) logChanges(prev, next *DynamicConfig) {
	var changes []string
	if prev.Limits.MaxPathDepth != next.Limits.MaxPathDepth {
		changes = append(changes, fmt.Sprintf("maxPathDepth: %d -> %d",
			prev.Limits.MaxPathDepth, next.Limits.MaxPathDepth))
	}
	if prev.Limits.MaxPathResults != next.Limits.MaxPathResults {
		changes = append(changes, fmt.Sprintf("maxPathResults: %d -> %d",
			prev.Limits.MaxPathResults, next.Limits.MaxPathResults))
	}
	if prev.Limits.DefaultMaxDepth != next.Limits.DefaultMaxDepth {
		changes = append(changes, fmt.Sprintf("defaultMaxDepth: %d -> %d",
			prev.Limits.DefaultMaxDepth, next.Limits.DefaultMaxDepth))
	}
	if prev.Policies.TransitivePrerequisites != next.Policies.TransitivePrerequisites {
		changes = append(changes, fmt.Sprintf("transitivePrerequisites: %v -> %v",
			prev.Policies.TransitivePrerequisites, next.Policies.TransitivePrerequisites))
	}
	if len(changes) > 0 {
		w.logger.Info("configuration changes detected", zap.Strings("changes", changes))
	}
}

func validateDynamicConfig(cfg *DynamicConfig) error {
	if cfg.Limits.MaxPathDepth <= 0 {
		return fmt.Errorf("maxPathDepth must be positive")
	}
	if cfg.Limits.MaxPathResults <= 0 {
		return fmt.Errorf("maxPathResults must be positive")
	}
	if cfg.Limits.DefaultMaxDepth <= 0 || cfg.Limits.DefaultMaxDepth > cfg.Limits.MaxPathDepth {
		return fmt.Errorf("defaultMaxDepth must be in (0, maxPathDepth]")
	}
	return nil
}

func loadDynamicConfig(path string) (*DynamicConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg DynamicConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if cfg.Metadata.Version == "" {
		cfg.Metadata.Version = "1.0.0"
	}
	cfg.Metadata.UpdatedAt = time.Now()
	return &cfg, nil
}
