package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeConfigFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const validDynamicConfig = `{
	"limits": {"maxPathDepth": 50, "maxPathResults": 100, "defaultMaxDepth": 10},
	"policies": {"transitivePrerequisites": false},
	"metadata": {"version": "1.0.0"}
}`

func TestNewConfigWatcher_LoadsInitialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dynamic.json")
	writeConfigFile(t, path, validDynamicConfig)

	watcher, err := NewConfigWatcher(path, zap.NewNop())
	require.NoError(t, err)
	defer watcher.Stop()

	current := watcher.Current()
	assert.Equal(t, 50, current.Limits.MaxPathDepth)
	assert.Equal(t, 10, current.Limits.DefaultMaxDepth)
	assert.Equal(t, "1.0.0", current.Metadata.Version)
}

func TestNewConfigWatcher_RejectsBadInitialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dynamic.json")

	tests := []struct {
		name    string
		content string
	}{
		{"missing file", ""},
		{"malformed json", `{"limits":`},
		{"zero depth", `{"limits": {"maxPathDepth": 0, "maxPathResults": 100, "defaultMaxDepth": 10}}`},
		{"default over max", `{"limits": {"maxPathDepth": 5, "maxPathResults": 100, "defaultMaxDepth": 10}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.content != "" {
				writeConfigFile(t, path, tt.content)
			} else {
				os.Remove(path)
			}

			watcher, err := NewConfigWatcher(path, zap.NewNop())
			assert.Error(t, err)
			assert.Nil(t, watcher)
		})
	}
}

func TestConfigWatcher_ReloadOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dynamic.json")
	writeConfigFile(t, path, validDynamicConfig)

	watcher, err := NewConfigWatcher(path, zap.NewNop())
	require.NoError(t, err)
	defer watcher.Stop()

	notified := make(chan *DynamicConfig, 1)
	watcher.OnChange(func(cfg *DynamicConfig) {
		select {
		case notified <- cfg:
		default:
		}
	})
	watcher.Start()

	writeConfigFile(t, path, `{
		"limits": {"maxPathDepth": 80, "maxPathResults": 200, "defaultMaxDepth": 20},
		"policies": {"transitivePrerequisites": true},
		"metadata": {"version": "1.1.0"}
	}`)

	select {
	case cfg := <-notified:
		assert.Equal(t, 80, cfg.Limits.MaxPathDepth)
		assert.True(t, cfg.Policies.TransitivePrerequisites)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload notification")
	}

	assert.Equal(t, 80, watcher.Current().Limits.MaxPathDepth)
	assert.Equal(t, "1.1.0", watcher.Current().Metadata.Version)
}

func TestConfigWatcher_KeepsCurrentOnInvalidReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dynamic.json")
	writeConfigFile(t, path, validDynamicConfig)

	watcher, err := NewConfigWatcher(path, zap.NewNop())
	require.NoError(t, err)
	defer watcher.Stop()
	watcher.Start()

	writeConfigFile(t, path, `{"limits": {"maxPathDepth": -1}}`)

	// give the debounced reload time to run and be rejected
	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, 50, watcher.Current().Limits.MaxPathDepth)
}

func TestValidateDynamicConfig(t *testing.T) {
	valid := &DynamicConfig{
		Limits: TraversalLimits{MaxPathDepth: 50, MaxPathResults: 100, DefaultMaxDepth: 10},
	}
	assert.NoError(t, validateDynamicConfig(valid))

	assert.Error(t, validateDynamicConfig(&DynamicConfig{
		Limits: TraversalLimits{MaxPathDepth: 50, MaxPathResults: 0, DefaultMaxDepth: 10},
	}))
}
