package config

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "llmcompare.yml")
	writeFile(t, path, "version: \"1.0\"\nsummarization:\n  max_words: 120\n")

	var mu sync.Mutex
	var reloads []*Config
	w, err := NewWatcher(dir, 20*time.Millisecond, nil, func(cfg *Config, err error) {
		if err != nil {
			return
		}
		mu.Lock()
		reloads = append(reloads, cfg)
		mu.Unlock()
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	writeFile(t, path, "version: \"1.0\"\nsummarization:\n  max_words: 300\n")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(reloads) > 0 && reloads[len(reloads)-1].Summarization.MaxWords == 300
	}, 5*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, path, reloads[len(reloads)-1].Source)
}

func TestIsConfigFile(t *testing.T) {
	assert.True(t, isConfigFile("/x/llmcompare.yml"))
	assert.True(t, isConfigFile("/x/llmcompare.toml"))
	assert.True(t, isConfigFile("/x/llmcompare.override.yml"))
	assert.False(t, isConfigFile("/x/notes.yml"))
}
