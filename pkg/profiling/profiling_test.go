package profiling

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestRecorderDisabled(t *testing.T) {
	r := NewRecorder()
	s := r.Start("load config")
	s.Stop()

	var out bytes.Buffer
	r.Summarize(&out)
	assert.Empty(t, out.String())
	assert.False(t, r.Enabled())
}

func TestRecorderNestsSpans(t *testing.T) {
	r := NewRecorder()
	r.now = fakeClock(time.Second)
	r.Enable()

	cfg := r.Start("load config")
	cfg.Stop()
	cmp := r.Start("compare")
	call := r.Start("POST /summarization/compare")
	call.Stop()
	cmp.Stop()

	var out bytes.Buffer
	r.Summarize(&out)
	assert.Contains(t, out.String(), "Timing (total")
	assert.Contains(t, out.String(), "  - load config (1s,")
	assert.Contains(t, out.String(), "  - compare (3s,")
	assert.Contains(t, out.String(), "    - POST /summarization/compare (1s,")
}

func TestRecorderStopClosesOpenChildren(t *testing.T) {
	r := NewRecorder()
	r.now = fakeClock(time.Millisecond)
	r.Enable()

	outer := r.Start("upload")
	r.Start("notes.txt") // never stopped
	outer.Stop()
	next := r.Start("health")
	next.Stop()
	outer.Stop()

	require.Len(t, r.root.children, 2)
	assert.Equal(t, "health", r.root.children[1].name)

	var out bytes.Buffer
	r.Summarize(&out)
	assert.Contains(t, out.String(), "notes.txt (unfinished")
}

func TestCobraProfilerTiming(t *testing.T) {
	p := &CobraProfiler{recorder: NewRecorder()}
	var stderr bytes.Buffer
	cmd := &cobra.Command{
		Use:  "llmcompare",
		RunE: func(*cobra.Command, []string) error { p.recorder.Start("work").Stop(); return nil },
	}
	p.AddFlags(cmd)
	cmd.PersistentPreRunE = p.PreRun
	cmd.PersistentPostRunE = p.PostRun
	cmd.SetErr(&stderr)

	memPath := filepath.Join(t.TempDir(), "mem.pprof")
	cmd.SetArgs([]string{"--timing", "--mem-profile", memPath})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stderr.String(), "- work (")
	assert.Contains(t, stderr.String(), "Memory profile written to "+memPath)
	info, err := os.Stat(memPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
