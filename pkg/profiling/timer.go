// Package profiling times the phases of a command run and optionally
// captures pprof profiles.
package profiling

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Stopper ends a timed span.
type Stopper interface {
	Stop()
}

type span struct {
	name     string
	start    time.Time
	duration time.Duration
	parent   *span
	children []*span
	recorder *Recorder
}

func (s *span) Stop() {
	s.recorder.end(s)
}

// Recorder collects a tree of timed spans. A span started while another is
// open becomes its child, so spans should be started from one goroutine.
type Recorder struct {
	mu      sync.Mutex
	enabled bool
	root    *span
	current *span
	now     func() time.Time
}

// NewRecorder returns a disabled recorder.
func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

var defaultRecorder = NewRecorder()

// Enable starts recording. Spans started before Enable are not recorded.
func (r *Recorder) Enable() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enabled {
		return
	}
	r.enabled = true
	r.root = &span{name: "total", start: r.now(), recorder: r}
	r.current = r.root
}

// Enabled reports whether the recorder is recording.
func (r *Recorder) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

// Start opens a span named name. It is a no-op while the recorder is
// disabled.
func (r *Recorder) Start(name string) Stopper {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled {
		return noopStopper{}
	}
	s := &span{name: name, start: r.now(), parent: r.current, recorder: r}
	r.current.children = append(r.current.children, s)
	r.current = s
	return s
}

func (r *Recorder) end(s *span) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.duration != 0 {
		return
	}
	s.duration = max(r.now().Sub(s.start), time.Nanosecond)
	// Closing a span also closes any child left open.
	for c := r.current; c != nil && c != r.root; c = c.parent {
		if c == s {
			r.current = s.parent
			break
		}
	}
}

// Summarize writes the span tree with each span's share of the total.
func (r *Recorder) Summarize(w io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled {
		return
	}
	total := r.now().Sub(r.root.start)
	fmt.Fprintf(w, "\nTiming (total %v)\n", total.Round(100*time.Microsecond))
	for _, c := range r.root.children {
		printSpan(w, c, 1, total)
	}
}

func printSpan(w io.Writer, s *span, depth int, total time.Duration) {
	d := s.duration
	label := d.Round(100 * time.Microsecond).String()
	if d == 0 {
		label = "unfinished"
	}
	pct := 0.0
	if total > 0 {
		pct = float64(d) / float64(total) * 100
	}
	fmt.Fprintf(w, "%s- %s (%s, %.1f%%)\n", strings.Repeat("  ", depth), s.name, label, pct)
	for _, c := range s.children {
		printSpan(w, c, depth+1, total)
	}
}

type noopStopper struct{}

func (noopStopper) Stop() {}

// Enable turns on the process-wide recorder.
func Enable() { defaultRecorder.Enable() }

// Start opens a span on the process-wide recorder.
func Start(name string) Stopper { return defaultRecorder.Start(name) }

// Summarize writes the process-wide recorder's spans to w.
func Summarize(w io.Writer) { defaultRecorder.Summarize(w) }
