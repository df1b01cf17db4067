package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Reporter reports the progress of a command that makes backend calls.
// A total of -1 means the number of steps is unknown.
type Reporter interface {
	Start(total int, description string)
	Step(message string)
	Finish(summary string)
}

// NewReporter returns a progress bar on an interactive stderr and a
// line-per-step reporter otherwise (CI, pipes, --json).
func NewReporter(plain bool) Reporter {
	if plain || os.Getenv("CI") != "" || !isatty.IsTerminal(os.Stderr.Fd()) {
		return &LineReporter{Out: os.Stderr}
	}
	return &BarReporter{Out: os.Stderr}
}

// BarReporter draws a progress bar, or a spinner when the total is unknown.
type BarReporter struct {
	Out io.Writer

	bar   *progressbar.ProgressBar
	start time.Time
	stop  chan struct{}
	done  chan struct{}
}

func (r *BarReporter) Start(total int, description string) {
	r.start = time.Now()
	opts := []progressbar.Option{
		progressbar.OptionSetWriter(r.Out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowElapsedTimeOnFinish(),
	}
	if total >= 0 {
		r.bar = progressbar.NewOptions(total, append(opts, progressbar.OptionShowCount())...)
		return
	}

	// A spinner only redraws when it advances, so keep it moving until Finish.
	r.bar = progressbar.NewOptions(-1, append(opts, progressbar.OptionSpinnerType(14))...)
	bar, stop, done := r.bar, make(chan struct{}), make(chan struct{})
	r.stop, r.done = stop, done
	go func() {
		defer close(done)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = bar.Add(1)
			case <-stop:
				return
			}
		}
	}()
}

func (r *BarReporter) Step(message string) {
	if r.bar == nil {
		return
	}
	r.bar.Describe(message)
	if r.stop == nil {
		_ = r.bar.Add(1)
	}
}

func (r *BarReporter) Finish(summary string) {
	if r.stop != nil {
		close(r.stop)
		<-r.done
		r.stop = nil
	}
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	if summary != "" {
		fmt.Fprintf(r.Out, "%s (%s)\n", summary, time.Since(r.start).Round(time.Millisecond))
	}
}

// LineReporter prints one line per step.
type LineReporter struct {
	Out io.Writer

	total   int
	current int
}

func (r *LineReporter) Start(total int, description string) {
	r.total = total
	r.current = 0
	fmt.Fprintln(r.Out, description)
}

func (r *LineReporter) Step(message string) {
	r.current++
	if r.total < 0 {
		fmt.Fprintf(r.Out, "[%d] %s\n", r.current, message)
		return
	}
	fmt.Fprintf(r.Out, "[%d/%d] %s\n", r.current, r.total, message)
}

func (r *LineReporter) Finish(summary string) {
	if summary != "" {
		fmt.Fprintln(r.Out, summary)
	}
}
