package state

import (
	"errors"
)

// Result is the outcome of one listener invocation.
type Result struct {
	Namespace string
	ID        ListenerID
	Err       error
	Panicked  bool
}

// Report aggregates the listener outcomes of one write or reset.
type Report struct {
	Namespace string
	Results   []Result
	// Queued is set when the operation was deferred behind a notification
	// phase already in progress. Results is empty in that case.
	Queued bool
}

// Failed returns the results whose listener returned an error or panicked.
func (r Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err joins every listener error, or returns nil when all succeeded.
func (r Report) Err() error {
	var errs []error
	for _, res := range r.Failed() {
		errs = append(errs, res.Err)
	}
	return errors.Join(errs...)
}
