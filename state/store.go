// Package state holds the in-memory state tree shared by every feature module.
//
// The tree maps a namespace to a flat set of fields. Writes shallow-merge into
// one namespace and synchronously notify that namespace's listeners in
// registration order. Writes and their notification phases are serialized: a
// write issued while listeners are running is queued and applied once the
// current phase has finished, so all listeners of one write observe the same
// state.
package state

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Fields is the content of one namespace.
type Fields map[string]any

// Tree maps namespace names to their fields.
type Tree map[string]Fields

// Listener is notified after its namespace changes. next and prev are copies
// owned by the listener. A returned error is recorded in the write's Report.
type Listener func(next, prev Fields) error

// ListenerID identifies a registration for RemoveListener.
type ListenerID uint64

type registration struct {
	id ListenerID
	fn Listener
}

type opKind int

const (
	opWrite opKind = iota
	opResetModule
	opResetAll
)

type op struct {
	kind    opKind
	name    string
	partial Fields
}

// notification is one namespace's worth of listener calls, captured under
// the lock and delivered outside it.
type notification struct {
	name      string
	next      Fields
	prev      Fields
	listeners []registration
}

// Store is a goroutine-safe state tree with change notification.
type Store struct {
	mu        sync.Mutex
	tree      Tree
	listeners map[string][]registration
	nextID    ListenerID
	logger    *logrus.Entry

	draining    bool
	queue       []op
	subscribers map[chan Change]struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report listener failures.
func WithLogger(logger *logrus.Entry) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithTree replaces the initial tree. ResetAll still restores DefaultTree.
func WithTree(tree Tree) Option {
	return func(s *Store) {
		s.tree = cloneTree(tree)
	}
}

// New creates a store holding DefaultTree.
func New(opts ...Option) *Store {
	s := &Store{
		tree:      DefaultTree(),
		listeners: make(map[string][]registration),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logrus.NewEntry(logrus.StandardLogger()).WithField("component", "state")
	}
	return s
}

// Read returns a copy of the entire tree.
func (s *Store) Read() Tree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTree(s.tree)
}

// ReadModule returns a copy of one namespace, or an empty Fields when absent.
func (s *Store) ReadModule(name string) Fields {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Clone(s.tree[name])
}

// Write shallow-merges partial into the named namespace, creating it when
// absent, then notifies the namespace's listeners with (next, prev).
//
// If another write is being delivered the call is queued and the returned
// Report has Queued set; its listeners run before the delivering call returns.
func (s *Store) Write(name string, partial Fields) Report {
	return s.submit(op{kind: opWrite, name: name, partial: Clone(partial)})
}

// ResetModule replaces a namespace with an empty mapping and notifies its
// listeners with (empty, previous). Absent namespaces are left alone.
func (s *Store) ResetModule(name string) Report {
	return s.submit(op{kind: opResetModule, name: name})
}

// ResetAll restores DefaultTree and notifies every namespace that has
// listeners with (default, previous).
func (s *Store) ResetAll() Report {
	return s.submit(op{kind: opResetAll})
}

// AddListener registers fn for a namespace. Listeners run in registration order.
func (s *Store) AddListener(name string, fn Listener) ListenerID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners[name] = append(s.listeners[name], registration{id: id, fn: fn})
	return id
}

// RemoveListener unregisters a listener. It reports whether the id was found.
func (s *Store) RemoveListener(name string, id ListenerID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	regs := s.listeners[name]
	for i, reg := range regs {
		if reg.id != id {
			continue
		}
		// Copy so in-flight notification snapshots are unaffected.
		next := make([]registration, 0, len(regs)-1)
		next = append(next, regs[:i]...)
		next = append(next, regs[i+1:]...)
		if len(next) == 0 {
			delete(s.listeners, name)
		} else {
			s.listeners[name] = next
		}
		return true
	}
	return false
}

// ListenerCount returns the number of listeners registered for a namespace.
func (s *Store) ListenerCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners[name])
}

// submit applies o and delivers its notifications. The first caller to find
// the store idle becomes the drainer: it keeps applying queued operations
// until the queue is empty.
func (s *Store) submit(o op) Report {
	s.mu.Lock()
	if s.draining {
		s.queue = append(s.queue, o)
		s.mu.Unlock()
		return Report{Namespace: o.name, Queued: true}
	}
	s.draining = true

	var first Report
	for i := 0; ; i++ {
		batch := s.apply(o)
		s.mu.Unlock()

		report := s.deliver(o.name, batch)
		if i == 0 {
			first = report
		}

		s.mu.Lock()
		if len(s.queue) == 0 {
			s.draining = false
			s.mu.Unlock()
			return first
		}
		o = s.queue[0]
		s.queue = s.queue[1:]
	}
}

// apply mutates the tree for o. It must be called with s.mu held.
func (s *Store) apply(o op) []notification {
	switch o.kind {
	case opWrite:
		prev := s.tree[o.name]
		next := make(Fields, len(prev)+len(o.partial))
		for k, v := range prev {
			next[k] = v
		}
		for k, v := range o.partial {
			next[k] = v
		}
		s.tree[o.name] = next
		return s.notificationFor(o.name, next, prev)

	case opResetModule:
		prev, ok := s.tree[o.name]
		if !ok {
			return nil
		}
		next := Fields{}
		s.tree[o.name] = next
		return s.notificationFor(o.name, next, prev)

	case opResetAll:
		prevTree := s.tree
		s.tree = DefaultTree()
		names := make(map[string]struct{}, len(s.listeners))
		for name := range s.listeners {
			names[name] = struct{}{}
		}
		if len(s.subscribers) > 0 {
			for name := range prevTree {
				names[name] = struct{}{}
			}
			for name := range s.tree {
				names[name] = struct{}{}
			}
		}
		var batch []notification
		for _, name := range sortedKeys(names) {
			batch = append(batch, s.notificationFor(name, s.tree[name], prevTree[name])...)
		}
		return batch
	}
	return nil
}

func (s *Store) notificationFor(name string, next, prev Fields) []notification {
	regs := s.listeners[name]
	if len(regs) == 0 && len(s.subscribers) == 0 {
		return nil
	}
	return []notification{{
		name:      name,
		next:      Clone(next),
		prev:      Clone(prev),
		listeners: regs,
	}}
}

// deliver runs listeners outside the lock and logs failures.
func (s *Store) deliver(namespace string, batch []notification) Report {
	report := Report{Namespace: namespace}
	for _, n := range batch {
		for _, reg := range n.listeners {
			result := invoke(n.name, reg, n.next, n.prev)
			report.Results = append(report.Results, result)
		}
		s.mu.Lock()
		s.broadcast(Change{Namespace: n.name, Next: n.next, Prev: n.prev})
		s.mu.Unlock()
	}
	for _, failed := range report.Failed() {
		entry := s.logger.WithFields(logrus.Fields{
			"namespace": failed.Namespace,
			"listener":  failed.ID,
		}).WithError(failed.Err)
		if failed.Panicked {
			entry.Error("State listener panicked")
		} else {
			entry.Warn("State listener failed")
		}
	}
	return report
}

func invoke(name string, reg registration, next, prev Fields) (result Result) {
	result = Result{Namespace: name, ID: reg.id}
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("listener panicked: %v", r)
			result.Panicked = true
		}
	}()
	result.Err = reg.fn(Clone(next), Clone(prev))
	return result
}
