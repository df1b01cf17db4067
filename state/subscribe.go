package state

// Change describes one namespace transition, delivered to subscribers.
type Change struct {
	Namespace string
	Next      Fields
	Prev      Fields
}

// Subscribe returns a channel receiving every change in every namespace,
// after that namespace's listeners have run. Sends never block: a subscriber
// that falls more than buffer changes behind misses changes. Call the
// returned function to unsubscribe and close the channel.
func (s *Store) Subscribe(buffer int) (<-chan Change, func()) {
	if buffer <= 0 {
		buffer = 64
	}
	ch := make(chan Change, buffer)

	s.mu.Lock()
	if s.subscribers == nil {
		s.subscribers = make(map[chan Change]struct{})
	}
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	var done bool
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if done {
			return
		}
		done = true
		delete(s.subscribers, ch)
		close(ch)
	}
}

// broadcast must be called with s.mu held so it cannot race an unsubscribe.
func (s *Store) broadcast(c Change) {
	for ch := range s.subscribers {
		select {
		case ch <- Change{Namespace: c.Namespace, Next: Clone(c.Next), Prev: Clone(c.Prev)}:
		default:
		}
	}
}
