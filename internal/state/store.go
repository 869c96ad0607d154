package state

import "sync"

// Store owns the single State instance and serializes transitions.
// The zero value is ready to use with DefaultPageSize.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore returns a store whose pages hold pageSize books.
func NewStore(pageSize int) *Store {
	return &Store{state: New(pageSize)}
}

// Dispatch applies cmds in order under one lock and returns a copy of the
// resulting state. Readers never observe View out of step with Items.
func (s *Store) Dispatch(cmds ...Command) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := withDefaults(s.state)
	for _, cmd := range cmds {
		next = Reduce(next, cmd)
	}
	s.state = next
	return next.clone()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return withDefaults(s.state).clone()
}

func withDefaults(st State) State {
	if st.Page.Size <= 0 {
		st.Page.Size = DefaultPageSize
	}
	if st.Page.Current == 0 {
		st.Page.Current = 1
	}
	return st
}
