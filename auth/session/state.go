package session

import (
	"sync"

	"github.com/reown-com/appkit-go/schema"
)

// Listener observes session state transitions. It is invoked after every
// mutation with the values that are now current; either may be nil.
type Listener func(user *schema.User, session *schema.Session)

// State is the explicitly owned holder of the current authenticated user
// and session. It starts empty and is mutated only by the auth service;
// everything else reads it or subscribes to it.
type State struct {
	mu        sync.RWMutex
	user      *schema.User
	session   *schema.Session
	listeners map[int]Listener
	nextID    int
}

func New() *State {
	return &State{listeners: map[int]Listener{}}
}

// User returns the current authenticated user, or nil.
func (s *State) User() *schema.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Session returns the current session, or nil.
func (s *State) Session() *schema.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Subscribe registers a listener and returns its cancel function.
func (s *State) Subscribe(listener Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// SetUser replaces the current user, leaving the session untouched.
func (s *State) SetUser(user *schema.User) {
	s.mu.Lock()
	s.user = user
	s.notifyLocked()
}

// Set replaces both the current user and session.
func (s *State) Set(user *schema.User, session *schema.Session) {
	s.mu.Lock()
	s.user = user
	s.session = session
	s.notifyLocked()
}

// Clear resets the state to empty.
func (s *State) Clear() {
	s.Set(nil, nil)
}

// notifyLocked snapshots state and listeners, releases the lock, then
// notifies, so listeners may call back into State.
func (s *State) notifyLocked() {
	user, session := s.user, s.session
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()
	for _, l := range listeners {
		l(user, session)
	}
}
