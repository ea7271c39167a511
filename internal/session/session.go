// Package session provides the authenticated-session value that gates
// feature controller actions. The session is an explicit dependency
// passed at construction rather than an ambient global: controllers
// consult it, never mutate it.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// User identifies the signed-in user a session belongs to.
type User struct {
	ID    uuid.UUID
	Email string
}

// Source exposes the current auth state and change subscription.
type Source interface {
	// Current returns the signed-in user and true, or a zero User and
	// false when no user is authenticated or auth is still resolving.
	Current() (User, bool)

	// OnChange registers a callback invoked whenever the auth state
	// changes. The returned function unsubscribes the callback.
	OnChange(fn func(User, bool)) (unsubscribe func())
}

// Static is a Source fixed at construction. The HTTP layer uses it to
// bind a controller to the user resolved from a validated token.
type Static struct {
	user User
	ok   bool
}

// Ensure Static implements the Source interface.
var _ Source = (*Static)(nil)

// NewStatic creates a Source that always reports the given user.
func NewStatic(user User) *Static {
	return &Static{user: user, ok: true}
}

// NewAnonymous creates a Source that always reports no user.
func NewAnonymous() *Static {
	return &Static{}
}

// Current implements the Source interface.
func (s *Static) Current() (User, bool) {
	return s.user, s.ok
}

// OnChange implements the Source interface. A static source never
// changes, so the callback is never invoked.
func (s *Static) OnChange(fn func(User, bool)) func() {
	return func() {}
}

// Mutable is a Source whose auth state can change after construction,
// with subscribers notified of every change.
type Mutable struct {
	mu          sync.Mutex
	user        User
	ok          bool
	subscribers map[int]func(User, bool)
	nextID      int
}

// Ensure Mutable implements the Source interface.
var _ Source = (*Mutable)(nil)

// NewMutable creates an unauthenticated Mutable source.
func NewMutable() *Mutable {
	return &Mutable{subscribers: make(map[int]func(User, bool))}
}

// Current implements the Source interface.
func (m *Mutable) Current() (User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user, m.ok
}

// Set updates the auth state and notifies subscribers.
func (m *Mutable) Set(user User, ok bool) {
	m.mu.Lock()
	m.user = user
	m.ok = ok
	subscribers := make([]func(User, bool), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subscribers = append(subscribers, fn)
	}
	m.mu.Unlock()

	for _, fn := range subscribers {
		fn(user, ok)
	}
}

// Clear marks the session unauthenticated and notifies subscribers.
func (m *Mutable) Clear() {
	m.Set(User{}, false)
}

// OnChange implements the Source interface.
func (m *Mutable) OnChange(fn func(User, bool)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.subscribers[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}
