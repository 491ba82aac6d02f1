// Package session holds the client's authentication state and the guard that
// keeps navigation consistent with it.
//
// A Session starts in a loading state. Load reads the token store once and
// derives the authenticated flag from the presence of a token; it does not
// check the token's signature or expiry. The first request the server rejects
// with 401 ends such a session through Expire, which calls SignOut.
package session

import (
	"context" // Request scoping and session carrier
	"fmt"     // Error wrapping
	"sync"    // Guards state

	"github.com/sirupsen/logrus" // Structured logging
)

// TokenStore is the part of the token store the session needs.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Delete(ctx context.Context) error
}

// State is a snapshot of a session.
type State struct {
	Loading       bool   // True until Load ran
	Authenticated bool   // A token is believed to be stored
	Location      string // Current route
}

// Session is the current authentication state of the client.
type Session struct {
	store TokenStore // Where the token lives

	mu        sync.Mutex    // Protects state and listeners
	state     State         // Current snapshot
	listeners []func(State) // Called after every update
}

// New returns a session that is still loading and sits at the app entry.
func New(store TokenStore) *Session {
	return &Session{
		store: store,
		state: State{Loading: true, Location: HomeRoute},
	}
}

// Load derives the authenticated flag from the stored token and ends loading.
// A store error leaves the session signed out.
func (s *Session) Load(ctx context.Context) {
	token, err := s.store.Get(ctx) // Presence is all that is checked
	if err != nil {
		logrus.WithError(err).Error("Error loading token from storage")
	}
	s.update(func(st *State) {
		st.Authenticated = err == nil && token != ""
		st.Loading = false
	})
}

// State returns the current snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Authenticated reports whether a token is believed to be stored.
func (s *Session) Authenticated() bool { return s.State().Authenticated }

// Location is the screen the user is on after the guard ran.
func (s *Session) Location() string { return s.State().Location }

// SetAuthenticated flips the flag and re-runs the guard.
func (s *Session) SetAuthenticated(authenticated bool) {
	s.update(func(st *State) { st.Authenticated = authenticated })
}

// Navigate moves to location, subject to the guard.
func (s *Session) Navigate(location string) {
	s.update(func(st *State) { st.Location = location })
}

// SignOut forgets the stored token and flips the flag. When the token cannot
// be deleted the session stays signed in.
func (s *Session) SignOut(ctx context.Context) error {
	if err := s.store.Delete(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	s.SetAuthenticated(false)
	return nil
}

// Expire ends the session carried by ctx after the server rejected its token.
// The session is signed out even if the token cannot be deleted: a leftover
// token is rejected again on its next use. Expire fits api.OnUnauthorized.
func Expire(ctx context.Context) {
	s := FromContext(ctx)
	if s == nil {
		return
	}
	if err := s.SignOut(ctx); err != nil {
		logrus.WithError(err).Warn("Error deleting rejected token")
		s.SetAuthenticated(false)
	}
}

// OnChange registers fn to be called with every new state.
func (s *Session) OnChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// update applies change, then the guard, then notifies listeners outside
// the lock. The guard runs once: its targets are fixed points.
func (s *Session) update(change func(*State)) {
	s.mu.Lock()
	change(&s.state)
	if !s.state.Loading {
		if target, ok := Redirect(s.state.Authenticated, s.state.Location); ok {
			s.state.Location = target
		}
	}
	snapshot := s.state                                  // Settled state for listeners
	listeners := append([]func(State){}, s.listeners...) // Copy, listeners may register more
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

type ctxKey struct{}

// NewContext returns a context carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session carried by ctx, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}
