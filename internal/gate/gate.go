// Package gate controls access to the catalog's privileged editing mode.
//
// The gate is a two-state machine guarded by a single shared secret. It
// is process-local and deliberately not an authentication system: no
// per-user identity, no tokens, no expiry. That weakness is part of the
// catalog's scope and must not be "fixed" here.
package gate

import (
	"strings"
	"sync"
	"time"
)

// State is the gate's current mode.
type State int

const (
	Standard State = iota
	Privileged
)

func (s State) String() string {
	if s == Privileged {
		return "privileged"
	}
	return "standard"
}

// mismatchSignalTTL is how long the "incorrect secret" signal stays
// raised after a failed submission.
const mismatchSignalTTL = 3 * time.Second

// Gate admits a single privileged session after a shared-secret check.
type Gate struct {
	mu         sync.Mutex
	secret     string
	privileged bool
	mismatchAt time.Time
	now        func() time.Time
}

// New creates a gate in the standard state. The secret is normalized
// once so submissions compare against the same form.
func New(secret string) *Gate {
	return &Gate{
		secret: normalize(secret),
		now:    time.Now,
	}
}

// normalize trims whitespace and case-folds a submitted secret.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Submit checks a secret. On match the gate transitions to privileged
// and reports true. On mismatch it stays standard, raises the transient
// mismatch signal and reports false.
func (g *Gate) Submit(secret string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if normalize(secret) == g.secret {
		g.privileged = true
		g.mismatchAt = time.Time{}
		return true
	}
	g.mismatchAt = g.now()
	return false
}

// Logout returns the gate to the standard state. Always succeeds.
func (g *Gate) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.privileged = false
}

// Privileged reports whether the gate is in the privileged state.
func (g *Gate) Privileged() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.privileged
}

// State returns the current state.
func (g *Gate) State() State {
	if g.Privileged() {
		return Privileged
	}
	return Standard
}

// MismatchSignal reports whether a failed submission happened within
// the signal window. The signal clears itself by aging out; a
// successful submission clears it immediately.
func (g *Gate) MismatchSignal() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mismatchAt.IsZero() {
		return false
	}
	return g.now().Sub(g.mismatchAt) < mismatchSignalTTL
}
