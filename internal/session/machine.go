package session

import (
	"context"
	"slices"
	"sync"

	"github.com/antigravity/console/internal/models"
	"go.uber.org/zap"
)

// Machine is the single writer of session state. All components read the
// session through Snapshot; only the machine mutates it.
//
// Overlapping resolutions are serialized by a generation counter: every
// logout or fresh resolution bumps the generation, and a resolution that
// completes under a stale generation is discarded. A slow profile fetch
// finishing after a logout therefore cannot resurrect the old session.
type Machine struct {
	store    Store
	resolver Resolver
	log      *zap.Logger

	mu    sync.Mutex
	state State
	user  *models.UserProfile
	token string
	gen   uint64
	subs  []func(Snapshot)
}

// NewMachine returns a Machine in StateUnresolved.
func NewMachine(store Store, resolver Resolver, log *zap.Logger) *Machine {
	return &Machine{
		store:    store,
		resolver: resolver,
		log:      log,
		state:    StateUnresolved,
	}
}

// Snapshot returns the current state and profile.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{State: m.state, User: m.user}
}

// Token returns the current credential, or "" when anonymous.
func (m *Machine) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Subscribe registers fn to be called after every state transition.
// Subscribers run on the transitioning goroutine and must not call back
// into the machine.
func (m *Machine) Subscribe(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Init establishes the session from the persisted credential. With an
// empty store it settles to anonymous without touching the network; with a
// stored credential it resolves the profile, clearing the store and
// settling to anonymous on any failure. Init never returns an error:
// initialization failures silently resolve to anonymous.
func (m *Machine) Init(ctx context.Context) {
	m.mu.Lock()
	token, ok := m.store.Read()
	if !ok {
		m.transitionLocked(StateAnonymous, nil)
		return
	}
	m.token = token
	m.gen++
	gen := m.gen
	m.transitionLocked(StateResolving, nil)

	m.resolve(ctx, gen, token)
}

// Login authenticates and establishes a fresh session. Authentication
// failures leave the state anonymous and propagate a displayable error.
// Login refuses to start while a prior resolution is in flight.
func (m *Machine) Login(ctx context.Context, username, password string) error {
	m.mu.Lock()
	if m.state == StateResolving {
		m.mu.Unlock()
		return ErrResolutionInFlight
	}
	m.mu.Unlock()

	token, err := m.resolver.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}
	if err := m.store.Save(token); err != nil {
		// Degraded mode: the session works but will not survive a restart.
		m.log.Warn("persisting credential failed", zap.Error(err))
	}

	m.mu.Lock()
	m.token = token
	m.gen++
	gen := m.gen
	m.transitionLocked(StateResolving, nil)

	return m.resolve(ctx, gen, token)
}

// Logout clears the credential and settles to anonymous. It is local and
// synchronous; no network round trip is needed to accept a logout.
func (m *Machine) Logout() {
	m.mu.Lock()
	_ = m.store.Clear()
	m.token = ""
	m.gen++ // supersede any in-flight resolution
	m.transitionLocked(StateAnonymous, nil)
}

// resolve exchanges token for a profile and applies the outcome, unless a
// later operation superseded this attempt. Called with m.mu released.
func (m *Machine) resolve(ctx context.Context, gen uint64, token string) error {
	profile, err := m.resolver.Me(ctx, token)

	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		m.log.Debug("discarding superseded resolution")
		return nil
	}
	if err != nil {
		_ = m.store.Clear()
		m.token = ""
		m.transitionLocked(StateAnonymous, nil)
		return err
	}
	m.transitionLocked(StateAuthenticated, &profile)
	return nil
}

// transitionLocked applies the new state and notifies subscribers. It must
// be called with m.mu held and releases it before invoking subscribers.
func (m *Machine) transitionLocked(state State, user *models.UserProfile) {
	m.state = state
	m.user = user
	snap := Snapshot{State: state, User: user}
	subs := slices.Clone(m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
