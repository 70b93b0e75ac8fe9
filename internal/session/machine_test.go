package session

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/antigravity/console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore implements Store in memory.
type fakeStore struct {
	mu    sync.Mutex
	token string
	has   bool
}

func (s *fakeStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.has = token, true
	return nil
}

func (s *fakeStore) Read() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.has
}

func (s *fakeStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.has = "", false
	return nil
}

// fakeResolver implements Resolver with scripted outcomes.
type fakeResolver struct {
	mu        sync.Mutex
	authToken string
	authErr   error
	profile   models.UserProfile
	meErr     error
	meCalls   int
	// meGate, when non-nil, blocks Me until the channel is closed.
	meGate chan struct{}
}

func (r *fakeResolver) Authenticate(ctx context.Context, username, password string) (string, error) {
	if r.authErr != nil {
		return "", r.authErr
	}
	return r.authToken, nil
}

func (r *fakeResolver) Me(ctx context.Context, token string) (models.UserProfile, error) {
	r.mu.Lock()
	r.meCalls++
	gate := r.meGate
	r.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if r.meErr != nil {
		return models.UserProfile{}, r.meErr
	}
	return r.profile, nil
}

func (r *fakeResolver) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.meCalls
}

func userProfile() models.UserProfile {
	return models.UserProfile{Email: "a@b.com", Role: models.RoleUser, Plan: models.PlanFree}
}

func TestInit_EmptyStoreSkipsResolution(t *testing.T) {
	store := &fakeStore{}
	resolver := &fakeResolver{}
	m := NewMachine(store, resolver, zap.NewNop())

	m.Init(context.Background())

	snap := m.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, snap.User)
	assert.Equal(t, 0, resolver.calls(), "no resolution call with a known-absent credential")
}

func TestInit_StoredCredentialResolves(t *testing.T) {
	store := &fakeStore{}
	require.NoError(t, store.Save("tok"))
	resolver := &fakeResolver{profile: userProfile()}
	m := NewMachine(store, resolver, zap.NewNop())

	m.Init(context.Background())

	snap := m.Snapshot()
	require.Equal(t, StateAuthenticated, snap.State)
	require.NotNil(t, snap.User)
	assert.Equal(t, "a@b.com", snap.User.Email)
	assert.Equal(t, "tok", m.Token())
}

func TestInit_ResolveFailureClearsEverything(t *testing.T) {
	store := &fakeStore{}
	require.NoError(t, store.Save("expired"))
	resolver := &fakeResolver{meErr: errors.New("unauthorized")}
	m := NewMachine(store, resolver, zap.NewNop())

	m.Init(context.Background())

	snap := m.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, snap.User)
	_, ok := store.Read()
	assert.False(t, ok, "store must be cleared on resolve failure")
	assert.Empty(t, m.Token())
}

func TestLogin_Success(t *testing.T) {
	store := &fakeStore{}
	resolver := &fakeResolver{authToken: "fresh", profile: userProfile()}
	m := NewMachine(store, resolver, zap.NewNop())
	m.Init(context.Background())

	require.NoError(t, m.Login(context.Background(), "a@b.com", "pw"))

	snap := m.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	token, ok := store.Read()
	require.True(t, ok)
	assert.Equal(t, "fresh", token)
}

func TestLogin_AuthFailureLeavesAnonymous(t *testing.T) {
	store := &fakeStore{}
	authErr := errors.New("Incorrect credentials")
	resolver := &fakeResolver{authErr: authErr}
	m := NewMachine(store, resolver, zap.NewNop())
	m.Init(context.Background())

	err := m.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Incorrect credentials", err.Error())

	snap := m.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, snap.User)
	_, ok := store.Read()
	assert.False(t, ok, "no credential persisted on failed login")
}

func TestLogout_LocalAndSynchronous(t *testing.T) {
	store := &fakeStore{}
	require.NoError(t, store.Save("tok"))
	resolver := &fakeResolver{profile: userProfile()}
	m := NewMachine(store, resolver, zap.NewNop())
	m.Init(context.Background())
	require.Equal(t, StateAuthenticated, m.Snapshot().State)

	m.Logout()

	snap := m.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, snap.User)
	assert.Empty(t, m.Token())
	_, ok := store.Read()
	assert.False(t, ok)
}

func TestLogin_RefusedWhileResolving(t *testing.T) {
	store := &fakeStore{}
	require.NoError(t, store.Save("tok"))
	gate := make(chan struct{})
	resolver := &fakeResolver{profile: userProfile(), meGate: gate}
	m := NewMachine(store, resolver, zap.NewNop())

	done := make(chan struct{})
	go func() {
		m.Init(context.Background())
		close(done)
	}()

	// Wait until the machine reports resolving.
	for m.Snapshot().State != StateResolving {
		runtime.Gosched()
	}

	err := m.Login(context.Background(), "a@b.com", "pw")
	assert.ErrorIs(t, err, ErrResolutionInFlight)

	close(gate)
	<-done
}

func TestStaleResolutionDoesNotResurrectSession(t *testing.T) {
	store := &fakeStore{}
	require.NoError(t, store.Save("tok"))
	gate := make(chan struct{})
	resolver := &fakeResolver{profile: userProfile(), meGate: gate}
	m := NewMachine(store, resolver, zap.NewNop())

	done := make(chan struct{})
	go func() {
		m.Init(context.Background()) // attempt A, blocked inside Me
		close(done)
	}()
	for m.Snapshot().State != StateResolving {
		runtime.Gosched()
	}

	// B: explicit logout completes before A.
	m.Logout()
	require.Equal(t, StateAnonymous, m.Snapshot().State)

	// A finishes successfully but is superseded.
	close(gate)
	<-done

	snap := m.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State, "stale resolution must not resurrect the session")
	assert.Nil(t, snap.User)
	assert.Empty(t, m.Token())
}

func TestSubscribe_NotifiedOnTransitions(t *testing.T) {
	store := &fakeStore{}
	require.NoError(t, store.Save("tok"))
	resolver := &fakeResolver{profile: userProfile()}
	m := NewMachine(store, resolver, zap.NewNop())

	var states []State
	m.Subscribe(func(snap Snapshot) {
		states = append(states, snap.State)
	})

	m.Init(context.Background())
	m.Logout()

	assert.Equal(t, []State{StateResolving, StateAuthenticated, StateAnonymous}, states)
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateUnresolved, "unresolved"},
		{StateResolving, "resolving"},
		{StateAuthenticated, "authenticated"},
		{StateAnonymous, "anonymous"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
