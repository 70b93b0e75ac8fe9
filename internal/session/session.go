// Package session tracks the client-side authentication lifecycle: it
// owns the persisted credential, resolves it into a user profile, and
// exposes the current state to the rest of the console.
package session

import (
	"context"
	"errors"

	"github.com/antigravity/console/internal/models"
)

// State is the session lifecycle position.
type State int

const (
	// StateUnresolved is the initial state before any check has run.
	StateUnresolved State = iota
	// StateResolving means a credential check is in flight.
	StateResolving
	// StateAuthenticated means a profile has been verified.
	StateAuthenticated
	// StateAnonymous means no valid credential is held.
	StateAnonymous
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateResolving:
		return "resolving"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the session at one point in time.
type Snapshot struct {
	State State
	// User is non-nil only while State is StateAuthenticated.
	User *models.UserProfile
}

// ErrResolutionInFlight is returned by Login while a prior resolution has
// not completed yet.
var ErrResolutionInFlight = errors.New("a sign-in attempt is already in progress")

// Resolver exchanges credentials with the identity API.
type Resolver interface {
	// Authenticate trades a username and password for a bearer credential.
	Authenticate(ctx context.Context, username, password string) (string, error)
	// Me resolves a credential into a verified profile.
	Me(ctx context.Context, token string) (models.UserProfile, error)
}

// Store persists the credential across runs.
type Store interface {
	Save(token string) error
	Read() (token string, ok bool)
	Clear() error
}
