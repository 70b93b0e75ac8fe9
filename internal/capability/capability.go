// Package capability derives UI-visible permissions from the session
// snapshot and the current route context. Every function here is a pure
// derivation with no I/O, so it is unit-testable without network mocking.
package capability

import (
	"strings"

	"github.com/antigravity/console/internal/models"
	"github.com/antigravity/console/internal/nav"
	"github.com/antigravity/console/internal/session"
)

// demoEnabled is the subset of nav items usable inside the public demo.
var demoEnabled = map[string]bool{
	nav.PageDashboard:    true,
	nav.PageIntegrations: true,
	nav.PageSettings:     true,
}

// freeRestricted is the subset of nav items locked on the free plan.
var freeRestricted = map[string]bool{
	nav.PageSales:   true,
	nav.PageBilling: true,
}

// Context is the route-level context a capability check runs under.
type Context struct {
	// Demo is true when the current route is the public demo area.
	Demo bool
}

// CanAccessAdminConsole reports whether the admin console may be opened.
// It is true only for an authenticated admin; any other state, including
// a stale or still-resolving profile, is denied.
func CanAccessAdminConsole(snap session.Snapshot) bool {
	return snap.State == session.StateAuthenticated &&
		snap.User != nil &&
		snap.User.Role == models.RoleAdmin
}

// IsNavItemLocked reports whether a sidebar item is disabled for the
// current user and route context.
func IsNavItemLocked(item string, snap session.Snapshot, ctx Context) bool {
	if ctx.Demo {
		return !demoEnabled[item]
	}
	if snap.State == session.StateAuthenticated && snap.User != nil && snap.User.Plan == models.PlanFree {
		return freeRestricted[item]
	}
	return false
}

// IsDemoMode reports whether route is inside the public demo area. This is
// a route-level fact, independent of authentication.
func IsDemoMode(route string) bool {
	return route == nav.PageDemo || strings.HasPrefix(route, nav.PageDemo+"/")
}
