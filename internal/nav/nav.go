// Package nav enforces per-page session requirements. Decisions are pure
// functions of the page requirement and the current session snapshot, so
// views never redirect while the initial resolution is still settling.
package nav

import (
	"net/url"

	"github.com/antigravity/console/internal/models"
	"github.com/antigravity/console/internal/session"
)

// Page names used as navigation targets.
const (
	PageDashboard    = "dashboard"
	PageIntegrations = "integrations"
	PageSales        = "sales"
	PageSettings     = "settings"
	PageBilling      = "billing"
	PageAdmin        = "admin"
	PageLogin        = "login"
	PageSignup       = "signup"
	PagePricing      = "pricing"
	PageDemo         = "demo"
)

// Requirement is the session precondition a page declares.
type Requirement int

const (
	// Public pages render regardless of session state.
	Public Requirement = iota
	// RequiresAuth pages render only for authenticated sessions.
	RequiresAuth
	// RequiresAnon pages (login, signup) render only for anonymous sessions.
	RequiresAnon
	// RequiresAdmin pages render only for authenticated admin sessions.
	RequiresAdmin
)

// Requirements maps each guarded page to its precondition.
var Requirements = map[string]Requirement{
	PageDashboard:    RequiresAuth,
	PageIntegrations: RequiresAuth,
	PageSales:        RequiresAuth,
	PageSettings:     RequiresAuth,
	PageBilling:      RequiresAuth,
	PageAdmin:        RequiresAdmin,
	PageLogin:        RequiresAnon,
	PageSignup:       RequiresAnon,
	PagePricing:      Public,
	PageDemo:         Public,
}

// Action is what the view should do for the current state.
type Action int

const (
	// Render shows the page normally.
	Render Action = iota
	// Loading shows a neutral loading indication; no redirect yet.
	Loading
	// Redirect sends the user to Decision.Target.
	Redirect
)

// Decision is the guard's verdict for one page visit.
type Decision struct {
	Action Action
	// Target is the destination page when Action is Redirect. It may carry
	// a query string, e.g. "pricing?checkout_plan=starter".
	Target string
}

// Decide returns the guard verdict for a page with the given requirement.
// params are the query parameters of the originating request; a "plan"
// checkout parameter on an anonymous-only page is carried forward to the
// post-redirect destination instead of dropped.
func Decide(req Requirement, snap session.Snapshot, params url.Values) Decision {
	switch req {
	case RequiresAuth, RequiresAdmin:
		switch snap.State {
		case session.StateUnresolved, session.StateResolving:
			return Decision{Action: Loading}
		case session.StateAnonymous:
			return Decision{Action: Redirect, Target: PageLogin}
		}
		if req == RequiresAdmin && (snap.User == nil || snap.User.Role != models.RoleAdmin) {
			return Decision{Action: Redirect, Target: PageDashboard}
		}
		return Decision{Action: Render}

	case RequiresAnon:
		switch snap.State {
		case session.StateUnresolved, session.StateResolving:
			return Decision{Action: Loading}
		case session.StateAuthenticated:
			if plan := params.Get("plan"); plan != "" {
				q := url.Values{"checkout_plan": {plan}}
				return Decision{Action: Redirect, Target: PagePricing + "?" + q.Encode()}
			}
			return Decision{Action: Redirect, Target: PageDashboard}
		}
		return Decision{Action: Render}
	}
	return Decision{Action: Render}
}
