// Package console implements the interactive shell: it wires the session
// machine, navigation guard, and capability gate to the per-page views.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/antigravity/console/internal/api"
	"github.com/antigravity/console/internal/capability"
	"github.com/antigravity/console/internal/config"
	"github.com/antigravity/console/internal/demoapi"
	"github.com/antigravity/console/internal/nav"
	"github.com/antigravity/console/internal/session"
	"go.uber.org/zap"
)

// Console drives the interactive shell over a session machine and an API
// client.
type Console struct {
	opts    *config.Options
	log     *zap.Logger
	machine *session.Machine
	client  *api.Client

	// demo mode state; non-nil demoClient means the views read from the
	// local simulated API.
	demoClient *api.Client
	demoCancel context.CancelFunc

	route string

	scanner *bufio.Scanner
	out     io.Writer
}

// New returns a Console reading commands from in and rendering to out.
func New(opts *config.Options, machine *session.Machine, client *api.Client, log *zap.Logger, in io.Reader, out io.Writer) *Console {
	return &Console{
		opts:    opts,
		log:     log,
		machine: machine,
		client:  client,
		route:   nav.PageLogin,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Run establishes the session from the persisted credential and enters the
// command loop. It returns when the input stream ends or on "exit".
func (c *Console) Run(ctx context.Context) {
	c.machine.Init(ctx)
	if c.machine.Snapshot().State == session.StateAuthenticated {
		c.route = nav.PageDashboard
	}
	c.openPage(ctx, c.route, nil)

	for {
		fmt.Fprint(c.out, "antigravity> ")
		if !c.scanner.Scan() {
			break
		}
		line := strings.TrimSpace(c.scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		if !c.dispatch(ctx, args) {
			return
		}
	}
}

// dispatch executes one command. It returns false when the shell should
// terminate.
func (c *Console) dispatch(ctx context.Context, args []string) bool {
	switch args[0] {
	case "help":
		fmt.Fprintln(c.out, "Commands: help, open <page> [key=value...], login, signup, logout,")
		fmt.Fprintln(c.out, "  whoami, nav, toggle <platform>, set-sheet <id>, create-sheet <name>,")
		fmt.Fprintln(c.out, "  activate <plan>, invoices, checkout, demo, exit-demo, exit")
	case "open":
		if len(args) < 2 {
			fmt.Fprintln(c.out, "Usage: open <page>")
			return true
		}
		c.openPage(ctx, args[1], parseParams(args[2:]))
	case "login":
		c.loginForm(ctx)
	case "signup":
		c.signupForm(ctx, parseParams(args[1:]))
	case "logout":
		c.machine.Logout()
		c.route = nav.PageLogin
		fmt.Fprintln(c.out, "Signed out.")
	case "whoami":
		c.renderWhoami()
	case "nav":
		c.renderNav()
	case "toggle":
		if len(args) < 2 {
			fmt.Fprintln(c.out, "Usage: toggle <meta|google|snap>")
			return true
		}
		c.toggleIntegration(ctx, args[1])
	case "set-sheet":
		if len(args) < 2 {
			fmt.Fprintln(c.out, "Usage: set-sheet <spreadsheet-id>")
			return true
		}
		c.setSheet(ctx, args[1])
	case "create-sheet":
		if len(args) < 2 {
			fmt.Fprintln(c.out, "Usage: create-sheet <client-name>")
			return true
		}
		c.createSheet(ctx, strings.Join(args[1:], " "))
	case "activate":
		if len(args) < 2 {
			fmt.Fprintln(c.out, "Usage: activate <starter|growth|super>")
			return true
		}
		c.activatePlan(ctx, args[1])
	case "invoices":
		c.showInvoices(ctx)
	case "checkout":
		c.checkout(ctx)
	case "demo":
		c.enterDemo(ctx)
	case "exit-demo":
		c.exitDemo()
	case "exit":
		c.exitDemo()
		fmt.Fprintln(c.out, "Bye")
		return false
	default:
		fmt.Fprintln(c.out, "Unknown command. Type 'help' for a list of commands.")
	}
	return true
}

// openPage runs the navigation guard for the requested page and renders
// the outcome, following at most one redirect.
func (c *Console) openPage(ctx context.Context, page string, params url.Values) {
	if c.inDemo() {
		c.openDemoPage(ctx, page)
		return
	}
	if page == nav.PageDemo {
		c.enterDemo(ctx)
		return
	}

	req, ok := nav.Requirements[page]
	if !ok {
		fmt.Fprintf(c.out, "Unknown page %q\n", page)
		return
	}

	decision := nav.Decide(req, c.machine.Snapshot(), params)
	switch decision.Action {
	case nav.Loading:
		fmt.Fprintln(c.out, "Loading…")
		return
	case nav.Redirect:
		target, query := splitTarget(decision.Target)
		fmt.Fprintf(c.out, "→ %s\n", decision.Target)
		c.route = target
		c.renderPage(ctx, target, query)
		return
	}
	c.route = page
	c.renderPage(ctx, page, params)
}

// inDemo reports whether demo mode is active.
func (c *Console) inDemo() bool {
	return c.demoClient != nil
}

// apiFor returns the client and bearer token the current context reads
// with. Demo mode reads the local simulated API without credentials.
func (c *Console) apiFor() (*api.Client, string) {
	if c.inDemo() {
		return c.demoClient, ""
	}
	return c.client, c.machine.Token()
}

// enterDemo starts the local simulated API and switches the views to it.
// The demo requires no authentication.
func (c *Console) enterDemo(ctx context.Context) {
	if c.inDemo() {
		fmt.Fprintln(c.out, "Already in demo mode.")
		return
	}
	demoCtx, cancel := context.WithCancel(ctx)
	server := demoapi.NewServer(c.log)
	base, err := server.Listen(demoCtx)
	if err != nil {
		cancel()
		fmt.Fprintln(c.out, "Could not start demo:", err)
		return
	}
	c.demoClient = api.New(base, nil, c.log)
	c.demoCancel = cancel
	c.route = nav.PageDemo
	fmt.Fprintln(c.out, "Demo mode — simulated data, no account required.")
	c.openDemoPage(ctx, nav.PageDashboard)
}

// exitDemo stops the simulated API and returns to the live context.
func (c *Console) exitDemo() {
	if !c.inDemo() {
		return
	}
	c.demoCancel()
	c.demoClient = nil
	c.demoCancel = nil
	if c.machine.Snapshot().State == session.StateAuthenticated {
		c.route = nav.PageDashboard
	} else {
		c.route = nav.PageLogin
	}
	fmt.Fprintln(c.out, "Left demo mode.")
}

// openDemoPage renders a page inside the demo route context. Items outside
// the demo-enabled subset are locked rather than guarded by session state.
func (c *Console) openDemoPage(ctx context.Context, page string) {
	gateCtx := capability.Context{Demo: true}
	if capability.IsNavItemLocked(page, c.machine.Snapshot(), gateCtx) {
		fmt.Fprintf(c.out, "%s is not available in the demo. Sign up to unlock it.\n", page)
		return
	}
	c.route = nav.PageDemo + "/" + page
	c.renderPage(ctx, page, nil)
}

// parseParams converts key=value arguments into query values.
func parseParams(args []string) url.Values {
	params := url.Values{}
	for _, arg := range args {
		if k, v, ok := strings.Cut(arg, "="); ok {
			params.Add(k, v)
		}
	}
	return params
}

// splitTarget separates a redirect target from its query string.
func splitTarget(target string) (string, url.Values) {
	page, rawQuery, ok := strings.Cut(target, "?")
	if !ok {
		return target, nil
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return page, nil
	}
	return page, query
}
