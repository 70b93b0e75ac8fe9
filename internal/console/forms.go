package console

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/antigravity/console/internal/api"
	"github.com/antigravity/console/internal/nav"
)

// prompt reads one line of input for the given label.
func (c *Console) prompt(label string) string {
	fmt.Fprintf(c.out, "%s: ", label)
	if !c.scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(c.scanner.Text())
}

// loginForm runs the sign-in flow. A failed attempt prints the server's
// detail message inline and keeps the entered email for resubmission.
func (c *Console) loginForm(ctx context.Context) {
	decision := nav.Decide(nav.RequiresAnon, c.machine.Snapshot(), nil)
	if decision.Action == nav.Redirect {
		fmt.Fprintln(c.out, "Already signed in.")
		c.openPage(ctx, nav.PageDashboard, nil)
		return
	}

	email := c.prompt("Email")
	for {
		password := c.prompt("Password")
		err := c.machine.Login(ctx, email, password)
		if err == nil {
			c.route = nav.PageDashboard
			fmt.Fprintln(c.out, "Welcome back.")
			c.renderPage(ctx, nav.PageDashboard, nil)
			return
		}
		if errors.Is(err, api.ErrUnauthorized) {
			// Authenticated but the profile resolution failed; the machine
			// already settled back to anonymous.
			fmt.Fprintln(c.out, "Could not verify your session. Please try again.")
			return
		}
		fmt.Fprintln(c.out, "✗", err)
		if c.prompt("Retry? (y/n)") != "y" {
			return
		}
		if next := c.prompt("Email [" + email + "]"); next != "" {
			email = next
		}
	}
}

// signupForm runs account creation followed by an automatic login. A plan
// parameter carried from pricing survives the post-signup redirect.
func (c *Console) signupForm(ctx context.Context, params url.Values) {
	decision := nav.Decide(nav.RequiresAnon, c.machine.Snapshot(), params)
	if decision.Action == nav.Redirect {
		fmt.Fprintln(c.out, "Already signed in.")
		target, query := splitTarget(decision.Target)
		c.route = target
		c.renderPage(ctx, target, query)
		return
	}

	email := c.prompt("Email")
	password := c.prompt("Password")
	fullName := c.prompt("Full name")
	companyName := c.prompt("Company name")

	err := c.client.Register(ctx, api.RegisterRequest{
		Email:       email,
		Password:    password,
		FullName:    fullName,
		CompanyName: companyName,
	})
	if err != nil {
		fmt.Fprintln(c.out, "✗", err)
		return
	}

	if err := c.machine.Login(ctx, email, password); err != nil {
		fmt.Fprintln(c.out, "Account created — sign in with 'login'.")
		return
	}

	if plan := params.Get("plan"); plan != "" {
		query := url.Values{"checkout_plan": {plan}}
		c.route = nav.PagePricing
		c.renderPage(ctx, nav.PagePricing, query)
		return
	}
	c.route = nav.PageDashboard
	c.renderPage(ctx, nav.PageDashboard, nil)
}
