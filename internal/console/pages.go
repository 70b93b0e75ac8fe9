package console

import (
	"context"
	"fmt"
	"net/url"

	"github.com/antigravity/console/internal/capability"
	"github.com/antigravity/console/internal/nav"
	"go.uber.org/zap"
)

// renderPage fetches and renders the named page. Background fetch failures
// degrade to an empty view with a retry hint; they never crash the shell.
func (c *Console) renderPage(ctx context.Context, page string, params url.Values) {
	switch page {
	case nav.PageDashboard:
		c.renderDashboard(ctx)
	case nav.PageIntegrations:
		c.renderIntegrations(ctx)
	case nav.PageSales:
		c.renderSales(ctx)
	case nav.PageSettings:
		c.renderSettings(ctx)
	case nav.PageBilling:
		c.renderBilling(ctx)
	case nav.PageAdmin:
		c.renderAdmin(ctx)
	case nav.PageLogin:
		fmt.Fprintln(c.out, "Type 'login' to sign in, 'signup' to create an account, or 'demo' to explore.")
	case nav.PageSignup:
		fmt.Fprintln(c.out, "Type 'signup' to create an account.")
	case nav.PagePricing:
		c.renderPricing(params)
	default:
		fmt.Fprintf(c.out, "Unknown page %q\n", page)
	}
}

func (c *Console) renderDashboard(ctx context.Context) {
	client, token := c.apiFor()

	campaigns, err := client.Campaigns(ctx, token)
	if err != nil {
		c.log.Warn("dashboard fetch failed", zap.Error(err))
		fmt.Fprintln(c.out, "Could not load campaigns. Run 'open dashboard' to retry.")
		return
	}
	status, err := client.GlobalStatus(ctx, token)
	if err != nil {
		c.log.Warn("global status fetch failed", zap.Error(err))
		renderCampaigns(c.out, campaigns)
		fmt.Fprintln(c.out, "Global status unavailable.")
		return
	}

	renderGlobalStatus(c.out, status)
	renderCampaigns(c.out, campaigns)
}

func (c *Console) renderIntegrations(ctx context.Context) {
	client, token := c.apiFor()
	cfg, err := client.Config(ctx, token)
	if err != nil {
		c.log.Warn("config fetch failed", zap.Error(err))
		fmt.Fprintln(c.out, "Could not load integrations. Run 'open integrations' to retry.")
		return
	}
	renderIntegrations(c.out, cfg)
	fmt.Fprintln(c.out, "Use 'toggle <meta|google|snap>' to enable or disable a platform.")
}

func (c *Console) renderSales(ctx context.Context) {
	client, token := c.apiFor()
	cfg, err := client.Config(ctx, token)
	if err != nil {
		c.log.Warn("config fetch failed", zap.Error(err))
		fmt.Fprintln(c.out, "Could not load sales settings. Run 'open sales' to retry.")
		return
	}
	renderSalesSource(c.out, cfg)

	email, err := client.ServiceAccountEmail(ctx, token)
	if err != nil {
		c.log.Warn("service account fetch failed", zap.Error(err))
		return
	}
	if email != nil {
		fmt.Fprintf(c.out, "Share your sheet with: %s\n", *email)
	}
	fmt.Fprintln(c.out, "Use 'set-sheet <id>' to link a spreadsheet or 'create-sheet <name>' to provision one.")
}

func (c *Console) renderSettings(ctx context.Context) {
	client, token := c.apiFor()
	cfg, err := client.Config(ctx, token)
	if err != nil {
		c.log.Warn("config fetch failed", zap.Error(err))
		fmt.Fprintln(c.out, "Could not load settings. Run 'open settings' to retry.")
		return
	}
	renderBotSettings(c.out, cfg.BotSettings)
}

func (c *Console) renderBilling(ctx context.Context) {
	snap := c.machine.Snapshot()
	gateCtx := capability.Context{Demo: c.inDemo()}
	if capability.IsNavItemLocked(nav.PageBilling, snap, gateCtx) {
		fmt.Fprintln(c.out, "Billing is not available on the free plan. Run 'checkout' to upgrade.")
	}
	if snap.User != nil {
		fmt.Fprintf(c.out, "Current plan: %s\n", snap.User.Plan)
	}
	fmt.Fprintln(c.out, "Commands: activate <plan>, invoices, checkout")
}

func (c *Console) renderAdmin(ctx context.Context) {
	// The guard already redirected non-admins; this is the second fence.
	if !capability.CanAccessAdminConsole(c.machine.Snapshot()) {
		fmt.Fprintln(c.out, "Admin access required.")
		return
	}
	client, token := c.apiFor()

	stats, err := client.AdminStats(ctx, token)
	if err != nil {
		c.log.Warn("admin stats fetch failed", zap.Error(err))
		fmt.Fprintln(c.out, "Could not load admin stats. Run 'open admin' to retry.")
		return
	}
	orgs, err := client.AdminOrganizations(ctx, token)
	if err != nil {
		c.log.Warn("admin organizations fetch failed", zap.Error(err))
		renderAdminStats(c.out, stats)
		return
	}
	renderAdminStats(c.out, stats)
	renderOrganizations(c.out, orgs)
}

func (c *Console) renderPricing(params url.Values) {
	fmt.Fprintln(c.out, "Plans: free €0 · starter €39 · growth €149 · super €299")
	if plan := params.Get("checkout_plan"); plan != "" {
		fmt.Fprintf(c.out, "Continue your %s checkout with the 'checkout' command.\n", plan)
	}
}

func (c *Console) renderWhoami() {
	snap := c.machine.Snapshot()
	fmt.Fprintf(c.out, "session: %s\n", snap.State)
	if snap.User != nil {
		org := "none"
		if snap.User.Organization != nil {
			org = *snap.User.Organization
		}
		fmt.Fprintf(c.out, "email: %s\nrole: %s\norganization: %s\nplan: %s\n",
			snap.User.Email, snap.User.Role, org, snap.User.Plan)
	}
}

// renderNav prints the sidebar with locked items marked, mirroring what
// the capability gate allows in the current context.
func (c *Console) renderNav() {
	snap := c.machine.Snapshot()
	gateCtx := capability.Context{Demo: c.inDemo()}
	items := []string{nav.PageDashboard, nav.PageIntegrations, nav.PageSales, nav.PageSettings, nav.PageBilling}

	for _, item := range items {
		marker := " "
		if capability.IsNavItemLocked(item, snap, gateCtx) {
			marker = "🔒"
		}
		fmt.Fprintf(c.out, " %s %s\n", marker, item)
	}
	if capability.CanAccessAdminConsole(snap) {
		fmt.Fprintf(c.out, "   %s\n", nav.PageAdmin)
	}
}
