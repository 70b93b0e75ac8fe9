package console

import (
	"fmt"
	"io"

	"github.com/antigravity/console/internal/models"
)

// View helpers are pure functions over already-fetched data so they stay
// trivially testable.

func renderCampaigns(w io.Writer, campaigns []models.Campaign) {
	if len(campaigns) == 0 {
		fmt.Fprintln(w, "No campaigns yet.")
		return
	}
	fmt.Fprintln(w, "Campaigns:")
	for _, cp := range campaigns {
		fmt.Fprintf(w, "  %-28s %-8s budget €%.0f/day\n", cp.Name, cp.Status, cp.CurrentBudget)
		fmt.Fprintf(w, "    %s: %.0f / %.0f\n", metricName(cp.Metrics), cp.Metrics.Actual, cp.Metrics.Objective)
		fmt.Fprintf(w, "    recommendation: %s ×%.2f — %s\n",
			cp.BudgetRecommendation.Action, cp.BudgetRecommendation.Multiplier, cp.BudgetRecommendation.Reason)
	}
}

func metricName(m models.CampaignMetrics) string {
	if m.Name != "" {
		return m.Name
	}
	return "Currency"
}

func renderGlobalStatus(w io.Writer, status models.GlobalStatus) {
	fmt.Fprintln(w, "Global capacity:")
	renderWindow(w, "daily", status.Daily)
	renderWindow(w, "weekly", status.Weekly)
}

func renderWindow(w io.Writer, label string, win models.CapacityWindow) {
	if win.Cap == nil {
		fmt.Fprintf(w, "  %-7s %.0f %s (no cap)\n", label, win.Current, win.Unit)
		return
	}
	fmt.Fprintf(w, "  %-7s %.0f / %.0f %s\n", label, win.Current, *win.Cap, win.Unit)
}

func renderIntegrations(w io.Writer, cfg models.TenantConfig) {
	fmt.Fprintln(w, "Ad platforms:")
	renderPlatform(w, "meta", cfg.AdPlatforms.Meta)
	renderPlatform(w, "google", cfg.AdPlatforms.Google)
	renderPlatform(w, "snap", cfg.AdPlatforms.Snap)
	if cfg.AdPlatforms.TikTok != nil {
		renderPlatform(w, "tiktok", *cfg.AdPlatforms.TikTok)
	}
}

func renderPlatform(w io.Writer, name string, p models.AdPlatformConfig) {
	state := "off"
	if p.Enabled {
		state = "on"
		if p.DryRun {
			state = "on (dry run)"
		}
	}
	fmt.Fprintf(w, "  %-8s %s\n", name, state)
}

func renderSalesSource(w io.Writer, cfg models.TenantConfig) {
	fmt.Fprintf(w, "Sales source: %s\n", cfg.SalesSourceType)
	if cfg.GoogleSheets.SpreadsheetID != "" {
		fmt.Fprintf(w, "Spreadsheet: %s (%s)\n", cfg.GoogleSheets.SpreadsheetID, cfg.GoogleSheets.RangeName)
	}
}

func renderBotSettings(w io.Writer, settings *models.BotSettings) {
	if settings == nil {
		fmt.Fprintln(w, "Bot settings not configured yet.")
		return
	}
	fmt.Fprintf(w, "Budget cap: €%d\n", settings.GlobalBudgetCap)
	fmt.Fprintf(w, "Target ROAS: %.1f\n", settings.TargetROAS)
	fmt.Fprintf(w, "Frequency: %s\n", settings.OptimizationFrequency)
	fmt.Fprintf(w, "Auto scaling: %v\n", settings.AutoScalingEnabled)
}

func renderAdminStats(w io.Writer, stats models.AdminStats) {
	fmt.Fprintf(w, "Organizations: %d · Active users: %d · MRR: €%d\n",
		stats.TotalOrganizations, stats.ActiveUsers, stats.MRR)
}

func renderOrganizations(w io.Writer, orgs []models.Organization) {
	for _, org := range orgs {
		fmt.Fprintf(w, "  #%-4d %-24s %-28s %d users  %s/%s\n",
			org.ID, org.Name, org.AdminEmail, org.UserCount, org.Plan, org.Status)
	}
}

func renderInvoices(w io.Writer, invoices []models.Invoice) {
	if len(invoices) == 0 {
		fmt.Fprintln(w, "No invoices yet.")
		return
	}
	for _, inv := range invoices {
		fmt.Fprintf(w, "  %-14s %-10s %s\n", inv.Date, inv.Amount, inv.Status)
	}
}
