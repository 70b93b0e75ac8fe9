package console

import (
	"context"
	"fmt"

	"github.com/antigravity/console/internal/api"
	"github.com/antigravity/console/internal/models"
	"go.uber.org/zap"
)

// toggleIntegration flips an ad platform on or off. The new state is shown
// immediately and persisted in the background; a failed save is reported
// with the reverted state so the view never silently diverges from what
// the backend holds.
func (c *Console) toggleIntegration(ctx context.Context, platform string) {
	client, token := c.apiFor()

	cfg, err := client.Config(ctx, token)
	if err != nil {
		c.log.Warn("config fetch failed", zap.Error(err))
		fmt.Fprintln(c.out, "Could not load integrations. Run 'open integrations' to retry.")
		return
	}

	section := platformSection(&cfg, platform)
	if section == nil {
		fmt.Fprintf(c.out, "Unknown platform %q\n", platform)
		return
	}
	section.Enabled = !section.Enabled
	renderPlatform(c.out, platform, *section)

	go func() {
		if err := client.UpdateConfig(context.WithoutCancel(ctx), token, cfg); err != nil {
			c.log.Warn("integration save failed", zap.String("platform", platform), zap.Error(err))
			fmt.Fprintf(c.out, "\nSaving %s failed — the change was not applied. Run 'open integrations' to reconcile.\n", platform)
		}
	}()
}

func platformSection(cfg *models.TenantConfig, platform string) *models.AdPlatformConfig {
	switch platform {
	case "meta":
		return &cfg.AdPlatforms.Meta
	case "google":
		return &cfg.AdPlatforms.Google
	case "snap":
		return &cfg.AdPlatforms.Snap
	case "tiktok":
		return cfg.AdPlatforms.TikTok
	}
	return nil
}

// setSheet links a spreadsheet as the sales data source.
func (c *Console) setSheet(ctx context.Context, spreadsheetID string) {
	client, token := c.apiFor()

	cfg, err := client.Config(ctx, token)
	if err != nil {
		c.log.Warn("config fetch failed", zap.Error(err))
		fmt.Fprintln(c.out, "Could not load settings. Run 'open sales' to retry.")
		return
	}
	cfg.SalesSourceType = "google_sheets"
	cfg.GoogleSheets.SpreadsheetID = spreadsheetID
	if cfg.GoogleSheets.RangeName == "" {
		cfg.GoogleSheets.RangeName = "Feuille 1!A2:C"
	}

	if err := client.UpdateConfig(ctx, token, cfg); err != nil {
		c.log.Warn("config save failed", zap.Error(err))
		fmt.Fprintln(c.out, "Saving the spreadsheet failed. Try again.")
		return
	}
	fmt.Fprintf(c.out, "Sales source set to spreadsheet %s\n", spreadsheetID)
}

// createSheet provisions a template spreadsheet for the tenant.
func (c *Console) createSheet(ctx context.Context, clientName string) {
	client, token := c.apiFor()

	result, err := client.CreateSheet(ctx, token, api.CreateSheetRequest{ClientName: clientName})
	if err != nil {
		c.log.Warn("sheet provisioning failed", zap.Error(err))
		fmt.Fprintln(c.out, "Could not create the spreadsheet. Try again.")
		return
	}
	fmt.Fprintf(c.out, "Created %q — %s\n", result.Title, result.SpreadsheetURL)
}

// activatePlan switches the organization's subscription plan.
func (c *Console) activatePlan(ctx context.Context, plan string) {
	client, token := c.apiFor()

	if err := client.ActivateBilling(ctx, token, models.Plan(plan)); err != nil {
		c.log.Warn("plan activation failed", zap.String("plan", plan), zap.Error(err))
		fmt.Fprintln(c.out, "Could not activate the plan. Try again.")
		return
	}
	fmt.Fprintf(c.out, "Plan %s activated.\n", plan)
}

func (c *Console) showInvoices(ctx context.Context) {
	client, token := c.apiFor()

	invoices, err := client.Invoices(ctx, token)
	if err != nil {
		c.log.Warn("invoice fetch failed", zap.Error(err))
		fmt.Fprintln(c.out, "Could not load invoices. Run 'invoices' to retry.")
		return
	}
	renderInvoices(c.out, invoices)
}

// checkout starts a payment-provider checkout session. A missing price
// identifier hard-fails with a logged diagnostic rather than silently
// proceeding.
func (c *Console) checkout(ctx context.Context) {
	if c.opts.CheckoutPriceID == "" {
		c.log.Error("checkout misconfigured: CHECKOUT_PRICE_ID is not set")
		fmt.Fprintln(c.out, "Checkout is not configured. Set CHECKOUT_PRICE_ID and restart.")
		return
	}
	client, token := c.apiFor()

	session, err := client.Checkout(ctx, token, api.CheckoutRequest{
		PriceID:    c.opts.CheckoutPriceID,
		SuccessURL: c.opts.APIBaseURL + "/checkout/success",
		CancelURL:  c.opts.APIBaseURL + "/checkout/cancel",
	})
	if err != nil {
		c.log.Warn("checkout failed", zap.Error(err))
		fmt.Fprintln(c.out, "Could not start checkout. Try again.")
		return
	}
	fmt.Fprintf(c.out, "Complete your purchase at: %s\n", session.URL)
}
