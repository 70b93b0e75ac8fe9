// Package models defines the data structures exchanged with the
// Antigravity Ads API and derived by the console.
package models

// Role identifies the authorization level of an account.
type Role string

const (
	// RoleUser is a regular tenant account.
	RoleUser Role = "user"
	// RoleAdmin is a superuser account with access to the admin console.
	RoleAdmin Role = "admin"
)

// Plan is the subscription tier controlling feature access.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanStarter Plan = "starter"
	PlanGrowth  Plan = "growth"
	PlanSuper   Plan = "super"
)

// UserProfile is the resolved identity record returned by GET /api/me.
type UserProfile struct {
	// Email is unique per account.
	Email string `json:"email"`
	// Role is "user" or "admin".
	Role Role `json:"role"`
	// Organization is the tenant name, or nil when the account has no
	// tenant association yet.
	Organization *string `json:"organization"`
	// Plan drives capability decisions.
	Plan Plan `json:"plan"`
}

// Organization is the read-only tenant projection used by the admin view.
type Organization struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	AdminEmail string `json:"admin_email"`
	UserCount  int    `json:"user_count"`
	Plan       Plan   `json:"plan"`
	Status     string `json:"status"`
}

// AdminStats holds the aggregate figures shown on the admin console.
type AdminStats struct {
	TotalOrganizations int `json:"total_organizations"`
	ActiveUsers        int `json:"active_users"`
	MRR                int `json:"mrr"`
}

// CampaignMetrics is actual-vs-objective performance for one campaign.
type CampaignMetrics struct {
	Actual    float64 `json:"actual"`
	Objective float64 `json:"objective"`
	// Name labels the metric, e.g. "Currency" or "CVR".
	Name string `json:"name,omitempty"`
}

// BudgetRecommendation is the optimizer's verdict for a campaign. The
// values are produced by an external service and displayed as-is.
type BudgetRecommendation struct {
	// Action is one of "INCREASE", "DECREASE", "MAINTAIN".
	Action     string  `json:"action"`
	Multiplier float64 `json:"multiplier"`
	Reason     string  `json:"reason"`
	PlatformID string  `json:"platform_id,omitempty"`
}

// Campaign is one row of the dashboard.
type Campaign struct {
	ID                   string               `json:"id"`
	Name                 string               `json:"name"`
	Status               string               `json:"status"`
	Metrics              CampaignMetrics      `json:"metrics"`
	BudgetRecommendation BudgetRecommendation `json:"budget_recommendation"`
	CurrentBudget        float64              `json:"current_budget"`
}

// CapacityWindow is one row of the global status card (daily or weekly).
type CapacityWindow struct {
	Cap     *float64 `json:"cap"`
	Current float64  `json:"current"`
	Unit    string   `json:"unit"`
}

// GlobalStatus is the capacity-vs-usage summary from /api/global-status.
type GlobalStatus struct {
	Daily  CapacityWindow `json:"daily"`
	Weekly CapacityWindow `json:"weekly"`
}

// GoogleSheetsConfig configures the spreadsheet sales source.
type GoogleSheetsConfig struct {
	SpreadsheetID string  `json:"spreadsheet_id"`
	RangeName     string  `json:"range_name"`
	DriveFolderID *string `json:"drive_folder_id,omitempty"`
}

// AdPlatformConfig holds credentials and switches for one ad platform.
type AdPlatformConfig struct {
	Enabled     bool   `json:"enabled"`
	AccessToken string `json:"access_token,omitempty"`
	AdAccountID string `json:"ad_account_id,omitempty"`
	AppID       string `json:"app_id,omitempty"`
	AppSecret   string `json:"app_secret,omitempty"`
	DryRun      bool   `json:"dry_run,omitempty"`
}

// AdPlatforms groups the supported ad platform sections by name.
type AdPlatforms struct {
	Meta   AdPlatformConfig  `json:"meta"`
	Google AdPlatformConfig  `json:"google"`
	Snap   AdPlatformConfig  `json:"snap"`
	TikTok *AdPlatformConfig `json:"tiktok,omitempty"`
}

// CRMConfig is the per-provider CRM section.
type CRMConfig struct {
	Enabled bool `json:"enabled"`
}

// CRMProviders groups the optional CRM integrations.
type CRMProviders struct {
	HubSpot    *CRMConfig `json:"hubspot,omitempty"`
	Salesforce *CRMConfig `json:"salesforce,omitempty"`
	Pipedrive  *CRMConfig `json:"pipedrive,omitempty"`
}

// BotSettings tunes the optimization bot.
type BotSettings struct {
	GlobalBudgetCap       int     `json:"global_budget_cap"`
	TargetROAS            float64 `json:"target_roas"`
	OptimizationFrequency string  `json:"optimization_frequency"`
	AutoScalingEnabled    bool    `json:"auto_scaling_enabled"`
}

// BillingConfig mirrors the billing section of the tenant config.
type BillingConfig struct {
	CurrentPlan Plan   `json:"current_plan"`
	Status      string `json:"status"`
}

// TenantConfig is the structured tenant configuration blob exchanged with
// GET/POST /api/config. Sections are named and typed rather than threaded
// around as an untyped map.
type TenantConfig struct {
	SalesSourceType string             `json:"sales_source_type"`
	GoogleSheets    GoogleSheetsConfig `json:"google_sheets"`
	AdPlatforms     AdPlatforms        `json:"ad_platforms"`
	CRM             *CRMProviders      `json:"crm,omitempty"`
	BotSettings     *BotSettings       `json:"bot_settings,omitempty"`
	Billing         *BillingConfig     `json:"billing,omitempty"`
}

// Invoice is one row of the billing history.
type Invoice struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
	Status string `json:"status"`
	PDFURL string `json:"pdf_url"`
}

// CheckoutSession is the payment-provider redirect returned by
// POST /api/checkout.
type CheckoutSession struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// SheetResult is the outcome of provisioning a client spreadsheet.
type SheetResult struct {
	Status         string `json:"status"`
	SpreadsheetID  string `json:"spreadsheet_id"`
	SpreadsheetURL string `json:"spreadsheet_url"`
	Title          string `json:"title"`
}
