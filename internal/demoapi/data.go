// Package demoapi serves the simulated dataset behind the console's demo
// mode. It mirrors the shape of the real API but requires no
// authentication and holds everything in memory.
package demoapi

import (
	"github.com/antigravity/console/internal/models"
	"github.com/google/uuid"
)

// demoOrg is the tenant name shown inside the demo.
const demoOrg = "Acme Demo Co"

// newDataset builds the simulated tenant data served by the demo API.
// Campaign identifiers are random per process; everything else is fixed so
// the demo looks the same on every visit.
func newDataset() *dataset {
	org := demoOrg
	capDaily := 120.0
	capWeekly := 600.0

	return &dataset{
		profile: models.UserProfile{
			Email:        "demo@antigravity.app",
			Role:         models.RoleUser,
			Organization: &org,
			Plan:         models.PlanGrowth,
		},
		campaigns: []models.Campaign{
			{
				ID:     uuid.NewString(),
				Name:   "Search - Brand",
				Status: "ACTIVE",
				Metrics: models.CampaignMetrics{
					Actual: 4200, Objective: 5000, Name: "Currency",
				},
				BudgetRecommendation: models.BudgetRecommendation{
					Action: "INCREASE", Multiplier: 1.2,
					Reason: "Tracking 16% under objective with strong ROAS",
				},
				CurrentBudget: 150,
			},
			{
				ID:     uuid.NewString(),
				Name:   "Social - Retargeting",
				Status: "ACTIVE",
				Metrics: models.CampaignMetrics{
					Actual: 96, Objective: 80, Name: "CVR",
				},
				BudgetRecommendation: models.BudgetRecommendation{
					Action: "MAINTAIN", Multiplier: 1.0,
					Reason: "Objective exceeded; budget at efficient frontier",
				},
				CurrentBudget: 90,
			},
			{
				ID:     uuid.NewString(),
				Name:   "Display - Prospecting",
				Status: "ACTIVE",
				Metrics: models.CampaignMetrics{
					Actual: 1100, Objective: 2400, Name: "Currency",
				},
				BudgetRecommendation: models.BudgetRecommendation{
					Action: "DECREASE", Multiplier: 0.7,
					Reason: "CPA 54% above target over the last 7 days",
				},
				CurrentBudget: 220,
			},
		},
		status: models.GlobalStatus{
			Daily:  models.CapacityWindow{Cap: &capDaily, Current: 23, Unit: "Leads/Day"},
			Weekly: models.CapacityWindow{Cap: &capWeekly, Current: 115, Unit: "Leads/Week"},
		},
		config: models.TenantConfig{
			SalesSourceType: "mock",
			GoogleSheets: models.GoogleSheetsConfig{
				SpreadsheetID: "demo-spreadsheet",
				RangeName:     "Feuille 1!A2:C",
			},
			AdPlatforms: models.AdPlatforms{
				Meta:   models.AdPlatformConfig{Enabled: true, DryRun: true},
				Google: models.AdPlatformConfig{Enabled: false},
				Snap:   models.AdPlatformConfig{Enabled: false},
			},
			BotSettings: &models.BotSettings{
				GlobalBudgetCap:       5000,
				TargetROAS:            2.5,
				OptimizationFrequency: "daily",
				AutoScalingEnabled:    true,
			},
			Billing: &models.BillingConfig{CurrentPlan: models.PlanGrowth, Status: "active"},
		},
	}
}

// dataset holds the in-memory demo state. Config updates are accepted and
// kept for the lifetime of the process so toggles feel real.
type dataset struct {
	profile   models.UserProfile
	campaigns []models.Campaign
	status    models.GlobalStatus
	config    models.TenantConfig
}
