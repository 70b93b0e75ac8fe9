package demoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/antigravity/console/internal/models"
	"go.uber.org/zap"
)

func TestDemoEndpoints(t *testing.T) {
	server := NewServer(zap.NewNop())
	ts := httptest.NewServer(server.Router())
	defer ts.Close()

	t.Run("me", func(t *testing.T) {
		var profile models.UserProfile
		getJSON(t, ts.URL+"/api/me", &profile)
		if profile.Email != "demo@antigravity.app" {
			t.Errorf("unexpected email %q", profile.Email)
		}
		if profile.Plan != models.PlanGrowth {
			t.Errorf("unexpected plan %q", profile.Plan)
		}
		if profile.Role != models.RoleUser {
			t.Errorf("demo profile must not be admin, got %q", profile.Role)
		}
	})

	t.Run("campaigns", func(t *testing.T) {
		var campaigns []models.Campaign
		getJSON(t, ts.URL+"/api/campaigns", &campaigns)
		if len(campaigns) == 0 {
			t.Fatal("expected simulated campaigns")
		}
		for _, c := range campaigns {
			if c.ID == "" || c.Name == "" {
				t.Errorf("campaign missing id or name: %+v", c)
			}
			switch c.BudgetRecommendation.Action {
			case "INCREASE", "DECREASE", "MAINTAIN":
			default:
				t.Errorf("unexpected recommendation action %q", c.BudgetRecommendation.Action)
			}
		}
	})

	t.Run("global status", func(t *testing.T) {
		var status models.GlobalStatus
		getJSON(t, ts.URL+"/api/global-status", &status)
		if status.Daily.Cap == nil || status.Weekly.Cap == nil {
			t.Error("expected demo capacity caps to be set")
		}
	})

	t.Run("config round trip", func(t *testing.T) {
		var cfg models.TenantConfig
		getJSON(t, ts.URL+"/api/config", &cfg)
		if !cfg.AdPlatforms.Meta.Enabled {
			t.Error("expected meta enabled in the demo dataset")
		}

		cfg.AdPlatforms.Meta.Enabled = false
		body, _ := json.Marshal(cfg)
		resp, err := http.Post(ts.URL+"/api/config", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("unexpected status %d", resp.StatusCode)
		}

		var updated models.TenantConfig
		getJSON(t, ts.URL+"/api/config", &updated)
		if updated.AdPlatforms.Meta.Enabled {
			t.Error("expected the toggle to persist in memory")
		}
	})

	t.Run("invalid config payload", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/config", "application/json", bytes.NewReader([]byte("not json")))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})
}

func getJSON(t *testing.T, url string, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}
