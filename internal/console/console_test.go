package console

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/antigravity/console/internal/api"
	"github.com/antigravity/console/internal/config"
	"github.com/antigravity/console/internal/models"
	"github.com/antigravity/console/internal/session"
	"github.com/antigravity/console/internal/tokenstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newBackend serves a minimal fake of the live API: one known account and
// empty tenant data.
func newBackend(t *testing.T, role models.Role) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("username") != "a@b.com" || r.PostForm.Get("password") != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Incorrect credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer"}`))
	})
	mux.HandleFunc("GET /api/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(models.UserProfile{
			Email: "a@b.com", Role: role, Plan: models.PlanStarter,
		})
	})
	mux.HandleFunc("GET /api/campaigns", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("GET /api/global-status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"daily":{"cap":null,"current":0,"unit":"Leads/Day"},"weekly":{"cap":null,"current":0,"unit":"Leads/Week"}}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// runShell executes the scripted commands against a fresh console and
// returns everything it printed.
func runShell(t *testing.T, backend *httptest.Server, script string, seedToken string) string {
	t.Helper()

	store := tokenstore.New(filepath.Join(t.TempDir(), "token"))
	if seedToken != "" {
		require.NoError(t, store.Save(seedToken))
	}
	log := zap.NewNop()
	client := api.New(backend.URL, backend.Client(), log)
	machine := session.NewMachine(store, client, log)

	var out bytes.Buffer
	shell := New(&config.Options{APIBaseURL: backend.URL}, machine, client, log, strings.NewReader(script), &out)
	shell.Run(context.Background())
	return out.String()
}

func TestShell_LoginWrongPassword(t *testing.T) {
	backend := newBackend(t, models.RoleUser)

	out := runShell(t, backend, "login\na@b.com\nwrong\nn\nexit\n", "")

	assert.Contains(t, out, "Incorrect credentials")
	assert.NotContains(t, out, "Welcome back")
}

func TestShell_LoginSuccess(t *testing.T) {
	backend := newBackend(t, models.RoleUser)

	out := runShell(t, backend, "login\na@b.com\npw\nwhoami\nexit\n", "")

	assert.Contains(t, out, "Welcome back")
	assert.Contains(t, out, "session: authenticated")
	assert.Contains(t, out, "email: a@b.com")
}

func TestShell_SeededTokenOpensDashboard(t *testing.T) {
	backend := newBackend(t, models.RoleUser)

	out := runShell(t, backend, "exit\n", "tok-1")

	assert.Contains(t, out, "No campaigns yet.")
}

func TestShell_NonAdminRedirectedFromAdminOnce(t *testing.T) {
	backend := newBackend(t, models.RoleUser)

	out := runShell(t, backend, "open admin\nexit\n", "tok-1")

	assert.Equal(t, 1, strings.Count(out, "→ dashboard"), "redirect must fire exactly once")
}

func TestShell_AnonymousRedirectedToLogin(t *testing.T) {
	backend := newBackend(t, models.RoleUser)

	out := runShell(t, backend, "open billing\nexit\n", "")

	assert.Contains(t, out, "→ login")
}

func TestShell_DemoLocksRestrictedPages(t *testing.T) {
	backend := newBackend(t, models.RoleUser)

	out := runShell(t, backend, "demo\nopen sales\nopen settings\nexit\n", "")

	assert.Contains(t, out, "sales is not available in the demo")
	assert.Contains(t, out, "Budget cap: €5000")
}

func TestShell_CheckoutWithoutPriceID(t *testing.T) {
	backend := newBackend(t, models.RoleUser)

	store := tokenstore.New(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, store.Save("tok-1"))
	log := zap.NewNop()
	client := api.New(backend.URL, backend.Client(), log)
	machine := session.NewMachine(store, client, log)

	var out bytes.Buffer
	shell := New(&config.Options{APIBaseURL: backend.URL}, machine, client, log, strings.NewReader("checkout\nexit\n"), &out)
	shell.Run(context.Background())

	assert.Contains(t, out.String(), "Checkout is not configured")
}
