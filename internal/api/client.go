// Package api implements the HTTP client for the Antigravity Ads API,
// including credential exchange, account registration, and the tenant
// data endpoints consumed by the console views.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/antigravity/console/internal/models"
	"go.uber.org/zap"
)

const (
	pathToken          = "/token"
	pathRegister       = "/register"
	pathMe             = "/api/me"
	pathConfig         = "/api/config"
	pathCampaigns      = "/api/campaigns"
	pathGlobalStatus   = "/api/global-status"
	pathAdminStats     = "/api/admin/stats"
	pathAdminOrgs      = "/api/admin/organizations"
	pathBillingActive  = "/api/billing/activate"
	pathInvoices       = "/api/billing/invoices"
	pathCheckout       = "/api/checkout"
	pathServiceAccount = "/api/sheets/service-account"
	pathCreateSheet    = "/api/sheets/create"
)

// Client talks to the backend API. It performs no retries; transient
// failures surface immediately to the caller.
type Client struct {
	base string
	http *http.Client
	log  *zap.Logger
}

// New returns a Client for the API at baseURL. A nil httpClient selects a
// default client with a request timeout.
func New(baseURL string, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: httpClient,
		log:  log,
	}
}

// detailBody is the error payload shape used by the backend.
type detailBody struct {
	Detail string `json:"detail"`
}

// detail extracts the server-provided detail message from an error
// response body, or returns fallback when the body is unusable.
func detail(body []byte, fallback string) string {
	var d detailBody
	if err := json.Unmarshal(body, &d); err == nil && d.Detail != "" {
		return d.Detail
	}
	return fallback
}

// Authenticate exchanges a username and password for a bearer credential
// via POST /token (form-encoded, as the backend expects). On any non-2xx
// response it returns an *InvalidCredentialsError carrying the server's
// detail message.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+pathToken, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("login request failed", zap.Error(err))
		return "", &InvalidCredentialsError{Message: "Login failed"}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", &InvalidCredentialsError{Message: detail(body, "Login failed")}
	}

	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.AccessToken == "" {
		return "", &InvalidCredentialsError{Message: "Login failed"}
	}
	return out.AccessToken, nil
}

// RegisterRequest is the JSON payload for account creation.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	CompanyName string `json:"company_name"`
}

// Register creates a new account via POST /register. It does not
// authenticate; callers log in afterwards with Authenticate.
func (c *Client) Register(ctx context.Context, r RegisterRequest) error {
	if _, err := c.postJSON(ctx, pathRegister, "", r); err != nil {
		var apiErr *statusError
		if errors.As(err, &apiErr) {
			return &RegistrationError{Message: detail(apiErr.body, "Registration failed")}
		}
		c.log.Warn("register request failed", zap.Error(err))
		return &RegistrationError{Message: "Registration failed"}
	}
	return nil
}

// Me resolves the credential into a verified user profile via GET /api/me.
// Any non-2xx response or transport error maps to ErrUnauthorized; the
// caller cannot distinguish an expired token from a network failure and
// treats both as a logout.
func (c *Client) Me(ctx context.Context, token string) (models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.getJSON(ctx, pathMe, token, &profile); err != nil {
		c.log.Warn("profile resolution failed", zap.Error(err))
		return models.UserProfile{}, ErrUnauthorized
	}
	return profile, nil
}

// Config fetches the tenant configuration blob.
func (c *Client) Config(ctx context.Context, token string) (models.TenantConfig, error) {
	var cfg models.TenantConfig
	if err := c.getJSON(ctx, pathConfig, token, &cfg); err != nil {
		return models.TenantConfig{}, fmt.Errorf("fetch config: %w", err)
	}
	return cfg, nil
}

// UpdateConfig replaces the tenant configuration blob.
func (c *Client) UpdateConfig(ctx context.Context, token string, cfg models.TenantConfig) error {
	if _, err := c.postJSON(ctx, pathConfig, token, cfg); err != nil {
		return fmt.Errorf("update config: %w", err)
	}
	return nil
}

// Campaigns fetches the dashboard campaign list with budget
// recommendations attached.
func (c *Client) Campaigns(ctx context.Context, token string) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	if err := c.getJSON(ctx, pathCampaigns, token, &campaigns); err != nil {
		return nil, fmt.Errorf("fetch campaigns: %w", err)
	}
	return campaigns, nil
}

// GlobalStatus fetches the capacity-vs-usage summary.
func (c *Client) GlobalStatus(ctx context.Context, token string) (models.GlobalStatus, error) {
	var status models.GlobalStatus
	if err := c.getJSON(ctx, pathGlobalStatus, token, &status); err != nil {
		return models.GlobalStatus{}, fmt.Errorf("fetch global status: %w", err)
	}
	return status, nil
}

// AdminStats fetches aggregate statistics. Admin only.
func (c *Client) AdminStats(ctx context.Context, token string) (models.AdminStats, error) {
	var stats models.AdminStats
	if err := c.getJSON(ctx, pathAdminStats, token, &stats); err != nil {
		return models.AdminStats{}, fmt.Errorf("fetch admin stats: %w", err)
	}
	return stats, nil
}

// AdminOrganizations fetches all organizations with their admin users.
// Admin only.
func (c *Client) AdminOrganizations(ctx context.Context, token string) ([]models.Organization, error) {
	var orgs []models.Organization
	if err := c.getJSON(ctx, pathAdminOrgs, token, &orgs); err != nil {
		return nil, fmt.Errorf("fetch organizations: %w", err)
	}
	return orgs, nil
}

// ActivateBilling activates the given plan for the caller's organization.
func (c *Client) ActivateBilling(ctx context.Context, token string, plan models.Plan) error {
	path := pathBillingActive + "?plan=" + url.QueryEscape(string(plan))
	if _, err := c.postJSON(ctx, path, token, struct{}{}); err != nil {
		return fmt.Errorf("activate billing: %w", err)
	}
	return nil
}

// Invoices fetches the billing history.
func (c *Client) Invoices(ctx context.Context, token string) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := c.getJSON(ctx, pathInvoices, token, &invoices); err != nil {
		return nil, fmt.Errorf("fetch invoices: %w", err)
	}
	return invoices, nil
}

// CheckoutRequest starts a payment-provider checkout session.
type CheckoutRequest struct {
	PriceID    string `json:"price_id"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

// Checkout creates a checkout session and returns the provider redirect.
func (c *Client) Checkout(ctx context.Context, token string, r CheckoutRequest) (models.CheckoutSession, error) {
	body, err := c.postJSON(ctx, pathCheckout, token, r)
	if err != nil {
		return models.CheckoutSession{}, fmt.Errorf("create checkout session: %w", err)
	}
	var session models.CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return models.CheckoutSession{}, fmt.Errorf("decode checkout session: %w", err)
	}
	return session, nil
}

// ServiceAccountEmail returns the spreadsheet service-account email the
// user must share their sheet with. A nil result means no service account
// is configured on the backend.
func (c *Client) ServiceAccountEmail(ctx context.Context, token string) (*string, error) {
	var out struct {
		Email *string `json:"email"`
	}
	if err := c.getJSON(ctx, pathServiceAccount, token, &out); err != nil {
		return nil, fmt.Errorf("fetch service account: %w", err)
	}
	return out.Email, nil
}

// CreateSheetRequest asks the backend to provision a client spreadsheet
// from the template.
type CreateSheetRequest struct {
	ClientName  string  `json:"client_name"`
	ClientEmail *string `json:"client_email,omitempty"`
}

// CreateSheet provisions a spreadsheet for the tenant.
func (c *Client) CreateSheet(ctx context.Context, token string, r CreateSheetRequest) (models.SheetResult, error) {
	body, err := c.postJSON(ctx, pathCreateSheet, token, r)
	if err != nil {
		return models.SheetResult{}, fmt.Errorf("create sheet: %w", err)
	}
	var result models.SheetResult
	if err := json.Unmarshal(body, &result); err != nil {
		return models.SheetResult{}, fmt.Errorf("decode sheet result: %w", err)
	}
	return result, nil
}

// statusError reports a non-2xx response along with its body.
type statusError struct {
	status int
	body   []byte
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.status, detail(e.body, http.StatusText(e.status)))
}

func (c *Client) getJSON(ctx context.Context, path, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, token, out)
}

func (c *Client) postJSON(ctx context.Context, path, token string, in any) ([]byte, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var body json.RawMessage
	if err := c.do(req, token, &body); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) do(req *http.Request, token string, out any) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{status: resp.StatusCode, body: body}
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}
