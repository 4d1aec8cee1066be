// Package api is the typed client for the production-office backend.
// It covers transport and envelope decoding only; the real computation
// (NLP parsing, risk inference, credential checks) lives server-side.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shotweave/shotweave/internal/breakdown"
	"github.com/shotweave/shotweave/internal/catalog"
	"github.com/shotweave/shotweave/internal/quote"
	"github.com/shotweave/shotweave/internal/session"
)

// Config captures what the client needs. Callers should pass a
// validated base URL; the http.Client is injectable for tests.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
}

// Client issues one request per operation. No retries, no cancellation
// beyond the ambient context; a stuck request parks its owning state
// machine until the response resolves.
type Client struct {
	baseURL string
	hc      *http.Client
}

// NewClient builds a backend client.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("api: base url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("api: base url: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: base, hc: hc}, nil
}

// envelope is the {success, message} wrapper every response carries.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (e envelope) ok() bool       { return e.Success }
func (e envelope) remark() string { return e.Message }

type enveloped interface {
	ok() bool
	remark() string
}

// Login validates credentials and returns the safe user profile.
func (c *Client) Login(ctx context.Context, username, password string) (session.User, error) {
	req := map[string]string{"username": username, "password": password}
	var resp struct {
		envelope
		User struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	if err := c.do(ctx, "login", http.MethodPost, "/api/login", req, &resp); err != nil {
		return session.User{}, err
	}
	role := session.ParseRole(resp.User.Role)
	if role == session.RoleUnknown {
		return session.User{}, fmt.Errorf("login: backend issued unrecognized role %q", resp.User.Role)
	}
	return session.User{
		Name:     resp.User.Name,
		Email:    resp.User.Email,
		Username: resp.User.Username,
		Role:     role,
	}, nil
}

// SignupRequest registers a new account.
type SignupRequest struct {
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Username string       `json:"username"`
	Password string       `json:"password"`
	Role     session.Role `json:"role"`
}

// Signup registers the account and returns the backend's message.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (string, error) {
	var resp struct{ envelope }
	if err := c.do(ctx, "signup", http.MethodPost, "/api/signup", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ScriptBreakdown submits script text for NLP analysis.
func (c *Client) ScriptBreakdown(ctx context.Context, scriptText string) (breakdown.Result, error) {
	req := map[string]string{"script_text": scriptText}
	var resp struct {
		envelope
		Breakdown breakdown.Result `json:"breakdown"`
	}
	if err := c.do(ctx, "breakdown", http.MethodPost, "/api/lp/breakdown", req, &resp); err != nil {
		return breakdown.Result{}, err
	}
	return resp.Breakdown, nil
}

// VendorList fetches the Localized Vendor Rating data.
func (c *Client) VendorList(ctx context.Context) ([]catalog.Vendor, error) {
	var resp struct {
		envelope
		Vendors []catalog.Vendor `json:"vendors"`
	}
	if err := c.do(ctx, "lvr", http.MethodGet, "/api/lp/lvr", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Vendors, nil
}

// SubmitQuote sends one quote request to a vendor.
func (c *Client) SubmitQuote(ctx context.Context, sub quote.Submission) (string, error) {
	req := map[string]any{
		"request_id":   sub.RequestID,
		"vendor":       sub.VendorName,
		"contact":      sub.VendorContact,
		"days":         sub.Days,
		"scale":        sub.Scale,
		"requirements": sub.Requirements,
	}
	var resp struct{ envelope }
	if err := c.do(ctx, "quote", http.MethodPost, "/api/lp/quote_request", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// RiskInput feeds the risk model.
type RiskInput struct {
	DaysBehind      int     `json:"days_behind"`
	CostVariancePct float64 `json:"cost_variance_pct"`
	ComplexityScore int     `json:"complexity_score"`
}

// RiskAnalysis is the model's verdict.
type RiskAnalysis struct {
	RiskScore  int    `json:"risk_score"`
	Status     string `json:"status"`
	Suggestion string `json:"suggestion"`
}

// RiskMeter runs the project-health forecast.
func (c *Client) RiskMeter(ctx context.Context, in RiskInput) (RiskAnalysis, error) {
	var resp struct {
		envelope
		RiskAnalysis RiskAnalysis `json:"risk_analysis"`
	}
	if err := c.do(ctx, "risk-meter", http.MethodPost, "/api/ceo/risk_meter", in, &resp); err != nil {
		return RiskAnalysis{}, err
	}
	return resp.RiskAnalysis, nil
}

// DPRReport is one daily progress report.
type DPRReport struct {
	ScenesShot   int     `json:"scenes_shot"`
	DailySpend   float64 `json:"daily_spend"`
	DelayMinutes int     `json:"delay_minutes"`
	Notes        string  `json:"notes"`
}

// SubmitDPR logs the day's progress and expenses.
func (c *Client) SubmitDPR(ctx context.Context, report DPRReport) (string, error) {
	var resp struct{ envelope }
	if err := c.do(ctx, "dpr", http.MethodPost, "/api/dpr/submit", report, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// UpdateAssetStatus moves a VFX asset to a new pipeline status.
func (c *Client) UpdateAssetStatus(ctx context.Context, assetID, newStatus string) (string, error) {
	req := map[string]string{"asset_id": assetID, "new_status": newStatus}
	var resp struct{ envelope }
	if err := c.do(ctx, "asset-status", http.MethodPost, "/api/creative/asset_status", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body any, out enveloped) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	// Error statuses still carry the {success:false, message} envelope,
	// so decode before judging the status code.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response (%s): %w", resp.Status, err)}
	}
	if !out.ok() {
		msg := strings.TrimSpace(out.remark())
		if msg == "" {
			msg = fmt.Sprintf("request rejected (%s)", resp.Status)
		}
		return &RemoteError{Op: op, Message: msg}
	}
	return nil
}
