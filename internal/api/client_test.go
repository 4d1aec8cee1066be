package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shotweave/shotweave/internal/quote"
	"github.com/shotweave/shotweave/internal/session"
)

func decodeBody(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("empty base url should be rejected")
	}
}

func TestLoginSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/login" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"message":"Login successful","user":{"name":"Priya Nair","email":"priya@shotweave.in","username":"priya","role":"VFX Supervisor/Director"}}`))
	})

	u, err := c.Login(context.Background(), "priya", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	want := session.User{Name: "Priya Nair", Email: "priya@shotweave.in", Username: "priya", Role: session.RoleVFXSupervisor}
	if u != want {
		t.Fatalf("user = %+v, want %+v", u, want)
	}
}

func TestLoginRejectedMapsToRemoteError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Invalid username or password."}`))
	})

	_, err := c.Login(context.Background(), "priya", "wrong")
	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want RemoteError", err)
	}
	if re.Message != "Invalid username or password." {
		t.Fatalf("message = %q", re.Message)
	}
	if UserMessage(err) != "Invalid username or password." {
		t.Fatalf("UserMessage = %q", UserMessage(err))
	}
}

func TestLoginUnknownRoleRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"user":{"name":"x","email":"x@y.z","username":"x","role":"Stunt Coordinator"}}`))
	})
	if _, err := c.Login(context.Background(), "x", "x"); err == nil {
		t.Fatal("out-of-enum role from backend should not produce a user")
	}
}

func TestConnectionFailureMapsToTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refuse all connections
	c, err := NewClient(Config{BaseURL: srv.URL, Timeout: time.Second})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = c.VendorList(context.Background())
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want TransportError", err)
	}
	if UserMessage(err) != "Network error. Please try again." {
		t.Fatalf("UserMessage = %q", UserMessage(err))
	}
}

func TestGarbageResponseMapsToTransportError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway timeout</html>"))
	})
	_, err := c.VendorList(context.Background())
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want TransportError", err)
	}
}

func TestVendorList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/lp/lvr" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"vendors":[
			{"name":"Prime Camera Rentals","type":"Camera Unit","lvr_score":92,"reliability":"High","price_competitiveness":"Good","contact":"cam@prime.in"},
			{"name":"South Sound Design","type":"Sound Unit","lvr_score":95,"reliability":"High","price_competitiveness":"Good","contact":"sound@ssd.co"}]}`))
	})

	vendors, err := c.VendorList(context.Background())
	if err != nil {
		t.Fatalf("VendorList: %v", err)
	}
	if len(vendors) != 2 {
		t.Fatalf("got %d vendors", len(vendors))
	}
	if vendors[0].Name != "Prime Camera Rentals" || vendors[0].LVRScore != 92 {
		t.Fatalf("vendor[0] = %+v", vendors[0])
	}
}

func TestSubmitQuotePayload(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := decodeBody(r, &gotBody); err != nil {
			t.Fatalf("decode: %v", err)
		}
		w.Write([]byte(`{"success":true,"message":"Quote request sent."}`))
	})

	msg, err := c.SubmitQuote(context.Background(), quote.Submission{
		RequestID:     "req-1",
		VendorName:    "Prime Camera Rentals",
		VendorContact: "cam@prime.in",
		Days:          12,
		Scale:         quote.ScaleNational,
		Requirements:  "Night shoot",
	})
	if err != nil {
		t.Fatalf("SubmitQuote: %v", err)
	}
	if msg != "Quote request sent." {
		t.Fatalf("message = %q", msg)
	}
	if gotPath != "/api/lp/quote_request" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotBody["vendor"] != "Prime Camera Rentals" || gotBody["days"] != float64(12) || gotBody["scale"] != "National" {
		t.Fatalf("body = %+v", gotBody)
	}
}

func TestRiskMeter(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/ceo/risk_meter" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"risk_analysis":{"risk_score":87,"status":"RED","suggestion":"IMMEDIATE EXECUTIVE INTERVENTION"}}`))
	})

	out, err := c.RiskMeter(context.Background(), RiskInput{DaysBehind: 5, CostVariancePct: 18.5, ComplexityScore: 92})
	if err != nil {
		t.Fatalf("RiskMeter: %v", err)
	}
	if out.RiskScore != 87 || out.Status != "RED" {
		t.Fatalf("analysis = %+v", out)
	}
}

func TestSubmitDPR(t *testing.T) {
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dpr/submit" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		if err := decodeBody(r, &gotBody); err != nil {
			t.Fatalf("decode: %v", err)
		}
		w.Write([]byte(`{"success":true,"message":"Daily Progress Report logged successfully."}`))
	})

	msg, err := c.SubmitDPR(context.Background(), DPRReport{ScenesShot: 6, DailySpend: 150000, DelayMinutes: 90, Notes: "Weather hold"})
	if err != nil {
		t.Fatalf("SubmitDPR: %v", err)
	}
	if msg == "" {
		t.Fatal("acknowledgement message expected")
	}
	if gotBody["scenes_shot"] != float64(6) || gotBody["notes"] != "Weather hold" {
		t.Fatalf("body = %+v", gotBody)
	}
}
