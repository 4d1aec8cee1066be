package main

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/shotweave/shotweave/internal/api"
	"github.com/shotweave/shotweave/internal/breakdown"
	"github.com/shotweave/shotweave/internal/catalog"
	"github.com/shotweave/shotweave/internal/dispatch"
	"github.com/shotweave/shotweave/internal/quote"
	"github.com/shotweave/shotweave/internal/session"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	client, err := api.NewClient(api.Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	store := session.NewStore(t.TempDir())
	store.Restore()
	return newModel(client, store, nil, zap.NewNop())
}

func loggedInModel(t *testing.T, role session.Role) model {
	t.Helper()
	m := newTestModel(t)
	mm, _ := m.Update(loginDoneMsg{user: session.User{
		Name:     "Asha Menon",
		Email:    "asha@shotweave.in",
		Username: "asha",
		Role:     role,
	}})
	return mm.(model)
}

func press(t *testing.T, m model, key tea.KeyMsg) (model, tea.Cmd) {
	t.Helper()
	mm, cmd := m.Update(key)
	return mm.(model), cmd
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyCtrlV = tea.KeyMsg{Type: tea.KeyCtrlV}
	keyCtrlL = tea.KeyMsg{Type: tea.KeyCtrlL}
)

func TestFreshModelStartsUnauthenticated(t *testing.T) {
	m := newTestModel(t)
	if m.view != dispatch.ViewRequireReauth {
		t.Fatalf("view = %v, want reauth", m.view)
	}
}

func TestLoginDispatchesToRoleView(t *testing.T) {
	tests := []struct {
		role session.Role
		want dispatch.ViewID
	}{
		{session.RoleProducerCEO, dispatch.ViewProducer},
		{session.RoleLineProducer, dispatch.ViewLineProducer},
		{session.RoleUnitManager, dispatch.ViewExecutor},
		{session.RoleVFXSupervisor, dispatch.ViewCreative},
	}
	for _, tt := range tests {
		m := loggedInModel(t, tt.role)
		if m.view != tt.want {
			t.Fatalf("role %s: view = %v, want %v", tt.role, m.view, tt.want)
		}
		if m.store.Current() == nil {
			t.Fatalf("role %s: session not installed", tt.role)
		}
	}
}

func TestLoginFailureStaysOnAuthView(t *testing.T) {
	m := newTestModel(t)
	mm, _ := m.Update(loginDoneMsg{err: &api.RemoteError{Op: "login", Message: "Invalid username or password."}})
	m = mm.(model)
	if m.view != dispatch.ViewRequireReauth {
		t.Fatalf("view = %v, want reauth", m.view)
	}
	if m.status != "Invalid username or password." {
		t.Fatalf("status = %q", m.status)
	}
	if m.store.Current() != nil {
		t.Fatal("failed login must not install a session")
	}
}

func TestLogoutClearsSessionAndViewState(t *testing.T) {
	m := loggedInModel(t, session.RoleLineProducer)
	mm, _ := m.Update(vendorsDoneMsg{vendors: []catalog.Vendor{{Name: "Prime Camera Rentals", LVRScore: 92}}})
	m = mm.(model)

	m, _ = press(t, m, keyCtrlL)
	if m.view != dispatch.ViewRequireReauth {
		t.Fatalf("view = %v, want reauth", m.view)
	}
	if m.store.Current() != nil {
		t.Fatal("session should be cleared")
	}
	if m.lp.catalog.HasData() {
		t.Fatal("next user must not inherit the previous vendor pane")
	}
}

func lpVendorFixture() []catalog.Vendor {
	return []catalog.Vendor{
		{Name: "VFX Nexus Studios", Type: "VFX House", LVRScore: 95, Reliability: "High", Contact: "vfx@nexus.in"},
		{Name: "Prime Camera Rentals", Type: "Camera Unit", LVRScore: 92, Reliability: "High", Contact: "cam@prime.in"},
	}
}

func breakdownFixture() breakdown.Result {
	return breakdown.Result{
		EstimatedShootDays: 21,
		SceneCount:         14,
		LocationCount:      4,
		CharacterCount:     6,
		ComplexityScore:    70,
		Locations:          []string{"Hospital", "Beach House", "Old Mill", "Rooftop"},
		Characters:         []string{"ANITA", "DEV"},
	}
}

func TestVendorLoadCoalesces(t *testing.T) {
	m := loggedInModel(t, session.RoleLineProducer)

	m, cmd := press(t, m, keyCtrlV)
	if cmd == nil {
		t.Fatal("first load should issue a request")
	}
	m, cmd = press(t, m, keyCtrlV)
	if cmd != nil {
		t.Fatal("second load while one is in flight must not issue a request")
	}

	mm, _ := m.Update(vendorsDoneMsg{vendors: lpVendorFixture()})
	m = mm.(model)
	if !m.lp.catalog.HasData() {
		t.Fatal("catalog should hold the applied list")
	}
	if m.lp.catalog.Loading() {
		t.Fatal("load should be settled")
	}
}

func TestQuoteModalOpenAndCancel(t *testing.T) {
	m := loggedInModel(t, session.RoleLineProducer)
	mm, _ := m.Update(vendorsDoneMsg{vendors: lpVendorFixture()})
	m = mm.(model)

	m, _ = press(t, m, keyTab) // vendor pane
	m, _ = press(t, m, keyEnter)
	if m.lp.workflow.Phase() != quote.PhaseOpen {
		t.Fatalf("phase = %v, want open", m.lp.workflow.Phase())
	}
	d, ok := m.lp.workflow.Draft()
	if !ok || d.Vendor.Name != "VFX Nexus Studios" {
		t.Fatalf("draft vendor = %+v", d.Vendor)
	}
	if m.lp.daysInput.Value() != "7" {
		t.Fatalf("days prefill = %q, want default 7", m.lp.daysInput.Value())
	}

	m, _ = press(t, m, keyEsc)
	if m.lp.workflow.Phase() != quote.PhaseIdle {
		t.Fatalf("phase after cancel = %v, want idle", m.lp.workflow.Phase())
	}
	if _, ok := m.lp.workflow.Draft(); ok {
		t.Fatal("cancelled draft should be discarded")
	}
}

func TestQuoteModalPrefillsFromBreakdownHint(t *testing.T) {
	m := loggedInModel(t, session.RoleLineProducer)
	mm, _ := m.Update(breakdownDoneMsg{result: breakdownFixture()})
	m = mm.(model)
	mm, _ = m.Update(vendorsDoneMsg{vendors: lpVendorFixture()})
	m = mm.(model)

	m, _ = press(t, m, keyTab)
	m, _ = press(t, m, keyEnter)
	if m.lp.daysInput.Value() != "21" {
		t.Fatalf("days prefill = %q, want 21", m.lp.daysInput.Value())
	}
	if m.lp.reqInput.Value() != "Hospital, Beach House, Old Mill" {
		t.Fatalf("requirements prefill = %q", m.lp.reqInput.Value())
	}
}

func TestQuoteSubmitLifecycle(t *testing.T) {
	m := loggedInModel(t, session.RoleLineProducer)
	mm, _ := m.Update(vendorsDoneMsg{vendors: lpVendorFixture()})
	m = mm.(model)
	m, _ = press(t, m, keyTab)
	m, _ = press(t, m, keyEnter)

	m, cmd := press(t, m, keyEnter)
	if cmd == nil {
		t.Fatal("submit should issue the request")
	}
	if m.lp.workflow.Phase() != quote.PhaseSending {
		t.Fatalf("phase = %v, want sending", m.lp.workflow.Phase())
	}

	// Reentrant submit while sending is rejected.
	m, cmd = press(t, m, keyEnter)
	if cmd != nil {
		t.Fatal("second submit while sending must not issue a request")
	}

	// Failure returns to Open with the draft retained for retry.
	mm, _ = m.Update(quoteDoneMsg{err: errors.New("connection reset")})
	m = mm.(model)
	if m.lp.workflow.Phase() != quote.PhaseOpen {
		t.Fatalf("phase after failure = %v, want open", m.lp.workflow.Phase())
	}
	if _, ok := m.lp.workflow.Draft(); !ok {
		t.Fatal("failed submit must retain the draft")
	}

	// Retry succeeds and the workflow returns to Idle.
	m, cmd = press(t, m, keyEnter)
	if cmd == nil {
		t.Fatal("retry should issue a request")
	}
	mm, _ = m.Update(quoteDoneMsg{message: "Quote request sent."})
	m = mm.(model)
	if m.lp.workflow.Phase() != quote.PhaseIdle {
		t.Fatalf("phase after success = %v, want idle", m.lp.workflow.Phase())
	}
	if _, ok := m.lp.workflow.Draft(); ok {
		t.Fatal("successful submit should discard the draft")
	}
}

func TestSessionSubscriberSeesLoginAndLogout(t *testing.T) {
	m := newTestModel(t)
	var seen []*session.User
	m.store.Subscribe(func(u *session.User) { seen = append(seen, u) })

	mm, _ := m.Update(loginDoneMsg{user: session.User{
		Name: "Asha Menon", Email: "asha@shotweave.in", Username: "asha", Role: session.RoleLineProducer,
	}})
	m = mm.(model)
	if len(seen) != 1 || seen[0] == nil || seen[0].Username != "asha" {
		t.Fatalf("after login seen = %+v", seen)
	}

	m, _ = press(t, m, keyCtrlL)
	if len(seen) != 2 || seen[1] != nil {
		t.Fatalf("after logout seen = %+v", seen)
	}
}

func TestRiskResultRendered(t *testing.T) {
	m := loggedInModel(t, session.RoleProducerCEO)
	mm, _ := m.Update(riskDoneMsg{analysis: api.RiskAnalysis{RiskScore: 87, Status: "RED", Suggestion: "IMMEDIATE EXECUTIVE INTERVENTION"}})
	m = mm.(model)
	if m.producer.analysis == nil || m.producer.analysis.RiskScore != 87 {
		t.Fatalf("analysis = %+v", m.producer.analysis)
	}
}
