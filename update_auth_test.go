package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shotweave/shotweave/internal/session"
)

var keyCtrlS = tea.KeyMsg{Type: tea.KeyCtrlS}

func TestAuthModeSwitchResetsForm(t *testing.T) {
	m := newTestModel(t)
	if m.auth.mode != authLogin {
		t.Fatal("auth starts in login mode")
	}
	m, _ = press(t, m, keyCtrlS)
	if m.auth.mode != authSignup {
		t.Fatal("ctrl+s should switch to signup")
	}
	if len(m.auth.inputs) != 4 {
		t.Fatalf("signup form has %d inputs, want 4", len(m.auth.inputs))
	}
	m, _ = press(t, m, keyCtrlS)
	if m.auth.mode != authLogin {
		t.Fatal("ctrl+s should switch back to login")
	}
	if len(m.auth.inputs) != 2 {
		t.Fatalf("login form has %d inputs, want 2", len(m.auth.inputs))
	}
}

func TestSignupRoleRowCycles(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, keyCtrlS)

	// Tab past the four inputs onto the role row.
	for i := 0; i < 4; i++ {
		m, _ = press(t, m, keyTab)
	}
	if !m.onRoleRow() {
		t.Fatalf("focus = %d, want role row", m.auth.focus)
	}

	keyDown := tea.KeyMsg{Type: tea.KeyDown}
	m, _ = press(t, m, keyDown)
	if session.Roles()[m.auth.roleIdx] != session.RoleLineProducer {
		t.Fatalf("role after one step = %s", session.Roles()[m.auth.roleIdx])
	}

	n := len(session.Roles())
	for i := 0; i < n-1; i++ {
		m, _ = press(t, m, keyDown)
	}
	if m.auth.roleIdx != 0 {
		t.Fatalf("role cursor should wrap, got %d", m.auth.roleIdx)
	}
}

func TestEmptyLoginRejectedLocally(t *testing.T) {
	m := newTestModel(t)
	m, cmd := press(t, m, keyEnter)
	if cmd != nil {
		t.Fatal("empty credentials must not reach the network")
	}
	if m.status != "Username and password are required." {
		t.Fatalf("status = %q", m.status)
	}
}

func TestSignupSuccessReturnsToLogin(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, keyCtrlS)
	mm, _ := m.Update(signupDoneMsg{message: "Account created successfully."})
	m = mm.(model)
	if m.auth.mode != authLogin {
		t.Fatal("successful signup should land on the login form")
	}
	if m.status != "Account created successfully." {
		t.Fatalf("status = %q", m.status)
	}
}
