package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shotweave/shotweave/internal/api"
	"github.com/shotweave/shotweave/internal/session"
)

type authMode int

const (
	authLogin authMode = iota
	authSignup
)

// authState backs the login and signup forms. The role row sits after
// the text inputs in the signup focus order.
type authState struct {
	mode    authMode
	inputs  []textinput.Model
	focus   int
	roleIdx int
	busy    bool
}

const (
	loginFieldUsername = 0
	loginFieldPassword = 1

	signupFieldName     = 0
	signupFieldEmail    = 1
	signupFieldUsername = 2
	signupFieldPassword = 3
)

func newAuthState() authState {
	s := authState{mode: authLogin}
	s.inputs = loginInputs()
	s.inputs[0].Focus()
	return s
}

func loginInputs() []textinput.Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 64
	return []textinput.Model{username, password}
}

func signupInputs() []textinput.Model {
	name := textinput.New()
	name.Placeholder = "full name"
	name.CharLimit = 80
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	inputs := []textinput.Model{name, email}
	return append(inputs, loginInputs()...)
}

// focusCount includes the role row in signup mode.
func (s authState) focusCount() int {
	if s.mode == authSignup {
		return len(s.inputs) + 1
	}
	return len(s.inputs)
}

func (s *authState) setFocus(i int) {
	s.focus = i
	for idx := range s.inputs {
		if idx == i {
			s.inputs[idx].Focus()
		} else {
			s.inputs[idx].Blur()
		}
	}
}

func (s *authState) switchMode() {
	if s.mode == authLogin {
		s.mode = authSignup
		s.inputs = signupInputs()
	} else {
		s.mode = authLogin
		s.inputs = loginInputs()
	}
	s.roleIdx = 0
	s.setFocus(0)
}

func (m model) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.auth.busy = false
		if msg.err != nil {
			m.status = authFailureMessage(msg.err)
			return m, nil
		}
		return m.completeLogin(msg.user)
	case signupDoneMsg:
		m.auth.busy = false
		if msg.err != nil {
			m.status = authFailureMessage(msg.err)
			return m, nil
		}
		m.auth.switchMode() // back to login
		if msg.message != "" {
			m.status = msg.message
		} else {
			m.status = "Account created. Log in to continue."
		}
		return m, nil
	case tea.KeyMsg:
		if m.auth.busy {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+s":
			m.auth.switchMode()
			m.status = ""
			return m, nil
		case "tab", "down":
			if m.onRoleRow() && msg.String() == "down" {
				m.auth.roleIdx = (m.auth.roleIdx + 1) % len(session.Roles())
				return m, nil
			}
			m.auth.setFocus((m.auth.focus + 1) % m.auth.focusCount())
			return m, nil
		case "shift+tab", "up":
			if m.onRoleRow() && msg.String() == "up" {
				n := len(session.Roles())
				m.auth.roleIdx = (m.auth.roleIdx + n - 1) % n
				return m, nil
			}
			n := m.auth.focusCount()
			m.auth.setFocus((m.auth.focus + n - 1) % n)
			return m, nil
		case "enter":
			return m.submitAuth()
		}
		if m.auth.focus < len(m.auth.inputs) {
			var cmd tea.Cmd
			m.auth.inputs[m.auth.focus], cmd = m.auth.inputs[m.auth.focus].Update(msg)
			return m, cmd
		}
		return m, nil
	}
	return m, nil
}

func (m model) onRoleRow() bool {
	return m.auth.mode == authSignup && m.auth.focus == len(m.auth.inputs)
}

func (m model) submitAuth() (tea.Model, tea.Cmd) {
	if m.auth.mode == authLogin {
		username := strings.TrimSpace(m.auth.inputs[loginFieldUsername].Value())
		password := m.auth.inputs[loginFieldPassword].Value()
		if username == "" || password == "" {
			m.status = "Username and password are required."
			return m, nil
		}
		m.auth.busy = true
		m.status = "Signing in..."
		return m, loginCmd(m.client, username, password)
	}

	req := api.SignupRequest{
		Name:     strings.TrimSpace(m.auth.inputs[signupFieldName].Value()),
		Email:    strings.TrimSpace(m.auth.inputs[signupFieldEmail].Value()),
		Username: strings.TrimSpace(m.auth.inputs[signupFieldUsername].Value()),
		Password: m.auth.inputs[signupFieldPassword].Value(),
		Role:     session.Roles()[m.auth.roleIdx],
	}
	if req.Name == "" || req.Email == "" || req.Username == "" || req.Password == "" {
		m.status = "All fields are required."
		return m, nil
	}
	m.auth.busy = true
	m.status = "Creating account..."
	return m, signupCmd(m.client, req)
}

// authFailureMessage phrases the error taxonomy for the status bar.
func authFailureMessage(err error) string {
	var te *api.TransportError
	var re *api.RemoteError
	if errors.As(err, &re) || errors.As(err, &te) {
		return api.UserMessage(err)
	}
	return fmt.Sprintf("Error: %v", err)
}

func (m model) viewAuth() string {
	var lines []string
	if m.auth.mode == authLogin {
		lines = append(lines,
			labelStyle.Render("Username"), m.auth.inputs[loginFieldUsername].View(),
			labelStyle.Render("Password"), m.auth.inputs[loginFieldPassword].View(),
		)
	} else {
		lines = append(lines,
			labelStyle.Render("Name"), m.auth.inputs[signupFieldName].View(),
			labelStyle.Render("Email"), m.auth.inputs[signupFieldEmail].View(),
			labelStyle.Render("Username"), m.auth.inputs[signupFieldUsername].View(),
			labelStyle.Render("Password"), m.auth.inputs[signupFieldPassword].View(),
			labelStyle.Render("Role"), m.renderRoleRow(),
		)
	}
	title := "Log in"
	hint := "ctrl+s to create an account"
	if m.auth.mode == authSignup {
		title = "Create account"
		hint = "ctrl+s to log in instead"
	}
	lines = append(lines, "", statusStyle.Render(hint))
	return m.renderSection(title, joinLines(lines))
}

func (m model) renderRoleRow() string {
	roles := session.Roles()
	parts := make([]string, len(roles))
	for i, r := range roles {
		label := string(r)
		if i == m.auth.roleIdx {
			label = "[" + label + "]"
			if m.onRoleRow() {
				label = cursorStyle.Render(label)
			}
		}
		parts[i] = label
	}
	return strings.Join(parts, "  ")
}
