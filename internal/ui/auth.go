package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dukatech/duka/internal/api"
	"github.com/dukatech/duka/internal/store"
)

// authMode selects between the login and signup forms.
type authMode int

const (
	modeLogin authMode = iota
	modeSignup
)

// authState holds the login/signup form.
type authState struct {
	mode     authMode
	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	focusIdx int
	busy     bool
	errMsg   string
}

func newAuthState() authState {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 64

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 64

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 64

	return authState{
		mode:     modeLogin,
		name:     name,
		email:    email,
		password: password,
	}
}

// fields returns the active inputs for the current mode, in focus order.
func (s *authState) fields() []*textinput.Model {
	if s.mode == modeSignup {
		return []*textinput.Model{&s.name, &s.email, &s.password}
	}
	return []*textinput.Model{&s.email, &s.password}
}

func (s *authState) focusFirst() tea.Cmd {
	s.focusIdx = 0
	return s.applyFocus()
}

func (s *authState) applyFocus() tea.Cmd {
	var cmd tea.Cmd
	for i, field := range s.fields() {
		if i == s.focusIdx {
			cmd = field.Focus()
		} else {
			field.Blur()
		}
	}
	return cmd
}

func (s *authState) reset() {
	s.name.SetValue("")
	s.password.SetValue("")
	s.errMsg = ""
	s.busy = false
	s.focusIdx = 0
	for _, field := range s.fields() {
		field.Blur()
	}
}

// handleAuthKey processes keys while the auth view is active.
func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.auth.busy {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.auth.reset()
		m.currentView = ViewCatalog
		return m, nil

	case "ctrl+s":
		// Toggle between login and signup
		if m.auth.mode == modeLogin {
			m.auth.mode = modeSignup
		} else {
			m.auth.mode = modeLogin
		}
		m.auth.errMsg = ""
		return m, m.auth.focusFirst()

	case "tab", "down":
		m.auth.focusIdx = (m.auth.focusIdx + 1) % len(m.auth.fields())
		return m, m.auth.applyFocus()

	case "shift+tab", "up":
		fields := len(m.auth.fields())
		m.auth.focusIdx = (m.auth.focusIdx + fields - 1) % fields
		return m, m.auth.applyFocus()

	case "enter":
		if m.auth.focusIdx < len(m.auth.fields())-1 {
			m.auth.focusIdx++
			return m, m.auth.applyFocus()
		}
		return m.submitAuth()
	}

	return m.updateAuthInputs(msg)
}

// updateAuthInputs routes input events to the focused form field.
func (m Model) updateAuthInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	fields := m.auth.fields()
	if m.auth.focusIdx >= len(fields) {
		return m, nil
	}
	var cmd tea.Cmd
	*fields[m.auth.focusIdx], cmd = fields[m.auth.focusIdx].Update(msg)
	return m, cmd
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(m.auth.email.Value())
	password := m.auth.password.Value()
	if email == "" || password == "" {
		m.auth.errMsg = "email and password are required"
		return m, nil
	}

	m.auth.busy = true
	m.auth.errMsg = ""

	if m.auth.mode == modeSignup {
		req := api.SignupRequest{
			Name:     strings.TrimSpace(m.auth.name.Value()),
			Email:    email,
			Password: password,
		}
		return m, signupCmd(m.ctx, m.session, req)
	}
	return m, loginCmd(m.ctx, m.session, email, password)
}

func loginCmd(ctx context.Context, session *store.Session, email, password string) tea.Cmd {
	return func() tea.Msg {
		return authDoneMsg{err: session.Login(ctx, email, password)}
	}
}

func signupCmd(ctx context.Context, session *store.Session, req api.SignupRequest) tea.Cmd {
	return func() tea.Msg {
		return authDoneMsg{err: session.Signup(ctx, req)}
	}
}
