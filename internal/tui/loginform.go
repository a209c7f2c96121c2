package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// LoginForm collects the server URL and personal access token.
type LoginForm struct {
	serverInput textinput.Model
	tokenInput  textinput.Model

	focusIndex int // 0=server, 1=token
	submitting bool
	errText    string
	width      int
}

// NewLoginForm creates the login form, prefilled with a stored server URL
// when one exists.
func NewLoginForm(server string, width int) *LoginForm {
	si := textinput.New()
	si.Placeholder = "my-server.example.com"
	si.CharLimit = 300
	si.Width = width - 8
	si.SetValue(server)

	ti := textinput.New()
	ti.Placeholder = "personal access token"
	ti.CharLimit = 500
	ti.Width = width - 8
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	lf := &LoginForm{
		serverInput: si,
		tokenInput:  ti,
		width:       width,
	}

	if server == "" {
		lf.serverInput.Focus()
	} else {
		lf.focusIndex = 1
		lf.tokenInput.Focus()
	}

	return lf
}

// FocusNext moves to the next field.
func (lf *LoginForm) FocusNext() {
	lf.blurAll()
	lf.focusIndex = (lf.focusIndex + 1) % 2
	lf.focusCurrent()
}

// FocusPrev moves to the previous field.
func (lf *LoginForm) FocusPrev() {
	lf.FocusNext()
}

func (lf *LoginForm) blurAll() {
	lf.serverInput.Blur()
	lf.tokenInput.Blur()
}

func (lf *LoginForm) focusCurrent() {
	switch lf.focusIndex {
	case 0:
		lf.serverInput.Focus()
	case 1:
		lf.tokenInput.Focus()
	}
}

// Server returns the current server value.
func (lf *LoginForm) Server() string {
	return strings.TrimSpace(lf.serverInput.Value())
}

// Token returns the current token value.
func (lf *LoginForm) Token() string {
	return strings.TrimSpace(lf.tokenInput.Value())
}

// SetSubmitting marks the form as waiting on an authentication attempt.
func (lf *LoginForm) SetSubmitting(v bool) {
	lf.submitting = v
}

// Submitting reports whether an authentication attempt is in flight.
func (lf *LoginForm) Submitting() bool {
	return lf.submitting
}

// SetError records an error message to display under the form.
func (lf *LoginForm) SetError(text string) {
	lf.errText = text
}

// ServerInput returns the server input model for update forwarding.
func (lf *LoginForm) ServerInput() *textinput.Model {
	return &lf.serverInput
}

// TokenInput returns the token input model for update forwarding.
func (lf *LoginForm) TokenInput() *textinput.Model {
	return &lf.tokenInput
}

// FocusIndex returns the currently focused field index.
func (lf *LoginForm) FocusIndex() int {
	return lf.focusIndex
}

// SetWidth resizes the form inputs.
func (lf *LoginForm) SetWidth(width int) {
	lf.width = width
	lf.serverInput.Width = width - 8
	lf.tokenInput.Width = width - 8
}

// View renders the login form.
func (lf *LoginForm) View() string {
	formWidth := lf.width
	if formWidth > 64 {
		formWidth = 64
	}
	if formWidth < 30 {
		formWidth = 30
	}

	parts := make([]string, 0, 10)
	parts = append(parts, formTitleStyle.Render("Sign in"))

	label := lipgloss.NewStyle().Bold(true).Render("Server URL:")
	parts = append(parts, label, lf.serverInput.View(), "")

	label = lipgloss.NewStyle().Bold(true).Render("Access Token:")
	parts = append(parts, label, lf.tokenInput.View(), "")

	if lf.submitting {
		parts = append(parts, dimStyle.Render("Signing in..."), "")
	} else if lf.errText != "" {
		parts = append(parts, formErrorStyle.Render(lf.errText), "")
	}

	footer := dimStyle.Render("Enter sign in  |  Tab next field  |  Ctrl+q quit")
	parts = append(parts, footer)

	content := strings.Join(parts, "\n")
	return panelBorderStyle.Width(formWidth).Padding(1, 2).Render(content)
}
