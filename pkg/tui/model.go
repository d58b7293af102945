/* pkg/tui/model.go */

// Package tui is the interactive users screen: two inputs, one message area
// and a delete confirmation, driven by the form state machine.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/form"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/userdir"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const (
	fieldID = iota
	fieldName
)

// outcomeMsg carries a finished call back into Update.
type outcomeMsg struct {
	op  userdir.Operation
	out userdir.Outcome
}

// ConfigChangedMsg tells the screen the config file now names another base URL.
type ConfigChangedMsg struct {
	BaseURL string
}

// Model is the bubbletea model for the users screen.
type Model struct {
	ctx       context.Context
	runner    userdir.Runner
	target    string
	state     form.State
	lastOK    bool
	notice    string
	keys      KeyMap
	styles    Styles
	idInput   textinput.Model
	nameInput textinput.Model
	focus     int
	spinner   spinner.Model
	width     int
}

// New builds the screen. target is shown in the title and should already be
// redacted.
func New(ctx context.Context, runner userdir.Runner, target string) Model {
	if ctx == nil {
		ctx = context.Background()
	}

	id := textinput.New()
	id.Placeholder = "Enter User ID"
	id.Prompt = "ID   › "
	id.CharLimit = 128
	id.Focus()

	name := textinput.New()
	name.Placeholder = "Enter User Name"
	name.Prompt = "Name › "
	name.CharLimit = 256

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	return Model{
		ctx:       ctx,
		runner:    runner,
		target:    target,
		state:     form.New(),
		keys:      DefaultKeyMap(),
		styles:    NewStyles(),
		idInput:   id,
		nameInput: name,
		focus:     fieldID,
		spinner:   sp,
	}
}

// State returns the current form state.
func (m Model) State() form.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case outcomeMsg:
		m.state = form.Apply(m.state, msg.op, msg.out)
		m.lastOK = msg.out.IsSuccess()
		otelzap.Ctx(m.ctx).Debug("Applied outcome",
			zap.String("operation", string(msg.op)),
			zap.String("outcome", msg.out.Kind.String()),
			zap.String("state", m.state.Summary()))
		cmd := m.syncInputs()
		return m, cmd

	case ConfigChangedMsg:
		m.notice = fmt.Sprintf("Config changed: base URL %s applies on next launch.", msg.BaseURL)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Back) {
		m.state = form.Back(m.state)
		cmd := m.syncInputs()
		return m, cmd
	}

	switch m.state.Mode {
	case form.DeleteConfirmation:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			next, req, ok := form.ConfirmDelete(m.state)
			if !ok {
				return m, nil
			}
			m.state = next
			return m, m.dispatch(req)
		case key.Matches(msg, m.keys.Cancel):
			m.state = form.Cancel(m.state)
			cmd := m.syncInputs()
			return m, cmd
		}
		return m, nil

	case form.FormVisible:
		switch {
		case key.Matches(msg, m.keys.Delete):
			m.state = form.RequestDelete(m.state)
			return m, nil
		case key.Matches(msg, m.keys.List):
			return m.submit(userdir.OpList)
		case key.Matches(msg, m.keys.Get):
			return m.submit(userdir.OpGet)
		case key.Matches(msg, m.keys.Add):
			return m.submit(userdir.OpCreate)
		case key.Matches(msg, m.keys.Update):
			return m.submit(userdir.OpUpdate)
		case key.Matches(msg, m.keys.NextField):
			if m.state.InputsVisible() {
				cmd := m.setFocus(1 - m.focus)
				return m, cmd
			}
			return m, nil
		}
		if !m.state.InputsVisible() {
			return m, nil
		}
		return m.updateFocused(msg)
	}

	return m, nil
}

func (m Model) submit(op userdir.Operation) (tea.Model, tea.Cmd) {
	next, req, ok := form.Submit(m.state, op)
	if !ok {
		return m, nil
	}
	m.state = next
	return m, m.dispatch(req)
}

// dispatch starts the call now and returns a command that waits for its
// outcome. Nothing stops a second dispatch while the first is in flight.
func (m Model) dispatch(req userdir.Request) tea.Cmd {
	otelzap.Ctx(m.ctx).Debug("Dispatching request",
		zap.String("operation", string(req.Op)),
		zap.Int("pending", m.state.Pending))

	ch := userdir.RunAsync(m.ctx, m.runner, req)
	return func() tea.Msg {
		return outcomeMsg{op: req.Op, out: <-ch}
	}
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldID:
		m.idInput, cmd = m.idInput.Update(msg)
		m.state = form.SetUserID(m.state, m.idInput.Value())
	case fieldName:
		m.nameInput, cmd = m.nameInput.Update(msg)
		m.state = form.SetUserName(m.state, m.nameInput.Value())
	}
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.focus = i
	if i == fieldName {
		m.idInput.Blur()
		return m.nameInput.Focus()
	}
	m.nameInput.Blur()
	return m.idInput.Focus()
}

// syncInputs copies field values from the state into the inputs after a
// transition that may have reset them.
func (m *Model) syncInputs() tea.Cmd {
	if m.idInput.Value() != m.state.UserID {
		m.idInput.SetValue(m.state.UserID)
	}
	if m.nameInput.Value() != m.state.UserName {
		m.nameInput.SetValue(m.state.UserName)
	}
	if m.state.UserID == "" && m.state.UserName == "" && m.focus != fieldID {
		return m.setFocus(fieldID)
	}
	return nil
}

func (m Model) View() string {
	var b strings.Builder

	title := "userdir"
	if m.target != "" {
		title += "  " + m.target
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")

	if m.state.Message != "" {
		style := m.styles.Success
		if !m.lastOK {
			style = m.styles.Error
		}
		b.WriteString(style.Render(m.state.Message))
		b.WriteString("\n\n")
	}

	var body string
	var help []string
	switch m.state.Mode {
	case form.DeleteConfirmation:
		body = m.styles.Warning.Render(form.ConfirmPrompt)
		if m.state.UserID != "" {
			body += "\n" + m.styles.Label.Render("ID: ") + m.state.UserID
		}
		help = helpLine(m.keys.Confirm, m.keys.Cancel, m.keys.Back)
	case form.FormVisible:
		if m.state.InputsVisible() {
			body = m.idInput.View() + "\n" + m.nameInput.View()
			help = helpLine(m.keys.List, m.keys.Get, m.keys.Add, m.keys.Update, m.keys.Delete, m.keys.NextField)
		} else {
			body = m.styles.Muted.Render("Form hidden.")
			help = helpLine(m.keys.Back, m.keys.Delete)
		}
	}

	card := m.styles.Card
	if m.width > 4 {
		card = card.Width(m.width - 4)
	}
	b.WriteString(card.Render(body))
	b.WriteString("\n")

	if m.state.Busy() {
		b.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(),
			m.styles.Label.Render(fmt.Sprintf("%d request(s) in flight", m.state.Pending))))
	}
	if m.notice != "" {
		b.WriteString(m.styles.Warning.Render(m.notice))
		b.WriteString("\n")
	}

	help = append(help, helpLine(m.keys.Quit)...)
	b.WriteString(m.styles.Footer.Render(strings.Join(help, " · ")))
	b.WriteString("\n")
	return b.String()
}
