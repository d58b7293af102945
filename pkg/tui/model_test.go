package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_err"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/form"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/testutil"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/userdir"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// recordingRunner answers every request with reply and remembers it.
type recordingRunner struct {
	mu    sync.Mutex
	reqs  []userdir.Request
	reply func(userdir.Request) userdir.Outcome
}

func (r *recordingRunner) Run(_ context.Context, req userdir.Request) userdir.Outcome {
	r.mu.Lock()
	r.reqs = append(r.reqs, req)
	r.mu.Unlock()
	if r.reply == nil {
		return userdir.SuccessEmpty()
	}
	return r.reply(req)
}

func (r *recordingRunner) requests() []userdir.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]userdir.Request(nil), r.reqs...)
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// finish waits for a dispatch command and feeds its outcome back.
func finish(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd, "expected a request to be dispatched")

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		_, isOutcome := msg.(outcomeMsg)
		require.True(t, isOutcome, "got %T", msg)
		m, _ = press(t, m, msg)
		return m
	case <-time.After(5 * time.Second):
		t.Fatal("dispatch never completed")
		return m
	}
}

func newModel(t *testing.T, runner userdir.Runner) Model {
	t.Helper()
	testutil.NewTestContext(t)
	return New(context.Background(), runner, "https://crudcrud.com/api/***")
}

func typeInto(t *testing.T, m Model, id, name string) Model {
	t.Helper()
	if id != "" {
		m, _ = press(t, m, runes(id))
	}
	if name != "" {
		m, _ = press(t, m, keyMsg(tea.KeyTab))
		m, _ = press(t, m, runes(name))
		m, _ = press(t, m, keyMsg(tea.KeyTab))
	}
	return m
}

func TestTypingUpdatesState(t *testing.T) {
	m := newModel(t, &recordingRunner{})
	m = typeInto(t, m, "abc", "Alice")

	assert.Equal(t, "abc", m.State().UserID)
	assert.Equal(t, "Alice", m.State().UserName)
}

func TestListDispatchesAndRendersOutcome(t *testing.T) {
	runner := &recordingRunner{reply: func(userdir.Request) userdir.Outcome {
		return userdir.SuccessList(nil)
	}}
	m := newModel(t, runner)

	m, cmd := press(t, m, keyMsg(tea.KeyCtrlL))
	assert.True(t, m.State().Busy())
	assert.Contains(t, m.View(), "1 request(s) in flight")

	m = finish(t, m, cmd)
	assert.False(t, m.State().Busy())
	assert.Equal(t, form.MsgNoUsers, m.State().Message)
	assert.Equal(t, []userdir.Request{{Op: userdir.OpList}}, runner.requests())
}

func TestCreateCollapsesFormUntilBack(t *testing.T) {
	runner := &recordingRunner{reply: func(req userdir.Request) userdir.Outcome {
		return userdir.Success(userdir.UserRecord{ID: "a1", Name: req.Name})
	}}
	m := newModel(t, runner)
	m = typeInto(t, m, "", "Alice")

	m, cmd := press(t, m, keyMsg(tea.KeyCtrlA))
	m = finish(t, m, cmd)

	assert.True(t, m.State().Collapsed)
	assert.Contains(t, m.View(), "Form hidden.")
	assert.Contains(t, m.View(), `User added successfully:`)

	// typing is ignored while collapsed
	m, _ = press(t, m, runes("zzz"))
	assert.Equal(t, "Alice", m.State().UserName)

	m, _ = press(t, m, keyMsg(tea.KeyCtrlB))
	assert.Equal(t, form.New(), m.State())
	assert.Equal(t, "", m.nameInput.Value())
	assert.Equal(t, fieldID, m.focus)
}

func TestValidationPromptWithoutNetworkCall(t *testing.T) {
	runner := &recordingRunner{reply: func(userdir.Request) userdir.Outcome {
		return userdir.Failure(dir_err.MissingFields("name"))
	}}
	m := newModel(t, runner)

	m, cmd := press(t, m, keyMsg(tea.KeyCtrlA))
	m = finish(t, m, cmd)

	assert.Equal(t, form.PromptName, m.State().Message)
	assert.False(t, m.State().Collapsed)
}

func TestDeleteConfirmThenReset(t *testing.T) {
	runner := &recordingRunner{}
	m := newModel(t, runner)
	m = typeInto(t, m, "abc", "Alice")

	m, cmd := press(t, m, keyMsg(tea.KeyCtrlD))
	assert.Nil(t, cmd)
	assert.Equal(t, form.DeleteConfirmation, m.State().Mode)
	assert.Contains(t, m.View(), form.ConfirmPrompt)

	m, cmd = press(t, m, runes("y"))
	m = finish(t, m, cmd)

	assert.Equal(t, form.FormVisible, m.State().Mode)
	assert.Equal(t, form.MsgUserDeleted, m.State().Message)
	assert.Empty(t, m.State().UserID)
	assert.Empty(t, m.idInput.Value())
	assert.Equal(t, []userdir.Request{{Op: userdir.OpDelete, ID: "abc"}}, runner.requests())
}

func TestDeleteCancelMakesNoCall(t *testing.T) {
	runner := &recordingRunner{}
	m := newModel(t, runner)
	m = typeInto(t, m, "abc", "")

	m, _ = press(t, m, keyMsg(tea.KeyCtrlD))
	m, cmd := press(t, m, keyMsg(tea.KeyEsc))

	assert.Nil(t, cmd)
	assert.Equal(t, form.New(), m.State())
	assert.Empty(t, runner.requests())
}

func TestDoublePressIssuesTwoRequests(t *testing.T) {
	runner := &recordingRunner{reply: func(userdir.Request) userdir.Outcome {
		return userdir.Failure(errors.New("connection refused"))
	}}
	m := newModel(t, runner)
	m = typeInto(t, m, "abc", "")

	m, first := press(t, m, keyMsg(tea.KeyCtrlG))
	m, second := press(t, m, keyMsg(tea.KeyCtrlG))
	assert.Equal(t, 2, m.State().Pending)

	m = finish(t, m, second)
	m = finish(t, m, first)

	assert.Len(t, runner.requests(), 2)
	assert.False(t, m.State().Busy())
	assert.Equal(t, "Error fetching user by ID: connection refused", m.State().Message)
	assert.False(t, m.lastOK)
}

func TestQuit(t *testing.T) {
	m := newModel(t, &recordingRunner{})
	_, cmd := press(t, m, keyMsg(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestConfigChangedNotice(t *testing.T) {
	m := newModel(t, &recordingRunner{})
	m, _ = press(t, m, ConfigChangedMsg{BaseURL: "https://crudcrud.com/api/***"})
	assert.Contains(t, m.View(), "applies on next launch")
}

func TestAgainstTwin(t *testing.T) {
	testutil.IsolateDefinitions(t)
	twin := testutil.NewTwin(t)
	client, err := userdir.New(userdir.Config{BaseURL: twin.URL}, userdir.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	m := newModel(t, client)
	m = typeInto(t, m, "", "Alice")
	m, cmd := press(t, m, keyMsg(tea.KeyCtrlA))
	m = finish(t, m, cmd)
	require.True(t, m.lastOK, m.State().Message)

	m, _ = press(t, m, keyMsg(tea.KeyCtrlB))
	m, cmd = press(t, m, keyMsg(tea.KeyCtrlL))
	m = finish(t, m, cmd)
	assert.Contains(t, m.State().Message, `"name": "Alice"`)
	assert.Equal(t, 1, twin.Store().Len())
}
