package form

import (
	"errors"
	"testing"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_err"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/userdir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(id, name string) State {
	return SetUserName(SetUserID(New(), id), name)
}

func TestNewState(t *testing.T) {
	s := New()
	assert.Equal(t, FormVisible, s.Mode)
	assert.True(t, s.InputsVisible())
	assert.False(t, s.Busy())
	assert.Empty(t, s.Message)
}

func TestSubmitBuildsRequests(t *testing.T) {
	tests := []struct {
		op   userdir.Operation
		want userdir.Request
	}{
		{userdir.OpList, userdir.Request{Op: userdir.OpList}},
		{userdir.OpGet, userdir.Request{Op: userdir.OpGet, ID: "abc"}},
		{userdir.OpCreate, userdir.Request{Op: userdir.OpCreate, Name: "Alice"}},
		{userdir.OpUpdate, userdir.Request{Op: userdir.OpUpdate, ID: "abc", Name: "Alice"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			next, req, ok := Submit(filled("abc", "Alice"), tt.op)
			require.True(t, ok)
			assert.Equal(t, tt.want, req)
			assert.Equal(t, 1, next.Pending)
		})
	}
}

func TestSubmitRefusesDelete(t *testing.T) {
	s := filled("abc", "")
	next, _, ok := Submit(s, userdir.OpDelete)
	assert.False(t, ok)
	assert.Equal(t, s, next)
}

func TestSubmitOnlyFromVisibleInputs(t *testing.T) {
	confirming := RequestDelete(filled("abc", "Alice"))
	_, _, ok := Submit(confirming, userdir.OpList)
	assert.False(t, ok)

	collapsed := filled("abc", "Alice")
	collapsed.Collapsed = true
	_, _, ok = Submit(collapsed, userdir.OpList)
	assert.False(t, ok)
}

func TestOverlappingSubmitsAreAllIssued(t *testing.T) {
	s := New()
	s, first, ok := Submit(s, userdir.OpList)
	require.True(t, ok)
	s, second, ok := Submit(s, userdir.OpList)
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, s.Pending)

	s = Apply(s, userdir.OpList, userdir.SuccessList(nil))
	assert.Equal(t, 1, s.Pending)
	assert.True(t, s.Busy())
	s = Apply(s, userdir.OpList, userdir.Failure(errors.New("late")))
	assert.Equal(t, 0, s.Pending)
	assert.Equal(t, "Error fetching users: late", s.Message, "the last outcome applied wins")
}

func TestDeleteFlowConfirm(t *testing.T) {
	s := filled("abc", "Alice")

	s = RequestDelete(s)
	assert.Equal(t, DeleteConfirmation, s.Mode)
	assert.False(t, s.InputsVisible())
	assert.Equal(t, "abc", s.UserID)

	s, req, ok := ConfirmDelete(s)
	require.True(t, ok)
	assert.Equal(t, userdir.Request{Op: userdir.OpDelete, ID: "abc"}, req)
	assert.Equal(t, DeleteConfirmation, s.Mode, "stays until the outcome arrives")

	s = Apply(s, userdir.OpDelete, userdir.SuccessEmpty())
	assert.Equal(t, State{Mode: FormVisible, Message: MsgUserDeleted}, s)
}

func TestDeleteFlowFailureStillResets(t *testing.T) {
	s := RequestDelete(filled("abc", "Alice"))
	s, _, ok := ConfirmDelete(s)
	require.True(t, ok)

	s = Apply(s, userdir.OpDelete, userdir.Failure(errors.New("DELETE /users/abc: connection refused")))
	assert.Equal(t, FormVisible, s.Mode)
	assert.Empty(t, s.UserID)
	assert.Empty(t, s.UserName)
	assert.Equal(t, "Error deleting user: DELETE /users/abc: connection refused", s.Message)
}

func TestConfirmDeleteWithoutIDStillIssuesRequest(t *testing.T) {
	s := RequestDelete(New())
	s, req, ok := ConfirmDelete(s)
	require.True(t, ok)
	assert.Equal(t, userdir.OpDelete, req.Op)
	assert.Empty(t, req.ID)

	s = Apply(s, userdir.OpDelete, userdir.Failure(dir_err.MissingFields("id")))
	assert.Equal(t, PromptDeleteID, s.Message)
	assert.Equal(t, FormVisible, s.Mode)
}

func TestConfirmDeleteOutsideConfirmation(t *testing.T) {
	s := filled("abc", "")
	next, _, ok := ConfirmDelete(s)
	assert.False(t, ok)
	assert.Equal(t, s, next)
}

func TestCancel(t *testing.T) {
	s := filled("abc", "Alice")
	s.Message = "User Found: \n{}"
	s = RequestDelete(s)

	s = Cancel(s)
	assert.Equal(t, New(), s)

	visible := filled("abc", "Alice")
	assert.Equal(t, visible, Cancel(visible), "cancel only acts on the confirmation view")
}

func TestRequestDeleteIgnoredWhileConfirming(t *testing.T) {
	s := RequestDelete(filled("abc", ""))
	assert.Equal(t, s, RequestDelete(s))
}

func TestCreateSuccessCollapsesUntilBack(t *testing.T) {
	s := filled("", "Alice")
	s, _, ok := Submit(s, userdir.OpCreate)
	require.True(t, ok)

	s = Apply(s, userdir.OpCreate, userdir.Success(userdir.UserRecord{ID: "a1", Name: "Alice"}))
	assert.True(t, s.Collapsed)
	assert.False(t, s.InputsVisible())
	assert.Equal(t, "User added successfully: \n"+`{"_id":"a1","name":"Alice"}`, s.Message)

	// delete stays reachable while collapsed
	assert.Equal(t, DeleteConfirmation, RequestDelete(s).Mode)

	s = Back(s)
	assert.Equal(t, New(), s)
}

func TestFailedUpdateKeepsInputs(t *testing.T) {
	s := filled("abc", "")
	s, _, ok := Submit(s, userdir.OpUpdate)
	require.True(t, ok)

	s = Apply(s, userdir.OpUpdate, userdir.Failure(dir_err.MissingFields("name")))
	assert.False(t, s.Collapsed)
	assert.Equal(t, "abc", s.UserID)
	assert.Equal(t, PromptIDAndName, s.Message)
}

func TestBackKeepsPendingCount(t *testing.T) {
	s, _, _ := Submit(New(), userdir.OpList)
	s = Back(s)
	assert.Equal(t, 1, s.Pending)

	s = Apply(s, userdir.OpList, userdir.SuccessList(nil))
	assert.Equal(t, MsgNoUsers, s.Message)
	assert.False(t, s.Busy())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "form", FormVisible.String())
	assert.Equal(t, "confirm-delete", DeleteConfirmation.String())
	assert.Equal(t, "mode(7)", Mode(7).String())
	assert.Equal(t, "mode=confirm-delete pending=0", RequestDelete(New()).Summary())
}
