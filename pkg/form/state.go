// pkg/form/state.go
//
// Form state for the users screen. Every action is a pure function from one
// State to the next; network calls leave as userdir.Requests and their
// Outcomes come back through Apply.

package form

import (
	"fmt"
	"strings"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/userdir"
)

// Mode is the view the form is in. The two modes are mutually exclusive.
type Mode int

const (
	FormVisible Mode = iota
	DeleteConfirmation
)

func (m Mode) String() string {
	switch m {
	case FormVisible:
		return "form"
	case DeleteConfirmation:
		return "confirm-delete"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ConfirmPrompt is shown while in DeleteConfirmation.
const ConfirmPrompt = "Are you sure you want to delete this user?"

// State is everything the screen shows.
type State struct {
	Mode     Mode
	UserID   string
	UserName string
	Message  string

	// Collapsed hides the inputs after a successful create or update until Back.
	Collapsed bool
	// Pending counts calls issued and not yet applied. Overlapping calls are
	// allowed, so this can exceed one.
	Pending int
}

// New returns the initial state: an empty, visible form.
func New() State {
	return State{Mode: FormVisible}
}

// InputsVisible reports whether the id and name inputs are shown.
func (s State) InputsVisible() bool {
	return s.Mode == FormVisible && !s.Collapsed
}

func SetUserID(s State, id string) State {
	s.UserID = id
	return s
}

func SetUserName(s State, name string) State {
	s.UserName = name
	return s
}

// RequestDelete switches to the confirmation view. The inputs keep their
// values so the confirmed delete targets the id that was typed.
func RequestDelete(s State) State {
	if s.Mode != FormVisible {
		return s
	}
	s.Mode = DeleteConfirmation
	return s
}

// ConfirmDelete yields the delete request for the current id. The state stays
// in DeleteConfirmation until the outcome is applied. ok is false outside
// DeleteConfirmation.
func ConfirmDelete(s State) (next State, req userdir.Request, ok bool) {
	if s.Mode != DeleteConfirmation {
		return s, userdir.Request{}, false
	}
	s.Pending++
	return s, userdir.Request{Op: userdir.OpDelete, ID: s.UserID}, true
}

// Cancel leaves the confirmation view without a call and resets the form.
func Cancel(s State) State {
	if s.Mode != DeleteConfirmation {
		return s
	}
	return Back(s)
}

// Back returns to an empty, visible form from any view. Pending calls are
// still counted and still applied when they complete.
func Back(s State) State {
	return State{Mode: FormVisible, Pending: s.Pending}
}

// Submit yields the request for a list, get, create or update from the
// visible form. Deletes go through RequestDelete and ConfirmDelete.
func Submit(s State, op userdir.Operation) (next State, req userdir.Request, ok bool) {
	if !s.InputsVisible() {
		return s, userdir.Request{}, false
	}

	switch op {
	case userdir.OpList:
		req = userdir.Request{Op: op}
	case userdir.OpGet:
		req = userdir.Request{Op: op, ID: s.UserID}
	case userdir.OpCreate:
		req = userdir.Request{Op: op, Name: s.UserName}
	case userdir.OpUpdate:
		req = userdir.Request{Op: op, ID: s.UserID, Name: s.UserName}
	default:
		return s, userdir.Request{}, false
	}
	s.Pending++
	return s, req, true
}

// Apply folds a completed call into the state whenever it arrives. Nothing
// orders overlapping calls: the last one applied owns the message.
func Apply(s State, op userdir.Operation, out userdir.Outcome) State {
	if s.Pending > 0 {
		s.Pending--
	}
	msg := Describe(op, out)

	switch op {
	case userdir.OpDelete:
		s = Back(s)
	case userdir.OpCreate, userdir.OpUpdate:
		if out.IsSuccess() {
			s.Collapsed = true
		}
	}
	s.Message = msg
	return s
}

// Busy reports whether any call is outstanding.
func (s State) Busy() bool {
	return s.Pending > 0
}

// Summary is a one-line description for logs.
func (s State) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "mode=%s pending=%d", s.Mode, s.Pending)
	if s.Collapsed {
		b.WriteString(" collapsed")
	}
	return b.String()
}
