// pkg/form/render.go

package form

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_err"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/userdir"
)

// Validation prompts, one per operation that takes input.
const (
	PromptName       = "Please provide a user name."
	PromptIDAndName  = "Please provide both user ID and user name."
	PromptDeleteID   = "Please provide a user ID to delete."
	PromptID         = "Please provide a user ID."
	MsgNoUsers       = "No users found."
	MsgNoUser        = "No user found with that ID."
	MsgUserDeleted   = "User deleted successfully."
	MsgUserAdded     = "User added successfully."
	MsgUserUpdated   = "User updated successfully."
	errPrefixList    = "Error fetching users: "
	errPrefixGet     = "Error fetching user by ID: "
	errPrefixCreate  = "Error adding user: "
	errPrefixUpdate  = "Error updating user: "
	errPrefixDelete  = "Error deleting user: "
	errPrefixUnknown = "Error: "
)

// Describe renders the outcome of op as the text the screen shows.
// Lists and single reads are pretty-printed; create and update echo the
// record compactly.
func Describe(op userdir.Operation, out userdir.Outcome) string {
	if !out.IsSuccess() {
		return describeFailure(op, out)
	}

	switch op {
	case userdir.OpList:
		if len(out.Records) == 0 {
			return MsgNoUsers
		}
		return "Users: \n" + indented(out.Records)
	case userdir.OpGet:
		if out.Kind != userdir.KindRecord {
			return MsgNoUser
		}
		return "User Found: \n" + indented(out.Record)
	case userdir.OpCreate:
		if out.Kind != userdir.KindRecord {
			return MsgUserAdded
		}
		return "User added successfully: \n" + compact(out.Record)
	case userdir.OpUpdate:
		if out.Kind != userdir.KindRecord {
			return MsgUserUpdated
		}
		return "User updated successfully: \n" + compact(out.Record)
	case userdir.OpDelete:
		return MsgUserDeleted
	default:
		return out.String()
	}
}

func describeFailure(op userdir.Operation, out userdir.Outcome) string {
	var verr *dir_err.ValidationError
	if errors.As(out.Err, &verr) {
		switch op {
		case userdir.OpCreate:
			return PromptName
		case userdir.OpUpdate:
			return PromptIDAndName
		case userdir.OpDelete:
			return PromptDeleteID
		case userdir.OpGet:
			return PromptID
		}
	}

	prefix := errPrefixUnknown
	switch op {
	case userdir.OpList:
		prefix = errPrefixList
	case userdir.OpGet:
		prefix = errPrefixGet
	case userdir.OpCreate:
		prefix = errPrefixCreate
	case userdir.OpUpdate:
		prefix = errPrefixUpdate
	case userdir.OpDelete:
		prefix = errPrefixDelete
	}
	return prefix + out.Message
}

func indented(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}

func compact(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}
