// pkg/userdir/outcome.go

package userdir

import (
	"fmt"
)

// Kind tags what an Outcome holds.
type Kind int

const (
	KindFailure Kind = iota
	KindRecord
	KindRecords
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindFailure:
		return "failure"
	case KindRecord:
		return "record"
	case KindRecords:
		return "records"
	case KindEmpty:
		return "empty"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is the result of one operation: Success carrying a record, a list,
// or nothing; or Failure carrying a message. Operations never return errors
// or panic; everything ends up here.
type Outcome struct {
	Kind    Kind
	Record  *UserRecord
	Records []UserRecord

	// Message is set for failures and always non-empty there.
	Message string
	// Err is the classified cause of a failure, for programmatic inspection.
	Err error
}

func Success(r UserRecord) Outcome {
	return Outcome{Kind: KindRecord, Record: &r}
}

// SuccessList never stores a nil slice, so an empty collection stays
// distinguishable from "no payload".
func SuccessList(rs []UserRecord) Outcome {
	if rs == nil {
		rs = []UserRecord{}
	}
	return Outcome{Kind: KindRecords, Records: rs}
}

func SuccessEmpty() Outcome {
	return Outcome{Kind: KindEmpty}
}

func Failure(err error) Outcome {
	msg := "request failed"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return Outcome{Kind: KindFailure, Message: msg, Err: err}
}

func (o Outcome) IsSuccess() bool {
	return o.Kind != KindFailure
}

// IsEmpty reports a success with nothing to show: Empty, or an empty list.
func (o Outcome) IsEmpty() bool {
	return o.Kind == KindEmpty || (o.Kind == KindRecords && len(o.Records) == 0)
}

// Payload returns the value to print as JSON, or nil for Empty and failures.
func (o Outcome) Payload() any {
	switch o.Kind {
	case KindRecord:
		return o.Record
	case KindRecords:
		return o.Records
	default:
		return nil
	}
}

func (o Outcome) String() string {
	switch o.Kind {
	case KindFailure:
		return "Failure(" + o.Message + ")"
	case KindRecord:
		return fmt.Sprintf("Success(%s %q)", o.Record.ID, o.Record.Name)
	case KindRecords:
		return fmt.Sprintf("Success(%d records)", len(o.Records))
	default:
		return "Success(empty)"
	}
}
