// pkg/userdir/operation.go

package userdir

import "context"

// Operation names one of the five calls.
type Operation string

const (
	OpList   Operation = "list"
	OpGet    Operation = "get"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Request is a call the presentation layer wants made.
type Request struct {
	Op   Operation
	ID   string
	Name string
}

// Runner executes Requests. *Client satisfies it.
type Runner interface {
	Run(ctx context.Context, req Request) Outcome
}
