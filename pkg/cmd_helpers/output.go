// pkg/cmd_helpers/output.go

package cmd_helpers

import (
	"encoding/json"
	"fmt"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_io"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/form"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/userdir"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// OutcomeError is a failed Outcome as a command error. Its text is the
// rendered message; Unwrap exposes the classified cause for exit codes.
type OutcomeError struct {
	Text string
	Err  error
}

func (e *OutcomeError) Error() string { return e.Text }

func (e *OutcomeError) Unwrap() error { return e.Err }

// PrintOutcome writes a successful outcome to the command's stdout, as the
// rendered message or, with --json, the payload. Failures are returned as
// *OutcomeError for the root command to report.
func PrintOutcome(rc *dir_io.RuntimeContext, cmd *cobra.Command, op userdir.Operation, out userdir.Outcome) error {
	if !out.IsSuccess() {
		return &OutcomeError{Text: form.Describe(op, out), Err: out.Err}
	}

	rc.Log.Debug("Operation succeeded",
		zap.String("operation", string(op)),
		zap.String("outcome", out.Kind.String()))

	w := cmd.OutOrStdout()
	asJSON, _ := cmd.Flags().GetBool(FlagJSON)
	if !asJSON {
		_, err := fmt.Fprintln(w, form.Describe(op, out))
		return err
	}

	payload := out.Payload()
	if payload == nil {
		_, err := fmt.Fprintln(w, "null")
		return err
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
