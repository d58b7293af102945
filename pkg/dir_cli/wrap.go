// pkg/dir_cli/wrap.go

package dir_cli

import (
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_err"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RunFunc is the shape of every userdir command body.
type RunFunc func(rc *dir_io.RuntimeContext, cmd *cobra.Command, args []string) error

// Wrap ensures panic recovery, tracing and lifecycle logging around fn.
func Wrap(fn RunFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		rc := dir_io.NewContext(cmd.Context(), cmd.Name())
		defer rc.End(&err)

		defer func() {
			if r := recover(); r != nil {
				err = cerr.AssertionFailedf("panic: %v", r)
				rc.Log.Error("Panic recovered", zap.Any("panic", r))
			}
		}()

		rc.Log.Debug("Command started", zap.Strings("args", args))

		err = fn(rc, cmd, args)
		if err != nil && !dir_err.IsExpectedUserError(err) {
			err = cerr.WithStack(err)
		}
		return err
	}
}
