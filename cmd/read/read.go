// cmd/read/read.go

package read

import (
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/cmd_helpers"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_cli"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_io"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/userdir"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// ReadCmd fetches one user by id.
var ReadCmd = &cobra.Command{
	Use:     "read <id>",
	Aliases: []string{"get"},
	Short:   "Fetch a user by ID",
	Long: `Fetch one user. An unknown ID is not an error: it prints
"No user found with that ID." and exits 0.

Examples:
  userdir read 65f0c1a2b3c4d5e6f7a8b9c0
  userdir read 65f0c1a2b3c4d5e6f7a8b9c0 --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: dir_cli.Wrap(runRead),
}

func runRead(rc *dir_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	client, _, err := cmd_helpers.NewClient(rc, cmd)
	if err != nil {
		return err
	}

	var id string
	if len(args) > 0 {
		id = args[0]
	}

	otelzap.Ctx(rc.Ctx).Info("Fetching user", zap.String("user_id", id))
	out := client.GetByID(rc.Ctx, id)
	return cmd_helpers.PrintOutcome(rc, cmd, userdir.OpGet, out)
}
