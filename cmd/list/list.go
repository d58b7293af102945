// cmd/list/list.go

package list

import (
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/cmd_helpers"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_cli"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_io"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/userdir"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

// ListCmd fetches every user.
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetch all users",
	Long: `Fetch every user from the configured endpoint.

Examples:
  userdir list
  userdir list --json`,
	Args: cobra.NoArgs,
	RunE: dir_cli.Wrap(runList),
}

func runList(rc *dir_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	client, _, err := cmd_helpers.NewClient(rc, cmd)
	if err != nil {
		return err
	}

	otelzap.Ctx(rc.Ctx).Info("Fetching all users")
	out := client.List(rc.Ctx)
	return cmd_helpers.PrintOutcome(rc, cmd, userdir.OpList, out)
}
