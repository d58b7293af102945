// cmd/update/update.go

package update

import (
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/cmd_helpers"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_cli"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_io"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/userdir"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var updateName string

// UpdateCmd replaces a user's name.
var UpdateCmd = &cobra.Command{
	Use:   "update <id> --name <name>",
	Short: "Update a user's name",
	Long: `Replace the name of an existing user.

Examples:
  userdir update 65f0c1a2b3c4d5e6f7a8b9c0 --name Bob`,
	Args: cobra.MaximumNArgs(1),
	RunE: dir_cli.Wrap(runUpdate),
}

func init() {
	UpdateCmd.Flags().StringVarP(&updateName, "name", "n", "", "new name for the user")
}

func runUpdate(rc *dir_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	client, _, err := cmd_helpers.NewClient(rc, cmd)
	if err != nil {
		return err
	}

	var id string
	if len(args) > 0 {
		id = args[0]
	}

	otelzap.Ctx(rc.Ctx).Info("Updating user",
		zap.String("user_id", id),
		zap.String("user_name", updateName))
	out := client.UpdateByID(rc.Ctx, id, updateName)
	return cmd_helpers.PrintOutcome(rc, cmd, userdir.OpUpdate, out)
}
