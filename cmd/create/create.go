// cmd/create/create.go

package create

import (
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/cmd_helpers"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_cli"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_io"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/userdir"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var createName string

// CreateCmd adds a user.
var CreateCmd = &cobra.Command{
	Use:     "create --name <name>",
	Aliases: []string{"add"},
	Short:   "Add a user",
	Long: `Add a user with the given name. The service assigns the ID and the
created record is printed.

Examples:
  userdir create --name Alice`,
	Args: cobra.NoArgs,
	RunE: dir_cli.Wrap(runCreate),
}

func init() {
	CreateCmd.Flags().StringVarP(&createName, "name", "n", "", "name of the new user")
}

func runCreate(rc *dir_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	client, _, err := cmd_helpers.NewClient(rc, cmd)
	if err != nil {
		return err
	}

	otelzap.Ctx(rc.Ctx).Info("Adding user", zap.String("user_name", createName))
	out := client.Create(rc.Ctx, createName)
	return cmd_helpers.PrintOutcome(rc, cmd, userdir.OpCreate, out)
}
