// cmd/delete/delete.go

package delete

import (
	"errors"
	"fmt"
	"strings"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/cmd_helpers"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_cli"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_err"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_io"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/form"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/interaction"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/userdir"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var deleteForce bool

// isInteractive is replaced in tests.
var isInteractive = interaction.IsInteractive

// DeleteCmd removes a user after confirmation.
var DeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a user",
	Long: `Delete a user. On a terminal you are asked to confirm first; declining
makes no request. Without a terminal, --force is required.

Examples:
  userdir delete 65f0c1a2b3c4d5e6f7a8b9c0
  userdir delete 65f0c1a2b3c4d5e6f7a8b9c0 --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: dir_cli.Wrap(runDelete),
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "delete without asking for confirmation")
}

func runDelete(rc *dir_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	logger := otelzap.Ctx(rc.Ctx)

	client, _, err := cmd_helpers.NewClient(rc, cmd)
	if err != nil {
		return err
	}

	var id string
	if len(args) > 0 {
		id = args[0]
	}

	// A blank id goes straight to the client, which reports it without a request.
	if !deleteForce && strings.TrimSpace(id) != "" {
		confirmed, err := confirm(rc, cmd, id)
		if err != nil {
			return err
		}
		if !confirmed {
			logger.Info("Deletion cancelled by user", zap.String("user_id", id))
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
			return err
		}
	}

	logger.Info("Deleting user", zap.String("user_id", id), zap.Bool("force", deleteForce))
	out := client.DeleteByID(rc.Ctx, id)
	return cmd_helpers.PrintOutcome(rc, cmd, userdir.OpDelete, out)
}

func confirm(rc *dir_io.RuntimeContext, cmd *cobra.Command, id string) (bool, error) {
	if !isInteractive() {
		return false, dir_err.NewConfigError("refusing to delete without confirmation", nil,
			"run on a terminal to confirm interactively, or pass --force")
	}

	prompt := fmt.Sprintf("%s (ID %s)", form.ConfirmPrompt, id)
	ok, err := interaction.PromptYesNo(rc.Ctx, cmd.InOrStdin(), prompt, false)
	if errors.Is(err, interaction.ErrNoAnswer) {
		return false, nil
	}
	return ok, err
}
