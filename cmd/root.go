/* cmd/root.go */

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/cmd_helpers"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_err"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	// Subcommands
	configcmd "github.com/CodeMonkeyCybersecurity/userdir/cmd/config"
	"github.com/CodeMonkeyCybersecurity/userdir/cmd/create"
	"github.com/CodeMonkeyCybersecurity/userdir/cmd/delete"
	"github.com/CodeMonkeyCybersecurity/userdir/cmd/list"
	"github.com/CodeMonkeyCybersecurity/userdir/cmd/read"
	"github.com/CodeMonkeyCybersecurity/userdir/cmd/twin"
	"github.com/CodeMonkeyCybersecurity/userdir/cmd/ui"
	"github.com/CodeMonkeyCybersecurity/userdir/cmd/update"
)

// RootCmd is the base command for userdir.
var RootCmd = &cobra.Command{
	Use:   "userdir",
	Short: "Manage users on a crudcrud-style REST endpoint",
	Long: `userdir lists, reads, creates, updates and deletes users held by a hosted
CRUD service whose base URL embeds an access token.

Set the endpoint once:
  export USERDIR_BASE_URL=https://crudcrud.com/api/<token>

Then:
  userdir list
  userdir create --name Alice
  userdir ui`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var registerOnce sync.Once

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	registerOnce.Do(func() {
		cmd_helpers.AddGlobalFlags(RootCmd)

		for _, subCmd := range []*cobra.Command{
			list.ListCmd,
			read.ReadCmd,
			create.CreateCmd,
			update.UpdateCmd,
			delete.DeleteCmd,
			ui.UICmd,
			twin.TwinCmd,
			configcmd.ConfigCmd,
		} {
			RootCmd.AddCommand(subCmd)
		}
	})
}

// Execute runs the CLI and exits with the classified exit code.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.L().Debug("Telemetry shutdown failed", zap.Error(err))
	}
	cancel()
	logger.Sync()

	os.Exit(code)
}

// Run executes args against the command tree and returns the exit code.
// Errors are reported on stderr with any hints attached to them.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	RegisterCommands()
	resetFlags(RootCmd)

	RootCmd.SetArgs(args)
	RootCmd.SetIn(stdin)
	RootCmd.SetOut(stdout)
	RootCmd.SetErr(stderr)

	err := RootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	code := dir_err.GetExitCode(err)
	if dir_err.IsExpectedUserError(err) {
		logger.L().Debug("Command finished with user error", zap.Error(err), zap.Int("exit_code", code))
	} else {
		logger.L().Debug("Command failed", zap.Error(err), zap.Int("exit_code", code))
	}

	_, _ = fmt.Fprintln(stderr, err.Error())
	if hints := dir_err.Hints(err); hints != "" {
		for _, hint := range strings.Split(hints, "\n--\n") {
			_, _ = fmt.Fprintf(stderr, "Hint: %s\n", hint)
		}
	}
	return code
}

// resetFlags returns every flag to its default so repeated runs in one
// process start clean.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}
