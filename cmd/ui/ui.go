// cmd/ui/ui.go

package ui

import (
	"fmt"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/cmd_helpers"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/config"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_cli"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_io"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/tui"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/userdir"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// UICmd opens the interactive users screen.
var UICmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive users screen",
	Long: `Open a terminal form with User ID and User Name inputs.

Keys:
  tab      switch field
  ctrl+l   fetch all users
  ctrl+g   fetch user by ID
  ctrl+a   add user
  ctrl+u   update user
  ctrl+d   delete user (asks for confirmation: y / n)
  ctrl+b   back to an empty form
  ctrl+c   quit

Logs go to the log file only while the screen is open.`,
	Args: cobra.NoArgs,
	RunE: dir_cli.Wrap(runUI),
}

func runUI(rc *dir_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	logPath, err := logger.InitializeFileOnly()
	if err != nil {
		return fmt.Errorf("cannot open log file for the UI: %w", err)
	}
	rc.Log = logger.L()

	client, cfg, err := cmd_helpers.NewClient(rc, cmd)
	if err != nil {
		return err
	}
	rc.Log.Info("Starting users screen",
		zap.String("base_url", userdir.RedactURL(cfg.BaseURL)),
		zap.String("log_file", logPath))

	model := tui.New(rc.Ctx, client, userdir.RedactURL(client.BaseURL()))
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(rc.Ctx),
	)

	if cfg.Source != "" {
		err := config.Watch(rc.Ctx, cfg.Source, rc.Log, func(next *config.Config) {
			if next.BaseURL == cfg.BaseURL {
				return
			}
			rc.Log.Info("Base URL changed in config file; restart to use it",
				zap.String("base_url", userdir.RedactURL(next.BaseURL)))
			program.Send(tui.ConfigChangedMsg{BaseURL: userdir.RedactURL(next.BaseURL)})
		})
		if err != nil {
			rc.Log.Warn("Config file will not be watched", zap.String("path", cfg.Source), zap.Error(err))
		}
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("users screen failed: %w", err)
	}
	return nil
}
