// cmd/config/config.go

package configcmd

import (
	"fmt"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/cmd_helpers"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/config"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_cli"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_io"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/userdir"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var initPath string

// ConfigCmd groups the configuration commands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or write the userdir configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration with the token masked",
	Args:  cobra.NoArgs,
	RunE:  dir_cli.Wrap(runShow),
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current flags and environment to a config file",
	Long: `Write the effective configuration to a YAML file (mode 0600) so later
commands need no flags.

Examples:
  userdir config init --base-url https://crudcrud.com/api/<token>`,
	Args: cobra.NoArgs,
	RunE: dir_cli.Wrap(runInit),
}

func init() {
	initCmd.Flags().StringVar(&initPath, "path", "", "file to write (default "+config.DefaultPath()+")")
	ConfigCmd.AddCommand(showCmd, initCmd)
}

func runShow(rc *dir_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	cfg, err := cmd_helpers.LoadConfig(rc, cmd)
	if err != nil {
		return err
	}

	masked := *cfg
	masked.BaseURL = userdir.RedactURL(cfg.BaseURL)
	data, err := config.Marshal(&masked)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if cfg.Source != "" {
		_, _ = fmt.Fprintf(w, "# from %s\n", cfg.Source)
	}
	_, err = w.Write(data)
	return err
}

func runInit(rc *dir_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	cfg, err := cmd_helpers.LoadConfig(rc, cmd)
	if err != nil {
		return err
	}

	path := initPath
	if path == "" {
		path = config.DefaultPath()
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	otelzap.Ctx(rc.Ctx).Info("Configuration written",
		zap.String("path", path),
		zap.String("base_url", userdir.RedactURL(cfg.BaseURL)))
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return err
}
