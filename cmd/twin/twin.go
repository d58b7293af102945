// cmd/twin/twin.go

package twin

import (
	"net"
	"strings"

	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_cli"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/dir_io"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/userdir/pkg/usertwin"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var (
	twinAddr   string
	twinPrefix string
)

// TwinCmd serves an in-memory users service for local use.
var TwinCmd = &cobra.Command{
	Use:   "twin",
	Short: "Serve an in-memory users endpoint",
	Long: `Serve a local stand-in for the hosted users service. Records live in
memory and are lost when the process stops.

Examples:
  userdir twin --addr :8089
  USERDIR_BASE_URL=http://localhost:8089/api/local userdir list`,
	Args: cobra.NoArgs,
	RunE: dir_cli.Wrap(runTwin),
}

func init() {
	TwinCmd.Flags().StringVar(&twinAddr, "addr", ":8089", "listen address")
	TwinCmd.Flags().StringVar(&twinPrefix, "prefix", "/api/local", "path prefix standing in for the token segment")
}

func runTwin(rc *dir_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	log := otelzap.Ctx(rc.Ctx)

	prefix := "/" + strings.Trim(twinPrefix, "/")
	if prefix == "/" {
		prefix = ""
	}

	server := usertwin.NewServer(usertwin.NewStore(),
		usertwin.WithPrefix(prefix),
		usertwin.WithLogger(rc.Log),
	)

	err := server.ListenAndServe(rc.Ctx, twinAddr, func(addr net.Addr) {
		base := "http://" + localAddr(addr) + prefix
		log.Info(logger.TerminalPrefix+" Users twin listening",
			zap.String("output", "export USERDIR_BASE_URL="+base),
			zap.String("addr", addr.String()))
	})
	if err != nil {
		return err
	}

	log.Info("Users twin stopped", zap.Int64("requests", server.Requests()))
	return nil
}

// localAddr swaps an unspecified listen host for localhost so the printed
// URL can be used as is.
func localAddr(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
