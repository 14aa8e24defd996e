package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quickr-dev/labctl/internal/firewall"
	"github.com/quickr-dev/labctl/internal/logger"
	"github.com/quickr-dev/labctl/internal/shell"
)

var newFirewallController = func(log *zap.Logger) *firewall.Controller {
	return firewall.NewController(firewall.DefaultBackend(), shell.NewExecRunner(log), log)
}

var firewallCmd = &cobra.Command{
	Use:   "fwctl [status|on|off]",
	Short: "Show or change the state of every firewall profile",
	// the verb is the only input; --help is an invalid verb like any other
	DisableFlagParsing: true,
	Args:               cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.NewOrNop("fwctl")
		defer log.Sync()

		ctl := newFirewallController(log)
		fmt.Fprintln(cmd.OutOrStdout(), ctl.Run(cmd.Context(), firewall.ParseCommand(args)))
	},
}

// ExecuteFirewall runs fwctl. Problems are printed, never signalled through
// the exit code.
func ExecuteFirewall(ctx context.Context) {
	_ = firewallCmd.ExecuteContext(ctx)
}
