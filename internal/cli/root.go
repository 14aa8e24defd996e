package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quickr-dev/labctl/internal/config"
	"github.com/quickr-dev/labctl/internal/installer"
	"github.com/quickr-dev/labctl/internal/logger"
)

// newInstaller is swapped out in tests.
var newInstaller = installer.New

// reportedError has already been printed by the installer.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "agent-installer",
	Short: "Install the Computer Management Agent on this machine",
	Long: `Installs the Computer Management Agent: downloads the agent from the
management server, writes its configuration, registers it as a system
service and announces the machine to the server.

Settings come from the values built into the binary, an agent-installer.yaml
bootstrap file, AGENT_INSTALLER_* environment variables and flags, in
increasing order of precedence.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInstall,
}

func init() {
	flags := rootCmd.Flags()
	flags.String("config", "", "bootstrap file (default agent-installer.yaml next to the executable)")
	flags.String("server-url", "", "management server base URL")
	flags.String("room-id", "", "room the computer belongs to")
	flags.String("token", "", "installation token")
	flags.Bool("auto-register", true, "register the computer with the server after installing")
	flags.String("install-dir", "", "installation directory")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	log := logger.NewOrNop("installer")
	defer log.Sync()

	v := config.NewViper()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return err
	}

	inst := newInstaller(cfg, installer.Deps{Out: cmd.OutOrStdout(), Log: log})
	if err := inst.Run(cmd.Context()); err != nil {
		return &reportedError{err: err}
	}
	return nil
}

// Execute runs agent-installer and exits 1 on failure.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
