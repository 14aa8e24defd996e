package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quickr-dev/labctl/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Version)
	},
}
