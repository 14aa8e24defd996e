package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quickr-dev/labctl/internal/auth"
	"github.com/quickr-dev/labctl/internal/bootstrap"
	"github.com/quickr-dev/labctl/internal/config"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Generate a bootstrap file with a fresh installation token",
	Long: `Generates a new installation token and writes the bootstrap file that
agent-installer reads at install time. Ship it next to the installer binary.
Use --out - to print it instead.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("server-url", "", "management server base URL")
	renderCmd.Flags().String("room-id", "", "room the computers belong to")
	renderCmd.Flags().Bool("auto-register", true, "register computers automatically after install")
	renderCmd.Flags().String("out", config.BootstrapName+"."+config.BootstrapType, "output file, - for stdout")
	renderCmd.Flags().Bool("hash", false, "also print the bcrypt hash of the token for the server")
	renderCmd.MarkFlagRequired("server-url")
}

func runRender(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server-url")
	roomID, _ := cmd.Flags().GetString("room-id")
	autoRegister, _ := cmd.Flags().GetBool("auto-register")
	out, _ := cmd.Flags().GetString("out")
	printHash, _ := cmd.Flags().GetBool("hash")

	params, err := bootstrap.New(serverURL, roomID, autoRegister)
	if err != nil {
		return err
	}

	if out == "-" {
		data, err := params.Marshal()
		if err != nil {
			return err
		}
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return err
		}
	} else {
		if err := params.WriteFile(out); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s for room %q\n", out, roomID)
	}

	if printHash {
		hash, err := auth.HashToken(params.Token)
		if err != nil {
			return err
		}
		// stderr keeps --out - output a valid bootstrap file
		fmt.Fprintf(cmd.ErrOrStderr(), "Token hash: %s\n", hash)
	}
	return nil
}
