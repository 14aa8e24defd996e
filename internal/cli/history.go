package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quickr-dev/labctl/internal/config"
	"github.com/quickr-dev/labctl/internal/db"
	"github.com/quickr-dev/labctl/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the steps of the last installer run",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().String("install-dir", config.DefaultInstallDir(), "installation directory")
}

func runHistory(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("install-dir")
	path := filepath.Join(dir, db.FileName)

	// db.Open would create an empty journal
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no install journal at %s", path)
		}
		return err
	}

	database, err := db.Open(path)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := database.LatestRunID()
	if errors.Is(err, db.ErrNoRuns) {
		fmt.Fprintln(cmd.OutOrStdout(), "No installer runs recorded.")
		return nil
	}
	if err != nil {
		return err
	}

	steps, err := database.StepsForRun(runID)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), ui.StepTable(runID, steps))
	return nil
}
