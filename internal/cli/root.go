// Package cli wires the sam-finder commands.
package cli

import (
	"fmt"
	"github.com/maxaizer/sam-finder/internal/config"
	"github.com/maxaizer/sam-finder/internal/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"os"
)

// errReported marks failures that were already shown to the user.
var errReported = errors.New("reported")

var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "sam-finder",
	Short: "Search SAM.gov contract opportunities by date",
	Long: `sam-finder searches the SAM.gov opportunities API by posted date and
response deadline.

Run "sam-finder serve" for the browser dashboard or "sam-finder search"
for a one-off search in the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("can't load config: %w", err)
		}
		appConfig = cfg

		logger.Setup(cmd.Context(), cfg.Logger)
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		logger.Cleanup()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		logger.Cleanup()
		os.Exit(1)
	}
}
