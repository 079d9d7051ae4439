// Command candyshare drives the mechanized convergence proof for the
// uniform candy distribution process: children in a circle repeatedly
// average with their clockwise neighbor (rounding up to keep counts
// even) until everyone holds the same amount. The proof is a fixed
// plan of refutation queries against an external SMT solver; the run
// succeeds only when every query answers unsat.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	config     Config
	logger     *slog.Logger
	configPath string
)

var rootCmd = &cobra.Command{
	Use:          "candyshare",
	Short:        "Refutation-based convergence proof for the candy distribution process",
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the config file")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		config, err = LoadConfig(configPath)
		if err != nil {
			return err
		}
		logger = config.NewLogger()
		slog.SetDefault(logger)
		return nil
	}
}
