package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jsterk/tafel/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "tafel",
	Short: "Times-table trainer for kids",
	Long:  "Tafel — a terminal game that turns multiplication-table practice into coin-earning races.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(appOptions(cmd))
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Directory for saved games (overrides TAFEL_DATA env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to the config file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// appOptions collects the persistent flags shared by every subcommand.
func appOptions(cmd *cobra.Command) app.Options {
	dataDir, _ := cmd.Flags().GetString("data")
	configPath, _ := cmd.Flags().GetString("config")
	return app.Options{DataDir: dataDir, ConfigPath: configPath}
}
