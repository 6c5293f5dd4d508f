package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsterk/tafel/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, _ := cmd.Flags().GetString("mode")
		switch mode {
		case "", "practice", "test":
		default:
			return fmt.Errorf("invalid mode %q: must be practice or test", mode)
		}

		opts := appOptions(cmd)
		opts.Mode = mode
		return app.Run(opts)
	},
}

func init() {
	playCmd.Flags().String("mode", "", "Jump straight into setup: practice or test")
}
