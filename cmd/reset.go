package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsterk/tafel/internal/app"
	"github.com/jsterk/tafel/internal/profile"
	"github.com/jsterk/tafel/internal/score"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe saved test history",
	Long:  "Wipe test history for one profile or for everyone. Profiles and coin balances stay.",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("profile")
		all, _ := cmd.Flags().GetBool("all")

		switch {
		case all && id != "":
			return fmt.Errorf("use --profile or --all, not both")
		case !all && id == "":
			return fmt.Errorf("pick --profile <id> or --all")
		}

		kv, err := app.OpenData(appOptions(cmd))
		if err != nil {
			return err
		}
		defer kv.Close()

		scores := score.NewStore(kv)
		if all {
			if err := scores.ClearAll(); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			fmt.Println("All test history wiped. Profiles and coins are untouched.")
			return nil
		}

		p, ok, err := profile.NewStore(kv).Get(id)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		if !ok {
			return fmt.Errorf("no profile found for %q", id)
		}
		if err := scores.Clear(p.ID); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Printf("Test history for %s wiped.\n", p.DisplayName)
		return nil
	},
}

func init() {
	resetCmd.Flags().String("profile", "", "Only wipe this profile's history")
	resetCmd.Flags().Bool("all", false, "Wipe history for every profile")
}
