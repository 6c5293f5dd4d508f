package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsterk/tafel/internal/app"
	"github.com/jsterk/tafel/internal/profile"
	prog "github.com/jsterk/tafel/internal/progress"
	"github.com/jsterk/tafel/internal/score"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the leaderboard without starting the game",
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, err := app.OpenData(appOptions(cmd))
		if err != nil {
			return err
		}
		defer kv.Close()

		profiles := profile.NewStore(kv)
		scores := score.NewStore(kv)

		if id, _ := cmd.Flags().GetString("profile"); id != "" {
			return printProfileStats(profiles, scores, id)
		}
		return printLeaderboard(profiles, scores)
	},
}

func init() {
	statsCmd.Flags().String("profile", "", "Show one player's details instead of the board")
}

func printLeaderboard(profiles *profile.Store, scores *score.Store) error {
	all, err := profiles.All()
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}

	entries := make([]prog.NamedResults, 0, len(all))
	for _, p := range all {
		results, err := scores.ResultsFor(p.ID)
		if err != nil {
			return fmt.Errorf("load results for %s: %w", p.ID, err)
		}
		entries = append(entries, prog.NamedResults{ProfileID: p.ID, Name: p.DisplayName, Results: results})
	}

	board := prog.Leaderboard(entries)
	if len(board) == 0 {
		fmt.Println("No tests saved yet. Start the game and finish one!")
		return nil
	}

	fmt.Printf(" #  %-12s  %5s  %4s  %4s  %s\n", "PLAYER", "TESTS", "AVG", "BEST", "LAST")
	for i, row := range board {
		fmt.Printf("%2d  %-12s  %5d  %3.0f%%  %3.0f%%  %s\n",
			i+1, clip(row.Name, 12), row.Tests,
			row.AvgAccuracy*100, row.BestAccuracy*100,
			row.LastPlayed.Format("Jan 02"))
	}
	return nil
}

func printProfileStats(profiles *profile.Store, scores *score.Store, id string) error {
	p, ok, err := profiles.Get(id)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if !ok {
		return fmt.Errorf("no profile found for %q", id)
	}

	results, err := scores.ResultsFor(p.ID)
	if err != nil {
		return fmt.Errorf("load results: %w", err)
	}
	if len(results) == 0 {
		fmt.Printf("%s has not finished a test yet.\n", p.DisplayName)
		return nil
	}

	summary, _ := prog.Summarize(p.ID, p.DisplayName, results)
	fmt.Printf("%s %s — %d tests\n", p.Avatar, p.DisplayName, summary.Tests)
	fmt.Printf("   Average %.0f%%, best %.0f%%, %.1fs per answer\n",
		summary.AvgAccuracy*100, summary.BestAccuracy*100, prog.AverageResponseTime(results))
	if trend := prog.AccuracyTrend(results); trend != 0 {
		fmt.Printf("   %+.0f points since the previous test\n", trend)
	}
	if streak := prog.LongestStreak(results); streak > 1 {
		fmt.Printf("   Longest run of perfect tests: %d\n", streak)
	}

	fmt.Println()
	fmt.Println("Needs work:")
	var tricky int
	for _, d := range prog.TrickyTables(results, 4) {
		if d.Incorrect == 0 {
			continue
		}
		tricky++
		fmt.Printf("   Table of %-2d  %d wrong  %.1fs per answer\n", d.Table, d.Incorrect, d.AverageTime())
	}
	if tricky == 0 {
		fmt.Println("   Nothing! Every table looks solid.")
	}

	fmt.Println()
	fmt.Println("Recent tests:")
	for _, r := range prog.Recent(results, 5) {
		fmt.Printf("   %s  %3.0f%%  tables %s  %s\n",
			r.Timestamp.Format("Jan 02"), r.Accuracy()*100,
			joinTables(r.Tables), fmtClock(int(r.ElapsedSeconds)))
	}
	return nil
}

func clip(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func joinTables(tables []int) string {
	out := ""
	for i, t := range tables {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d", t)
	}
	return out
}

func fmtClock(total int) string {
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
