package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recent sessions and review quality",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		user, _ := cmd.Flags().GetString("user")
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		sessions, err := st.EventRepo().RecentSessions(ctx, user, limit)
		if err != nil {
			return fmt.Errorf("load sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println(dimStyle.Render("No sessions yet. Run: interleave generate"))
			return nil
		}

		fmt.Println(titleStyle.Render("Recent sessions"))
		for _, s := range sessions {
			line := fmt.Sprintf("%s  %s  %2d/%2d cards  quality %.2f  %s",
				s.CreatedAt.Format("2006-01-02 15:04"),
				s.SessionID,
				s.ActualSize, s.RequestedSize,
				s.QualityScore,
				s.FillMode,
			)
			relaxed := s.RelaxedTopicStreak + s.RelaxedHardRun + s.FallbackPicks
			if relaxed > 0 {
				line += dimStyle.Render(fmt.Sprintf("  (%d relaxed)", relaxed))
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringP("user", "u", "default", "User ID to show stats for")
	statsCmd.Flags().Int("limit", 10, "Number of sessions to show")
}
