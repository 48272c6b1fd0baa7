package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studykit/interleave/internal/scheduler"
	"github.com/studykit/interleave/internal/store"
	"github.com/studykit/interleave/internal/tuning"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a study session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		log, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		user, _ := cmd.Flags().GetString("user")
		size, _ := cmd.Flags().GetInt("size")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		seed, _ := cmd.Flags().GetString("seed")
		tuningPath, _ := cmd.Flags().GetString("tuning")
		asJSON, _ := cmd.Flags().GetBool("json")

		params := tuning.Default()
		if tuningPath != "" {
			params, err = tuning.Load(tuningPath)
			if err != nil {
				return fmt.Errorf("load tuning: %w", err)
			}
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		stored, err := st.ConfigRepo().ForUser(ctx, user)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		graph, err := st.GraphRepo().LoadGraph(ctx)
		if err != nil {
			return fmt.Errorf("load contrast graph: %w", err)
		}

		gen := scheduler.NewGenerator(st.PoolSource(), graph, params)
		res, err := gen.Generate(ctx, scheduler.Request{
			UserID:             user,
			Config:             store.SchedulerConfig(stored),
			Seed:               seed,
			SizeOverride:       size,
			DifficultyOverride: scheduler.Tier(difficulty),
		})
		if err != nil {
			return err
		}

		log.Debug("session generated",
			"session_id", res.SessionID,
			"actual_size", res.ActualSize,
			"fill_mode", res.FillMode,
			"quality", res.Quality.Overall,
		)

		if err := st.EventRepo().AppendSessionEvent(ctx, res, seed); err != nil {
			log.Warn("record session event", "error", err)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		printSession(res)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("user", "u", "default", "User ID to generate for")
	generateCmd.Flags().IntP("size", "n", 0, "Session size (overrides stored config)")
	generateCmd.Flags().StringP("difficulty", "d", "", "Difficulty tier: low, medium or high (overrides stored config)")
	generateCmd.Flags().String("seed", "", "Seed for reproducible ordering")
	generateCmd.Flags().String("tuning", "", "Path to a YAML tuning file")
	generateCmd.Flags().Bool("json", false, "Print the session as JSON")
}

func printSession(res *scheduler.Result) {
	fmt.Println(titleStyle.Render("Study session " + res.SessionID))
	fmt.Printf("%s %s  %s %s  %s %d/%d\n",
		labelStyle.Render("difficulty:"), string(res.Dial.Tier),
		labelStyle.Render("fill:"), string(res.FillMode),
		labelStyle.Render("cards:"), res.ActualSize, res.RequestedSize,
	)
	fmt.Println()

	for _, it := range res.Items {
		tag := poolStyle(string(it.Pool)).Render(fmt.Sprintf("%-10s", it.Pool))
		line := fmt.Sprintf("%2d. %s %s", it.Position+1, tag, it.Topic)
		if it.Principle != "" {
			line += dimStyle.Render(" (" + it.Principle + ")")
		}
		line += dimStyle.Render("  " + it.CardID)
		fmt.Println(line)
	}

	fmt.Println()
	q := res.Quality
	fmt.Printf("%s %.2f  (diversity %.2f, contrast %.2f, balance %.2f, completeness %.2f)\n",
		labelStyle.Render("quality:"), q.Overall, q.Diversity, q.Contrast, q.Balance, q.Completeness)

	if n := res.Relaxations.Total(); n > 0 {
		fmt.Println(dimStyle.Render(fmt.Sprintf("relaxed %d constraint(s) to fill the session", n)))
	}
	if len(q.Warnings) > 0 {
		fmt.Println(warnStyle.Render("warnings: " + strings.Join(q.Warnings, "; ")))
	}
}
