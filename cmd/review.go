package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/studykit/interleave/internal/model"
	"github.com/studykit/interleave/internal/scheduler"
	"github.com/studykit/interleave/internal/srs"
)

var reviewCmd = &cobra.Command{
	Use:   "review CARD_ID QUALITY",
	Short: "Record a graded review for a card",
	Long:  "Record a review grade (0-5) for a card and reschedule it. Grades of 3 and above count as successful recall.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		log, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		user, _ := cmd.Flags().GetString("user")
		useLeitner, _ := cmd.Flags().GetBool("leitner")

		grade, err := strconv.Atoi(args[1])
		if err != nil || grade < 0 || grade > 5 {
			return fmt.Errorf("quality must be an integer between 0 and 5, got %q", args[1])
		}
		quality := srs.Quality(grade)

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		cards := st.CardRepo()
		card, err := cards.ByPublicID(ctx, user, args[0])
		if err != nil {
			return fmt.Errorf("find card %s: %w", args[0], err)
		}

		cfg, err := st.ConfigRepo().ForUser(ctx, user)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		dial := scheduler.ResolveDial(scheduler.Tier(cfg.Difficulty), cfg.WDue, cfg.WInterleave, cfg.WNew)

		now := time.Now().UTC()
		var next time.Time
		if useLeitner {
			card.Box, next = srs.LeitnerReview(card.Box, quality.IsPassing(), now, dial.IntervalMultiplier)
		} else {
			state := srs.State{Ease: card.Ease, IntervalDays: card.IntervalDays, Reps: card.Reps}
			if card.TotalReviews == 0 {
				state = srs.NewState()
			}
			state, next = srs.Review(state, quality, now, dial.IntervalMultiplier)
			card.Ease = state.Ease
			card.IntervalDays = state.IntervalDays
			card.Reps = state.Reps
		}

		card.NextReview = &next
		card.LastReviewed = &now
		card.TotalReviews++
		if quality.IsPassing() {
			card.CorrectReviews++
		}
		card.State = learningState(card)

		if err := cards.Save(ctx, card); err != nil {
			return fmt.Errorf("save card: %w", err)
		}

		topic := ""
		if card.Profile != nil && card.Profile.Topic != nil {
			topic = card.Profile.Topic.Name
		}
		if err := st.EventRepo().AppendReviewEvent(ctx, user, card.ID, topic, grade, quality.IsPassing(), now); err != nil {
			log.Warn("record review event", "error", err)
		}

		verdict := warnStyle.Render("again")
		if quality.IsPassing() {
			verdict = poolNewStyle.Render("good")
		}
		fmt.Printf("%s %s  %s %s\n",
			verdict, card.PublicID,
			labelStyle.Render("next review:"), next.Format("2006-01-02"),
		)
		return nil
	},
}

func init() {
	reviewCmd.Flags().StringP("user", "u", "default", "User ID the card belongs to")
	reviewCmd.Flags().Bool("leitner", false, "Use Leitner box scheduling instead of SM-2")
}

// learningState derives the lifecycle state from the review counters.
func learningState(card *model.Flashcard) model.LearningState {
	switch {
	case card.TotalReviews == 0:
		return model.StateNew
	case card.Reps >= 2 || card.Box >= 2:
		return model.StateReview
	default:
		return model.StateLearning
	}
}
