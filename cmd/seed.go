package cmd

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/cobra"

	"github.com/studykit/interleave/internal/model"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a demo deck for trying the scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		db := st.DB()

		var existing int64
		if err := db.Model(&model.Flashcard{}).Where("user_id = ?", user).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("user %q already has %d cards; seed refuses to mix demo data in", user, existing)
		}

		topics := map[string]*model.Topic{}
		for _, name := range []string{"cell-biology", "genetics", "ecology"} {
			t := &model.Topic{Name: name}
			if err := db.Where("name = ?", name).FirstOrCreate(t).Error; err != nil {
				return fmt.Errorf("seed topic %s: %w", name, err)
			}
			topics[name] = t
		}

		principles := map[string]*model.Principle{}
		for _, p := range []struct{ name, topic string }{
			{"mitosis", "cell-biology"},
			{"meiosis", "cell-biology"},
			{"dominant-allele", "genetics"},
			{"recessive-allele", "genetics"},
			{"mutualism", "ecology"},
			{"parasitism", "ecology"},
		} {
			pr := &model.Principle{Name: p.name, TopicID: topics[p.topic].ID}
			if err := db.Where("name = ?", p.name).FirstOrCreate(pr).Error; err != nil {
				return fmt.Errorf("seed principle %s: %w", p.name, err)
			}
			principles[p.name] = pr
		}

		for _, pair := range [][2]string{
			{"mitosis", "meiosis"},
			{"dominant-allele", "recessive-allele"},
			{"mutualism", "parasitism"},
		} {
			edge := &model.PrincipleContrast{
				PrincipleID:     principles[pair[0]].ID,
				ContrastsWithID: principles[pair[1]].ID,
			}
			err := db.Where("principle_id = ? AND contrasts_with_id = ?", edge.PrincipleID, edge.ContrastsWithID).
				FirstOrCreate(edge).Error
			if err != nil {
				return fmt.Errorf("seed contrast %s/%s: %w", pair[0], pair[1], err)
			}
		}

		setID, err := gonanoid.New()
		if err != nil {
			return err
		}
		set := &model.FlashcardSet{PublicID: setID, UserID: user, Name: "Biology demo"}
		if err := db.Create(set).Error; err != nil {
			return fmt.Errorf("seed set: %w", err)
		}

		now := time.Now().UTC()
		created := 0
		for _, c := range demoCards {
			publicID, err := gonanoid.New()
			if err != nil {
				return err
			}
			card := &model.Flashcard{
				PublicID: publicID, UserID: user, SetID: set.ID,
				Front: c.front, Back: c.back,
				State: c.state, TotalReviews: c.reviews, CorrectReviews: c.reviews,
			}
			if c.dueIn != 0 {
				due := now.AddDate(0, 0, c.dueIn)
				card.NextReview = &due
				last := now.AddDate(0, 0, -c.lastDays)
				card.LastReviewed = &last
			}
			if err := db.Create(card).Error; err != nil {
				return fmt.Errorf("seed card: %w", err)
			}
			if err := db.Create(&model.FlashcardProfile{
				FlashcardID: card.ID,
				TopicID:     &topics[c.topic].ID,
				PrincipleID: principleID(principles, c.principle),
				Difficulty:  c.difficulty,
			}).Error; err != nil {
				return fmt.Errorf("seed profile: %w", err)
			}
			created++
		}

		fmt.Printf("Seeded %d cards across %d topics for user %q.\n", created, len(topics), user)
		fmt.Println(dimStyle.Render("Try: interleave generate --user " + user))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringP("user", "u", "default", "User ID to seed cards for")
}

func principleID(m map[string]*model.Principle, name string) *uint {
	if name == "" {
		return nil
	}
	if p, ok := m[name]; ok {
		return &p.ID
	}
	return nil
}

type demoCard struct {
	front, back      string
	topic, principle string
	difficulty       float64
	state            model.LearningState
	reviews          int
	dueIn            int // days from now; negative means overdue, 0 means never scheduled
	lastDays         int // days since last review
}

var demoCards = []demoCard{
	{"What happens to chromosome number in mitosis?", "It stays the same; daughter cells are diploid.", "cell-biology", "mitosis", 1.2, model.StateReview, 5, -3, 10},
	{"What happens to chromosome number in meiosis?", "It halves; gametes are haploid.", "cell-biology", "meiosis", 1.6, model.StateReview, 4, -1, 8},
	{"Which phase does crossing over occur in?", "Prophase I of meiosis.", "cell-biology", "meiosis", 2.1, model.StateReview, 3, -2, 12},
	{"Define a dominant allele.", "An allele expressed whenever present.", "genetics", "dominant-allele", 0.9, model.StateReview, 6, -4, 15},
	{"Define a recessive allele.", "An allele expressed only when homozygous.", "genetics", "recessive-allele", 1.0, model.StateReview, 5, -1, 9},
	{"What ratio does a monohybrid cross of heterozygotes give?", "3:1 phenotypic ratio.", "genetics", "", 1.8, model.StateReview, 2, 4, 6},
	{"Give an example of mutualism.", "Bees pollinating flowers.", "ecology", "mutualism", 0.8, model.StateReview, 3, 6, 5},
	{"Give an example of parasitism.", "A tapeworm in a host's gut.", "ecology", "parasitism", 1.1, model.StateReview, 2, 3, 7},
	{"What is a trophic level?", "A feeding position in a food chain.", "ecology", "", 1.4, model.StateNew, 0, 0, 0},
	{"What does a Punnett square model?", "Allele combinations in offspring.", "genetics", "", 1.3, model.StateNew, 0, 0, 0},
	{"Name the cell cycle checkpoints.", "G1, G2 and the spindle checkpoint.", "cell-biology", "", 2.4, model.StateNew, 1, 0, 0},
	{"What is carrying capacity?", "The largest population an environment sustains.", "ecology", "", 1.0, model.StateNew, 0, 0, 0},
}
