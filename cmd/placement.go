package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/placement"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
)

// placementInput is the answer file for the one-time placement test.
type placementInput struct {
	Reading struct {
		Answers placement.Sheet `json:"answers"`
		Key     placement.Sheet `json:"key"`
	} `json:"reading"`

	Listening struct {
		P1Answers []string        `json:"p1_answers"`
		P1Key     []string        `json:"p1_key"`
		P2Answers placement.Sheet `json:"p2_answers"`
		P2Key     placement.Sheet `json:"p2_key"`
	} `json:"listening"`

	Writing struct {
		GrammarAnswers placement.Sheet                          `json:"grammar_answers"`
		GrammarKey     placement.Sheet                          `json:"grammar_key"`
		Essays         map[progression.Level]placement.EssayAnswer `json:"essays"`
	} `json:"writing"`

	Speaking struct {
		// Recordings maps sampled levels to WAV file paths.
		Recordings map[progression.Level]string `json:"recordings"`
	} `json:"speaking"`
}

var placementCmd = &cobra.Command{
	Use:   "placement",
	Short: "Score the placement test and seed the progression record",
	Long: "Reads the placement answers from --file (JSON, or - for stdin),\n" +
		"scores the four sections, and seeds the learner's per-skill levels\n" +
		"at their floor experience. Re-running replaces the record.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var in placementInput
		if err := readJSONFile(cmd, "file", &in); err != nil {
			return err
		}

		a, ctx, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		svc, err := a.Placement()
		if err != nil {
			return err
		}

		learner := resolveLearner(cmd, a)
		if done, err := svc.Completed(ctx, learner); err != nil {
			return err
		} else if done {
			if force, _ := cmd.Flags().GetBool("force"); !force {
				return fmt.Errorf("placement already completed for %q (use --force to redo)", learner)
			}
		}

		reading := svc.ScoreReading(in.Reading.Answers, in.Reading.Key)
		listening := svc.ScoreListening(in.Listening.P1Answers, in.Listening.P1Key, in.Listening.P2Answers, in.Listening.P2Key)
		writing := svc.ScoreWriting(ctx, in.Writing.GrammarAnswers, in.Writing.GrammarKey, in.Writing.Essays)

		recordings := make(map[progression.Level][]byte, len(in.Speaking.Recordings))
		for level, path := range in.Speaking.Recordings {
			audio, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read recording for %s: %w", level, err)
			}
			recordings[level] = audio
		}
		if len(recordings) > 0 {
			if _, err := a.Recognizer(); err != nil {
				return err
			}
		}
		speaking := svc.ScoreSpeaking(ctx, recordings)

		outcomes := map[progression.Skill]placement.Outcome{
			progression.SkillReading:   reading,
			progression.SkillListening: listening,
			progression.SkillWriting:   writing,
			progression.SkillSpeaking:  speaking,
		}

		levels := make(map[progression.Skill]progression.Level, len(outcomes))
		fmt.Printf("%-10s  %-5s  %s\n", "Skill", "Score", "Level")
		for _, skill := range progression.AllSkills() {
			out := outcomes[skill]
			levels[skill] = out.Level
			note := ""
			if out.Score.Fallback {
				note = "  (substituted default used)"
			}
			fmt.Printf("%-10s  %-5d  %s%s\n", skill, out.Score.Value, out.Level, note)
		}

		if err := svc.SaveResult(ctx, learner, levels); err != nil {
			return err
		}
		fmt.Printf("\nProgression record seeded for %q.\n", learner)
		return nil
	},
}

func init() {
	placementCmd.Flags().String("file", "", "Placement answers JSON file (- for stdin)")
	placementCmd.Flags().Bool("force", false, "Redo placement even if already completed")
	placementCmd.MarkFlagRequired("file")
}
