package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/app"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson <reading|listening|writing|speaking>",
	Short: "Generate a practice lesson for a skill",
	Long: "Generates a lesson at the learner's current level for the skill:\n" +
		"an anchor topic, target vocabulary drawn from the word bank, and\n" +
		"oracle-generated content. The lesson is printed as JSON.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		skill, err := progression.ParseSkill(args[0])
		if err != nil {
			return err
		}

		a, ctx, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		learner := resolveLearner(cmd, a)
		level, err := resolveLevel(cmd, a, ctx, learner, skill)
		if err != nil {
			return err
		}

		svc, err := a.Lessons()
		if err != nil {
			return err
		}

		lesson, err := svc.Generate(ctx, skill, level)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(lesson)
	},
}

func init() {
	lessonCmd.Flags().String("level", "", "Override the lesson level (A1-C2)")
}

// resolveLevel uses --level when given, otherwise the learner's current
// level for the skill.
func resolveLevel(cmd *cobra.Command, a *app.App, ctx context.Context, learner string, skill progression.Skill) (progression.Level, error) {
	if l, _ := cmd.Flags().GetString("level"); l != "" {
		return progression.ParseLevel(l)
	}
	st, err := a.Progress.GetSkill(ctx, learner, skill)
	if err != nil {
		if errors.Is(err, progression.ErrNoRecord) {
			return "", fmt.Errorf("no progression record for %q, run `lingo placement` or pass --level", learner)
		}
		return "", err
	}
	return st.Level, nil
}
