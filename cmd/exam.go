package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/examgate"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
)

var examCmd = &cobra.Command{
	Use:   "exam",
	Short: "Level advancement exams",
}

var examStatusCmd = &cobra.Command{
	Use:   "status <skill>",
	Short: "Check exam eligibility for a skill",
	Args:  cobra.ExactArgs(1),
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
		elig, err := a.EligibilityGate().CheckEligibility(ctx, learner, skill)
		if err != nil {
			return err
		}

		switch {
		case elig.CanEnter:
			fmt.Printf("Eligible for the %s advancement exam (current level %s).\n", skill, elig.TargetLevel)
		case elig.Reason == examgate.ReasonMaxLevel:
			fmt.Printf("%s is already at C2, the highest level.\n", skill)
		case elig.Reason == examgate.ReasonInsufficient:
			fmt.Printf("Not enough experience: %d / %d XP.\n", elig.CurrentXP, elig.RequiredXP)
		case elig.Reason == examgate.ReasonCooldown:
			fmt.Printf("Exam locked for another %d minutes after a failed attempt.\n", elig.CooldownRemainingMinutes)
		}
		return nil
	},
}

var examGenerateCmd = &cobra.Command{
	Use:   "generate <skill>",
	Short: "Generate advancement exam content",
	Args:  cobra.ExactArgs(1),
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
		gate, err := a.ExamGate()
		if err != nil {
			return err
		}

		elig, err := gate.CheckEligibility(ctx, learner, skill)
		if err != nil {
			return err
		}
		if !elig.CanEnter {
			return fmt.Errorf("%w: %s", examgate.ErrNotEligible, elig.Reason)
		}

		exam, err := gate.GenerateExam(ctx, skill, elig.TargetLevel)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(exam)
	},
}

var examSubmitCmd = &cobra.Command{
	Use:   "submit <skill>",
	Short: "Grade an exam attempt and apply the outcome",
	Long: "Reads the answers from --file (JSON, or - for stdin), grades the\n" +
		"attempt, and applies the outcome: a pass promotes the skill, a fail\n" +
		"deducts experience and starts the cooldown.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		skill, err := progression.ParseSkill(args[0])
		if err != nil {
			return err
		}

		var sub examgate.Submission
		if err := readJSONFile(cmd, "file", &sub); err != nil {
			return err
		}

		a, ctx, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if skill == progression.SkillSpeaking {
			if _, err := a.Recognizer(); err != nil {
				return err
			}
		}

		gate, err := a.ExamGate()
		if err != nil {
			return err
		}

		learner := resolveLearner(cmd, a)
		result, err := gate.SubmitExam(ctx, learner, skill, sub)
		if err != nil {
			return err
		}

		if result.Passed {
			fmt.Printf("Passed with %d. %s advances to %s.\n", result.Score.Value, skill, result.NewLevel)
		} else {
			fmt.Printf("Failed with %d. Lost %d XP (now %d); exam locked for %d hours.\n",
				result.Score.Value, result.Penalty, result.NewXP, result.CooldownHours)
		}
		if result.Score.Fallback {
			fmt.Println("Note: part of this score used a substituted default because an oracle call failed.")
		}
		return nil
	},
}

func init() {
	examSubmitCmd.Flags().String("file", "", "Exam answers JSON file (- for stdin)")
	examSubmitCmd.MarkFlagRequired("file")

	examCmd.AddCommand(examStatusCmd)
	examCmd.AddCommand(examGenerateCmd)
	examCmd.AddCommand(examSubmitCmd)
}
