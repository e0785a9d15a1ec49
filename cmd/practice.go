package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/assess"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
)

var practiceCmd = &cobra.Command{
	Use:   "practice <reading|listening|writing|speaking>",
	Short: "Grade a practice submission and bank the experience",
	Long: "Reads a submission from --file (JSON, or - for stdin), grades it\n" +
		"through the oracles, applies the experience gain, and prints the\n" +
		"result as JSON. For speaking, --audio points to a mono 16kHz WAV\n" +
		"recording of the answer.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		skill, err := progression.ParseSkill(args[0])
		if err != nil {
			return err
		}

		var sub assess.Submission
		if err := readJSONFile(cmd, "file", &sub); err != nil {
			return err
		}

		a, ctx, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		learner := resolveLearner(cmd, a)
		if sub.ActivityLevel == "" {
			st, err := a.Progress.GetSkill(ctx, learner, skill)
			if err != nil {
				return err
			}
			sub.ActivityLevel = st.Level
		} else if _, err := progression.ParseLevel(string(sub.ActivityLevel)); err != nil {
			return err
		}

		if skill == progression.SkillSpeaking {
			if _, err := a.Recognizer(); err != nil {
				return err
			}
			if audioPath, _ := cmd.Flags().GetString("audio"); audioPath != "" {
				audio, err := os.ReadFile(audioPath)
				if err != nil {
					return fmt.Errorf("read audio: %w", err)
				}
				if sub.Speaking == nil {
					sub.Speaking = &assess.SpeakingSubmission{}
				}
				sub.Speaking.Audio = audio
			}
		}

		svc, err := a.Assess()
		if err != nil {
			return err
		}

		result, err := svc.SubmitPractice(ctx, learner, skill, sub)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	practiceCmd.Flags().String("file", "", "Submission JSON file (- for stdin)")
	practiceCmd.Flags().String("audio", "", "WAV recording for speaking submissions")
	practiceCmd.MarkFlagRequired("file")
}

// readJSONFile decodes the JSON file named by the flag into v. A path
// of "-" reads stdin.
func readJSONFile(cmd *cobra.Command, flag string, v any) error {
	path, _ := cmd.Flags().GetString(flag)
	if path == "" {
		return fmt.Errorf("--%s is required", flag)
	}

	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
