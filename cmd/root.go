package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/app"
	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lingo",
	Short: "CEFR English progression trainer",
	Long: "Lingo tracks per-skill CEFR progression (reading, listening, writing,\n" +
		"speaking), generates AI lessons and advancement exams, and grades\n" +
		"practice submissions through text and pronunciation oracles.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGO_DB env var)")
	rootCmd.PersistentFlags().String("learner", "", "Learner ID (overrides LINGO_LEARNER env var)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(placementCmd)
	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(examCmd)
	rootCmd.AddCommand(vocabCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then LINGO_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openApp wires the application for one command invocation.
func openApp(cmd *cobra.Command) (*app.App, context.Context, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx, dbPath)
	if err != nil {
		return nil, nil, err
	}
	return a, ctx, nil
}

// resolveLearner returns the learner ID from --learner or config.
func resolveLearner(cmd *cobra.Command, a *app.App) string {
	if l, _ := cmd.Flags().GetString("learner"); l != "" {
		return l
	}
	if l := os.Getenv("LINGO_LEARNER"); l != "" {
		return l
	}
	return a.Config.Learner
}
