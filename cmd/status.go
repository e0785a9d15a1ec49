package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show per-skill level, experience, and exam readiness",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ctx, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		learner := resolveLearner(cmd, a)
		rec, err := a.Progress.GetRecord(ctx, learner)
		if err != nil {
			if errors.Is(err, progression.ErrNoRecord) {
				fmt.Printf("No progression record for %q. Run `lingo placement` first.\n", learner)
				return nil
			}
			return err
		}

		fmt.Printf("Learner: %s\n\n", learner)
		fmt.Printf("%-10s  %-5s  %-14s  %s\n", "Skill", "Level", "XP", "Exam")
		fmt.Println(strings.Repeat("─", 52))

		for _, skill := range progression.AllSkills() {
			st := rec.Skills[skill]
			exam := "-"
			if st.Level.IsMax() {
				exam = "max level"
			} else if st.XP >= st.Level.Ceiling() {
				exam = "ready"
			}
			if cd, err := a.Progress.CheckCooldown(ctx, learner, skill); err == nil && cd.Active {
				exam = fmt.Sprintf("locked %dm", int(cd.Remaining/time.Minute))
			}

			xp := fmt.Sprintf("%d", st.XP)
			if !st.Level.IsMax() {
				xp = fmt.Sprintf("%d / %d", st.XP, st.Level.Ceiling())
			}
			fmt.Printf("%-10s  %-5s  %-14s  %s\n", skill, st.Level, xp, exam)
		}
		return nil
	},
}
