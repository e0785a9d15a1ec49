package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umuthaci16/Ingilizce-Egitim-Sitesi/internal/progression"
)

// vocabEntry is one word bank entry in an import file.
type vocabEntry struct {
	Word    string   `json:"word"`
	Meaning string   `json:"meaning"`
	Level   string   `json:"level"`
	Type    string   `json:"type"`
	Topics  []string `json:"topics"`
}

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Manage the word bank",
}

var vocabImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import words from a JSON file",
	Long: "Reads a JSON array of entries from --file and upserts them into\n" +
		"the word bank. Each entry has word, meaning, level (A1-C2), type\n" +
		"(a part-of-speech tag like \"n.\", \"v.\", \"adj.\"), and topic slugs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var entries []vocabEntry
		if err := readJSONFile(cmd, "file", &entries); err != nil {
			return err
		}

		a, ctx, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		vocab := a.Store.VocabRepo()
		for i, e := range entries {
			level, err := progression.ParseLevel(e.Level)
			if err != nil {
				return fmt.Errorf("entry %d (%q): %w", i, e.Word, err)
			}
			if err := vocab.AddWord(ctx, e.Word, e.Meaning, level, e.Type, e.Topics); err != nil {
				return fmt.Errorf("entry %d (%q): %w", i, e.Word, err)
			}
		}
		fmt.Printf("Imported %d words.\n", len(entries))
		return nil
	},
}

var vocabCountCmd = &cobra.Command{
	Use:   "count [level]",
	Short: "Count words in the bank, optionally for one level",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := ""
		if len(args) == 1 {
			parsed, err := progression.ParseLevel(args[0])
			if err != nil {
				return err
			}
			level = parsed.String()
		}

		a, ctx, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.Store.VocabRepo().CountWords(ctx, level)
		if err != nil {
			return err
		}
		if level == "" {
			fmt.Printf("%d words in the bank.\n", n)
		} else {
			fmt.Printf("%d words at %s.\n", n, level)
		}
		return nil
	},
}

func init() {
	vocabImportCmd.Flags().String("file", "", "Word entries JSON file (- for stdin)")
	vocabImportCmd.MarkFlagRequired("file")

	vocabCmd.AddCommand(vocabImportCmd)
	vocabCmd.AddCommand(vocabCountCmd)
}
