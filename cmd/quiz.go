package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/app"
	"github.com/abhisek/tutor/internal/ui/render"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <topic>",
	Short: "Generate an exam practice quiz",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.Join(args, " ")
		exam, _ := cmd.Flags().GetString("exam")
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := cliLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		a, err := app.New(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		items, err := a.Quiz.Generate(cmd.Context(), topic, exam)
		if err != nil {
			return fmt.Errorf("generate quiz: %w", err)
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"questions": items})
		}
		fmt.Fprintln(out, render.QuizItems(topic, exam, items))
		return nil
	},
}

func init() {
	quizCmd.Flags().StringP("exam", "e", "", "Exam to prepare for, e.g. \"JEE\" or \"NEET\" (required)")
	quizCmd.Flags().Bool("json", false, "Print the quiz as JSON")
	_ = quizCmd.MarkFlagRequired("exam")
}
