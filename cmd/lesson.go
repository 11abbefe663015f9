package cmd

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/app"
	"github.com/abhisek/tutor/internal/screens/lesson"
	"github.com/abhisek/tutor/internal/ui/render"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson <topic>",
	Short: "Learn a topic in the terminal",
	Long: `Generate a guided lesson for a topic, answer its quiz, then keep chatting
with the tutor. Type "exit" or press Esc to finish.

Sessions live only for the duration of the command.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLesson,
}

func init() {
	lessonCmd.Flags().StringP("level", "l", "beginner", "Student level: beginner, intermediate or advanced")
	lessonCmd.Flags().Bool("no-chat", false, "Print the lesson and exit")
}

func runLesson(cmd *cobra.Command, args []string) error {
	topic := strings.Join(args, " ")
	level, _ := cmd.Flags().GetString("level")
	noChat, _ := cmd.Flags().GetBool("no-chat")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Session.Backend = "memory"

	log, err := cliLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := cmd.Context()
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Preparing a lesson on %s...\n\n", topic)

	res, err := a.Tutor.Start(ctx, topic, level)
	if err != nil {
		return fmt.Errorf("start lesson: %w", err)
	}
	sum, err := a.Tutor.Summary(ctx, res.SessionID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, render.Content(sum.Topic, sum.StudentLevel, res.Content))

	if noChat {
		return nil
	}
	p := tea.NewProgram(
		lesson.New(ctx, a.Tutor, res.SessionID, res.Content),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(out),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("lesson screen: %w", err)
	}
	return nil
}
