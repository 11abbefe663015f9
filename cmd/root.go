package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/config"
	"github.com/abhisek/tutor/internal/platform/logger"
	"github.com/abhisek/tutor/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "tutor",
	Short: "AI tutor: guided lessons and exam quizzes",
	Long: `Tutor turns a topic into a guided lesson (hook, lesson, quiz, dialogue)
and keeps a tutoring conversation going around it. Run "tutor serve" for the
HTTP API or "tutor lesson <topic>" to learn in the terminal.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to the LLM event database (overrides TUTOR_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then TUTOR_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadConfig reads the environment and applies the flags shared by every
// command that talks to a model.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(logger.Options{
		Mode:     cfg.Log.Mode,
		Level:    cfg.Log.Level,
		Redact:   cfg.Log.Redact,
		HashSalt: cfg.Log.HashSalt,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// cliLogger keeps the terminal commands quiet unless LOG_LEVEL asks for more.
func cliLogger(cfg *config.Config) (*logger.Logger, error) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "error"
	}
	return newLogger(cfg)
}
