package main

import (
	"github.com/spf13/cobra"
	"github.com/vytor/phraseflash/internal/config"
	"github.com/vytor/phraseflash/internal/logger"
	"github.com/vytor/phraseflash/internal/practice"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "phrasectl",
	Short:         "Score phrase practice attempts and manage the practice database",
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if v, _ := cmd.Flags().GetString("db"); v != "" {
			cfg.DBPath = v
		}
		if v, _ := cmd.Flags().GetString("log-level"); v != "" {
			cfg.LogLevel = v
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger.SetDefault(logger.New(
			logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
			logger.WithColors(cfg.LogColors),
			logger.WithOutput(cmd.ErrOrStderr()),
		))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "database path (overrides DB_PATH)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (overrides LOG_LEVEL)")
}

func newEngine() *practice.Engine {
	return practice.NewEngine(practice.WithCharacterLanguages(cfg.CharacterLanguages...))
}
