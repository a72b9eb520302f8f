package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mockmate/interview-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "interview-cli",
	Short: "Mock interview practice server and CLI",
	Long:  "Serves the mock interview API, runs practice sessions in the terminal, and inspects stored interview history.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A local .env overlays the environment before config reads it.
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
