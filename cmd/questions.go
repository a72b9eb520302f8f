package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/mockmate/interview-cli/internal/questions"
)

var questionsRole string

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Show the questions asked for a role",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		bank, err := questions.LoadBank(cfg.Questions.BankPath)
		if err != nil {
			return eris.Wrap(err, "cmd: load bank")
		}

		if questionsRole == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "Available roles:")
			for _, role := range bank.Roles() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", role)
			}
			return nil
		}

		source, err := questions.New(cfg.Questions, cfg.OpenAI)
		if err != nil {
			return eris.Wrap(err, "cmd: question source")
		}
		qs, err := source.ForRole(ctx, questionsRole)
		if err != nil {
			return eris.Wrap(err, "cmd: fetch questions")
		}
		if len(qs) == 0 {
			fmt.Fprintln(os.Stderr, "No questions for this role.")
			return nil
		}
		for i, q := range qs {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, q)
		}
		return nil
	},
}

func init() {
	questionsCmd.Flags().StringVar(&questionsRole, "role", "", "role to show questions for (omit to list roles)")
	rootCmd.AddCommand(questionsCmd)
}
