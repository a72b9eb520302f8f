package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/mockmate/interview-cli/internal/capture"
	"github.com/mockmate/interview-cli/internal/model"
	"github.com/mockmate/interview-cli/internal/questions"
	"github.com/mockmate/interview-cli/internal/scoring"
	"github.com/mockmate/interview-cli/internal/session"
)

var (
	practiceEmail string
	practiceRole  string
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Run a mock interview in the terminal",
	Long:  "Asks the role's questions one at a time. Type your answer line by line; an empty line finishes the answer and moves on.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		source, err := questions.New(cfg.Questions, cfg.OpenAI)
		if err != nil {
			return eris.Wrap(err, "cmd: question source")
		}

		qs, err := source.ForRole(ctx, practiceRole)
		if err != nil {
			return eris.Wrap(err, "cmd: fetch questions")
		}

		recorder := session.RecorderFunc(func(ctx context.Context, record model.InterviewRecord) error {
			return st.AppendInterview(ctx, practiceEmail, record)
		})
		machine := session.New(practiceRole, scoring.NewRandom(cfg.Scoring), recorder)

		return runPractice(ctx, machine, qs, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// runPractice drives the session loop over plain reader/writer so the
// interview flow is testable without a terminal.
func runPractice(ctx context.Context, machine *session.Machine, qs []string, in io.Reader, out io.Writer) error {
	adapter := capture.New(func(transcript string) {
		machine.SetTranscript(transcript)
		fmt.Fprintf(out, "You said: %q\n", transcript)
	})

	if err := machine.Begin(ctx, qs); err != nil {
		return eris.Wrap(err, "cmd: begin session")
	}

	scanner := bufio.NewScanner(in)

	for machine.State() == session.StateAsking {
		text, _ := machine.CurrentQuestion()
		fmt.Fprintf(out, "\nQuestion %d/%d: %s\n", machine.CurrentIndex()+1, len(machine.Questions()), text)
		fmt.Fprintln(out, "(answer line by line; empty line to finish)")

		adapter.Start() //nolint:errcheck

		answered := false
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				adapter.Stop()
				answered = true
				break
			}
			adapter.Push(line)
		}
		if !answered {
			// Input ran out; the rest of the run records empty answers.
			adapter.Fail()
		}

		if err := machine.Next(ctx); err != nil {
			return eris.Wrap(err, "cmd: advance session")
		}

		stats := machine.Answers()
		scores := stats[len(stats)-1].Scores
		fmt.Fprintf(out, "Clarity %d  Relevance %d  Confidence %d\n",
			scores.Clarity, scores.Relevance, scores.Confidence)
		fmt.Fprintf(out, "Feedback: %s\n", scoring.RandomFeedback())
	}

	averages := machine.Averages()
	fmt.Fprintf(out, "\nInterview complete. Readiness: %d%%\n", machine.Readiness())
	fmt.Fprintf(out, "Averages: clarity %d, relevance %d, confidence %d\n",
		averages.Clarity, averages.Relevance, averages.Confidence)

	if err := scanner.Err(); err != nil {
		return eris.Wrap(err, "cmd: read input")
	}
	return nil
}

func init() {
	practiceCmd.Flags().StringVar(&practiceEmail, "email", "", "email the interview is recorded under (required)")
	practiceCmd.Flags().StringVar(&practiceRole, "role", "", "role to interview for (required)")
	practiceCmd.MarkFlagRequired("email") //nolint:errcheck
	practiceCmd.MarkFlagRequired("role")  //nolint:errcheck
	rootCmd.AddCommand(practiceCmd)
}
