package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/mockmate/interview-cli/internal/dashboard"
	"github.com/mockmate/interview-cli/internal/model"
)

var (
	sessionsEmail string
	sessionsRole  string
	sessionsSort  string
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List stored interview sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		records, err := st.ListInterviews(ctx, sessionsEmail)
		if err != nil {
			return eris.Wrap(err, "cmd: list interviews")
		}

		role := sessionsRole
		if role == "" {
			role = dashboard.RoleAll
		}
		view := dashboard.View(records, role, dashboard.SortKey(sessionsSort))

		if len(view) == 0 {
			fmt.Fprintln(os.Stderr, "No sessions found.")
			return nil
		}

		formatSessions(cmd.OutOrStdout(), view)
		fmt.Fprintf(cmd.OutOrStdout(), "\nAverage readiness: %d%%\n", dashboard.AverageReadiness(view))
		return nil
	},
}

func formatSessions(w io.Writer, records []model.InterviewRecord) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tROLE\tQUESTIONS\tREADINESS")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d%%\n",
			r.Date.Format("2006-01-02"),
			r.Role,
			len(r.Questions),
			r.Readiness,
		)
	}
	tw.Flush() //nolint:errcheck
}

func init() {
	sessionsCmd.Flags().StringVar(&sessionsEmail, "email", "", "email whose sessions to list (required)")
	sessionsCmd.Flags().StringVar(&sessionsRole, "role", "", "filter to one role")
	sessionsCmd.Flags().StringVar(&sessionsSort, "sort", string(dashboard.SortByDate),
		fmt.Sprintf("sort order (%s)", strings.Join([]string{string(dashboard.SortByDate), string(dashboard.SortByReadiness)}, "|")))
	sessionsCmd.MarkFlagRequired("email") //nolint:errcheck
	rootCmd.AddCommand(sessionsCmd)
}
