package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"timbro/internal/timesheet"
)

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "report <day>",
		Short:         "Show all jobs of one workday with total hours",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			report, err := timesheet.NewJobs(st).ReportForDay(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout(), Verbose: rootOpts.Verbose}
			if rootOpts.Format == "json" {
				return f.Success(report)
			}

			if len(report.Jobs) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No jobs logged on %s\n", report.Day)
				return nil
			}

			rows := make([][]string, 0, len(report.Jobs))
			for _, j := range report.Jobs {
				rows = append(rows, []string{
					j.Project,
					j.StartAt.Format("15:04"),
					j.EndAt.Format("15:04"),
					j.Place,
					j.WorkType,
					j.Description,
					fmt.Sprintf("%.2f", j.Hours),
				})
			}
			if err := f.Table([]string{"PROJECT", "START", "END", "PLACE", "TYPE", "DESCRIPTION", "HOURS"}, rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %.2f hours\n", report.TotalHours)
			return nil
		},
	}
}
