package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"timbro/internal/timesheet"
)

// JobLogOptions holds flags for the job log command.
type JobLogOptions struct {
	Day         string
	Project     string
	Start       string
	End         string
	Place       string
	WorkType    string
	Description string
	Client      string
	City        string
	Create      bool
}

// NewJobCommand creates the job command group.
func NewJobCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Log work entries",
	}

	cmd.AddCommand(newJobLogCommand(rootOpts))
	cmd.AddCommand(newJobDeleteCommand(rootOpts))

	return cmd
}

func newJobLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &JobLogOptions{}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Append a work entry to a workday",
		Long: `Append a work entry to a workday.

When --project is omitted and exactly one project is active, that
project is chosen automatically. When the project does not exist yet,
--create (together with --client, and --city for multi-plant clients)
creates it and retries the same entry.

Example:
  timbro job log --day 2025-01-10 --start 2025-01-10T09:00:00 \
    --end 2025-01-10T11:00:00 --project Line1 --type 2`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobLog(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Day, "day", "", "workday date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&opts.Project, "project", "", "project name (defaults to the only active project)")
	cmd.Flags().StringVar(&opts.Start, "start", "", "start date-time, e.g. 2025-01-10T09:00:00 (required)")
	cmd.Flags().StringVar(&opts.End, "end", "", "end date-time (required)")
	cmd.Flags().StringVar(&opts.Place, "place", "", "place (defaults to the client's city)")
	cmd.Flags().StringVar(&opts.WorkType, "type", "", "work type: catalog code or free text")
	cmd.Flags().StringVar(&opts.Description, "description", "", "free-text description")
	cmd.Flags().StringVar(&opts.Client, "client", "", "owning client, used with --create")
	cmd.Flags().StringVar(&opts.City, "city", "", "client city, used with --create")
	cmd.Flags().BoolVar(&opts.Create, "create", false, "create the project if missing, then retry")
	cmd.MarkFlagRequired("day")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")

	return cmd
}

func runJobLog(rootOpts *RootOptions, opts *JobLogOptions, cmd *cobra.Command) error {
	st, cfg, err := openStore(rootOpts)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	projects := timesheet.NewProjects(st)
	jobs := timesheet.NewJobs(st)

	// Implicit current project: only when exactly one is active.
	if opts.Project == "" {
		names, err := projects.ActiveNames(ctx)
		if err != nil {
			return err
		}
		switch len(names) {
		case 0:
			return NewExitError(ExitFailure, "no active project: pass --project")
		case 1:
			opts.Project = names[0]
			fmt.Fprintf(cmd.OutOrStdout(), "Using active project %q\n", opts.Project)
		default:
			return NewExitError(ExitFailure,
				"several active projects, pass --project: "+strings.Join(names, ", "))
		}
	}

	workType := opts.WorkType
	if workType == "" {
		workType = cfg.DefaultWorkType
	}
	if label, ok := timesheet.TagLabel(timesheet.TagWork, workType); ok {
		workType = label
	}

	params := timesheet.JobParams{
		Day:         opts.Day,
		Project:     opts.Project,
		StartAt:     opts.Start,
		EndAt:       opts.End,
		Place:       opts.Place,
		WorkType:    workType,
		Description: opts.Description,
	}

	err = jobs.Log(ctx, params)

	// Unknown project: offer create-and-retry recovery.
	var pnf *timesheet.ProjectNotFoundError
	if errors.As(err, &pnf) {
		if !opts.Create {
			return NewExitError(ExitFailure, fmt.Sprintf(
				"project %q not found: rerun with --create --client <name> to create it", pnf.Name))
		}
		if opts.Client == "" {
			return NewExitError(ExitCommandError, "--create requires --client")
		}

		_, err := projects.Create(ctx, opts.Client, opts.City, opts.Project, "")
		var mp *timesheet.MultiPlantError
		if errors.As(err, &mp) {
			return NewExitError(ExitFailure, fmt.Sprintf(
				"client %q has plants in: %s - rerun with --city",
				mp.Name, strings.Join(mp.Cities, ", ")))
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Project %q created under %q\n", opts.Project, opts.Client)

		err = jobs.Log(ctx, params)
		if err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Job logged on %s for %q (%s - %s)\n",
		opts.Day, opts.Project, opts.Start, opts.End)
	return nil
}

func newJobDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a work entry (not supported)",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Jobs are immutable once written; this stays a no-op at
			// the boundary.
			fmt.Fprintln(cmd.OutOrStdout(), "Jobs are immutable; nothing deleted")
			return nil
		},
	}
}
