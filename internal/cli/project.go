package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"timbro/internal/timesheet"
)

// NewProjectCommand creates the project command group.
func NewProjectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects scoped to a client",
	}

	cmd.AddCommand(newProjectListCommand(rootOpts))
	cmd.AddCommand(newProjectAddCommand(rootOpts))
	cmd.AddCommand(newProjectRenameCommand(rootOpts))
	cmd.AddCommand(newProjectStateCommand(rootOpts, "activate", true))
	cmd.AddCommand(newProjectStateCommand(rootOpts, "deactivate", false))
	cmd.AddCommand(newProjectDeleteCommand(rootOpts))

	return cmd
}

func newProjectListCommand(rootOpts *RootOptions) *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List projects joined with their client",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			registry := timesheet.NewProjects(st)
			var projects []timesheet.Project
			if activeOnly {
				projects, err = registry.ListActive(cmd.Context())
			} else {
				projects, err = registry.ListAll(cmd.Context())
			}
			if err != nil {
				return err
			}

			f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout(), Verbose: rootOpts.Verbose}
			if rootOpts.Format == "json" {
				return f.Success(projects)
			}
			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				state := "active"
				if !p.Active {
					state = "inactive"
				}
				rows = append(rows, []string{p.Client, p.Name, state})
			}
			return f.Table([]string{"CLIENT", "PROJECT", "STATE"}, rows)
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "only active projects")

	return cmd
}

func newProjectAddCommand(rootOpts *RootOptions) *cobra.Command {
	var client, city, color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project under a resolved client",
		Long: `Create a project under a resolved client.

The client name must resolve to exactly one plant. When the client has
plants in several cities, pass --city to disambiguate; the error lists
the candidate cities.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			created, err := timesheet.NewProjects(st).Create(cmd.Context(), client, city, args[0], color)
			var mp *timesheet.MultiPlantError
			if errors.As(err, &mp) {
				return NewExitError(ExitFailure, fmt.Sprintf(
					"client %q has plants in: %s - rerun with --city",
					mp.Name, strings.Join(mp.Cities, ", ")))
			}
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Project %q added under %q\n", args[0], client)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Project %q already exists under %q, nothing added\n", args[0], client)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&client, "client", "", "owning client name (required)")
	cmd.Flags().StringVar(&city, "city", "", "client city, when the client has multiple plants")
	cmd.Flags().StringVar(&color, "color", "", "display color tag")
	cmd.MarkFlagRequired("client")

	return cmd
}

func newProjectRenameCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rename <old-name> <new-name>",
		Short:         "Rename a project",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := timesheet.NewProjects(st).Rename(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if n == 0 {
				return NewExitError(ExitFailure, fmt.Sprintf("project %q not found", args[0]))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project renamed to %q\n", args[1])
			return nil
		},
	}
}

func newProjectStateCommand(rootOpts *RootOptions, verb string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:           verb + " <name>",
		Short:         strings.ToUpper(verb[:1]) + verb[1:] + " a project",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := timesheet.NewProjects(st).SetActive(cmd.Context(), args[0], active)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No project named %q, nothing changed\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project %q %sd\n", args[0], verb)
			return nil
		},
	}
}

func newProjectDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:           "delete <name>",
		Short:         "Delete a project and, by cascade, its jobs",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			name := args[0]
			registry := timesheet.NewProjects(st)

			jobs, err := registry.DependentJobs(cmd.Context(), name)
			if err != nil {
				return err
			}
			if !yes {
				prompt := fmt.Sprintf("Delete project %q and its %d jobs?", name, jobs)
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}

			jobCount, deleted, err := registry.Delete(cmd.Context(), name)
			if err != nil {
				return err
			}
			if deleted == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No project named %q, nothing deleted\n", name)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project %q deleted with %d jobs\n", name, jobCount)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")

	return cmd
}
