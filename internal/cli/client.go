package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"timbro/internal/timesheet"
)

// NewClientCommand creates the client command group.
func NewClientCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients and their plants",
	}

	cmd.AddCommand(newClientListCommand(rootOpts))
	cmd.AddCommand(newClientAddCommand(rootOpts))
	cmd.AddCommand(newClientUpdateCommand(rootOpts))
	cmd.AddCommand(newClientDeleteCommand(rootOpts))

	return cmd
}

func newClientListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List all clients ordered by name and city",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			clients, err := timesheet.NewClients(st).List(cmd.Context())
			if err != nil {
				return err
			}

			f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout(), Verbose: rootOpts.Verbose}
			if rootOpts.Format == "json" {
				return f.Success(clients)
			}
			rows := make([][]string, 0, len(clients))
			for _, c := range clients {
				rows = append(rows, []string{c.Name, c.City, c.Nation})
			}
			return f.Table([]string{"CLIENT", "CITY", "NATION"}, rows)
		},
	}
}

func newClientAddCommand(rootOpts *RootOptions) *cobra.Command {
	var city, nation, notes string

	cmd := &cobra.Command{
		Use:           "add <name>",
		Short:         "Register a client plant",
		Long:          "Register a client plant. City is the plant discriminator and must be unique; adding an already-registered city is a silent no-op.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, cfg, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			if nation == "" {
				nation = cfg.DefaultNation
			}

			created, err := timesheet.NewClients(st).Add(cmd.Context(), timesheet.Client{
				Name: args[0], City: city, Nation: nation, Notes: notes,
			})
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Client %q (%s) added\n", args[0], city)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "A plant in %q already exists, nothing added\n", city)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "plant city (required, unique)")
	cmd.Flags().StringVar(&nation, "nation", "", "nation (defaults from config)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.MarkFlagRequired("city")

	return cmd
}

func newClientUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var city, newName, newCity, newNation string

	cmd := &cobra.Command{
		Use:           "update <name>",
		Short:         "Rename a client plant matched by its (name, city) pair",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			if newName == "" {
				newName = args[0]
			}
			if newCity == "" {
				newCity = city
			}

			n, err := timesheet.NewClients(st).Rename(cmd.Context(),
				timesheet.Client{Name: args[0], City: city},
				timesheet.Client{Name: newName, City: newCity, Nation: newNation})
			if err != nil {
				return err
			}
			if n == 0 {
				return NewExitError(ExitFailure,
					fmt.Sprintf("no client %q with a plant in %q", args[0], city))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Client updated\n")
			return nil
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "current plant city (required)")
	cmd.Flags().StringVar(&newName, "new-name", "", "new client name")
	cmd.Flags().StringVar(&newCity, "new-city", "", "new plant city")
	cmd.Flags().StringVar(&newNation, "new-nation", "", "new nation")
	cmd.MarkFlagRequired("city")

	return cmd
}

func newClientDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:           "delete <name>",
		Short:         "Delete a client and, by cascade, its projects and jobs",
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
			registry := timesheet.NewClients(st)

			// The prompt counts are read-only; nothing mutates before
			// the operator has answered.
			projects, jobs, err := registry.DependentCounts(cmd.Context(), name)
			if err != nil {
				return err
			}
			if !yes {
				prompt := fmt.Sprintf("Delete client %q with %d projects and %d jobs?", name, projects, jobs)
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}

			stats, err := registry.Delete(cmd.Context(), name)
			if err != nil {
				return err
			}
			if stats.Clients == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No client named %q, nothing deleted\n", name)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Client %q deleted with %d projects and %d jobs\n",
				name, stats.Projects, stats.Jobs)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")

	return cmd
}
