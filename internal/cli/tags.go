package cli

import (
	"github.com/spf13/cobra"

	"timbro/internal/timesheet"
)

// NewTagsCommand creates the tags command, which prints one of the
// work-type catalogs.
func NewTagsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "tags [work|wait|out]",
		Short:         "Print a work-type tag catalog",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := timesheet.TagWork
			if len(args) == 1 {
				kind = timesheet.TagKind(args[0])
			}

			entries, err := timesheet.Catalog(kind)
			if err != nil {
				return WrapExitError(ExitCommandError, "tags", err)
			}

			f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout(), Verbose: rootOpts.Verbose}
			if rootOpts.Format == "json" {
				return f.Success(entries)
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e.Code, e.Label})
			}
			return f.Table([]string{"CODE", "LABEL"}, rows)
		},
	}
}
