package cli

import (
	"fitu/dashboard/internal/domain"

	"github.com/spf13/cobra"
)

// NewClassifyCommand creates the classify command.
func NewClassifyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "classify <email>",
		Short:        "Print whether an email belongs to an instructor or a student",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfig(rootOpts.ConfigDir)
			if err != nil {
				return err
			}
			kind := domain.ClassifyAccountFor(args[0], cfg.Auth.InstructorDomain)
			return rootOpts.output(cmd.OutOrStdout(), map[string]string{"email": args[0], "kind": string(kind)}, string(kind))
		},
	}
}
