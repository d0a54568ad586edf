package cli

import (
	"fitu/dashboard/internal/config"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/repository"
	"fitu/dashboard/internal/service"
	"fmt"

	"github.com/spf13/cobra"
)

// NewProvisionCommand creates the provision command. It does what the
// account hook does, for accounts created while the hook was unavailable.
func NewProvisionCommand(rootOpts *RootOptions) *cobra.Command {
	var acct domain.NewAccount

	cmd := &cobra.Command{
		Use:          "provision",
		Short:        "Create the initial profile of an account",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStore(func(cfg config.Config, store repository.Store) error {
				svc := service.NewAccountService(store.Students, store.Instructors, cfg.Auth.InstructorDomain)
				kind, err := svc.ProvisionAccount(cmd.Context(), acct)
				if err != nil {
					return err
				}
				return rootOpts.output(cmd.OutOrStdout(),
					map[string]string{"uid": acct.UID, "kind": string(kind)},
					fmt.Sprintf("provisioned %s %s", kind, acct.UID))
			})
		},
	}

	cmd.Flags().StringVar(&acct.UID, "uid", "", "account id at the identity provider")
	cmd.Flags().StringVar(&acct.Email, "email", "", "account email")
	cmd.Flags().StringVar(&acct.DisplayName, "name", "", "display name")
	_ = cmd.MarkFlagRequired("uid")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
