package cli

import (
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/service"
	"time"

	"github.com/spf13/cobra"
)

// NewTokenCommand creates the token command, which mints a bearer token
// signed with auth.secret for local development.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		sess domain.Session
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:          "token",
		Short:        "Mint a development bearer token",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfig(rootOpts.ConfigDir)
			if err != nil {
				return err
			}
			if err := cfg.Auth.RequireSecret(); err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.Auth.TokenTTL
			}
			auth := service.NewAuthService(cfg.Auth.Secret, cfg.Auth.Issuer, ttl, cfg.Auth.InstructorDomain)
			token, err := auth.IssueToken(sess)
			if err != nil {
				return err
			}
			kind := domain.ClassifyAccountFor(sess.Email, cfg.Auth.InstructorDomain)
			return rootOpts.output(cmd.OutOrStdout(), map[string]string{"token": token, "kind": string(kind)}, token)
		},
	}

	cmd.Flags().StringVar(&sess.UID, "uid", "", "account id")
	cmd.Flags().StringVar(&sess.Email, "email", "", "account email")
	cmd.Flags().StringVar(&sess.DisplayName, "name", "", "display name")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default auth.token_ttl)")
	_ = cmd.MarkFlagRequired("uid")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
