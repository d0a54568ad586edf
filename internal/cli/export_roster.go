package cli

import (
	"fitu/dashboard/internal/config"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/repository"
	"fitu/dashboard/internal/service"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type exportRosterOptions struct {
	instructorID string
	fileFormat   string
	output       string
	publish      bool
}

// NewExportRosterCommand creates the export-roster command.
func NewExportRosterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &exportRosterOptions{}

	cmd := &cobra.Command{
		Use:          "export-roster",
		Short:        "Export an instructor's class roster as CSV or XLSX",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStore(func(cfg config.Config, store repository.Store) error {
				return runExportRoster(cmd, rootOpts, opts, cfg, store)
			})
		},
	}

	cmd.Flags().StringVar(&opts.instructorID, "instructor", "", "instructor account id")
	cmd.Flags().StringVar(&opts.fileFormat, "file-format", "csv", "csv or xlsx")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().BoolVar(&opts.publish, "publish", false, "upload to the export bucket and print a download URL")
	_ = cmd.MarkFlagRequired("instructor")

	return cmd
}

func runExportRoster(cmd *cobra.Command, rootOpts *RootOptions, opts *exportRosterOptions, cfg config.Config, store repository.Store) error {
	ctx := cmd.Context()
	// The operator acts on behalf of the instructor.
	sess := domain.Session{UID: opts.instructorID, Kind: domain.AccountInstructor}
	rosters := service.NewRosterService(store.Rosters, store.Students)

	if opts.publish {
		fileStorage, err := rootOpts.openStorage(ctx, cfg.S3)
		if err != nil {
			return err
		}
		published, err := service.NewExportService(rosters, fileStorage).PublishRoster(ctx, sess, opts.fileFormat)
		if err != nil {
			return err
		}
		return rootOpts.output(cmd.OutOrStdout(), published, published.DownloadURL)
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.output != "-" {
		f, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := service.NewExportService(rosters, nil).ExportRoster(ctx, sess, opts.fileFormat, w); err != nil {
		return err
	}
	if opts.output != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", opts.output)
	}
	return nil
}
