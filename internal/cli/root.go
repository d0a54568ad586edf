// Package cli implements the fituctl operator commands.
package cli

import (
	"context"
	"encoding/json"
	"fitu/dashboard/internal/app"
	"fitu/dashboard/internal/config"
	"fitu/dashboard/internal/repository"
	"fitu/dashboard/internal/storage"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigDir string
	Format    string // "json" | "text"

	// Overridable in tests.
	loadConfig  func(dir string) (config.Config, error)
	openStore   func(cfg config.DatabaseConfig) (repository.Store, func(), error)
	openStorage func(ctx context.Context, cfg config.S3Config) (storage.FileStorage, error)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command of fituctl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{
		loadConfig:  config.LoadConfig,
		openStore:   app.OpenStore,
		openStorage: app.OpenFileStorage,
	})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fituctl",
		Short: "fituctl - FitU dashboard operator tool",
		Long:  "Provision accounts, mint development tokens and export class rosters of the FitU dashboard backend.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigDir, "config", ".", "directory containing config.yaml")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewClassifyCommand(opts))
	cmd.AddCommand(NewProvisionCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))
	cmd.AddCommand(NewExportRosterCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// output prints v as JSON, or text otherwise.
func (o *RootOptions) output(w io.Writer, v interface{}, text string) error {
	if o.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

// withStore loads the config, opens the store and runs fn.
func (o *RootOptions) withStore(fn func(cfg config.Config, store repository.Store) error) error {
	cfg, err := o.loadConfig(o.ConfigDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, closeStore, err := o.openStore(cfg.Database)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()
	return fn(cfg, store)
}
