// Command pathnorm is the CLI front end for the path normalization core: a
// one-shot normalize/check/subpath tool, a vector-suite runner, an
// event-log summarizer, a config validator, and the HTTP server.
//
// Grounded on cmd/klyr/main.go (teacher): kept the cobra root command,
// errors.As(*config.ValidationError) reporting on Execute failure, and the
// version subcommand shape.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/klyr/pathnorm/internal/config"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	root := &cobra.Command{
		Use:          "pathnorm",
		Short:        "Path normalization service and CLI",
		SilenceUsage: true,
	}

	root.AddCommand(newNormalizeCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newSubPathCmd())
	root.AddCommand(newVectorsCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newVersionCmd())

	if err := root.Execute(); err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			for _, msg := range verr.Problems {
				fmt.Fprintln(os.Stderr, msg)
			}
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newValidateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a pathnorm configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return errors.New("config path is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), "config ok"); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "version=%s commit=%s buildDate=%s\n", version, commit, buildDate)
		},
	}
}
