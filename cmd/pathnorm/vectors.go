package main

import (
	"errors"
	"fmt"

	"github.com/klyr/pathnorm/internal/config"
	"github.com/klyr/pathnorm/internal/vectors"
	"github.com/spf13/cobra"
)

func newVectorsCmd() *cobra.Command {
	var configPath string
	var suiteName string

	cmd := &cobra.Command{
		Use:   "vectors",
		Short: "Run configured golden test-vector suites against the core",
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

			failed := 0
			for _, suite := range cfg.VectorSuites {
				if suiteName != "" && suite.Name != suiteName {
					continue
				}
				cases, err := vectors.LoadCases(cfg.ResolvePath(suite.FixturePath))
				if err != nil {
					return fmt.Errorf("suite %s: %w", suite.Name, err)
				}
				engine := vectors.Engine{Cases: cases}
				result := engine.Run()
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d passed, %d failed\n", suite.Name, len(result.Passed), len(result.Failed))
				for _, cr := range result.Failed {
					fmt.Fprintf(cmd.OutOrStdout(), "  FAIL %s: %s\n", cr.Case.Name, cr.Reason)
				}
				if len(result.Failed) > 0 && suite.FailOnMiss {
					failed += len(result.Failed)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d vector case(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVar(&suiteName, "suite", "", "Run only the named suite")

	return cmd
}
