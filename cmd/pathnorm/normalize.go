package main

import (
	"errors"
	"fmt"

	"github.com/klyr/pathnorm/internal/pathfmt"
	"github.com/klyr/pathnorm/internal/resultcode"
	"github.com/spf13/cobra"
)

func newNormalizeCmd() *cobra.Command {
	var flagString string

	cmd := &cobra.Command{
		Use:   "normalize <path>",
		Short: "Normalize a path and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := pathfmt.Normalize(args[0], pathfmt.ParseFlags(flagString))
			if err != nil {
				return fmt.Errorf("%s: %w", resultcode.Name(err), err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(&flagString, "flags", "", "PathFlags letters: W=Windows R=Relative E=Empty M=MountName B=Backslash C=AllCharacters")

	return cmd
}

func newCheckCmd() *cobra.Command {
	var flagString string

	cmd := &cobra.Command{
		Use:   "check <path>",
		Short: "Report whether a path is already normalized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			isNorm, err := pathfmt.IsNormalized(args[0], pathfmt.ParseFlags(flagString))
			if err != nil {
				return fmt.Errorf("%s: %w", resultcode.Name(err), err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), isNorm)
			return err
		},
	}

	cmd.Flags().StringVar(&flagString, "flags", "", "PathFlags letters: W=Windows R=Relative E=Empty M=MountName B=Backslash C=AllCharacters")

	return cmd
}

func newSubPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subpath <p1> <p2>",
		Short: "Report whether either path is a strict sub-path of the other",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" || args[1] == "" {
				return errors.New("both paths are required")
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), pathfmt.IsSubPath(args[0], args[1]))
			return err
		},
	}

	return cmd
}
