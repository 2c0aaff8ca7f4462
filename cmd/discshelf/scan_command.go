package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"discshelf/internal/disc"
	"discshelf/internal/organizer"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var recurseFlag bool

	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "List title groups the organizer would form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			root := cfg.Library.Root
			if len(args) == 1 {
				root = args[0]
			}
			if root == "" {
				return errors.New("library root required: pass it as an argument or set library.root in the config")
			}

			recurse := cfg.Organize.Recurse
			if cmd.Flags().Changed("recurse") {
				recurse = recurseFlag
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			files, playlists, err := disc.NewScanner(logger).Scan(root, recurse)
			if err != nil {
				return err
			}
			groups := organizer.BuildGroups(files)

			out := cmd.OutOrStdout()
			if len(groups) == 0 {
				fmt.Fprintln(out, "No disc files found.")
				return nil
			}

			fmt.Fprintln(out, renderGroupTable(groups))
			fmt.Fprintf(out, "%d group(s), %d playlist(s)\n", len(groups), len(playlists))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recurseFlag, "recurse", "r", false, "Descend into subdirectories")
	return cmd
}
