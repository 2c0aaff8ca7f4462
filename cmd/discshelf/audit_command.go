package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"discshelf/internal/disc"
	"discshelf/internal/playlist"
)

func newAuditCommand(ctx *commandContext) *cobra.Command {
	var recurseFlag bool

	cmd := &cobra.Command{
		Use:   "audit [root]",
		Short: "Check playlists against the files on disk without changing anything",
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

			playlists, err := disc.NewScanner(logger).ScanPlaylists(root, recurse)
			if err != nil {
				return err
			}
			results := playlist.NewAuditor(logger).Audit(playlists)

			out := cmd.OutOrStdout()
			printAuditTable(out, results)

			failures := 0
			for _, result := range results {
				if result.Status == playlist.StatusFail {
					failures++
				}
			}
			if failures > 0 {
				return fmt.Errorf("audit failed for %d playlist(s)", failures)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recurseFlag, "recurse", "r", false, "Descend into subdirectories")
	return cmd
}

func printAuditTable(out io.Writer, results []playlist.AuditResult) {
	if len(results) == 0 {
		fmt.Fprintln(out, "No playlists found.")
		return
	}
	fmt.Fprintln(out, renderAuditTable(results, shouldColorize(out)))
}
