package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"discshelf/internal/pipeline"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var recurseFlag bool
	var previewFlag bool

	cmd := &cobra.Command{
		Use:   "organize [root]",
		Short: "Group disc files by title and maintain playlists",
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
			preview := cfg.Organize.Preview
			if cmd.Flags().Changed("preview") {
				preview = previewFlag
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			report, err := pipeline.Run(cmd.Context(), pipeline.Options{
				Root:    root,
				Recurse: recurse,
				Preview: preview,
			}, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printRunSummary(out, report)

			if report.Preview {
				printPreviewActions(out, report)
				return nil
			}

			printAuditTable(out, report.Audit)
			if failures := report.AuditFailures(); failures > 0 {
				return fmt.Errorf("audit failed for %d playlist(s)", failures)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recurseFlag, "recurse", "r", false, "Descend into subdirectories")
	cmd.Flags().BoolVarP(&previewFlag, "preview", "n", false, "Report intended changes without performing them")
	return cmd
}

func printRunSummary(out io.Writer, report pipeline.Report) {
	fmt.Fprintf(out, "Root:                %s\n", report.Root)
	fmt.Fprintf(out, "Preview:             %s\n", yesNo(report.Preview))
	fmt.Fprintf(out, "Groups:              %d\n", report.Groups)
	fmt.Fprintf(out, "Files moved:         %d\n", report.FilesMoved)
	fmt.Fprintf(out, "Cue rewrites:        %d\n", report.CueRewrites)
	fmt.Fprintf(out, "Playlists written:   %d\n", report.PlaylistsWritten)
	fmt.Fprintf(out, "Playlists repaired:  %d\n", report.PlaylistsRepaired)
	fmt.Fprintf(out, "Playlists removed:   %d\n", report.PlaylistsRemoved)
	fmt.Fprintf(out, "Directories pruned:  %d\n", report.DirsPruned)
	if report.Warnings > 0 {
		fmt.Fprintf(out, "Warnings:            %d\n", report.Warnings)
	}
}

func printPreviewActions(out io.Writer, report pipeline.Report) {
	if len(report.Actions) == 0 {
		fmt.Fprintln(out, "Nothing to do.")
		return
	}
	fmt.Fprintln(out, renderActionTable(report.Actions))
	fmt.Fprintf(out, "%d action(s); no changes were made.\n", len(report.Actions))
}
