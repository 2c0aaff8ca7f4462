package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"discshelf/internal/fsops"
	"discshelf/internal/organizer"
	"discshelf/internal/playlist"
	"discshelf/internal/title"
)

func newTableWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}

func rightAligned(columns ...int) []table.ColumnConfig {
	configs := make([]table.ColumnConfig, 0, len(columns))
	for _, number := range columns {
		configs = append(configs, table.ColumnConfig{
			Number:      number,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	return configs
}

// renderAuditTable renders one row per audited playlist with its
// classification and problem counts.
func renderAuditTable(results []playlist.AuditResult, colorize bool) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"STATUS", "PLAYLIST", "MISSING", "CUE ERRORS", "DETAIL"})
	for _, result := range results {
		tw.AppendRow(table.Row{
			renderAuditStatus(result.Status, colorize),
			result.Playlist,
			result.Missing,
			result.CueErrors,
			result.Detail,
		})
	}
	tw.SetColumnConfigs(rightAligned(3, 4))
	return tw.Render()
}

// renderActionTable renders the mutations a preview run suppressed, in the
// order they would have happened.
func renderActionTable(actions []fsops.Action) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"ACTION", "PATH", "TARGET"})
	for _, action := range actions {
		tw.AppendRow(table.Row{action.Op, action.Path, action.Target})
	}
	return tw.Render()
}

// renderGroupTable renders one row per title group found by a scan.
func renderGroupTable(groups []organizer.Group) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"TITLE", "FILES", "MASTERS", "MULTI-DISC"})
	for _, group := range groups {
		tw.AppendRow(table.Row{
			title.Display(group.Title),
			len(group.Files),
			len(group.Masters()),
			yesNo(group.MultiDisc()),
		})
	}
	tw.SetColumnConfigs(rightAligned(2, 3))
	return tw.Render()
}
