package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"discshelf/internal/playlist"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func renderAuditStatus(status playlist.Status, colorize bool) string {
	label := status.String()
	if !colorize {
		return label
	}
	switch status {
	case playlist.StatusOK:
		return ansiGreen + label + ansiReset
	case playlist.StatusWarn:
		return ansiYellow + label + ansiReset
	case playlist.StatusFail:
		return ansiRed + label + ansiReset
	default:
		return label
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
