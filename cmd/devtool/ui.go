package main

import (
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	info    = color.New(color.FgBlue)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	accent  = color.New(color.FgCyan, color.Bold)
)

// out receives every status line; tests swap it for a buffer
var out io.Writer = os.Stdout

func PrintInfo(format string, a ...interface{}) {
	info.Fprintf(out, "ℹ "+format+"\n", a...)
}

func PrintSuccess(format string, a ...interface{}) {
	success.Fprintf(out, "✓ "+format+"\n", a...)
}

func PrintWarning(format string, a ...interface{}) {
	warn.Fprintf(out, "⚠ "+format+"\n", a...)
}

func PrintError(format string, a ...interface{}) {
	danger.Fprintf(out, "✗ "+format+"\n", a...)
}

// PrintHeader opens a section of output, e.g. one migration run
func PrintHeader(title string) {
	accent.Fprintf(out, "\n== %s ==\n", title)
}
