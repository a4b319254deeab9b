package cmd

import "github.com/spf13/cobra"

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run interactive TUI",
	RunE:  runTUI,
}
