// Package cmd contains the filescout CLI commands.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for filescout
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filescout",
		Short: "Recursive file-content search service",
		Long: `Filescout is the search backend for the pane-based file manager.

It scans directory trees for text or regex matches under strict resource
bounds (traversal-safe roots, regex shape checks, per-file size caps and a
global match quota), and serves results over HTTP to the browser UI or
directly on the terminal.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewSearchCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
