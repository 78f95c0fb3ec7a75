package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harrison/filescout/internal/logger"
	"github.com/harrison/filescout/internal/models"
	"github.com/harrison/filescout/internal/search"
)

// NewSearchCommand creates the one-shot search command
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <pattern> <path>",
		Short: "Search file contents under a directory",
		Long: `Search file contents under a directory and print the matches.

Runs the same pipeline as the HTTP endpoint: substring matching by default,
regex with --regex, recursive unless --no-recursive, capped at 1000 matches.

Examples:
  filescout search "TODO" /home/me/project
  filescout search --regex "func \w+Handler" /srv/app --name "*.go"
  filescout search --case-sensitive "Foo" /data --max-results 50
  filescout search --json "foo" /data`,
		Args: cobra.ExactArgs(2),
		RunE: searchCommand,
	}

	cmd.Flags().Bool("regex", false, "Treat the pattern as a regular expression")
	cmd.Flags().Bool("case-sensitive", false, "Match case sensitively")
	cmd.Flags().Bool("no-recursive", false, "Do not descend into subdirectories")
	cmd.Flags().String("name", "", "Filter files by base name ('*' wildcard)")
	cmd.Flags().Int("max-results", 0, "Cap total matches (default and ceiling: 1000)")
	cmd.Flags().Bool("json", false, "Print the raw JSON response")
	cmd.Flags().String("log-level", "warn", "Log verbosity: debug, info, warn, error")

	return cmd
}

func searchCommand(cmd *cobra.Command, args []string) error {
	useRegex, _ := cmd.Flags().GetBool("regex")
	caseSensitive, _ := cmd.Flags().GetBool("case-sensitive")
	noRecursive, _ := cmd.Flags().GetBool("no-recursive")
	namePattern, _ := cmd.Flags().GetString("name")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	asJSON, _ := cmd.Flags().GetBool("json")
	logLevel, _ := cmd.Flags().GetString("log-level")

	basePath := args[1]
	if !filepath.IsAbs(basePath) {
		abs, err := filepath.Abs(basePath)
		if err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}
		basePath = abs
	}

	req := models.SearchRequest{
		Pattern:       args[0],
		BasePath:      basePath,
		Recursive:     !noRecursive,
		UseRegex:      useRegex,
		CaseSensitive: caseSensitive,
		NamePattern:   namePattern,
		MaxResults:    maxResults,
	}

	searcher := search.New(logger.New(os.Stderr, logLevel))
	resp, err := searcher.Execute(cmd.Context(), req)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	printResults(cmd, resp)
	return nil
}

// printResults renders matches grep-style, one file header per FileResult.
// Colors are dropped when stdout is not a terminal.
func printResults(cmd *cobra.Command, resp *models.SearchResponse) {
	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		color.NoColor = true
	}

	pathColor := color.New(color.FgCyan, color.Bold)
	lineNumColor := color.New(color.FgGreen)
	matchColor := color.New(color.FgRed, color.Bold)

	for _, fr := range resp.Results {
		fmt.Fprintln(out, pathColor.Sprint(fr.Path))
		for _, m := range fr.Matches {
			line := m.LineContent
			end := m.ColumnOffset + m.MatchLength
			highlighted := line[:m.ColumnOffset] +
				matchColor.Sprint(line[m.ColumnOffset:end]) +
				line[end:]
			fmt.Fprintf(out, "  %s: %s\n", lineNumColor.Sprintf("%d", m.LineNumber), highlighted)
		}
	}

	fmt.Fprintf(out, "\n%d match(es) in %d file(s), %dms\n",
		resp.TotalMatches, len(resp.Results), resp.DurationMillis)
	if resp.Truncated {
		fmt.Fprintln(out, "results truncated: match quota reached before all files were scanned")
	}
}
