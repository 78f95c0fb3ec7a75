package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/filescout/internal/config"
	"github.com/harrison/filescout/internal/history"
)

// NewHistoryCommand creates the 'filescout history' parent command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Search history commands",
		Long: `Commands for viewing and managing recorded searches.

History stores request metadata only (pattern, root, totals, timing);
search results themselves are never persisted.`,
	}

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryClearCommand())
	cmd.AddCommand(newHistoryExportCommand())

	return cmd
}

// openHistoryStore resolves the database path (flag override, then config)
// and opens the store.
func openHistoryStore(cmd *cobra.Command) (*history.Store, error) {
	dbPath, _ := cmd.Flags().GetString("db-path")
	if dbPath == "" {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.DefaultConfigPath
		}
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		dbPath = cfg.History.DBPath
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	return store, nil
}

func addHistoryFlags(cmd *cobra.Command) {
	cmd.Flags().String("db-path", "", "Path to history database (default from config)")
	cmd.Flags().String("config", "", "Path to config file (default: .filescout/config.yaml)")
}

func newHistoryListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded searches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistoryStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded searches.")
				return nil
			}

			pattern := color.New(color.Bold)
			for _, rec := range records {
				flags := ""
				if rec.UseRegex {
					flags += " regex"
				}
				if rec.Truncated {
					flags += " truncated"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s in %s  %d match(es) %dms%s\n",
					rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					pattern.Sprintf("%q", rec.Pattern), rec.BasePath,
					rec.TotalMatches, rec.DurationMillis, flags)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum records to show (0 = all)")
	addHistoryFlags(cmd)
	return cmd
}

func newHistoryClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistoryStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			count, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d record(s).\n", count)
			return nil
		},
	}

	addHistoryFlags(cmd)
	return cmd
}

func newHistoryExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <output-file>",
		Short: "Export search history to a JSON file",
		Long: `Export search history to a JSON file for external analysis or backup.

The write is atomic and locked against concurrent filescout invocations.

Examples:
  filescout history export searches.json
  filescout history export --db-path /tmp/history.db backup.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistoryStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			count, err := store.Export(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d record(s) to %s\n", count, args[0])
			return nil
		},
	}

	addHistoryFlags(cmd)
	return cmd
}
