package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mkurosawa/aidesk/internal/config"
	"github.com/mkurosawa/aidesk/internal/index"
	"github.com/mkurosawa/aidesk/internal/search"
	"github.com/mkurosawa/aidesk/internal/tui"
)

func listCmd() *cobra.Command {
	var source, since string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse all conversations sorted by update time",
		Long:  `Opens a TUI panel showing all indexed conversations, newest first. Type to filter by content. When stdout is not a terminal, prints TSV rows instead.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			index.IndexAll(db, cfg.ClaudeProjectsDir(), cfg.CodexSessionsDir())

			opts := search.Options{
				Source: source,
				Since:  since,
				Limit:  limit,
			}

			if term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.RunList(db, opts)
			}

			results, err := search.ListAll(db, opts)
			if err != nil {
				return err
			}
			for _, r := range results {
				summary := strings.ReplaceAll(r.Summary, "\t", " ")
				summary = strings.ReplaceAll(summary, "\n", " ")
				project := r.Project
				if project == "" {
					project = "-"
				}
				fmt.Printf("%s\t%s\t%s\t%s\t%s\n",
					r.SessionKey, r.UpdatedAt, r.Source, project, summary)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Filter by source (claude/codex)")
	cmd.Flags().StringVar(&since, "since", "", "Filter conversations updated since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results (0 = no limit)")

	return cmd
}
