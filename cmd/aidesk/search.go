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

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorBlue    = "\033[1;34m"
	sColorGreen   = "\033[1;32m"
	sColorDim     = "\033[2m"
)

func colorizeSource(source string) string {
	switch source {
	case "claude":
		return sColorBlue + source + sColorReset
	case "codex":
		return sColorGreen + source + sColorReset
	default:
		return source
	}
}

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

func searchCmd() *cobra.Command {
	var source, role, since string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across indexed conversations",
		Long: `Search indexed conversations using FTS5. Interactive TUI on a terminal;
TSV output for pipes (sessionKey, msgId, updatedAt, source, project, summary, snippet),
suitable for fzf with 'aidesk view' as the preview command.`,
		Args: cobra.ExactArgs(1),
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

			// refresh the index so new sessions are searchable immediately
			index.IndexAll(db, cfg.ClaudeProjectsDir(), cfg.CodexSessionsDir())

			opts := search.Options{
				Source: source,
				Role:   role,
				Since:  since,
				Limit:  limit,
			}

			if term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.Run(db, args[0], opts)
			}

			opts.Query = args[0]
			results, err := search.Search(db, opts)
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			for _, r := range results {
				snippet := strings.ReplaceAll(r.Snippet, "\t", " ")
				snippet = strings.ReplaceAll(snippet, "\n", " ")
				snippet = colorizeSnippet(snippet)
				summary := strings.ReplaceAll(r.Summary, "\t", " ")
				summary = strings.ReplaceAll(summary, "\n", " ")
				project := r.Project
				if project == "" {
					project = "-"
				}
				// first two fields stay plain for fzf {1} {2}
				fmt.Printf("%s\t%d\t%s%s%s\t%s\t%s\t%s\t%s\n",
					r.SessionKey,
					r.MsgID,
					sColorDim, r.UpdatedAt, sColorReset,
					colorizeSource(r.Source),
					project,
					summary,
					snippet,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Filter by source (claude/codex)")
	cmd.Flags().StringVar(&role, "role", "", "Filter by role (user/assistant)")
	cmd.Flags().StringVar(&since, "since", "", "Filter conversations updated since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}
