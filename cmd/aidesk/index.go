package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkurosawa/aidesk/internal/config"
	"github.com/mkurosawa/aidesk/internal/index"
)

func indexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Scan and index Claude Code and Codex conversation logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			fmt.Fprintf(os.Stderr, "Scanning roots...\n")
			fmt.Fprintf(os.Stderr, "  Claude: %s\n", cfg.ClaudeProjectsDir())
			fmt.Fprintf(os.Stderr, "  Codex:  %s\n", cfg.CodexSessionsDir())

			stats, err := index.IndexAll(db, cfg.ClaudeProjectsDir(), cfg.CodexSessionsDir())
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Done. %s\n", stats)
			return nil
		},
	}
}
