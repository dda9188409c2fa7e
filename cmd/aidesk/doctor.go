package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkurosawa/aidesk/internal/config"
	"github.com/mkurosawa/aidesk/internal/index"
	"github.com/mkurosawa/aidesk/internal/scan"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify roots, rules, DB, FTS5, and show stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Roots ===")
			checkDir("Claude", cfg.ClaudeProjectsDir())
			checkDir("Codex", cfg.CodexSessionsDir())

			fmt.Println("\n=== Rules ===")
			checkFile("Claude rules", cfg.ClaudeRulesPath())
			checkDir("Codex rules", cfg.CodexRulesDir())

			fmt.Println("\n=== File Scan ===")
			convs, err := scan.ScanRoots(cfg.ClaudeProjectsDir(), cfg.CodexSessionsDir())
			if err != nil {
				fmt.Printf("  scan error: %v\n", err)
			} else {
				claudeCount, codexCount := 0, 0
				for _, c := range convs {
					if c.Source == "claude" {
						claudeCount++
					} else {
						codexCount++
					}
				}
				fmt.Printf("  Claude JSONL files: %d\n", claudeCount)
				fmt.Printf("  Codex  JSONL files: %d\n", codexCount)
			}

			fmt.Println("\n=== Database ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'aidesk index' first)")
				return nil
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			sessionCount, err := db.SessionCount()
			if err != nil {
				return fmt.Errorf("count sessions: %w", err)
			}

			messageCount, err := db.MessageCount()
			if err != nil {
				return fmt.Errorf("count messages: %w", err)
			}

			fmt.Printf("  Sessions: %d\n", sessionCount)
			fmt.Printf("  Messages: %d\n", messageCount)

			fmt.Println("\n=== FTS5 ===")
			var ftsCount int
			err = db.Raw().QueryRow("SELECT COUNT(*) FROM messages_fts").Scan(&ftsCount)
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
			} else {
				fmt.Printf("  FTS5 entries: %d\n", ftsCount)
				if ftsCount == messageCount {
					fmt.Println("  Status: OK (synced)")
				} else {
					fmt.Printf("  Status: MISMATCH (messages=%d, fts=%d)\n", messageCount, ftsCount)
				}
			}

			if info, err := os.Stat(cfg.DBPath); err == nil {
				sizeMB := float64(info.Size()) / 1024 / 1024
				fmt.Printf("\n=== DB Size: %.1f MB ===\n", sizeMB)
			}

			return nil
		},
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}

func checkFile(name, path string) {
	if _, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
