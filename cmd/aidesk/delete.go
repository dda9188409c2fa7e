package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkurosawa/aidesk/internal/config"
	"github.com/mkurosawa/aidesk/internal/index"
	"github.com/mkurosawa/aidesk/internal/scan"
)

func deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <path | sessionKey>",
		Short: "Delete a conversation transcript",
		Long: `Deletes a transcript file and cleans up directories left empty, then
removes the conversation from the index. Accepts a file path or an indexed
session key.`,
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

			path := args[0]
			sessionKey := ""
			if _, err := os.Stat(path); err != nil {
				// not a file, try it as a session key
				session, err := db.GetSessionByKey(args[0])
				if err != nil {
					return err
				}
				if session == nil {
					return fmt.Errorf("no such file or session: %s", args[0])
				}
				path = session.FilePath
				sessionKey = session.SessionKey
			}

			if !yes {
				fmt.Fprintf(os.Stderr, "Delete %s? (y/N) ", path)
				line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
				if answer := strings.TrimSpace(line); answer != "y" && answer != "Y" {
					fmt.Fprintln(os.Stderr, "Cancelled.")
					return nil
				}
			}

			if err := scan.Delete(path); err != nil {
				return err
			}
			if sessionKey != "" {
				if err := db.DeleteSession(sessionKey); err != nil {
					return fmt.Errorf("remove from index: %w", err)
				}
			}
			fmt.Fprintf(os.Stderr, "Deleted %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
