package main

import (
	"github.com/spf13/cobra"

	"github.com/mkurosawa/aidesk/internal/config"
	"github.com/mkurosawa/aidesk/internal/index"
	"github.com/mkurosawa/aidesk/internal/open"
)

func openCmd() *cobra.Command {
	var hitMsgID int

	cmd := &cobra.Command{
		Use:   "open <sessionKey>",
		Short: "Open the original JSONL file in $EDITOR at the hit line",
		Args:  cobra.ExactArgs(1),
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

			return open.Session(db, args[0], hitMsgID)
		},
	}

	cmd.Flags().IntVar(&hitMsgID, "hit", -1, "Message ID to jump to")

	return cmd
}
