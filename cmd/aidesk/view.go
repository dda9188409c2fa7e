package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkurosawa/aidesk/internal/config"
	"github.com/mkurosawa/aidesk/internal/index"
	"github.com/mkurosawa/aidesk/internal/render"
	"github.com/mkurosawa/aidesk/internal/transcript"
)

func viewCmd() *cobra.Command {
	var format string
	var hitMsgID, context, width int
	var query string
	var raw bool

	cmd := &cobra.Command{
		Use:   "view <path | sessionKey>",
		Short: "Render one conversation transcript",
		Long: `Renders a conversation as formatted terminal text. The argument is either
a transcript file path (parsed directly, format inferred from its location)
or an indexed session key like claude:myproject/abc123.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			arg := args[0]

			// Session keys carry a source prefix and never exist on disk.
			if _, err := os.Stat(arg); err == nil {
				return viewFile(cfg, arg, format, width, query, raw)
			}
			return viewIndexed(cfg, arg, hitMsgID, context, width, query)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Transcript format (claude/codex), default inferred from path")
	cmd.Flags().IntVar(&hitMsgID, "hit", -1, "Message ID to highlight (session key form)")
	cmd.Flags().IntVar(&context, "context", 10, "Messages before/after hit to show (session key form)")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap width (0 = no wrap)")
	cmd.Flags().StringVar(&query, "query", "", "Search query for keyword highlighting")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print message text without markup formatting")

	return cmd
}

func viewFile(cfg *config.Config, path, format string, width int, query string, raw bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	f, err := resolveFormat(cfg, path, format)
	if err != nil {
		return err
	}

	seq := transcript.Extract(string(data), f)
	title := filepath.Base(path)
	fmt.Print(render.Sequence(seq, title, render.Options{Width: width, Query: query, Raw: raw}))
	return nil
}

func viewIndexed(cfg *config.Config, sessionKey string, hitMsgID, context, width int, query string) error {
	db, err := index.OpenDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	out, _, err := render.Conversation(db, sessionKey, render.Options{
		HitMsgID: hitMsgID,
		Context:  context,
		Width:    width,
		Query:    query,
	})
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// resolveFormat decides which schema to parse a file with: an explicit flag
// wins, otherwise the file's location under one of the two roots decides.
func resolveFormat(cfg *config.Config, path, format string) (transcript.Format, error) {
	switch format {
	case "claude":
		return transcript.FormatClaude, nil
	case "codex":
		return transcript.FormatCodex, nil
	case "":
	default:
		return "", fmt.Errorf("unknown format %q (want claude or codex)", format)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	switch {
	case strings.HasPrefix(abs, cfg.CodexSessionsDir()+string(filepath.Separator)):
		return transcript.FormatCodex, nil
	case strings.HasPrefix(abs, cfg.ClaudeProjectsDir()+string(filepath.Separator)):
		return transcript.FormatClaude, nil
	}
	return "", fmt.Errorf("cannot infer format of %s, pass --format", path)
}
