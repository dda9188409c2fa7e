package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkurosawa/aidesk/internal/config"
	"github.com/mkurosawa/aidesk/internal/rules"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage global rule files for both assistants",
	}

	cmd.AddCommand(rulesShowCmd())
	cmd.AddCommand(rulesEditCmd())
	cmd.AddCommand(rulesSetCmd())
	cmd.AddCommand(rulesListCmd())
	cmd.AddCommand(rulesCatCmd())
	cmd.AddCommand(rulesWriteCmd())
	cmd.AddCommand(rulesRmCmd())

	return cmd
}

func rulesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the Claude global rules (CLAUDE.md)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			content, err := rules.ReadClaude(cfg)
			if err != nil {
				return err
			}
			if content == "" {
				fmt.Fprintln(os.Stderr, "(no global rules)")
				return nil
			}
			fmt.Print(content)
			return nil
		},
	}
}

func rulesEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the Claude global rules in $EDITOR",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			path := cfg.ClaudeRulesPath()
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			editor := os.Getenv("EDITOR")
			if editor == "" {
				editor = "vi"
			}
			c := exec.Command(editor, path)
			c.Stdin = os.Stdin
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			return c.Run()
		},
	}
}

func rulesSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [file]",
		Short: "Replace the Claude global rules from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			content, err := readContentArg(args)
			if err != nil {
				return err
			}
			return rules.WriteClaude(cfg, content)
		},
	}
}

func rulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List Codex rule files with their tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			all, err := rules.ListCodex(cfg)
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Fprintln(os.Stderr, "(no codex rules)")
				return nil
			}
			for _, r := range all {
				fmt.Printf("%s\t%s\t%d bytes\n", r.Name, rules.FormatTags(r.Tags), len(r.Content))
			}
			return nil
		},
	}
}

func rulesCatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <name>",
		Short: "Print one Codex rule file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			content, err := rules.ReadCodex(cfg, args[0])
			if err != nil {
				return err
			}
			fmt.Print(content)
			return nil
		},
	}
}

func rulesWriteCmd() *cobra.Command {
	var tags string

	cmd := &cobra.Command{
		Use:   "write <name> [file]",
		Short: "Write a Codex rule file and register it in config.toml",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			name := args[0]
			if filepath.Ext(name) != ".md" {
				return fmt.Errorf("rule name must end in .md: %s", name)
			}
			content, err := readContentArg(args[1:])
			if err != nil {
				return err
			}
			var tagList []string
			if tags != "" {
				tagList = strings.Split(tags, ",")
			}
			return rules.WriteCodex(cfg, name, content, tagList)
		},
	}

	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags to register")

	return cmd
}

func rulesRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a Codex rule file and deregister it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return rules.DeleteCodex(cfg, args[0])
		},
	}
}

// readContentArg reads the content from a file argument, or from stdin when
// no argument is given.
func readContentArg(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}
