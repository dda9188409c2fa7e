package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "aidesk",
		Short:   "Browse, search, and manage Claude Code and Codex conversation logs",
		Version: version,
	}

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(indexCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(rulesCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
