package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/promptrev/cmd/promptrev/commands"
	"github.com/teranos/promptrev/revision"
	"github.com/teranos/promptrev/revisions"
)

var rootCmd = &cobra.Command{
	Use:   "promptrev",
	Short: "promptrev - Versioned prompt templates",
	Long: `promptrev - Schema-migration style management for prompt templates.

Prompts live in a flat YAML document. Changes to that document ship as
ordered revision steps that are applied exactly once each, with the applied
sequence persisted between runs.

Available commands:
  upgrade - Apply pending revisions to the prompt document
  status  - Show current revision and what is pending
  list    - List registered revisions with applied markers
  show    - Print one rendered (or raw) prompt
  names   - List known prompt names
  render  - Resolve an ad-hoc template string
  init    - Seed a starter prompt document and project config
  watch   - Watch the document and react to manual edits
  autorev - Generate a revision from manual edits, once
  edit    - Open the document in $EDITOR, then reconcile
  config  - Inspect the configuration cascade

Examples:
  promptrev upgrade                # Apply all pending revisions
  promptrev upgrade --target 002_add_weather_q
  promptrev show SYSTEM            # Print the rendered SYSTEM prompt
  promptrev watch                  # Foreground watch mode until Ctrl-C
  promptrev config show            # Show effective configuration`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Version reporting must work even with a broken config.
		if cmd.Name() == "version" {
			return nil
		}
		return commands.Setup(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file path (bypasses the cascade)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Structured JSON log output")
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")

	rootCmd.AddCommand(commands.UpgradeCmd)
	rootCmd.AddCommand(commands.StatusCmd)
	rootCmd.AddCommand(commands.ListCmd)
	rootCmd.AddCommand(commands.ShowCmd)
	rootCmd.AddCommand(commands.NamesCmd)
	rootCmd.AddCommand(commands.RenderCmd)
	rootCmd.AddCommand(commands.InitCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.AutorevCmd)
	rootCmd.AddCommand(commands.EditCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)

	// The shipped revision set registers against the process-wide default
	// registry; callers embedding the library bring their own.
	if err := revisions.RegisterAll(revision.Default()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to register shipped revisions: %v\n", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
