package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// AutorevCmd runs change detection and revision generation once,
// regardless of the watch-mode rate limiter.
var AutorevCmd = &cobra.Command{
	Use:   "autorev",
	Short: "Generate a revision from manual document edits",
	Long: `Compare the prompt document against the last-migrated snapshot and,
when they differ, write a revision source file capturing the additions,
modifications and removals. The generated file joins the shipped revision
set on the next build.`,
	RunE: runAutorev,
}

func runAutorev(cmd *cobra.Command, args []string) error {
	m, closer, err := openManager()
	if err != nil {
		return err
	}
	defer closer()

	path, generated, err := m.AutoRevision()
	if err != nil {
		return err
	}
	if !generated {
		pterm.Info.Println("No manual changes detected")
		return nil
	}

	pterm.Success.Printf("Generated %s\n", path)
	pterm.Info.Println("Review the file, then rebuild so the revision registers")
	return nil
}
