package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// UpgradeCmd applies pending revisions to the prompt document.
var UpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Apply pending prompt revisions",
	Long: `Apply every pending revision to the prompt document, in identifier
order, persisting the document and the applied sequence after each step.

With --target, stop after the named revision (inclusive). An unknown
target applies nothing.

Examples:
  promptrev upgrade
  promptrev upgrade --target 002_add_weather_q`,
	RunE: runUpgrade,
}

var upgradeTarget string

func init() {
	UpgradeCmd.Flags().StringVar(&upgradeTarget, "target", "", "Stop after this revision ID (inclusive)")
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	m, closer, err := openManager()
	if err != nil {
		return err
	}
	defer closer()

	applied, upgradeErr := m.Upgrade(upgradeTarget)
	for _, id := range applied {
		pterm.Success.Printf("Applied %s\n", id)
	}
	if upgradeErr != nil {
		// Partial progress above is already persisted.
		return upgradeErr
	}

	if len(applied) == 0 {
		pterm.Info.Println("Nothing to apply; prompts are up to date")
		return nil
	}

	current, _ := m.CurrentRevision()
	pterm.Info.Printf("Now at revision %s\n", current)
	return nil
}
