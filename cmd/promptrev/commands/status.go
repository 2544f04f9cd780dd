package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// StatusCmd reports the current revision and what is still pending.
var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current revision and pending steps",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	m, closer, err := openManager()
	if err != nil {
		return err
	}
	defer closer()

	applied, err := m.Applied()
	if err != nil {
		return err
	}

	if current, ok := m.CurrentRevision(); ok {
		pterm.Info.Printf("Current revision: %s (%d applied)\n", current, len(applied))
	} else {
		pterm.Info.Println("Current revision: none (nothing applied yet)")
	}

	pending, err := m.Pending("")
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		pterm.Success.Println("Prompts are up to date")
		return nil
	}

	rows := pterm.TableData{{"ID", "DESCRIPTION"}}
	for _, step := range pending {
		rows = append(rows, []string{step.ID, step.Description})
	}
	pterm.Warning.Printf("%d revision(s) pending:\n", len(pending))
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
