package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// ListCmd lists every registered revision with an applied marker.
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered revisions",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	m, closer, err := openManager()
	if err != nil {
		return err
	}
	defer closer()

	steps := m.ListSteps()
	if len(steps) == 0 {
		pterm.Info.Println("No revisions registered")
		return nil
	}

	applied, err := m.Applied()
	if err != nil {
		return err
	}
	appliedSet := make(map[string]bool, len(applied))
	for _, id := range applied {
		appliedSet[id] = true
	}

	rows := pterm.TableData{{"", "ID", "DESCRIPTION"}}
	for _, step := range steps {
		mark := ""
		if appliedSet[step.ID] {
			mark = "✓"
		}
		rows = append(rows, []string{mark, step.ID, step.Description})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
