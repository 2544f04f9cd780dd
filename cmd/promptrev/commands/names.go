package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NamesCmd lists known prompt names in document order.
var NamesCmd = &cobra.Command{
	Use:   "names",
	Short: "List known prompt names",
	RunE:  runNames,
}

func runNames(cmd *cobra.Command, args []string) error {
	m, closer, err := openManager()
	if err != nil {
		return err
	}
	defer closer()

	for _, name := range m.Names() {
		fmt.Println(name)
	}
	return nil
}
