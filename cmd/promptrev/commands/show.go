package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ShowCmd prints one prompt to stdout, rendered by default.
var ShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a prompt",
	Long: `Print the named prompt to stdout. Rendering resolves inline
directives and context variables; --raw prints the stored template
untouched. Names are matched case-insensitively.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var showRaw bool

func init() {
	ShowCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the stored template without rendering")
}

func runShow(cmd *cobra.Command, args []string) error {
	m, closer, err := openManager()
	if err != nil {
		return err
	}
	defer closer()

	var value string
	if showRaw {
		value, err = m.Raw(args[0])
	} else {
		value, err = m.Lookup(args[0])
	}
	if err != nil {
		return err
	}

	fmt.Println(value)
	return nil
}
