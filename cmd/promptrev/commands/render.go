package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/promptrev/errors"
)

// RenderCmd resolves an ad-hoc template string against the configured
// context.
var RenderCmd = &cobra.Command{
	Use:   "render TEMPLATE",
	Short: "Resolve a template string",
	Long: `Resolve inline directives and context variables in TEMPLATE and
print the result.

Examples:
  promptrev render 'Today is {{date:format=%B %d, %Y}}'
  promptrev render 'Hello {{name}}!' --var name=World`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var renderVars []string

func init() {
	RenderCmd.Flags().StringArrayVar(&renderVars, "var", nil, "Context variable as key=value (repeatable)")
}

func runRender(cmd *cobra.Command, args []string) error {
	override := make(map[string]any, len(renderVars))
	for _, pair := range renderVars {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return errors.Newf("invalid --var %q, expected key=value", pair)
		}
		override[key] = value
	}

	m, closer, err := openManager()
	if err != nil {
		return err
	}
	defer closer()

	fmt.Println(m.Render(args[0], override))
	return nil
}
