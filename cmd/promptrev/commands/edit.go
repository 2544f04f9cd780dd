package commands

import (
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/promptrev/errors"
)

// EditCmd opens the prompt document in $EDITOR and reconciles afterwards.
var EditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the prompt document in $EDITOR",
	Long: `Open the prompt document in $EDITOR, wait for the editor to exit,
then reload and log what was added, changed or removed.`,
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		return errors.New("$EDITOR is not set")
	}
	editorArgs, err := shellquote.Split(editor)
	if err != nil {
		return errors.Wrapf(err, "parse $EDITOR %q", editor)
	}
	if len(editorArgs) == 0 {
		return errors.Newf("$EDITOR %q parses to nothing", editor)
	}

	m, closer, err := openManager()
	if err != nil {
		return err
	}
	defer closer()

	editorCmd := exec.Command(editorArgs[0], append(editorArgs[1:], m.PromptPath())...)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr
	if err := editorCmd.Run(); err != nil {
		return errors.Wrap(err, "run editor")
	}

	if err := m.Reload(); err != nil {
		return err
	}
	pterm.Success.Printf("Reloaded %s (%d prompts)\n", m.PromptPath(), len(m.Names()))
	return nil
}
