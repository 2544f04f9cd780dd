package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/promptrev/config"
	"github.com/teranos/promptrev/errors"
)

// InitCmd seeds a starter prompt document and project configuration.
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Seed a starter prompt document and project config",
	Long: `Create a starter prompt document at the configured path and a
promptrev.toml with the default settings in the working directory.
Existing files are never overwritten.`,
	RunE: runInit,
}

const starterDocument = `# Prompt document managed by promptrev.
#
# Run 'promptrev upgrade' to apply registered revisions, or add prompts by
# hand and capture them with 'promptrev autorev'.
#
# SYSTEM: "You are a helpful assistant."
`

func runInit(cmd *cobra.Command, args []string) error {
	cfg := Current()

	promptFile := cfg.Prompts.File
	if _, err := os.Stat(promptFile); err == nil {
		return errors.Newf("refusing to overwrite existing %s", promptFile)
	}
	if err := os.WriteFile(promptFile, []byte(starterDocument), 0o644); err != nil {
		return errors.Wrapf(err, "write starter document %s", promptFile)
	}
	pterm.Success.Printf("Created %s\n", promptFile)

	if _, err := os.Stat(config.ProjectConfigName); err == nil {
		pterm.Info.Printf("Keeping existing %s\n", config.ProjectConfigName)
		return nil
	}
	if err := config.Save(cfg, config.ProjectConfigName); err != nil {
		return errors.Wrap(err, "write project config")
	}
	pterm.Success.Printf("Created %s\n", config.ProjectConfigName)

	pterm.Info.Println("Next: promptrev upgrade")
	return nil
}
