package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/promptrev"
	"github.com/teranos/promptrev/errors"
)

// WatchCmd runs foreground watch mode: external edits reload the document
// and, when auto-revision is enabled, generate revision source files.
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the prompt document for manual edits",
	Long: `Watch the prompt document and reload it whenever it changes on
disk, logging what was added, changed or removed. With [autorev] enabled
in the configuration, manual edits are captured into generated revision
source files, rate limited by autorev.min_interval_s.

Runs until interrupted.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, cleanup, err := buildOptions(Current())
	if err != nil {
		return err
	}
	defer cleanup()

	opts.Watch = true
	m, err := promptrev.New(opts)
	if err != nil {
		return err
	}
	defer m.Close()

	if !m.Watching() {
		return errors.New("document watcher failed to start, see log for details")
	}

	pterm.Info.Printf("Watching %s (%d prompts loaded)\n", m.PromptPath(), len(m.Names()))
	if opts.AutoRev {
		pterm.Info.Printf("Auto-revision on: manual edits become files under %s\n", opts.RevisionsDir)
	}
	pterm.Info.Println("Press Ctrl-C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	pterm.Println()
	pterm.Info.Println("Stopping watcher")
	return nil
}
