package commands

import (
	"github.com/teranos/promptrev"
	"github.com/teranos/promptrev/config"
	"github.com/teranos/promptrev/db"
	"github.com/teranos/promptrev/errors"
	"github.com/teranos/promptrev/logger"
	"github.com/teranos/promptrev/prompt"
)

// buildOptions converts configuration into manager options. The returned
// cleanup closes the ledger when the sqlite backend is active; watch stays
// off so one-shot commands never spawn the watcher.
func buildOptions(cfg *config.Config) (promptrev.Options, func(), error) {
	opts := promptrev.Options{
		PromptFile:      cfg.Prompts.File,
		StateFile:       cfg.State.File,
		Debounce:        cfg.Watch.Debounce(),
		StopTimeout:     cfg.Watch.StopTimeout(),
		AutoRev:         cfg.AutoRev.Enabled,
		RevisionsDir:    cfg.AutoRev.RevisionsDir,
		SnapshotFile:    cfg.AutoRev.SnapshotFile,
		AutoRevInterval: cfg.AutoRev.MinInterval(),
		Logger:          logger.Logger,
	}

	if len(cfg.Context) > 0 {
		opts.Context = make(map[string]any, len(cfg.Context))
		for k, v := range cfg.Context {
			opts.Context[k] = v
		}
	}

	if cfg.Prompts.DefaultsFile != "" {
		doc, err := prompt.NewStore(cfg.Prompts.DefaultsFile, nil).Load()
		if err != nil {
			return opts, nil, errors.Wrap(err, "load prompt defaults")
		}
		opts.Defaults = doc.Map()
	}

	cleanup := func() {}
	if cfg.State.Backend == config.StateBackendSQLite {
		ledger, err := db.OpenLedger(cfg.State.SQLitePath, logger.Logger)
		if err != nil {
			return opts, nil, errors.Wrap(err, "open revision ledger")
		}
		opts.State = ledger
		cleanup = func() { ledger.Close() }
	}

	return opts, cleanup, nil
}

// openManager builds a manager from the loaded configuration. The returned
// closer stops the manager and releases the state backend.
func openManager() (*promptrev.Manager, func(), error) {
	opts, cleanup, err := buildOptions(Current())
	if err != nil {
		return nil, nil, err
	}

	m, err := promptrev.New(opts)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	closer := func() {
		m.Close()
		cleanup()
	}
	return m, closer, nil
}
