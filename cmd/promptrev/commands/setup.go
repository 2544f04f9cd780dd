package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teranos/promptrev/config"
	"github.com/teranos/promptrev/errors"
	"github.com/teranos/promptrev/logger"
)

var (
	currentConfig  *config.Config
	configFilePath string
)

// Setup loads configuration and initializes logging. Runs once from the
// root command before any subcommand.
func Setup(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	configPath, _ := flags.GetString("config")
	jsonLogs, _ := flags.GetBool("json-logs")
	verbosity, _ := flags.GetCount("verbose")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return errors.Wrap(err, "load configuration")
	}

	if verbosity == 0 {
		verbosity = cfg.Logging.Verbosity
	}
	if err := logger.Initialize(jsonLogs || cfg.Logging.JSON, verbosity); err != nil {
		return errors.Wrap(err, "initialize logger")
	}

	currentConfig = cfg
	configFilePath = configPath
	return nil
}

// Current returns the configuration Setup loaded.
func Current() *config.Config {
	return currentConfig
}

// configViper returns key-level access to whatever Setup loaded: the
// cascade normally, or just the --config file when one was given.
func configViper() (*viper.Viper, error) {
	if configFilePath == "" {
		return config.GetViper(), nil
	}

	v := viper.New()
	v.SetConfigFile(configFilePath)
	v.SetConfigType("toml")
	config.SetDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read config file %s", configFilePath)
	}
	return v, nil
}
