package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/promptrev/config"
	"github.com/teranos/promptrev/errors"
)

// ConfigCmd groups configuration inspection subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect promptrev configuration",
	Long: `Inspect the promptrev configuration cascade.

Configuration sources (in order of precedence):
1. Environment variables (PROMPTREV_* prefix)
2. Project config (promptrev.toml, searched upward from the working directory)
3. User config (~/.config/promptrev/config.toml)
4. System config (/etc/promptrev/config.toml)
5. Default values

Examples:
  promptrev config show                # Effective configuration as TOML
  promptrev config show --format json
  promptrev config get prompts.file    # One value by dot-notation key
  promptrev config where               # Which files the cascade found
  promptrev config validate`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get one configuration value",
	Long:  "Get a configuration value using dot notation (e.g. prompts.file, watch.debounce_ms).",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show which config files the cascade found",
	RunE:  runConfigWhere,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the effective configuration",
	RunE:  runConfigValidate,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configGetCmd)
	ConfigCmd.AddCommand(configWhereCmd)
	ConfigCmd.AddCommand(configValidateCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := Current()

	switch configFormat {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return errors.Wrap(err, "marshal config to JSON")
		}
		fmt.Println(string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "marshal config to YAML")
		}
		fmt.Printf("# promptrev configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "marshal config to TOML")
		}
		fmt.Printf("# promptrev configuration\n%s", string(data))

	default:
		return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", configFormat)
	}

	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	v, err := configViper()
	if err != nil {
		return err
	}
	if !v.IsSet(key) {
		return errors.Newf("configuration key %q not found", key)
	}

	fmt.Println(v.Get(key))
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	if configFilePath != "" {
		pterm.Info.Printf("Cascade bypassed by --config %s\n", configFilePath)
		return nil
	}

	fmt.Println("Configuration cascade (later overrides earlier):")
	printSource("  1. [DEFAULT] ", "built-in defaults", true)
	printSource("  2. [SYSTEM]  ", "/etc/promptrev/config.toml", fileExists("/etc/promptrev/config.toml"))
	user := config.UserConfigPath()
	printSource("  3. [USER]    ", user, user != "" && fileExists(user))
	project := config.FindProjectConfig()
	if project == "" {
		printSource("  4. [PROJECT] ", config.ProjectConfigName+" (searched upward)", false)
	} else {
		printSource("  4. [PROJECT] ", project, true)
	}
	printSource("  5. [ENV]     ", "PROMPTREV_* environment variables", true)
	return nil
}

func printSource(prefix, path string, present bool) {
	marker := "absent"
	if present {
		marker = "present"
	}
	fmt.Printf("%s%-55s %s\n", prefix, path, marker)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if err := Current().Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	pterm.Success.Println("Configuration is valid")
	return nil
}
