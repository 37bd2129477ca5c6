package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/CRONUS-Security/DeepNetVisibility/pkg/pipeline"
)

// Config holds netvis configuration loaded from config.toml.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Serve  ServeConfig  `toml:"serve"`
}

// LayoutConfig sets default layout options for the layout command.
type LayoutConfig struct {
	Strategy   string `toml:"strategy"`
	Direction  string `toml:"direction"`
	Iterations int    `toml:"iterations"`
	Columns    int    `toml:"columns"`
}

// ServeConfig controls the serve command.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			Strategy:  pipeline.DefaultStrategy,
			Direction: pipeline.DefaultDirection,
		},
		Serve: ServeConfig{
			Addr: ":8080",
		},
	}
}

// configDir returns the config directory using XDG standard (~/.config/netvis/).
func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

func configPath() string {
	return filepath.Join(configDir(), "config.toml")
}

// LoadConfig reads the config file, returning defaults if it doesn't exist
// or fails to parse. Config problems are never fatal; the file only seeds
// flag defaults.
func LoadConfig() *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}

	_ = toml.Unmarshal(data, cfg)
	return cfg
}

// SaveConfig writes the config to disk.
func SaveConfig(cfg *Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// =============================================================================
// Command
// =============================================================================

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration file",
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configInitCommand())

	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			printKeyValue("strategy", c.Config.Layout.Strategy)
			printKeyValue("direction", c.Config.Layout.Direction)
			printKeyValue("iterations", strconv.Itoa(c.Config.Layout.Iterations))
			printKeyValue("columns", strconv.Itoa(c.Config.Layout.Columns))
			printKeyValue("addr", c.Config.Serve.Addr)
			return nil
		},
	}
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(configPath())
			return nil
		},
	}
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the built-in defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(configPath()); err == nil {
				printInfo("Config already exists")
				printFile(configPath())
				return nil
			}
			if err := SaveConfig(DefaultConfig()); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			printSuccess("Config created")
			printFile(configPath())
			return nil
		},
	}
}
