/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/osrkit/pkg/config"
	"github.com/ssargent/osrkit/pkg/di"
	"github.com/ssargent/osrkit/pkg/logger"
)

var (
	container *di.Container

	// cfg is loaded by the root command before any subcommand runs
	cfg *config.Config
)

// SetContainer sets the dependency injection container
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "osr",
	Short: "osrkit - osu! replay toolkit",
	Long: `osrkit reads, writes and archives osu! replay (.osr) files.

It can inspect and repack replays, parse the replay data returned by the
osu! API, keep an archive of replays and serve all of it over a REST API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		level, _ := cmd.Flags().GetString("log-level")
		format, _ := cmd.Flags().GetString("log-format")

		loaded, err := loadConfig(configPath, cmd.Annotations[annotationConfig] == configOptional)
		if err != nil {
			return err
		}
		cfg = loaded

		if level == "" {
			level = cfg.Logging.Level
		}
		if format == "" {
			format = cfg.Logging.Format
		}
		logger.Init(level, format)
		return nil
	},
}

// Commands annotated with configOptional create the config file themselves
const (
	annotationConfig = "config"
	configOptional   = "optional"
)

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing default config yields the built-in defaults, as
// does any missing config when optional is set. OSRKIT_* environment
// variables override the result.
func loadConfig(path string, optional bool) (*config.Config, error) {
	explicit := path != ""
	if !explicit {
		path = config.GetDefaultConfigPath()
	}
	var (
		c   *config.Config
		err error
	)
	switch {
	case config.ConfigExists(path):
		if c, err = config.LoadConfig(path); err != nil {
			return nil, err
		}
	case explicit && !optional:
		return nil, fmt.Errorf("config file does not exist: %s", path)
	default:
		c = config.DefaultConfig()
	}

	if err = config.ApplyEnv(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: OS-specific location)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text, json)")
}
