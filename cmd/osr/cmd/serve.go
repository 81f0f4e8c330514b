/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/osrkit/pkg/api"
	"github.com/ssargent/osrkit/pkg/config"
	"github.com/ssargent/osrkit/pkg/logger"
	"github.com/ssargent/osrkit/pkg/storage"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the osrkit REST API server.

If no configuration exists yet, one is created with a generated API key
first. Flags override the values from the configuration file.

Examples:
  osr serve
  osr serve --port 9200 --bind 0.0.0.0
  osr serve --config ./osrkit.yaml --print-key`,
	Annotations: map[string]string{annotationConfig: configOptional},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootstrapIfMissing(cmd); err != nil {
			return err
		}
		applyServeFlags(cmd, cfg)
		if err := ensureAPIKey(cmd, cfg); err != nil {
			return err
		}

		if container == nil {
			return fmt.Errorf("dependency container not initialized")
		}

		archive, err := container.GetArchiveFactory().OpenArchive(storage.Options{
			Path:   cfg.ArchivePath(),
			Preset: cfg.Codec.Preset,
		})
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer archive.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Log.WithField("archive", cfg.ArchivePath()).Info("archive opened")
		cmd.Printf("🚀 Starting osrkit server on %s:%d\n", cfg.Bind, cfg.Port)

		starter := container.GetServerFactory().CreateServerStarter()
		return starter.StartServer(ctx, archive, api.ServerConfig{
			Port:           cfg.Port,
			Bind:           cfg.Bind,
			APIKey:         cfg.Security.APIKey,
			Preset:         cfg.Codec.Preset,
			MaxUploadBytes: cfg.Security.MaxUploadBytes,
		})
	},
}

// bootstrapIfMissing creates the configuration on first run
func bootstrapIfMissing(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	printKey, _ := cmd.Flags().GetBool("print-key")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}
	if config.ConfigExists(configPath) {
		return nil
	}

	cmd.Printf("🔧 First run detected. Creating configuration...\n")
	created, err := config.BootstrapConfig(configPath, dataDir)
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(created); err != nil {
		return err
	}
	cfg = created
	cmd.Printf("✅ Configuration created at %s\n", configPath)
	if printKey {
		cmd.Printf("🔑 API key: %s\n", cfg.Security.APIKey)
	}
	return nil
}

// ensureAPIKey replaces the "auto" placeholder with a key generated for
// this run only
func ensureAPIKey(cmd *cobra.Command, c *config.Config) error {
	if c.Security.APIKey != "" && c.Security.APIKey != "auto" {
		return nil
	}
	key, err := config.GenerateSecureKey(32)
	if err != nil {
		return err
	}
	c.Security.APIKey = key
	logger.Log.Warn("no API key configured, generated one for this run")
	cmd.Printf("🔑 API key: %s\n", key)
	return nil
}

// applyServeFlags overrides configuration values with explicitly set flags
func applyServeFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		c.DataDir, _ = flags.GetString("data-dir")
	}
	if flags.Changed("port") {
		c.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("bind") {
		c.Bind, _ = flags.GetString("bind")
	}
	if flags.Changed("api-key") {
		c.Security.APIKey, _ = flags.GetString("api-key")
	}
	if flags.Changed("preset") {
		c.Codec.Preset, _ = flags.GetInt("preset")
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("data-dir", "d", "./data", "Data directory")
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind server to")
	serveCmd.Flags().String("api-key", "", "API key required in the X-API-Key header")
	serveCmd.Flags().Int("preset", 6, "LZMA preset used by the encode endpoint")
	serveCmd.Flags().Bool("print-key", false, "Print a generated API key to the console")
}
