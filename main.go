package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rm-hull/edge-blur/cmd"
	"github.com/rm-hull/edge-blur/internal"
	"github.com/rm-hull/edge-blur/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	var configPath string
	var debug bool
	var input, output, panelPath, animatePath string
	var port int

	envErr := godotenv.Load()
	logger := internal.NewLogger(os.Stderr, false)

	rootCmd := &cobra.Command{
		Use:          "edge-blur",
		Long:         `Edge-aware selective blurring: smooths only the band around detected edges`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger = internal.NewLogger(os.Stderr, debug)
			if envErr != nil {
				logger.Debug("No .env file found")
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging (and pprof for api-server) - WARNING: do not enable in production")

	processCmd := &cobra.Command{
		Use:   "process [--input <path|url>] [--output <path>] [--panel <path>] [--animate <path>]",
		Short: "Blur the edges of a single image",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath, logger)
			if err != nil {
				return err
			}
			return cmd.Process(input, output, panelPath, animatePath, cfg, logger)
		},
	}

	processCmd.Flags().StringVar(&input, "input", "img8.png", "Image path or http(s) URL to process")
	processCmd.Flags().StringVar(&output, "output", "resultado_suavizado.png", "Where to write the result")
	processCmd.Flags().StringVar(&panelPath, "panel", "painel.png", "Where to write the 3x3 diagnostic panel (empty to skip)")
	processCmd.Flags().StringVar(&animatePath, "animate", "", "Where to write an animated PNG of the stages (empty to skip)")

	apiServerCmd := &cobra.Command{
		Use:   "api-server [--port <port>] [--debug]",
		Short: "Start HTTP API server",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath, logger)
			if err != nil {
				return err
			}
			return cmd.ApiServer(port, debug, cfg, logger)
		},
	}

	apiServerCmd.Flags().IntVar(&port, "port", 8080, "Port to run HTTP server on")

	rootCmd.AddCommand(processCmd, apiServerCmd)
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}

func loadConfig(path string, logger *logrus.Logger) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	logger.WithField("config", cfg).Debug("Loaded configuration")
	return cfg, nil
}
