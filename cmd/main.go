package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CarWashService/internal/config"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "carwash",
	Short: "SMC-CarWashService - запись на мойку с одним боксом",
	Long: "HTTP API записи на мойку: свободные слоты с буфером между мойками, " +
		"жизненный цикл мойки и приглашение следующего клиента приехать раньше.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to TOML config")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig загружает конфигурацию и создает логгер (для команд, которым они нужны)
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize logger: %w", err)
	}

	return cfg, log, nil
}
