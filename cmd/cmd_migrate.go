package main

import (
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CarWashService/internal/infra/migrations"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|step-up|drop]",
	Short:     "Apply or roll back database migrations",
	Long:      "up применяет все новые миграции, down откатывает последнюю, step-up применяет одну, drop откатывает все.",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{migrations.ActionUp, migrations.ActionDown, migrations.ActionStepUp, migrations.ActionDrop},
	RunE:      runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Close()

	action := migrations.ActionUp
	if len(args) == 1 {
		action = args[0]
	}

	log.Info("Running migrations: action=%s, db=%s@%s:%d/%s",
		action, cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	return migrations.Run(cfg.Database.DSN(), action, log)
}
